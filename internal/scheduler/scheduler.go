// Package scheduler runs the recurring analytics jobs on cron schedules.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/aristath/quantfolio/internal/events"
)

// Job is a schedulable unit of analytics work
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs
type Scheduler struct {
	cron *cron.Cron
	bus  *events.Bus
	log  zerolog.Logger
}

// New creates a new scheduler
func New(bus *events.Bus, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		bus:  bus,
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

// AddJob registers a job with a cron schedule
// Schedule examples:
//   - "0 30 22 * * MON-FRI" - 22:30 weekdays, after market close
//   - "@hourly"             - Every hour
//   - "@every 30s"          - Every 30 seconds
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.runJob(job)
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("schedule", schedule).
		Str("job", job.Name()).
		Msg("Job registered")

	return nil
}

// RunNow executes a job immediately, outside its schedule
func (s *Scheduler) RunNow(job Job) error {
	s.log.Info().Str("job", job.Name()).Msg("Running job immediately")

	err := job.Run()
	if err != nil {
		s.publishFailure(job, err)
	}
	return err
}

func (s *Scheduler) runJob(job Job) {
	s.log.Debug().Str("job", job.Name()).Msg("Running job")

	if err := job.Run(); err != nil {
		s.log.Error().
			Err(err).
			Str("job", job.Name()).
			Msg("Job failed")
		s.publishFailure(job, err)
		return
	}

	s.log.Debug().Str("job", job.Name()).Msg("Job completed")
}

func (s *Scheduler) publishFailure(job Job, err error) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(&events.JobFailedData{Job: job.Name(), Error: err.Error()})
}

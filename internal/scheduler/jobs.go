package scheduler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/quantfolio/internal/modules/attribution"
	"github.com/aristath/quantfolio/internal/modules/risk"
)

// RiskServiceInterface defines the contract for risk service operations
// Used by scheduler jobs to enable testing with mocks
type RiskServiceInterface interface {
	Compute(asOfDate string) (*risk.ComputeResult, error)
}

// AttributionServiceInterface defines the contract for attribution service operations
// Used by scheduler jobs to enable testing with mocks
type AttributionServiceInterface interface {
	Compute(asOfDate string, lookbackDays int) (*attribution.ComputeResult, error)
}

// RiskJob recomputes the full risk metric set for the current date
type RiskJob struct {
	service RiskServiceInterface
	log     zerolog.Logger
}

// NewRiskJob creates the daily risk metrics job
func NewRiskJob(service RiskServiceInterface, log zerolog.Logger) *RiskJob {
	return &RiskJob{
		service: service,
		log:     log.With().Str("job", "risk_daily").Logger(),
	}
}

// Name returns the job name
func (j *RiskJob) Name() string {
	return "risk_daily"
}

// Run executes the risk computation for today
func (j *RiskJob) Run() error {
	result, err := j.service.Compute("")
	if err != nil {
		return fmt.Errorf("risk compute failed: %w", err)
	}

	j.log.Info().
		Str("run_id", result.RunID).
		Str("asof_date", result.AsOfDate).
		Int("metrics", len(result.Metrics)).
		Msg("Risk job completed")

	return nil
}

// AttributionJob recomputes attribution effects for the current date
// over one lookback window
type AttributionJob struct {
	service      AttributionServiceInterface
	lookbackDays int
	name         string
	log          zerolog.Logger
}

// NewDailyAttributionJob creates the 1-day attribution job
func NewDailyAttributionJob(service AttributionServiceInterface, log zerolog.Logger) *AttributionJob {
	return newAttributionJob(service, 1, "attribution_daily", log)
}

// NewMonthlyAttributionJob creates the 30-day attribution job
func NewMonthlyAttributionJob(service AttributionServiceInterface, log zerolog.Logger) *AttributionJob {
	return newAttributionJob(service, 30, "attribution_monthly", log)
}

func newAttributionJob(service AttributionServiceInterface, lookbackDays int, name string, log zerolog.Logger) *AttributionJob {
	return &AttributionJob{
		service:      service,
		lookbackDays: lookbackDays,
		name:         name,
		log:          log.With().Str("job", name).Logger(),
	}
}

// Name returns the job name
func (j *AttributionJob) Name() string {
	return j.name
}

// Run executes the attribution computation for today
func (j *AttributionJob) Run() error {
	result, err := j.service.Compute("", j.lookbackDays)
	if err != nil {
		return fmt.Errorf("attribution compute failed (lookback %d): %w", j.lookbackDays, err)
	}

	if result.Skipped {
		j.log.Info().
			Str("asof_date", result.AsOfDate).
			Int("lookback_days", j.lookbackDays).
			Msg("Attribution job skipped a stale-data run")
		return nil
	}

	j.log.Info().
		Str("run_id", result.RunID).
		Str("asof_date", result.AsOfDate).
		Int("lookback_days", j.lookbackDays).
		Int("rows", len(result.Effects)).
		Msg("Attribution job completed")

	return nil
}

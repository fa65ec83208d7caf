// Package di provides dependency injection for scheduled job creation.
package di

import (
	"fmt"

	"github.com/aristath/quantfolio/internal/scheduler"
	"github.com/rs/zerolog"
)

// RegisterJobs creates the scheduled job set backed by container services.
// The caller registers each job with the cron scheduler using the
// schedule expressions from configuration.
func RegisterJobs(container *Container, log zerolog.Logger) (*JobInstances, error) {
	if container == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	jobs := &JobInstances{
		Risk:               scheduler.NewRiskJob(container.RiskService, log),
		DailyAttribution:   scheduler.NewDailyAttributionJob(container.AttributionService, log),
		MonthlyAttribution: scheduler.NewMonthlyAttributionJob(container.AttributionService, log),
	}

	log.Info().Msg("All jobs registered")

	return jobs, nil
}

/**
 * Package di provides dependency injection type definitions.
 *
 * This package defines the Container type which holds all application dependencies.
 * The Container is the single source of truth for all service instances and is
 * passed to the HTTP server for access to services.
 */
package di

import (
	"github.com/aristath/quantfolio/internal/database"
	"github.com/aristath/quantfolio/internal/events"
	"github.com/aristath/quantfolio/internal/marketdata"
	"github.com/aristath/quantfolio/internal/modules/attribution"
	"github.com/aristath/quantfolio/internal/modules/portfolio"
	"github.com/aristath/quantfolio/internal/modules/risk"
	"github.com/aristath/quantfolio/internal/modules/scoring"
	"github.com/aristath/quantfolio/internal/modules/universe"
	"github.com/aristath/quantfolio/internal/scheduler"
)

/**
 * Container holds all dependencies for the application.
 *
 * This is the single source of truth for all service instances.
 * The container is created by Wire() and passed to the HTTP server.
 *
 * Architecture:
 * - Databases: analytics.db and portfolio.db are owned and migrated by this
 *   process; history.db is produced by the external price ingestion pipeline
 *   and attached read-only
 * - Repositories: data access layer (positions, securities, metrics, effects)
 * - Services: business logic layer (risk, attribution, screening)
 *
 * All dependencies are injected via constructor injection.
 */
type Container struct {
	// Databases
	AnalyticsDB *database.DB          // Computed analytics (risk metric runs, attribution effects)
	PortfolioDB *database.DB          // Portfolio state (positions) and screening universe (securities)
	HistoryDB   *marketdata.HistoryDB // Daily price history, read-only

	// Repositories - Data access layer
	PositionRepo    *portfolio.PositionRepository // Portfolio positions
	SecurityRepo    *universe.SecurityRepository  // Screening universe securities
	RiskRepo        *risk.Repository              // Persisted risk metric runs
	AttributionRepo *attribution.Repository       // Persisted attribution effects

	// Market data
	Provider *marketdata.Provider // Return series derived from the price history

	// Services - Business logic layer
	Bus                *events.Bus          // Event bus for run notifications
	RiskService        *risk.Service        // Risk metric computation and lookup
	AttributionService *attribution.Service // Brinson-Fachler attribution
	ScreenerService    *scoring.ScreenerService
}

// JobInstances holds the scheduled jobs created by RegisterJobs. The
// entry point registers them with the cron scheduler using the
// schedules from configuration.
type JobInstances struct {
	Risk               *scheduler.RiskJob        // Daily risk metric run
	DailyAttribution   *scheduler.AttributionJob // 1-day attribution window
	MonthlyAttribution *scheduler.AttributionJob // 30-day attribution window
}

// Package di provides dependency injection for service construction.
package di

import (
	"fmt"
	"path/filepath"

	"github.com/aristath/quantfolio/internal/config"
	"github.com/aristath/quantfolio/internal/events"
	"github.com/aristath/quantfolio/internal/marketdata"
	"github.com/aristath/quantfolio/internal/modules/attribution"
	"github.com/aristath/quantfolio/internal/modules/risk"
	"github.com/aristath/quantfolio/internal/modules/scoring"
	"github.com/rs/zerolog"
)

// InitializeServices creates all services and stores them in the container
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	// Event bus (SSE stream and job failure notifications)
	container.Bus = events.NewBus(log)

	// Market data provider (return series derived from the price history)
	container.Provider = marketdata.NewProvider(container.HistoryDB, log)

	// Risk service (needs positions, returns, calculator, persistence)
	calculator := risk.NewCalculator(cfg.RiskFreeRate, log)
	container.RiskService = risk.NewService(
		container.PositionRepo,
		container.Provider,
		calculator,
		container.RiskRepo,
		container.Bus,
		log,
	)

	// Attribution service (needs positions, returns, persistence)
	container.AttributionService = attribution.NewService(
		container.PositionRepo,
		container.Provider,
		container.AttributionRepo,
		container.Bus,
		log,
	)

	// Screener service. The reference snapshot sits next to the databases
	// so a data-dir wipe resets it along with everything else.
	cache := scoring.NewReferenceCache(
		filepath.Join(cfg.DataDir, "reference_snapshot.msgpack"),
		log,
	)
	container.ScreenerService = scoring.NewScreenerService(
		container.SecurityRepo,
		cache,
		cfg.MinSectorSize,
		cfg.BalancedSectors,
		container.Bus,
		log,
	)

	log.Info().Msg("All services initialized")

	return nil
}

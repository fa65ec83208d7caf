// Package di provides dependency injection for database connections.
package di

import (
	"fmt"
	"path/filepath"

	"github.com/aristath/quantfolio/internal/config"
	"github.com/aristath/quantfolio/internal/database"
	"github.com/aristath/quantfolio/internal/marketdata"
	"github.com/rs/zerolog"
)

// InitializeDatabases opens the two writable databases, applies schemas,
// and attaches the read-only price history
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	// 1. analytics.db - computed analytics (risk metric runs, attribution effects)
	analyticsDB, err := database.New(database.Config{
		Path:    cfg.DataDir + "/analytics.db",
		Profile: database.ProfileStandard,
		Name:    "analytics",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize analytics database: %w", err)
	}
	container.AnalyticsDB = analyticsDB

	// 2. portfolio.db - portfolio positions and the screening universe
	portfolioDB, err := database.New(database.Config{
		Path:    cfg.DataDir + "/portfolio.db",
		Profile: database.ProfileStandard,
		Name:    "portfolio",
	})
	if err != nil {
		analyticsDB.Close()
		return nil, fmt.Errorf("failed to initialize portfolio database: %w", err)
	}
	container.PortfolioDB = portfolioDB

	// Apply schemas to the writable databases (single source of truth)
	for _, db := range []*database.DB{analyticsDB, portfolioDB} {
		if err := db.Migrate(); err != nil {
			// Cleanup on error
			analyticsDB.Close()
			portfolioDB.Close()
			return nil, fmt.Errorf("failed to apply schema to %s: %w", db.Name(), err)
		}
	}

	// 3. history.db - daily prices maintained by the external ingestion
	// pipeline. Opened read-only; startup fails when the file is missing
	// because every analytics run reads from it.
	historyDB, err := marketdata.OpenHistoryDB(filepath.Join(cfg.DataDir, "history.db"), log)
	if err != nil {
		analyticsDB.Close()
		portfolioDB.Close()
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	container.HistoryDB = historyDB

	log.Info().Msg("All databases initialized and schemas applied")

	return container, nil
}

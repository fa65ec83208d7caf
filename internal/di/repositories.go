// Package di provides dependency injection for repository implementations.
package di

import (
	"fmt"

	"github.com/aristath/quantfolio/internal/modules/attribution"
	"github.com/aristath/quantfolio/internal/modules/portfolio"
	"github.com/aristath/quantfolio/internal/modules/risk"
	"github.com/aristath/quantfolio/internal/modules/universe"
	"github.com/rs/zerolog"
)

// InitializeRepositories creates all repositories and stores them in the container
func InitializeRepositories(container *Container, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	// Position repository (needs portfolioDB)
	container.PositionRepo = portfolio.NewPositionRepository(
		container.PortfolioDB.Conn(),
		log,
	)

	// Security repository (needs portfolioDB; the screening universe lives
	// alongside the positions it feeds)
	container.SecurityRepo = universe.NewSecurityRepository(
		container.PortfolioDB.Conn(),
		log,
	)

	// Risk metrics repository (needs analyticsDB)
	container.RiskRepo = risk.NewRepository(
		container.AnalyticsDB.Conn(),
		log,
	)

	// Attribution effects repository (needs analyticsDB)
	container.AttributionRepo = attribution.NewRepository(
		container.AnalyticsDB.Conn(),
		log,
	)

	log.Info().Msg("All repositories initialized")

	return nil
}

// Package main is the entry point for the Quantfolio portfolio analytics
// service. The service screens an investment universe with style-weighted
// factor scores, computes portfolio risk metrics, and attributes active
// return against a composite benchmark using Brinson-Fachler decomposition.
//
// The application follows clean architecture principles:
// - Domain layer is pure (no infrastructure dependencies)
// - Dependency injection via DI container
// - Repository pattern for data access
// - Service layer for business logic
// - HTTP handlers for API endpoints
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/quantfolio/internal/config"
	"github.com/aristath/quantfolio/internal/di"
	"github.com/aristath/quantfolio/internal/scheduler"
	"github.com/aristath/quantfolio/internal/server"
	"github.com/aristath/quantfolio/pkg/logger"
)

// main orchestrates the startup sequence:
// 1. Loads configuration from environment variables
// 2. Initializes logging
// 3. Wires all dependencies via the DI container (databases, repositories, services)
// 4. Starts the HTTP server for API endpoints
// 5. Schedules the recurring analytics jobs
// 6. Waits for a shutdown signal and shuts down gracefully
//
// The application uses a 3-database architecture:
// - analytics.db: computed analytics (risk metric runs, attribution effects)
// - portfolio.db: current portfolio state (positions, screening universe)
// - history.db: historical price time-series, attached read-only
func main() {
	// Load configuration first to get the log level. Configuration comes
	// from environment variables and an optional .env file.
	cfg, err := config.Load()
	if err != nil {
		// Use a fallback logger so the configuration error still gets logged
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger with the configured level. Pretty mode enables
	// human-readable console output.
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Quantfolio")

	// Wire all dependencies using the DI container:
	// - Databases are initialized first (3-database architecture)
	// - Repositories are created with database connections
	// - Services are created with repository dependencies
	// - Job instances are created for the scheduler
	container, jobs, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	// Cleanup databases on exit. The writable databases must be closed
	// properly so WAL checkpoints are written; the history attachment is
	// read-only but still holds a file handle.
	defer container.AnalyticsDB.Close()
	defer container.PortfolioDB.Close()
	defer container.HistoryDB.Close()

	// Initialize the HTTP server. It exposes:
	// - Screener operations (style rankings, sector-balanced shortlist)
	// - Risk metrics (stored runs and on-demand computation)
	// - Performance attribution (stored runs and on-demand computation)
	// - System monitoring (status, database stats, disk usage)
	// - A Server-Sent Events stream of analytics lifecycle events
	srv := server.New(server.Config{
		Port:      cfg.Port,
		Log:       log,
		Config:    cfg,
		DevMode:   cfg.DevMode,
		Container: container,
	})

	// Start server in a goroutine so scheduling can proceed concurrently
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Schedule the recurring analytics jobs. Each schedule is a cron
	// expression from configuration; results land in analytics.db and
	// fire events on the bus either way.
	sched := scheduler.New(container.Bus, log)
	if err := sched.AddJob(cfg.RiskSchedule, jobs.Risk); err != nil {
		log.Fatal().Err(err).Str("job", jobs.Risk.Name()).Msg("Failed to schedule job")
	}
	if err := sched.AddJob(cfg.AttributionSchedule, jobs.DailyAttribution); err != nil {
		log.Fatal().Err(err).Str("job", jobs.DailyAttribution.Name()).Msg("Failed to schedule job")
	}
	if err := sched.AddJob(cfg.MonthlyAttributionSchedule, jobs.MonthlyAttribution); err != nil {
		log.Fatal().Err(err).Str("job", jobs.MonthlyAttribution.Name()).Msg("Failed to schedule job")
	}
	sched.Start()
	log.Info().Msg("Analytics scheduler started")

	// Wait for interrupt signal. The application blocks here until it
	// receives SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Stop the scheduler first so no new analytics runs start while the
	// server drains in-flight requests.
	sched.Stop()
	log.Info().Msg("Analytics scheduler stopped")

	// Graceful shutdown: the HTTP server gets up to 10 seconds to finish
	// in-flight requests before being forced down.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

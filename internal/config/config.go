// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/aristath/quantfolio/internal/utils"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for all databases, always absolute
	Port     int
	DevMode  bool
	LogLevel string

	// Analytics parameters
	RiskFreeRate    float64  // Annual risk-free rate as a decimal (e.g. 0.04 = 4%)
	MinSectorSize   int      // Minimum peer count for sector-relative reference distributions
	BalancedSectors []string // Sectors covered by the balanced screener list (nil = built-in default)

	// Cron schedules for the analytics jobs
	RiskSchedule               string
	AttributionSchedule        string
	MonthlyAttributionSchedule string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Determine data directory and resolve it to an absolute path that exists
	dataDir := getEnv("QUANTFOLIO_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:         absDataDir,
		Port:            getEnvAsInt("SERVER_PORT", 8010),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RiskFreeRate:    getEnvAsFloat("RISK_FREE_RATE", 0.04),
		MinSectorSize:   getEnvAsInt("MIN_SECTOR_SIZE", 20),
		BalancedSectors: utils.ParseCSV(getEnv("BALANCED_SECTORS", "")),

		// Weekdays after the close (server local time)
		RiskSchedule:               getEnv("RISK_SCHEDULE", "0 30 22 * * MON-FRI"),
		AttributionSchedule:        getEnv("ATTRIBUTION_SCHEDULE", "0 45 22 * * MON-FRI"),
		MonthlyAttributionSchedule: getEnv("MONTHLY_ATTRIBUTION_SCHEDULE", "0 0 23 1 * *"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present and sane
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Port)
	}
	if c.RiskFreeRate < -1 || c.RiskFreeRate > 1 {
		return fmt.Errorf("risk-free rate out of range: %f", c.RiskFreeRate)
	}
	if c.MinSectorSize < 1 {
		return fmt.Errorf("minimum sector size must be positive: %d", c.MinSectorSize)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

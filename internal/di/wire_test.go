package di

import (
	"testing"

	"github.com/aristath/quantfolio/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWire(t *testing.T) {
	tmpDir := t.TempDir()
	seedHistoryFile(t, tmpDir)

	cfg := &config.Config{
		DataDir:       tmpDir,
		RiskFreeRate:  0.04,
		MinSectorSize: 20,
	}
	log := zerolog.Nop()

	// Wire everything
	container, jobs, err := Wire(cfg, log)
	require.NoError(t, err)
	require.NotNil(t, container)
	require.NotNil(t, jobs)

	// Verify container is fully populated
	assert.NotNil(t, container.AnalyticsDB)
	assert.NotNil(t, container.PortfolioDB)
	assert.NotNil(t, container.HistoryDB)
	assert.NotNil(t, container.PositionRepo)
	assert.NotNil(t, container.SecurityRepo)
	assert.NotNil(t, container.RiskRepo)
	assert.NotNil(t, container.AttributionRepo)
	assert.NotNil(t, container.Provider)
	assert.NotNil(t, container.Bus)
	assert.NotNil(t, container.RiskService)
	assert.NotNil(t, container.AttributionService)
	assert.NotNil(t, container.ScreenerService)

	// Verify jobs are registered
	assert.NotNil(t, jobs.Risk)
	assert.NotNil(t, jobs.DailyAttribution)
	assert.NotNil(t, jobs.MonthlyAttribution)

	// Cleanup
	t.Cleanup(func() {
		if container != nil {
			container.AnalyticsDB.Close()
			container.PortfolioDB.Close()
			container.HistoryDB.Close()
		}
	})
}

func TestWire_MissingHistoryFile(t *testing.T) {
	cfg := &config.Config{
		DataDir:       t.TempDir(),
		RiskFreeRate:  0.04,
		MinSectorSize: 20,
	}

	container, jobs, err := Wire(cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Nil(t, container)
	assert.Nil(t, jobs)
	assert.Contains(t, err.Error(), "failed to initialize databases")
}

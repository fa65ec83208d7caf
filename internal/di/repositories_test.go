package di

import (
	"testing"

	"github.com/aristath/quantfolio/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeRepositories(t *testing.T) {
	tmpDir := t.TempDir()
	seedHistoryFile(t, tmpDir)

	cfg := &config.Config{DataDir: tmpDir}
	log := zerolog.Nop()

	// Initialize databases first
	container, err := InitializeDatabases(cfg, log)
	require.NoError(t, err)
	require.NotNil(t, container)

	// Initialize repositories
	err = InitializeRepositories(container, log)
	require.NoError(t, err)

	// Verify all repositories are created
	assert.NotNil(t, container.PositionRepo)
	assert.NotNil(t, container.SecurityRepo)
	assert.NotNil(t, container.RiskRepo)
	assert.NotNil(t, container.AttributionRepo)

	// Cleanup
	container.AnalyticsDB.Close()
	container.PortfolioDB.Close()
	container.HistoryDB.Close()
}

func TestInitializeRepositories_NilContainer(t *testing.T) {
	err := InitializeRepositories(nil, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "container cannot be nil")
}

package marketdata

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedBenchmark seeds three days of prices for every composite component.
// XLK moves +10% then -10%; every other component is flat.
func seedBenchmark(t *testing.T) *HistoryDB {
	t.Helper()

	var seeds []seedPrice
	for _, component := range benchmarkComponents {
		closes := []float64{100, 100, 100}
		if component.Ticker == "XLK" {
			closes = []float64{100, 110, 99}
		}
		seeds = append(seeds,
			seedPrice{ticker: component.Ticker, date: "2025-01-02", close: closes[0]},
			seedPrice{ticker: component.Ticker, date: "2025-01-03", close: closes[1]},
			seedPrice{ticker: component.Ticker, date: "2025-01-06", close: closes[2]},
		)
	}

	return newTestHistoryDB(t, seeds)
}

func TestCompositeBenchmarkReturnsEqualWeight(t *testing.T) {
	provider := NewProvider(seedBenchmark(t), zerolog.Nop())

	series, err := provider.CompositeBenchmarkReturns("2025-01-06")
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.InDelta(t, 0.10/6.0, series[0].Return, 1e-9)
	assert.InDelta(t, -0.10/6.0, series[1].Return, 1e-9)
}

func TestCompositeBenchmarkRequiresAllComponents(t *testing.T) {
	// Seed everything except AGG
	var seeds []seedPrice
	for _, component := range benchmarkComponents {
		if component.Ticker == "AGG" {
			continue
		}
		seeds = append(seeds,
			seedPrice{ticker: component.Ticker, date: "2025-01-02", close: 100},
			seedPrice{ticker: component.Ticker, date: "2025-01-03", close: 101},
		)
	}
	provider := NewProvider(newTestHistoryDB(t, seeds), zerolog.Nop())

	_, err := provider.CompositeBenchmarkReturns("2025-01-06")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "AGG")
}

func TestSectorBenchmarkReturns(t *testing.T) {
	provider := NewProvider(seedBenchmark(t), zerolog.Nop())

	series, err := provider.SectorBenchmarkReturns("Tech", "2025-01-06")
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.InDelta(t, 0.10, series[0].Return, 1e-9)
	assert.InDelta(t, -0.10, series[1].Return, 1e-9)
}

func TestSectorBenchmarkReturnsUnknownSector(t *testing.T) {
	provider := NewProvider(seedBenchmark(t), zerolog.Nop())

	_, err := provider.SectorBenchmarkReturns("Utilities", "2025-01-06")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no benchmark component")
}

func TestBenchmarkSectorsCoverage(t *testing.T) {
	sectors := BenchmarkSectors()
	assert.Len(t, sectors, 6)
	assert.Contains(t, sectors, "Tech")
	assert.Contains(t, sectors, "US Bonds")

	ticker, ok := BenchmarkTicker("Canada Broad")
	require.True(t, ok)
	assert.Equal(t, "XIC.TO", ticker)
}

package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/quantfolio/internal/domain"
	"github.com/aristath/quantfolio/internal/modules/universe"
)

func testUniverse() []universe.Security {
	return []universe.Security{
		{
			Ticker: "AAPL",
			Sector: "Technology",
			Fundamentals: domain.Fundamentals{
				ROE: domain.Float64Ptr(1.2),
				PE:  domain.Float64Ptr(30),
			},
		},
		{
			Ticker: "MSFT",
			Sector: "Technology",
			Fundamentals: domain.Fundamentals{
				ROE: domain.Float64Ptr(0.4),
				PE:  domain.Float64Ptr(35),
			},
		},
		{
			Ticker: "NVDA",
			Sector: "Technology",
			Fundamentals: domain.Fundamentals{
				ROE: domain.Float64Ptr(0.9),
			},
		},
		{
			Ticker: "NEE",
			Sector: "Utilities",
			Fundamentals: domain.Fundamentals{
				ROE: domain.Float64Ptr(0.1),
				PE:  domain.Float64Ptr(18),
			},
		},
	}
}

func TestBuildReferences_SectorGrouping(t *testing.T) {
	refs := BuildReferences(testUniverse(), 2, "2025-01-06")

	require.Contains(t, refs.Sectors, "Technology")
	assert.NotContains(t, refs.Sectors, "Utilities", "single-member sector stays below min size")

	tech := refs.Sectors["Technology"]
	assert.ElementsMatch(t, []float64{1.2, 0.4, 0.9}, tech[MetricROE])
	assert.ElementsMatch(t, []float64{30, 35}, tech[MetricPE], "missing metric must not pad the distribution")
}

func TestBuildReferences_AllPoolIncludesSmallSectors(t *testing.T) {
	refs := BuildReferences(testUniverse(), 2, "2025-01-06")

	assert.ElementsMatch(t, []float64{1.2, 0.4, 0.9, 0.1}, refs.All[MetricROE])
	assert.ElementsMatch(t, []float64{30, 35, 18}, refs.All[MetricPE])
	assert.Equal(t, "2025-01-06", refs.BuiltDate)
}

func TestReferences_ForSectorFallback(t *testing.T) {
	refs := BuildReferences(testUniverse(), 2, "2025-01-06")

	tech := refs.ForSector("Technology")
	assert.ElementsMatch(t, []float64{1.2, 0.4, 0.9}, tech[MetricROE])

	utilities := refs.ForSector("Utilities")
	assert.ElementsMatch(t, refs.All[MetricROE], utilities[MetricROE], "small sector falls back to the all-sector pool")

	unknown := refs.ForSector("Basic Materials")
	assert.ElementsMatch(t, refs.All[MetricROE], unknown[MetricROE])
}

func TestBuildReferences_MinSizeOne(t *testing.T) {
	refs := BuildReferences(testUniverse(), 1, "2025-01-06")

	assert.Contains(t, refs.Sectors, "Utilities")
	assert.ElementsMatch(t, []float64{0.1}, refs.Sectors["Utilities"][MetricROE])
}

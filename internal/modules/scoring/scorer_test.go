package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/quantfolio/internal/domain"
	"github.com/aristath/quantfolio/internal/modules/universe"
)

// scorerRefs gives hand-checkable distributions: six evenly spaced
// peers per metric, shared between the sector table and the all pool.
func scorerRefs() *References {
	dist := Distribution{
		MetricROE: {0.10, 0.12, 0.14, 0.16, 0.18, 0.20},
		MetricPE:  {10, 15, 20, 25, 30, 35},
	}
	return &References{
		BuiltDate: "2025-01-06",
		Sectors:   map[string]Distribution{"Technology": dist},
		All:       dist,
	}
}

func TestScoreSecurity_PercentilesAndZScores(t *testing.T) {
	sec := universe.Security{
		Ticker: "AAPL",
		Name:   "Apple Inc.",
		Sector: "Technology",
		Fundamentals: domain.Fundamentals{
			MarketCap: domain.Float64Ptr(3.4e12),
			ROE:       domain.Float64Ptr(0.17),
			PE:        domain.Float64Ptr(12),
		},
	}

	record := ScoreSecurity(sec, scorerRefs())

	assert.Equal(t, "AAPL", record.Ticker)
	assert.Equal(t, "Apple Inc.", record.Name)
	assert.Equal(t, "Technology", record.Sector)
	require.NotNil(t, record.MarketCap)
	assert.Equal(t, 3.4e12, *record.MarketCap)

	// ROE 0.17 beats 4 of 6 peers
	roe := record.Metrics[MetricROE]
	require.NotNil(t, roe.Raw)
	assert.InDelta(t, 66.67, roe.Percentile, 0.005)
	assert.InDelta(t, 0.586, roe.ZScore, 0.0005)

	// PE 12 beats only 1 of 6 raw, inverted because cheaper is better
	pe := record.Metrics[MetricPE]
	require.NotNil(t, pe.Raw)
	assert.InDelta(t, 83.33, pe.Percentile, 0.005)
	assert.InDelta(t, 1.23, pe.ZScore, 0.0005, "z-score sign flips for lower-is-better metrics")
}

func TestScoreSecurity_MissingMetricIsNeutral(t *testing.T) {
	sec := universe.Security{
		Ticker: "MSFT",
		Sector: "Technology",
		Fundamentals: domain.Fundamentals{
			ROE: domain.Float64Ptr(0.17),
		},
	}

	record := ScoreSecurity(sec, scorerRefs())

	pb := record.Metrics[MetricPB]
	assert.Nil(t, pb.Raw)
	assert.Equal(t, 50.0, pb.Percentile)
	assert.Equal(t, 0.0, pb.ZScore)
}

func TestScoreSecurity_UnknownSectorFallsBackToAllPool(t *testing.T) {
	sec := universe.Security{
		Ticker: "NEE",
		Sector: "Utilities",
		Fundamentals: domain.Fundamentals{
			ROE: domain.Float64Ptr(0.17),
		},
	}

	record := ScoreSecurity(sec, scorerRefs())

	assert.InDelta(t, 66.67, record.Metrics[MetricROE].Percentile, 0.005)
}

func TestScoreSecurity_DerivedFCFYield(t *testing.T) {
	refs := &References{
		BuiltDate: "2025-01-06",
		Sectors: map[string]Distribution{
			"Technology": {MetricFCFYield: {2, 4, 6, 8}},
		},
		All: Distribution{MetricFCFYield: {2, 4, 6, 8}},
	}
	sec := universe.Security{
		Ticker: "ORCL",
		Sector: "Technology",
		Fundamentals: domain.Fundamentals{
			MarketCap:    domain.Float64Ptr(1e11),
			FreeCashflow: domain.Float64Ptr(5e9),
		},
	}

	record := ScoreSecurity(sec, refs)

	fcf := record.Metrics[MetricFCFYield]
	require.NotNil(t, fcf.Raw)
	assert.InDelta(t, 5.0, *fcf.Raw, 1e-9)
	assert.InDelta(t, 50.0, fcf.Percentile, 0.005)
}

func TestScoreSecurity_FlagsAttached(t *testing.T) {
	sec := universe.Security{
		Ticker: "BADCO",
		Sector: "Technology",
		Fundamentals: domain.Fundamentals{
			ROE: domain.Float64Ptr(-0.9),
		},
	}

	record := ScoreSecurity(sec, scorerRefs())

	assert.Contains(t, record.Flags, "return on equity below -50%")
}

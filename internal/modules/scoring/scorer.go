package scoring

import (
	"github.com/aristath/quantfolio/internal/modules/universe"
	"github.com/aristath/quantfolio/pkg/formulas"
)

// MetricScore is one metric's scored output: the raw input, its
// sector-relative percentile, and its cross-sector z-score.
type MetricScore struct {
	Raw        *float64 `json:"raw,omitempty"`
	Percentile float64  `json:"percentile"`
	ZScore     float64  `json:"zscore"`
}

// FactorScoreRecord carries one security's scored metrics. Raw inputs
// ride along for audit and display; they are never discarded.
type FactorScoreRecord struct {
	Ticker    string                 `json:"ticker"`
	Name      string                 `json:"name,omitempty"`
	Sector    string                 `json:"sector"`
	MarketCap *float64               `json:"market_cap,omitempty"`
	Metrics   map[string]MetricScore `json:"metrics"`
	Flags     []string               `json:"flags,omitempty"`
}

// ScoreSecurity ranks one security's fundamentals against its sector
// reference (percentiles) and the all-sector pool (z-scores). Z-scores
// for lower-is-better metrics are negated so that higher means better
// uniformly across the record.
func ScoreSecurity(sec universe.Security, refs *References) FactorScoreRecord {
	sectorDist := refs.ForSector(sec.Sector)

	record := FactorScoreRecord{
		Ticker:    sec.Ticker,
		Name:      sec.Name,
		Sector:    sec.Sector,
		MarketCap: sec.Fundamentals.MarketCap,
		Metrics:   make(map[string]MetricScore, len(Metrics)),
	}

	for _, metric := range Metrics {
		raw := MetricValue(sec.Fundamentals, metric)

		value := formulas.Missing()
		if raw != nil {
			value = *raw
		}

		score := MetricScore{
			Raw:        raw,
			Percentile: formulas.PercentileRank(value, sectorDist[metric], LowerIsBetter(metric)),
			ZScore:     formulas.ZScore(value, refs.All[metric]),
		}
		if raw != nil && LowerIsBetter(metric) {
			score.ZScore = -score.ZScore
		}

		record.Metrics[metric] = score
	}

	record.Flags = RedFlags(sec.Fundamentals, sec.Sector)

	return record
}

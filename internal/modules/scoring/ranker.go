package scoring

import "sort"

// RankedSecurity is one ranked row: the scored record plus its
// style-weighted composite.
type RankedSecurity struct {
	FactorScoreRecord
	Composite float64 `json:"composite"`
}

// RankByStyle applies a style profile to scored securities: optional
// exact-match sector filter, hard threshold gate, weighted composite,
// descending sort with ticker ascending as the deterministic tie-break.
// Fewer than topN survivors is a normal outcome, never padded.
func RankByStyle(scored []FactorScoreRecord, styleName, sectorFilter string, topN int) ([]RankedSecurity, error) {
	profile, err := Profile(styleName)
	if err != nil {
		return nil, err
	}

	var ranked []RankedSecurity
	for _, record := range scored {
		if sectorFilter != "" && record.Sector != sectorFilter {
			continue
		}
		if !passesThresholds(record, profile) {
			continue
		}
		ranked = append(ranked, RankedSecurity{
			FactorScoreRecord: record,
			Composite:         compositeScore(record, profile),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Composite != ranked[j].Composite {
			return ranked[i].Composite > ranked[j].Composite
		}
		return ranked[i].Ticker < ranked[j].Ticker
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return ranked, nil
}

// passesThresholds applies the gate: every thresholded metric must meet
// its minimum percentile. A missing metric counts as percentile 0, so
// absence can never pass a gate.
func passesThresholds(record FactorScoreRecord, profile StyleProfile) bool {
	for metric, min := range profile.Thresholds {
		score, ok := record.Metrics[metric]
		if !ok || score.Raw == nil {
			return false
		}
		if score.Percentile < min {
			return false
		}
	}
	return true
}

// compositeScore computes the weighted percentile sum over the style's
// metrics only. Missing metrics contribute the neutral 50 here; the
// threshold gate, not the composite, is where absence is punished.
func compositeScore(record FactorScoreRecord, profile StyleProfile) float64 {
	var composite float64
	for metric, weight := range profile.Weights {
		percentile := 50.0
		if score, ok := record.Metrics[metric]; ok && score.Raw != nil {
			percentile = score.Percentile
		}
		composite += percentile * weight
	}
	return composite
}

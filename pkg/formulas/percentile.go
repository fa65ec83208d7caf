package formulas

import "math"

// Missing marks a metric value as unavailable. Reference slices may carry it;
// it is filtered out before any counting, never treated as zero.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether a value is the missing marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// PercentileRank computes the percentage of reference values strictly less
// than value, on a 0-100 scale.
//
// Rules:
//   - strict less-than: ties do not count in the value's favor
//   - no interpolation
//   - lowerIsBetter inverts the result (100 - rank)
//   - missing value, or an empty reference set after dropping missing
//     entries, scores the neutral midpoint 50.0
//
// The result is rounded to 2 decimals.
func PercentileRank(value float64, refs []float64, lowerIsBetter bool) float64 {
	if IsMissing(value) {
		return 50.0
	}

	n := 0
	below := 0
	for _, r := range refs {
		if IsMissing(r) {
			continue
		}
		n++
		if r < value {
			below++
		}
	}

	if n == 0 {
		return 50.0
	}

	pct := float64(below) / float64(n) * 100

	if lowerIsBetter {
		pct = 100 - pct
	}

	return round2(pct)
}

// ZScore computes (value - mean) / populationStd against a reference set,
// rounded to 3 decimals.
//
// Degenerate inputs score 0.0: missing value, fewer than 2 usable reference
// entries, or a constant reference distribution (zero std). Legitimate
// outliers are not clamped.
func ZScore(value float64, refs []float64) float64 {
	if IsMissing(value) {
		return 0.0
	}

	clean := make([]float64, 0, len(refs))
	for _, r := range refs {
		if IsMissing(r) {
			continue
		}
		clean = append(clean, r)
	}

	if len(clean) < 2 {
		return 0.0
	}

	std := PopStdDev(clean)
	if std == 0 {
		return 0.0
	}

	return round3((value - Mean(clean)) / std)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

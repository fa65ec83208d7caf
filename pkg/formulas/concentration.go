package formulas

// HHI calculates the Herfindahl-Hirschman concentration index over a set of
// market values, scaled to basis points.
//
// Formula: Σ (value_i / total)² × 10000
//
// A single position scores exactly 10000; N equal positions score 10000/N.
// Non-positive total (empty or liquidated book) scores 0.
func HHI(marketValues []float64) float64 {
	var total float64
	for _, v := range marketValues {
		total += v
	}

	if total <= 0 {
		return 0.0
	}

	var hhi float64
	for _, v := range marketValues {
		w := v / total
		hhi += w * w
	}

	return hhi * 10000
}

// DV01 estimates the dollar value of a one basis point rate move across
// duration-bearing exposures: Σ market_value × duration × 0.0001.
//
// Length mismatch between the two slices scores 0 (caller bug, guarded
// rather than panicking on index).
func DV01(marketValues, durations []float64) float64 {
	if len(marketValues) != len(durations) {
		return 0.0
	}

	var dv01 float64
	for i := range marketValues {
		dv01 += marketValues[i] * durations[i] * 0.0001
	}

	return dv01
}

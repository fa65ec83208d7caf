package formulas

import (
	"math"
	"sort"
)

// Percentile returns the pct-th percentile (0-100) of data using linear
// interpolation between the two nearest order statistics, the convention
// used by the stored risk metrics.
//
// gonum's stat.Quantile offers the Empirical and Hyndman-Fan C1 estimators;
// neither matches this interpolation, so it is computed directly here.
func Percentile(data []float64, pct float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	if len(data) == 1 {
		return data[0]
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 100 {
		return sorted[len(sorted)-1]
	}

	pos := pct / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}

	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// VaR95 is the 5th percentile of a return distribution: the one-period loss
// threshold at 95% confidence. Negative values are losses.
func VaR95(returns []float64) float64 {
	if len(returns) == 0 {
		return 0.0
	}
	return Percentile(returns, 5)
}

// ExpectedShortfall is the mean of all returns at or below the VaR threshold
// (conditional tail average). More negative means a worse tail.
func ExpectedShortfall(returns []float64, varThreshold float64) float64 {
	if len(returns) == 0 {
		return 0.0
	}

	var sum float64
	count := 0
	for _, r := range returns {
		if r <= varThreshold {
			sum += r
			count++
		}
	}

	if count == 0 {
		// Interpolated threshold below the sample minimum; fall back to it.
		return varThreshold
	}

	return sum / float64(count)
}

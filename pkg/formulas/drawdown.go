package formulas

// MaxDrawdown calculates the maximum peak-to-trough decline over the
// cumulative growth path implied by a daily return series.
//
// The path is the running product of (1+r); drawdown at each step is
// (path - runningMax) / runningMax, with the running max taken over the
// path itself. The result is a fraction ≤ 0, exactly 0 for a path that
// never falls below a prior peak.
func MaxDrawdown(returns []float64) float64 {
	if len(returns) == 0 {
		return 0.0
	}

	cumulative := 1 + returns[0]
	runningMax := cumulative
	maxDrawdown := 0.0

	for _, r := range returns[1:] {
		cumulative *= (1 + r)
		if cumulative > runningMax {
			runningMax = cumulative
		}
		if runningMax != 0 {
			drawdown := (cumulative - runningMax) / runningMax
			if drawdown < maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	return maxDrawdown
}

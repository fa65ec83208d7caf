package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// PopStdDev calculates the population standard deviation (no Bessel correction).
// Used for z-scores against full reference distributions.
func PopStdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.PopStdDev(data, nil)
}

// Variance calculates the sample variance of a slice of float64 values
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.Variance(data, nil)
}

// Covariance calculates the sample covariance between two datasets
func Covariance(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return 0
	}
	return stat.Covariance(x, y, nil)
}

// AnnualizedVolatility calculates annualized volatility from daily returns
// Formula: Std Dev of Daily Returns × sqrt(252 trading days)
func AnnualizedVolatility(dailyReturns []float64) float64 {
	if len(dailyReturns) == 0 {
		return 0
	}

	stdDev := StdDev(dailyReturns)
	return stdDev * math.Sqrt(252)
}

// CumulativeReturn compounds periodic returns into a total return.
// Formula: (1+r1)*(1+r2)*...*(1+rN) - 1
func CumulativeReturn(returns []float64) float64 {
	cumulative := 1.0
	for _, r := range returns {
		cumulative *= (1 + r)
	}
	return cumulative - 1
}

// AnnualizedReturn calculates the compound annual growth rate from daily returns.
//
// Formula: (1 + cumulative_return)^(252/N) - 1
//
// The exponent uses the actual number of observed periods, so short histories
// produce aggressive annualization. Callers that need to damp this should
// truncate or gate on series length themselves.
func AnnualizedReturn(returns []float64) float64 {
	if len(returns) == 0 {
		return 0.0
	}

	cumulative := 1.0 + CumulativeReturn(returns)
	if cumulative <= 0 {
		// Total wipeout (or worse); annualization is undefined, report -100%.
		return -1.0
	}

	exponent := 252.0 / float64(len(returns))
	return math.Pow(cumulative, exponent) - 1
}

// CompoundReturn compounds daily returns over a window using log returns.
// Formula: exp(Σ ln(1+r)) - 1
//
// Numerically equivalent to the cumulative product but stable over long
// windows. Returns at or below -100% make the log undefined; those entries
// are skipped.
func CompoundReturn(returns []float64) float64 {
	if len(returns) == 0 {
		return 0.0
	}

	var logSum float64
	for _, r := range returns {
		if 1+r <= 0 {
			continue
		}
		logSum += math.Log(1 + r)
	}

	return math.Exp(logSum) - 1
}

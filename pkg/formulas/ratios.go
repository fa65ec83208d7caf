package formulas

import "math"

// SharpeRatio calculates the annualized Sharpe ratio from daily returns.
//
// Formula: (annualized_return - riskFreeRate) / annualized_volatility
//
// riskFreeRate is annual, as a decimal. Zero volatility (constant or empty
// series) scores 0, a guard rather than an error.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	vol := AnnualizedVolatility(returns)
	if vol == 0 {
		return 0.0
	}
	return (AnnualizedReturn(returns) - riskFreeRate) / vol
}

// Beta measures portfolio sensitivity to benchmark moves over aligned daily
// return series: cov(portfolio, benchmark) / var(benchmark).
//
// Zero benchmark variance (flat benchmark) scores 0.
func Beta(portfolio, benchmark []float64) float64 {
	if len(portfolio) != len(benchmark) || len(portfolio) < 2 {
		return 0.0
	}

	benchVar := Variance(benchmark)
	if benchVar == 0 {
		return 0.0
	}

	return Covariance(portfolio, benchmark) / benchVar
}

// ActiveReturns is the element-wise difference of two aligned daily return
// series (portfolio minus benchmark).
func ActiveReturns(portfolio, benchmark []float64) []float64 {
	if len(portfolio) != len(benchmark) {
		return nil
	}

	active := make([]float64, len(portfolio))
	for i := range portfolio {
		active[i] = portfolio[i] - benchmark[i]
	}
	return active
}

// TrackingError is the annualized standard deviation of active returns:
// std(portfolio - benchmark) * sqrt(252).
func TrackingError(activeReturns []float64) float64 {
	if len(activeReturns) == 0 {
		return 0.0
	}
	return StdDev(activeReturns) * math.Sqrt(252)
}

// InformationRatio is annualized active return divided by tracking error.
// Zero tracking error scores 0.
func InformationRatio(annualizedActiveReturn, trackingError float64) float64 {
	if trackingError == 0 {
		return 0.0
	}
	return annualizedActiveReturn / trackingError
}

package scoring

import "github.com/aristath/quantfolio/internal/domain"

// Metric keys for the ten tracked fundamentals. Raw units follow the
// upstream feed: ratios as ratios, margins/growth/ROE as fractions,
// debt/equity as a percentage, market cap and free cashflow in dollars.
const (
	MetricROE            = "roe"
	MetricProfitMargin   = "profit_margin"
	MetricROIC           = "roic"
	MetricRevenueGrowth  = "revenue_growth"
	MetricEarningsGrowth = "earnings_growth"
	MetricPE             = "pe"
	MetricPB             = "pb"
	MetricFCFYield       = "fcf_yield"
	MetricDebtEquity     = "debt_equity"
	MetricCurrentRatio   = "current_ratio"
)

// Metrics lists all tracked metric keys in canonical order.
var Metrics = []string{
	MetricROE,
	MetricProfitMargin,
	MetricROIC,
	MetricRevenueGrowth,
	MetricEarningsGrowth,
	MetricPE,
	MetricPB,
	MetricFCFYield,
	MetricDebtEquity,
	MetricCurrentRatio,
}

// lowerIsBetter marks metrics where a smaller raw value ranks higher
// (cheaper or less levered wins).
var lowerIsBetter = map[string]bool{
	MetricPE:         true,
	MetricPB:         true,
	MetricDebtEquity: true,
}

// LowerIsBetter reports whether percentiles for a metric are inverted.
func LowerIsBetter(metric string) bool {
	return lowerIsBetter[metric]
}

// MetricValue extracts one metric's raw value from fundamentals.
// FCF yield is always derived, never read directly. Nil means the
// metric is unavailable upstream.
func MetricValue(f domain.Fundamentals, metric string) *float64 {
	switch metric {
	case MetricROE:
		return f.ROE
	case MetricProfitMargin:
		return f.ProfitMargin
	case MetricROIC:
		return f.ROIC
	case MetricRevenueGrowth:
		return f.RevenueGrowth
	case MetricEarningsGrowth:
		return f.EarningsGrowth
	case MetricPE:
		return f.PE
	case MetricPB:
		return f.PB
	case MetricFCFYield:
		return f.FCFYield()
	case MetricDebtEquity:
		return f.DebtEquity
	case MetricCurrentRatio:
		return f.CurrentRatio
	}
	return nil
}

// HasFundamentals reports whether at least one tracked metric is present.
// Securities with no fundamentals at all are excluded from scoring
// rather than scored all-neutral.
func HasFundamentals(f domain.Fundamentals) bool {
	for _, metric := range Metrics {
		if MetricValue(f, metric) != nil {
			return true
		}
	}
	return false
}

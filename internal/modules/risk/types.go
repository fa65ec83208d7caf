package risk

// Metric categories as stored and displayed.
const (
	CategoryMarketRisk    = "Market Risk"
	CategoryRelativeRisk  = "Relative Risk"
	CategoryConcentration = "Concentration"
	CategoryDuration      = "Duration"
)

// Metric names as stored in risk_metrics.
const (
	MetricVaR95             = "VaR_95"
	MetricExpectedShortfall = "Expected_Shortfall"
	MetricVolatilityAnn     = "Volatility_Ann"
	MetricSharpeRatio       = "Sharpe_Ratio"
	MetricMaxDrawdown       = "Max_Drawdown"
	MetricBeta              = "Beta"
	MetricTrackingError     = "Tracking_Error"
	MetricInformationRatio  = "Information_Ratio"
	MetricActiveReturn      = "Active_Return"
	MetricHHISecurity       = "HHI_Security"
	MetricHHISector         = "HHI_Sector"
	MetricDV01              = "DV01"
)

// MetricRecord is one stored risk metric. Return-based values are
// fractions (0.15 = 15%), HHI is in index points, DV01 in dollars.
// LookbackDays is the realized observation count for return-based
// metrics and nil for snapshot-based ones. Level is derived on read,
// never stored.
type MetricRecord struct {
	AsOfDate     string  `json:"asof_date"`
	MetricName   string  `json:"metric_name"`
	Value        float64 `json:"value"`
	Category     string  `json:"category"`
	LookbackDays *int    `json:"lookback_days,omitempty"`
	RunID        string  `json:"run_id,omitempty"`
	Level        string  `json:"level,omitempty"`
}

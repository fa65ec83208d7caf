package attribution

// Attribution scopes. TOTAL covers the whole book; EQUITY and
// FIXED_INCOME cover fixed sector subsets with weights renormalized
// within the subset.
const (
	ScopeTotal       = "TOTAL"
	ScopeEquity      = "EQUITY"
	ScopeFixedIncome = "FIXED_INCOME"
)

// ScopeNames lists the computed scopes in storage order.
func ScopeNames() []string {
	return []string{ScopeTotal, ScopeEquity, ScopeFixedIncome}
}

var (
	equityScopeSectors      = []string{"Tech", "Financials", "US Broad", "Canada Broad"}
	fixedIncomeScopeSectors = []string{"CAN Bonds", "US Bonds"}
)

// EffectRow is one sector's Brinson-Fachler decomposition for one
// as-of date, scope, and lookback window. Returns and effects are
// fractions.
type EffectRow struct {
	AsOfDate             string  `json:"asof_date"`
	AttributionType      string  `json:"attribution_type"`
	Sector               string  `json:"sector"`
	AllocationEffect     float64 `json:"allocation_effect"`
	SelectionEffect      float64 `json:"selection_effect"`
	InteractionEffect    float64 `json:"interaction_effect"`
	PortfolioWeight      float64 `json:"portfolio_weight"`
	BenchmarkWeight      float64 `json:"benchmark_weight"`
	PortfolioReturn      float64 `json:"portfolio_return"`
	BenchmarkReturn      float64 `json:"benchmark_return"`
	TotalBenchmarkReturn float64 `json:"total_benchmark_return"`
	LookbackDays         int     `json:"lookback_days"`
	RunID                string  `json:"run_id,omitempty"`
}

// TotalEffect sums the three effects for one sector row.
func (r EffectRow) TotalEffect() float64 {
	return r.AllocationEffect + r.SelectionEffect + r.InteractionEffect
}

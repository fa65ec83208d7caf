// Package domain provides core domain models and types.
package domain

// Dates are trade dates in YYYY-MM-DD form throughout the analytics core.
// Sources deduplicate by date; missing days are simply absent, never
// zero-filled.

// ReturnPoint is one daily simple return observation
type ReturnPoint struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Return float64 `json:"return"`
}

// ReturnSeries is a date-ascending daily return series for one entity
// (portfolio or benchmark composite)
type ReturnSeries []ReturnPoint

// Returns extracts the raw return values in date order
func (s ReturnSeries) Returns() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Return
	}
	return values
}

// UpTo returns the subseries with dates at or before the as-of date
func (s ReturnSeries) UpTo(asofDate string) ReturnSeries {
	out := make(ReturnSeries, 0, len(s))
	for _, p := range s {
		if p.Date <= asofDate {
			out = append(out, p)
		}
	}
	return out
}

// Since returns the subseries with dates strictly after the cutoff date
func (s ReturnSeries) Since(cutoffDate string) ReturnSeries {
	out := make(ReturnSeries, 0, len(s))
	for _, p := range s {
		if p.Date > cutoffDate {
			out = append(out, p)
		}
	}
	return out
}

// InnerJoin aligns two series on date, dropping dates present in only one.
// Both inputs must be date-ascending; the result preserves that order.
func (s ReturnSeries) InnerJoin(other ReturnSeries) (left, right []float64) {
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i].Date < other[j].Date:
			i++
		case s[i].Date > other[j].Date:
			j++
		default:
			left = append(left, s[i].Return)
			right = append(right, other[j].Return)
			i++
			j++
		}
	}
	return left, right
}

// Holding is one position in a snapshot
type Holding struct {
	Ticker      string   `json:"ticker"`
	Sector      string   `json:"sector"`
	MarketValue float64  `json:"market_value"`
	Duration    *float64 `json:"duration,omitempty"` // modified duration, bond sleeves only
}

// HoldingsSnapshot is one portfolio's composition as of one date
type HoldingsSnapshot struct {
	AsOfDate string    `json:"asof_date"`
	Holdings []Holding `json:"holdings"`
}

// TotalValue sums market values across the snapshot
func (h HoldingsSnapshot) TotalValue() float64 {
	var total float64
	for _, holding := range h.Holdings {
		total += holding.MarketValue
	}
	return total
}

// MarketValues extracts per-position market values in snapshot order
func (h HoldingsSnapshot) MarketValues() []float64 {
	values := make([]float64, len(h.Holdings))
	for i, holding := range h.Holdings {
		values[i] = holding.MarketValue
	}
	return values
}

// SectorValues aggregates market value by sector
func (h HoldingsSnapshot) SectorValues() map[string]float64 {
	sectors := make(map[string]float64)
	for _, holding := range h.Holdings {
		sectors[holding.Sector] += holding.MarketValue
	}
	return sectors
}

// SectorReturn is one sector's weight and return for one side (portfolio or
// benchmark) over one date or period. Weights within one side sum to 1.0.
type SectorReturn struct {
	Sector string  `json:"sector"`
	Weight float64 `json:"weight"`
	Return float64 `json:"return"`
}

// Fundamentals holds one security's metric inputs for factor scoring.
// Nil means the metric is unavailable upstream; that is a policy signal
// (exclude vs neutral), never silently zero.
type Fundamentals struct {
	MarketCap      *float64 `json:"market_cap,omitempty"`
	ROE            *float64 `json:"roe,omitempty"`
	ProfitMargin   *float64 `json:"profit_margin,omitempty"`
	ROIC           *float64 `json:"roic,omitempty"`
	RevenueGrowth  *float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth *float64 `json:"earnings_growth,omitempty"`
	PE             *float64 `json:"pe,omitempty"`
	PB             *float64 `json:"pb,omitempty"`
	FreeCashflow   *float64 `json:"free_cashflow,omitempty"`
	DebtEquity     *float64 `json:"debt_equity,omitempty"`
	CurrentRatio   *float64 `json:"current_ratio,omitempty"`
}

// FCFYield derives free-cash-flow yield as a percentage of market cap.
// Non-positive or missing market cap yields 0 (guard, not an error);
// missing free cashflow yields nil.
func (f Fundamentals) FCFYield() *float64 {
	if f.FreeCashflow == nil {
		return nil
	}
	if f.MarketCap == nil || *f.MarketCap <= 0 {
		zero := 0.0
		return &zero
	}
	y := *f.FreeCashflow / *f.MarketCap * 100
	return &y
}

// Float64Ptr is a convenience for building optional metric values
func Float64Ptr(v float64) *float64 {
	return &v
}

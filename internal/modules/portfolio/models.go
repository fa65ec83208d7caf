package portfolio

import "github.com/aristath/quantfolio/internal/domain"

// Position is one row of the positions table.
type Position struct {
	Ticker      string   `json:"ticker"`
	Sector      string   `json:"sector"`
	MarketValue float64  `json:"market_value"`
	Duration    *float64 `json:"duration,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// Holding converts the row to its domain representation.
func (p Position) Holding() domain.Holding {
	return domain.Holding{
		Ticker:      p.Ticker,
		Sector:      p.Sector,
		MarketValue: p.MarketValue,
		Duration:    p.Duration,
	}
}

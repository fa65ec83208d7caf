package universe

import "github.com/aristath/quantfolio/internal/domain"

// Security is one row of the screener universe.
type Security struct {
	Ticker       string              `json:"ticker"`
	Name         string              `json:"name,omitempty"`
	Sector       string              `json:"sector"`
	Fundamentals domain.Fundamentals `json:"fundamentals"`
	UpdatedAt    string              `json:"updated_at,omitempty"`
}

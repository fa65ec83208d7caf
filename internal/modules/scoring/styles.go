package scoring

import (
	"fmt"
	"strings"
)

// Style names for the four fixed profiles.
const (
	StyleGrowth   = "growth"
	StyleValue    = "value"
	StyleQuality  = "quality"
	StyleBalanced = "balanced"
)

// StyleProfile is one named investment-style weighting. Weights apply
// to sector-relative percentiles; thresholds are minimum percentiles a
// security must clear on every listed metric to be ranked at all.
type StyleProfile struct {
	Name       string             `json:"name"`
	Weights    map[string]float64 `json:"weights"`
	Thresholds map[string]float64 `json:"min_thresholds"`
}

// The four fixed profiles. These are static configuration, never
// constructed at runtime.
var styleProfiles = map[string]StyleProfile{
	StyleGrowth: {
		Name: StyleGrowth,
		Weights: map[string]float64{
			MetricRevenueGrowth:  0.35,
			MetricEarningsGrowth: 0.25,
			MetricProfitMargin:   0.20,
			MetricROE:            0.20,
		},
		Thresholds: map[string]float64{
			MetricRevenueGrowth: 50,
		},
	},
	StyleValue: {
		Name: StyleValue,
		Weights: map[string]float64{
			MetricPE:           0.30,
			MetricPB:           0.25,
			MetricFCFYield:     0.25,
			MetricROE:          0.10,
			MetricCurrentRatio: 0.10,
		},
		Thresholds: map[string]float64{
			MetricROE:          40,
			MetricPE:           40,
			MetricCurrentRatio: 30,
		},
	},
	StyleQuality: {
		Name: StyleQuality,
		Weights: map[string]float64{
			MetricROE:          0.35,
			MetricROIC:         0.25,
			MetricProfitMargin: 0.25,
			MetricDebtEquity:   0.15,
		},
		Thresholds: map[string]float64{
			MetricROE:          70,
			MetricDebtEquity:   50,
			MetricProfitMargin: 60,
		},
	},
	StyleBalanced: {
		Name: StyleBalanced,
		Weights: map[string]float64{
			MetricRevenueGrowth: 0.20,
			MetricROE:           0.20,
			MetricPE:            0.20,
			MetricProfitMargin:  0.20,
			MetricFCFYield:      0.10,
			MetricDebtEquity:    0.10,
		},
		Thresholds: map[string]float64{
			MetricRevenueGrowth: 40,
			MetricROE:           40,
		},
	},
}

// StyleNames lists the valid style names in display order.
func StyleNames() []string {
	return []string{StyleGrowth, StyleValue, StyleQuality, StyleBalanced}
}

// Profile resolves a style name. Unknown names are a caller error,
// rejected before any scoring work.
func Profile(name string) (StyleProfile, error) {
	profile, ok := styleProfiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return StyleProfile{}, fmt.Errorf("unknown style %q (valid: %s)", name, strings.Join(StyleNames(), ", "))
	}
	return profile, nil
}

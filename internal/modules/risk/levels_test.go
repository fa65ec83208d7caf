package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		metric   string
		value    float64
		expected string
	}{
		// Stored as fractions, banded at percent scale
		{MetricVaR95, -0.005, LevelOK},
		{MetricVaR95, -0.015, LevelWatch},
		{MetricVaR95, -0.030, LevelAlert},

		{MetricExpectedShortfall, -0.010, LevelOK},
		{MetricExpectedShortfall, -0.020, LevelWatch},
		{MetricExpectedShortfall, -0.040, LevelAlert},

		{MetricVolatilityAnn, 0.10, LevelOK},
		{MetricVolatilityAnn, 0.18, LevelWatch},
		{MetricVolatilityAnn, 0.30, LevelAlert},

		{MetricMaxDrawdown, -0.05, LevelOK},
		{MetricMaxDrawdown, -0.15, LevelWatch},
		{MetricMaxDrawdown, -0.25, LevelAlert},

		{MetricTrackingError, 0.03, LevelOK},
		{MetricTrackingError, 0.07, LevelWatch},
		{MetricTrackingError, 0.12, LevelAlert},

		{MetricActiveReturn, 0.03, LevelOK},
		{MetricActiveReturn, 0.00, LevelWatch},
		{MetricActiveReturn, -0.03, LevelAlert},

		// Banded on the raw value
		{MetricBeta, 1.0, LevelOK},
		{MetricBeta, 0.7, LevelWatch},
		{MetricBeta, 1.4, LevelWatch},
		{MetricBeta, 0.3, LevelAlert},
		{MetricBeta, 1.8, LevelAlert},

		{MetricSharpeRatio, 1.5, LevelOK},
		{MetricSharpeRatio, 0.5, LevelWatch},
		{MetricSharpeRatio, -0.2, LevelAlert},

		{MetricInformationRatio, 0.6, LevelOK},
		{MetricInformationRatio, 0.2, LevelWatch},
		{MetricInformationRatio, -0.1, LevelAlert},

		{MetricHHISecurity, 1200, LevelOK},
		{MetricHHISecurity, 2000, LevelWatch},
		{MetricHHISecurity, 3000, LevelAlert},

		{MetricHHISector, 2000, LevelOK},
		{MetricHHISector, 3000, LevelWatch},
		{MetricHHISector, 4500, LevelAlert},

		// No banding policy
		{MetricDV01, 37.5, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Level(tt.metric, tt.value), "%s = %v", tt.metric, tt.value)
	}
}

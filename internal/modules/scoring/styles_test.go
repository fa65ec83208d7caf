package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_WeightsSumToOne(t *testing.T) {
	for _, name := range StyleNames() {
		profile, err := Profile(name)
		require.NoError(t, err)

		var sum float64
		for _, w := range profile.Weights {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "style %s weights must sum to 1", name)
	}
}

func TestProfile_GrowthDefinition(t *testing.T) {
	profile, err := Profile(StyleGrowth)
	require.NoError(t, err)

	assert.Equal(t, 0.35, profile.Weights[MetricRevenueGrowth])
	assert.Equal(t, 0.25, profile.Weights[MetricEarningsGrowth])
	assert.Equal(t, 0.20, profile.Weights[MetricProfitMargin])
	assert.Equal(t, 0.20, profile.Weights[MetricROE])
	assert.Len(t, profile.Weights, 4)

	assert.Equal(t, map[string]float64{MetricRevenueGrowth: 50}, profile.Thresholds)
}

func TestProfile_QualityDefinition(t *testing.T) {
	profile, err := Profile(StyleQuality)
	require.NoError(t, err)

	assert.Equal(t, 0.35, profile.Weights[MetricROE])
	assert.Equal(t, 0.25, profile.Weights[MetricROIC])
	assert.Equal(t, 0.25, profile.Weights[MetricProfitMargin])
	assert.Equal(t, 0.15, profile.Weights[MetricDebtEquity])

	assert.Equal(t, 70.0, profile.Thresholds[MetricROE])
	assert.Equal(t, 50.0, profile.Thresholds[MetricDebtEquity])
	assert.Equal(t, 60.0, profile.Thresholds[MetricProfitMargin])
}

func TestProfile_NormalizesName(t *testing.T) {
	profile, err := Profile("  Value ")
	require.NoError(t, err)
	assert.Equal(t, StyleValue, profile.Name)
}

func TestProfile_UnknownStyle(t *testing.T) {
	_, err := Profile("momentum")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown style")
	assert.Contains(t, err.Error(), "growth, value, quality, balanced")
}

func TestStyleNames_Order(t *testing.T) {
	assert.Equal(t, []string{"growth", "value", "quality", "balanced"}, StyleNames())
}

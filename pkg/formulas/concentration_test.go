package formulas

import (
	"math"
	"testing"
)

func TestHHI(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{
			name:     "empty book",
			values:   []float64{},
			expected: 0.0,
		},
		{
			name:     "zero total",
			values:   []float64{0, 0, 0},
			expected: 0.0,
		},
		{
			name:     "single holding is maximum concentration",
			values:   []float64{50000},
			expected: 10000.0,
		},
		{
			name:     "four equal holdings of 25k",
			values:   []float64{25000, 25000, 25000, 25000},
			expected: 2500.0,
		},
		{
			name:     "uneven book",
			values:   []float64{60000, 40000},
			expected: 5200.0, // 0.6² + 0.4² = 0.52
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HHI(tt.values)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("HHI() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestHHIEqualWeightLaw(t *testing.T) {
	// N equal holdings concentrate to exactly 10000/N
	for n := 1; n <= 10; n++ {
		values := make([]float64, n)
		for i := range values {
			values[i] = 12500
		}
		want := 10000.0 / float64(n)
		if result := HHI(values); math.Abs(result-want) > 1e-9 {
			t.Errorf("HHI(%d equal) = %v, want %v", n, result, want)
		}
	}
}

func TestDV01(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		durations []float64
		expected  float64
	}{
		{
			name:      "empty",
			values:    []float64{},
			durations: []float64{},
			expected:  0.0,
		},
		{
			name:      "single ten year sleeve",
			values:    []float64{1000000},
			durations: []float64{9.0},
			expected:  900.0,
		},
		{
			name:      "mixed bond sleeves",
			values:    []float64{500000, 300000},
			durations: []float64{9.0, 4.5},
			expected:  585.0, // 450 + 135
		},
		{
			name:      "length mismatch guards to zero",
			values:    []float64{100, 200},
			durations: []float64{9.0},
			expected:  0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DV01(tt.values, tt.durations)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("DV01() = %v, want %v", result, tt.expected)
			}
		})
	}
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single value",
			input:    "Technology",
			expected: []string{"Technology"},
		},
		{
			name:     "two values",
			input:    "Technology, Healthcare",
			expected: []string{"Technology", "Healthcare"},
		},
		{
			name:     "varied spacing",
			input:    "Technology,  Healthcare , Industrials",
			expected: []string{"Technology", "Healthcare", "Industrials"},
		},
		{
			name:     "no spaces after comma",
			input:    "Technology,Healthcare",
			expected: []string{"Technology", "Healthcare"},
		},
		{
			name:     "trailing comma",
			input:    "Technology,",
			expected: []string{"Technology"},
		},
		{
			name:     "leading comma",
			input:    ",Healthcare",
			expected: []string{"Healthcare"},
		},
		{
			name:     "only spaces",
			input:    "   ",
			expected: nil,
		},
		{
			name:     "comma only",
			input:    ",",
			expected: nil,
		},
		{
			name:     "multiple empty segments",
			input:    ",,Technology,,Healthcare,,",
			expected: []string{"Technology", "Healthcare"},
		},
		{
			name:     "internal spaces preserved",
			input:    "Financial Services, Consumer Cyclical",
			expected: []string{"Financial Services", "Consumer Cyclical"},
		},
		{
			name:     "balanced screener default set",
			input:    "Technology,Healthcare,Financial Services,Consumer Cyclical,Industrials",
			expected: []string{"Technology", "Healthcare", "Financial Services", "Consumer Cyclical", "Industrials"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseCSV(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseCSV_PreservesInput(t *testing.T) {
	input := "Technology, Healthcare"
	originalInput := input

	_ = ParseCSV(input)

	assert.Equal(t, originalInput, input, "input should not be modified")
}

package choropleth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name     string
		values   ValueMap
		expected Summary
	}{
		{
			name:     "empty",
			values:   ValueMap{},
			expected: Summary{},
		},
		{
			name:     "all missing",
			values:   ValueMap{"a": nil, "b": &nan},
			expected: Summary{},
		},
		{
			name:   "single value",
			values: ValueMap{"a": fp(10)},
			expected: Summary{
				Count: 1, Min: 10, Max: 10, Mean: 10, Median: 10, P25: 10, P75: 10,
			},
		},
		{
			name:   "odd count",
			values: ValueMap{"a": fp(1), "b": fp(2), "c": fp(3), "d": fp(4), "e": fp(5)},
			expected: Summary{
				Count: 5, Min: 1, Max: 5, Mean: 3, Median: 3, P25: 2, P75: 4,
			},
		},
		{
			name:   "missing entries excluded from statistics",
			values: ValueMap{"a": fp(2), "b": nil, "c": fp(4)},
			expected: Summary{
				Count: 2, Min: 2, Max: 4, Mean: 3, Median: 3, P25: 2.5, P75: 3.5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Summarize(tt.values))
		})
	}
}

func TestPercentile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}

	tests := []struct {
		name     string
		p        float64
		expected float64
	}{
		{name: "p0", p: 0, expected: 10},
		{name: "p100", p: 100, expected: 40},
		{name: "median interpolates", p: 50, expected: 25},
		{name: "p25", p: 25, expected: 17.5},
		{name: "clamped below", p: -5, expected: 10},
		{name: "clamped above", p: 150, expected: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Percentile(sorted, tt.p), 1e-9)
		})
	}

	assert.Equal(t, 0.0, Percentile(nil, 50))
}

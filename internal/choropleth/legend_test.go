package choropleth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLegend(t *testing.T) {
	r := Range{Min: 0, Max: 100}

	tests := []struct {
		name  string
		rng   Range
		steps int
		count int
	}{
		{name: "five steps", rng: r, steps: 5, count: 5},
		{name: "single step", rng: r, steps: 1, count: 1},
		{name: "steps below one clamp to one", rng: r, steps: 0, count: 1},
		{name: "more steps than colors", rng: r, steps: 12, count: 12},
		{name: "degenerate range", rng: Range{Min: 5, Max: 5}, steps: 4, count: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			legend := BuildLegend(tt.rng, tt.steps, testPalette)
			require.Len(t, legend, tt.count)

			// Contiguous, no gaps or overlaps, spanning [Min, Max].
			assert.Equal(t, tt.rng.Min, legend[0].Lower)
			assert.Equal(t, tt.rng.Max, legend[len(legend)-1].Upper)
			for i := 1; i < len(legend); i++ {
				assert.Equal(t, legend[i-1].Upper, legend[i].Lower)
			}
		})
	}
}

func TestBuildLegend_Colors(t *testing.T) {
	legend := BuildLegend(Range{Min: 0, Max: 100}, 5, testPalette)

	assert.Equal(t, testPalette[0], legend[0].Color)
	assert.Equal(t, testPalette[len(testPalette)-1], legend[len(legend)-1].Color)

	// Color index must be non-decreasing across intervals.
	indexOf := func(c RGB) int {
		for i, pc := range testPalette {
			if pc == c {
				return i
			}
		}
		return -1
	}
	prev := -1
	for _, iv := range legend {
		idx := indexOf(iv.Color)
		require.GreaterOrEqual(t, idx, 0)
		assert.GreaterOrEqual(t, idx, prev)
		prev = idx
	}
}

func TestBuildLegend_SingleStepUsesFirstColor(t *testing.T) {
	legend := BuildLegend(Range{Min: 10, Max: 20}, 1, testPalette)
	require.Len(t, legend, 1)
	assert.Equal(t, Interval{Lower: 10, Upper: 20, Color: testPalette[0]}, legend[0])
}

func TestBuildLegend_Restartable(t *testing.T) {
	legend := BuildLegend(Range{Min: 0, Max: 7}, 3, testPalette)

	// Iterating twice yields identical results; BuildLegend twice as well.
	again := BuildLegend(Range{Min: 0, Max: 7}, 3, testPalette)
	assert.Equal(t, legend, again)
}

func TestBuildLegend_EmptyPalette(t *testing.T) {
	assert.Nil(t, BuildLegend(Range{Min: 0, Max: 1}, 3, nil))
}

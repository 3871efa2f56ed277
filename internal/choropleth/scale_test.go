package choropleth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = Palette{
	{R: 255, G: 245, B: 240},
	{R: 252, G: 187, B: 161},
	{R: 251, G: 106, B: 74},
	{R: 203, G: 24, B: 29},
	{R: 103, G: 0, B: 13},
}

func TestColorFor(t *testing.T) {
	r := Range{Min: 0, Max: 100}
	nan := math.NaN()

	tests := []struct {
		name     string
		value    *float64
		rng      Range
		expected RGB
	}{
		{name: "nil value", value: nil, rng: r, expected: NoData},
		{name: "NaN value", value: &nan, rng: r, expected: NoData},
		{name: "minimum maps to first color", value: fp(0), rng: r, expected: testPalette[0]},
		{name: "maximum maps to last color", value: fp(100), rng: r, expected: testPalette[4]},
		{name: "just below a boundary", value: fp(24.9), rng: r, expected: testPalette[0]},
		{name: "boundary value", value: fp(25), rng: r, expected: testPalette[1]},
		{name: "midpoint", value: fp(50), rng: r, expected: testPalette[2]},
		{name: "below range clamps low", value: fp(-10), rng: r, expected: testPalette[0]},
		{name: "above range clamps high", value: fp(200), rng: r, expected: testPalette[4]},
		{name: "degenerate range uses middle entry", value: fp(99), rng: Range{Min: 5, Max: 5}, expected: testPalette[2]},
		{name: "empty-map range uses middle entry", value: fp(0), rng: Range{}, expected: testPalette[2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ColorFor(tt.value, tt.rng, testPalette))
		})
	}
}

func TestColorFor_MonotonicInValue(t *testing.T) {
	r := Range{Min: 0, Max: 100}
	indexOf := func(c RGB) int {
		for i, pc := range testPalette {
			if pc == c {
				return i
			}
		}
		return -1
	}

	prev := -1
	for v := 0.0; v <= 100; v += 0.5 {
		idx := indexOf(ColorFor(fp(v), r, testPalette))
		require.GreaterOrEqual(t, idx, 0)
		assert.GreaterOrEqual(t, idx, prev, "palette index regressed at v=%v", v)
		prev = idx
	}
}

func TestColorFor_SentinelStableAcrossInputs(t *testing.T) {
	ranges := []Range{{0, 100}, {-1, 1}, {5, 5}, {}}
	for _, r := range ranges {
		assert.Equal(t, NoData, ColorFor(nil, r, testPalette))
	}
	assert.Equal(t, NoData, ColorFor(nil, Range{0, 1}, Palette{{R: 1}}))
}

func TestColorFor_SingleColorPalette(t *testing.T) {
	p := Palette{{R: 9, G: 9, B: 9}}
	assert.Equal(t, p[0], ColorFor(fp(50), Range{Min: 0, Max: 100}, p))
	assert.Equal(t, p[0], ColorFor(fp(3), Range{Min: 3, Max: 3}, p))
}

func TestColorsFor(t *testing.T) {
	values := ValueMap{"a": fp(0), "b": fp(100), "c": nil}
	out := ColorsFor(values, Range{Min: 0, Max: 100}, testPalette)

	assert.Len(t, out, 3)
	assert.Equal(t, testPalette[0], out["a"])
	assert.Equal(t, testPalette[4], out["b"])
	assert.Equal(t, NoData, out["c"])
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected RGB
		wantErr  bool
	}{
		{name: "with hash", in: "#cb181d", expected: RGB{R: 0xcb, G: 0x18, B: 0x1d}},
		{name: "without hash", in: "fff5f0", expected: RGB{R: 0xff, G: 0xf5, B: 0xf0}},
		{name: "too short", in: "#fff", wantErr: true},
		{name: "not hex", in: "#zzzzzz", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, "#"+trimHash(tt.in), got.Hex())
		})
	}
}

func trimHash(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette([]string{"#fff5f0", "#cb181d"})
	assert.NoError(t, err)
	assert.Len(t, p, 2)

	_, err = ParsePalette(nil)
	assert.Error(t, err)

	_, err = ParsePalette([]string{"#fff5f0", "bad"})
	assert.Error(t, err)
}

package choropleth

import "math"

// ColorFor classifies a value against a range and palette. Missing values
// (nil, NaN, infinite) map to the NoData sentinel. A degenerate range maps
// every value to the palette's middle entry. Otherwise the value is
// normalized linearly into [0,1] and scaled to a palette index, clamped at
// both ends to absorb floating-point overshoot at the boundaries.
func ColorFor(v *float64, r Range, p Palette) RGB {
	if len(p) == 0 {
		return NoData
	}
	if !valid(v) {
		return NoData
	}
	if r.Degenerate() {
		return p[len(p)/2]
	}
	t := (*v - r.Min) / r.Span()
	idx := int(math.Floor(t * float64(len(p)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx > len(p)-1 {
		idx = len(p) - 1
	}
	return p[idx]
}

// ColorsFor classifies every entry of a ValueMap in one pass, including
// regions whose value is missing (they receive the NoData sentinel).
func ColorsFor(values ValueMap, r Range, p Palette) map[string]RGB {
	out := make(map[string]RGB, len(values))
	for id, v := range values {
		out[id] = ColorFor(v, r, p)
	}
	return out
}

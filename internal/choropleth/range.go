package choropleth

// Range is the closed value interval covered by a dataset.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Degenerate reports whether the range has zero width. A zero-width range at
// zero is how an empty dataset presents; callers must treat it as "no data",
// not as a real observation of zero.
func (r Range) Degenerate() bool {
	return r.Min == r.Max
}

// Span returns the width of the range.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// ExtractRange scans a ValueMap and returns the min and max of its usable
// entries. Nil, NaN, and infinite values are skipped. When no usable entry
// remains the result is {0, 0}.
func ExtractRange(values ValueMap) Range {
	var r Range
	found := false
	for _, v := range values {
		if !valid(v) {
			continue
		}
		if !found {
			r.Min, r.Max = *v, *v
			found = true
			continue
		}
		if *v < r.Min {
			r.Min = *v
		}
		if *v > r.Max {
			r.Max = *v
		}
	}
	return r
}

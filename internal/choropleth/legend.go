package choropleth

import "math"

// Interval is one legend bucket: a contiguous slice of the range tagged with
// a representative palette color. Bounds are kept unrounded; display rounding
// belongs to the rendering layer.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Color RGB     `json:"color"`
}

// BuildLegend partitions a range into steps equal-width contiguous intervals.
// Interval i takes the palette color at clamp(floor(i/(steps-1)*(len-1)));
// the final interval always receives the palette's last entry so the legend
// top matches the scale top. A steps value below 1 is treated as 1.
func BuildLegend(r Range, steps int, p Palette) []Interval {
	if steps < 1 {
		steps = 1
	}
	if len(p) == 0 {
		return nil
	}
	if steps == 1 {
		return []Interval{{Lower: r.Min, Upper: r.Max, Color: p[0]}}
	}

	width := r.Span() / float64(steps)
	intervals := make([]Interval, 0, steps)
	for i := 0; i < steps; i++ {
		idx := int(math.Floor(float64(i) / float64(steps-1) * float64(len(p)-1)))
		if idx > len(p)-1 {
			idx = len(p) - 1
		}
		if i == steps-1 {
			idx = len(p) - 1
		}
		iv := Interval{
			Lower: r.Min + float64(i)*width,
			Upper: r.Min + float64(i+1)*width,
			Color: p[idx],
		}
		if i == steps-1 {
			// Close the last bucket exactly on the range max.
			iv.Upper = r.Max
		}
		intervals = append(intervals, iv)
	}
	return intervals
}

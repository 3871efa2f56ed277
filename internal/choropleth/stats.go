package choropleth

import "sort"

// Summary holds descriptive statistics for a dataset's usable entries.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
}

// Summarize computes descriptive statistics over a ValueMap, skipping missing
// entries. An empty or all-missing map yields a zero Summary with Count 0.
func Summarize(values ValueMap) Summary {
	xs := make([]float64, 0, len(values))
	var sum float64
	for _, v := range values {
		if !valid(v) {
			continue
		}
		xs = append(xs, *v)
		sum += *v
	}
	if len(xs) == 0 {
		return Summary{}
	}
	sort.Float64s(xs)
	return Summary{
		Count:  len(xs),
		Min:    xs[0],
		Max:    xs[len(xs)-1],
		Mean:   sum / float64(len(xs)),
		Median: Percentile(xs, 50),
		P25:    Percentile(xs, 25),
		P75:    Percentile(xs, 75),
	}
}

// Percentile returns the p-th percentile (0-100) of an ascending-sorted
// slice using linear interpolation between closest ranks. Empty input
// returns 0; p is clamped to [0, 100].
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(rank)
	frac := rank - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

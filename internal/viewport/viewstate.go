package viewport

// Transition describes how the camera should animate to a new view.
type Transition struct {
	DurationMS int    `json:"duration_ms"`
	Easing     string `json:"easing"`
}

// ViewState holds the camera parameters consumed by the map renderer.
type ViewState struct {
	Longitude  float64    `json:"longitude"`
	Latitude   float64    `json:"latitude"`
	Zoom       float64    `json:"zoom"`
	Pitch      float64    `json:"pitch"`
	Bearing    float64    `json:"bearing"`
	Transition Transition `json:"transition"`
}

// EasingFlyTo is the only easing kind the dashboard uses; navigation is
// visually consistent because every synthesized view carries it.
const EasingFlyTo = "fly-to"

// DefaultTransitionMS is the fixed camera animation duration.
const DefaultTransitionMS = 1500

// zoomTier maps a maximum degree span to the zoom used for spans below it.
type zoomTier struct {
	MaxSpan float64
	Zoom    float64
}

// zoomTiers is a monotonic step function: smaller spans get strictly higher
// zooms. The breakpoints are empirically chosen product constants; retune
// the table, keep the shape.
var zoomTiers = []zoomTier{
	{MaxSpan: 0.5, Zoom: 10},
	{MaxSpan: 1, Zoom: 9},
	{MaxSpan: 2, Zoom: 8},
	{MaxSpan: 4, Zoom: 7},
	{MaxSpan: 8, Zoom: 6},
}

// floorZoom applies to spans at or beyond the last tier breakpoint.
const floorZoom = 5

// Default camera: continental US overview.
var defaultView = ViewState{
	Longitude:  -98.5795,
	Latitude:   39.8283,
	Zoom:       4,
	Transition: Transition{DurationMS: DefaultTransitionMS, Easing: EasingFlyTo},
}

// Options adjusts view synthesis.
type Options struct {
	// PaddingFactor inflates the box span before zoom selection so the
	// region does not touch the viewport edges. Values <= 0 mean 1.
	PaddingFactor float64
}

// ZoomForSpan selects a zoom level for a degree span via the tier table.
func ZoomForSpan(span float64) float64 {
	for _, tier := range zoomTiers {
		if span < tier.MaxSpan {
			return tier.Zoom
		}
	}
	return floorZoom
}

// ViewStateFor converts a bounding box into camera parameters. A nil box
// yields the fixed national overview. Degenerate (zero-area) boxes are
// valid: they center on the point and take the tightest zoom tier.
func ViewStateFor(box *BBox, opts Options) ViewState {
	if box == nil {
		return defaultView
	}
	padding := opts.PaddingFactor
	if padding <= 0 {
		padding = 1
	}
	span := box.LatSpan()
	if ls := box.LngSpan(); ls > span {
		span = ls
	}
	lng, lat := box.Center()
	return ViewState{
		Longitude:  lng,
		Latitude:   lat,
		Zoom:       ZoomForSpan(span * padding),
		Pitch:      0,
		Bearing:    0,
		Transition: Transition{DurationMS: DefaultTransitionMS, Easing: EasingFlyTo},
	}
}

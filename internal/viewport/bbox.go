package viewport

// BBox is a geographic bounding box in degrees.
type BBox struct {
	MinLng float64 `json:"min_lng"`
	MinLat float64 `json:"min_lat"`
	MaxLng float64 `json:"max_lng"`
	MaxLat float64 `json:"max_lat"`
}

// LngSpan returns the longitude extent of the box.
func (b BBox) LngSpan() float64 { return b.MaxLng - b.MinLng }

// LatSpan returns the latitude extent of the box.
func (b BBox) LatSpan() float64 { return b.MaxLat - b.MinLat }

// Center returns the box midpoint as (lng, lat).
func (b BBox) Center() (float64, float64) {
	return (b.MinLng + b.MaxLng) / 2, (b.MinLat + b.MaxLat) / 2
}

// BoundingBoxFor finds the first feature matching regionID and returns the
// box enclosing every coordinate reachable from its geometry. The second
// return is false when no feature matches or the match has no coordinates.
func BoundingBoxFor(fc *FeatureCollection, regionID string) (BBox, bool) {
	if fc == nil {
		return BBox{}, false
	}
	for i := range fc.Features {
		f := &fc.Features[i]
		if !f.MatchesID(regionID) {
			continue
		}
		acc := newAccumulator()
		acc.walkGeometry(f.Geometry)
		return acc.box, acc.seen
	}
	return BBox{}, false
}

// accumulator tracks running min/max over visited coordinate pairs.
type accumulator struct {
	box  BBox
	seen bool
}

func newAccumulator() *accumulator {
	return &accumulator{}
}

func (a *accumulator) walkGeometry(g Geometry) {
	for _, sub := range g.Geometries {
		a.walkGeometry(sub)
	}
	if g.Coordinates != nil {
		a.walk(g.Coordinates)
	}
}

// walk descends nested coordinate arrays until it reaches numeric
// [lng, lat] leaf pairs. Depth is bounded by the geometry's structural
// depth, so plain recursion suffices.
func (a *accumulator) walk(node any) {
	arr, ok := node.([]any)
	if !ok || len(arr) == 0 {
		return
	}
	if lng, lat, ok := asPosition(arr); ok {
		a.visit(lng, lat)
		return
	}
	for _, child := range arr {
		a.walk(child)
	}
}

// asPosition interprets an array as a GeoJSON position if its first two
// elements are numbers. Extra elements (altitude) are ignored.
func asPosition(arr []any) (lng, lat float64, ok bool) {
	if len(arr) < 2 {
		return 0, 0, false
	}
	lng, ok1 := arr[0].(float64)
	lat, ok2 := arr[1].(float64)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return lng, lat, true
}

func (a *accumulator) visit(lng, lat float64) {
	if !a.seen {
		a.box = BBox{MinLng: lng, MinLat: lat, MaxLng: lng, MaxLat: lat}
		a.seen = true
		return
	}
	if lng < a.box.MinLng {
		a.box.MinLng = lng
	}
	if lng > a.box.MaxLng {
		a.box.MaxLng = lng
	}
	if lat < a.box.MinLat {
		a.box.MinLat = lat
	}
	if lat > a.box.MaxLat {
		a.box.MaxLat = lat
	}
}

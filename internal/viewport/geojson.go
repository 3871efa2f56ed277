// Package viewport computes map camera parameters from region geometry:
// bounding boxes from GeoJSON-shaped coordinate structures and view states
// from bounding boxes.
package viewport

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

// FeatureCollection is a minimally-typed GeoJSON feature collection.
// Coordinates stay untyped so the bounding-box walk handles Polygon,
// MultiPolygon, and any ring depth uniformly.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one named region with its geometry.
type Feature struct {
	Type       string         `json:"type"`
	ID         any            `json:"id,omitempty"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// Geometry holds a GeoJSON geometry with raw coordinates. For a
// GeometryCollection the Geometries field is populated instead.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates any        `json:"coordinates,omitempty"`
	Geometries  []Geometry `json:"geometries,omitempty"`
}

// idProperties are the property keys checked, in order, when matching a
// feature against a region identifier. TIGER exports use GEOID; hand-built
// collections commonly use id or name.
var idProperties = []string{"GEOID", "geoid", "id", "NAME", "name"}

// MatchesID reports whether the feature identifies as regionID, either via
// its top-level id or one of the conventional identifying properties.
// Matching is case-insensitive on name properties.
func (f *Feature) MatchesID(regionID string) bool {
	if s, ok := f.ID.(string); ok && s == regionID {
		return true
	}
	for _, key := range idProperties {
		v, ok := f.Properties[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s == regionID || strings.EqualFold(s, regionID) {
			return true
		}
	}
	return false
}

// ParseFeatureCollection decodes GeoJSON bytes.
func ParseFeatureCollection(data []byte) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrap(err, "viewport: parse feature collection")
	}
	if fc.Type != "FeatureCollection" {
		return nil, eris.Errorf("viewport: expected FeatureCollection, got %q", fc.Type)
	}
	return &fc, nil
}

package boundary

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/regionviz/regionviz/internal/viewport"
)

// Index provides region lookup over a loaded feature collection, keyed by
// the conventional identifying properties (GEOID, id, NAME).
type Index struct {
	fc   *viewport.FeatureCollection
	byID map[string]int
}

// NewIndex builds a lookup index over a feature collection. Later features
// never displace earlier ones under the same key, matching the
// first-match-wins contract of the bounding-box lookup.
func NewIndex(fc *viewport.FeatureCollection) *Index {
	idx := &Index{fc: fc, byID: make(map[string]int)}
	for i := range fc.Features {
		for _, key := range []string{"GEOID", "geoid", "id", "NAME", "name"} {
			v, ok := fc.Features[i].Properties[key]
			if !ok {
				continue
			}
			s, ok := v.(string)
			if !ok || s == "" {
				continue
			}
			k := strings.ToLower(s)
			if _, exists := idx.byID[k]; !exists {
				idx.byID[k] = i
			}
		}
	}
	return idx
}

// LoadGeoJSON reads and indexes a GeoJSON file from disk.
func LoadGeoJSON(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: read %s", path)
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON parses and indexes GeoJSON bytes.
func ParseGeoJSON(data []byte) (*Index, error) {
	fc, err := viewport.ParseFeatureCollection(data)
	if err != nil {
		return nil, err
	}
	return NewIndex(fc), nil
}

// Collection returns the underlying feature collection.
func (idx *Index) Collection() *viewport.FeatureCollection {
	return idx.fc
}

// Lookup finds a feature by region identifier, case-insensitively.
func (idx *Index) Lookup(regionID string) (*viewport.Feature, bool) {
	i, ok := idx.byID[strings.ToLower(regionID)]
	if !ok {
		return nil, false
	}
	return &idx.fc.Features[i], true
}

// Len returns the number of indexed features.
func (idx *Index) Len() int {
	return len(idx.fc.Features)
}

package boundary

import (
	"encoding/json"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	geojson "github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// ShapefileOptions names the attribute fields used to identify regions.
// Zero values take the TIGER defaults.
type ShapefileOptions struct {
	IDField   string // default GEOID
	NameField string // default NAME
}

// ConvertShapefile reads an ESRI shapefile and converts it to a GeoJSON
// feature collection with GEOID and NAME properties per feature. Returns
// the encoded collection and the number of features kept.
func ConvertShapefile(path string, opts ShapefileOptions) ([]byte, int, error) {
	idField := opts.IDField
	if idField == "" {
		idField = "GEOID"
	}
	nameField := opts.NameField
	if nameField == "" {
		nameField = "NAME"
	}

	reader, err := shp.Open(path)
	if err != nil {
		return nil, 0, eris.Wrapf(err, "boundary: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	idIdx := fieldIndex(reader, idField)
	nameIdx := fieldIndex(reader, nameField)
	if idIdx < 0 {
		return nil, 0, eris.Errorf("boundary: shapefile field %q not found", idField)
	}

	log := zap.L().With(zap.String("component", "boundary.tiger"), zap.String("shapefile", path))

	fc := &geojson.FeatureCollection{}
	skipped := 0
	for reader.Next() {
		_, shape := reader.Shape()
		if shape == nil {
			skipped++
			continue
		}

		id := strings.TrimSpace(reader.Attribute(idIdx))
		if id == "" {
			skipped++
			continue
		}

		g := shapeToGeometry(shape)
		if g == nil {
			skipped++
			continue
		}

		props := map[string]any{"GEOID": id}
		if nameIdx >= 0 {
			props["NAME"] = strings.TrimSpace(reader.Attribute(nameIdx))
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         id,
			Geometry:   g,
			Properties: props,
		})
	}

	if len(fc.Features) == 0 {
		return nil, 0, eris.Errorf("boundary: no usable features in %s", path)
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return nil, 0, eris.Wrap(err, "boundary: encode feature collection")
	}

	log.Info("shapefile converted",
		zap.Int("features", len(fc.Features)),
		zap.Int("skipped", skipped),
	)
	return data, len(fc.Features), nil
}

// fieldIndex returns the index of a named field in the shapefile, or -1 if
// not found. DBF field names are NUL-padded.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}

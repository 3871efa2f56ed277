package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regionviz/regionviz/internal/boundary"
	"github.com/regionviz/regionviz/internal/choropleth"
	"github.com/regionviz/regionviz/internal/dataset"
	"github.com/regionviz/regionviz/internal/format"
	"github.com/regionviz/regionviz/internal/store"
)

const testCatalog = `
palettes:
  reds:
    - "#fee5d9"
    - "#fcae91"
    - "#fb6a4a"
    - "#de2d26"
    - "#a50f15"
datasets:
  - id: median_income
    name: Median Household Income
    file: income.xlsx
    unit: currency
    palette: reds
`

const testBoundaries = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"GEOID": "06075", "NAME": "San Francisco"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[-123, 37], [-122, 37], [-122, 38], [-123, 38], [-123, 37]]]
      }
    }
  ]
}`

func testValues() choropleth.ValueMap {
	lo, mid, hi := 10.0, 50.0, 90.0
	return choropleth.ValueMap{
		"06075": &lo,
		"06001": &mid,
		"06013": &hi,
		"06041": nil,
	}
}

func newTestServer(t *testing.T) (http.Handler, store.Store) {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	_, err = st.SaveDataset(context.Background(), dataset.Dataset{
		ID:          "median_income",
		Name:        "Median Household Income",
		Unit:        format.KindCurrency,
		PaletteName: "reds",
		LegendSteps: 5,
		Values:      testValues(),
	})
	require.NoError(t, err)

	cat, err := dataset.ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)

	idx, err := boundary.ParseGeoJSON([]byte(testBoundaries))
	require.NoError(t, err)

	_, handler := New(Options{Store: st, Catalog: cat, Boundaries: idx})
	return handler, st
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t)
	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListDatasets(t *testing.T) {
	h, _ := newTestServer(t)
	rec := get(t, h, "/api/datasets")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Datasets []store.DatasetInfo `json:"datasets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Datasets, 1)
	assert.Equal(t, "median_income", body.Datasets[0].DatasetID)
	assert.Equal(t, 4, body.Datasets[0].Regions)
}

func TestStyle(t *testing.T) {
	h, _ := newTestServer(t)
	rec := get(t, h, "/api/datasets/median_income/style")
	require.Equal(t, http.StatusOK, rec.Code)

	var style Style
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &style))

	assert.Equal(t, "median_income", style.DatasetID)
	assert.Equal(t, format.KindCurrency, style.Unit)
	assert.Equal(t, choropleth.Range{Min: 10, Max: 90}, style.Range)
	assert.Equal(t, "#808080", style.NoDataColor)

	// Range endpoints take the palette endpoints; missing regions the
	// no-data color.
	assert.Equal(t, "#fee5d9", style.Colors["06075"])
	assert.Equal(t, "#a50f15", style.Colors["06013"])
	assert.Equal(t, "#808080", style.Colors["06041"])

	require.Len(t, style.Legend, 5)
	assert.Equal(t, 10.0, style.Legend[0].Lower)
	assert.Equal(t, 90.0, style.Legend[4].Upper)
	assert.Equal(t, "#a50f15", style.Legend[4].Color)
	assert.Equal(t, "$10 – $26", style.Legend[0].Label)

	assert.Equal(t, "$10", style.MinLabel)
	assert.Equal(t, "$90", style.MaxLabel)

	assert.Equal(t, 3, style.Summary.Count)
	assert.Equal(t, 50.0, style.Summary.Median)
}

func TestStyle_StepsOverride(t *testing.T) {
	h, _ := newTestServer(t)
	rec := get(t, h, "/api/datasets/median_income/style?steps=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var style Style
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &style))
	require.Len(t, style.Legend, 3)
	assert.Equal(t, 90.0, style.Legend[2].Upper)

	rec = get(t, h, "/api/datasets/median_income/style?steps=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, h, "/api/datasets/median_income/style?steps=0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStyle_UnknownDataset(t *testing.T) {
	h, _ := newTestServer(t)
	rec := get(t, h, "/api/datasets/nope/style")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestView_Region(t *testing.T) {
	h, _ := newTestServer(t)
	rec := get(t, h, "/api/regions/06075/view")
	require.Equal(t, http.StatusOK, rec.Code)

	var body viewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.False(t, body.Fallback)
	assert.Equal(t, -122.5, body.View.Longitude)
	assert.Equal(t, 37.5, body.View.Latitude)
	assert.Equal(t, 8.0, body.View.Zoom)
	assert.Equal(t, 1500, body.View.Transition.DurationMS)
	assert.Equal(t, "fly-to", body.View.Transition.Easing)
}

func TestView_UnknownRegionFallsBack(t *testing.T) {
	h, _ := newTestServer(t)
	rec := get(t, h, "/api/regions/99999/view")
	require.Equal(t, http.StatusOK, rec.Code)

	var body viewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Fallback)
	assert.Equal(t, -98.5795, body.View.Longitude)
	assert.Equal(t, 39.8283, body.View.Latitude)
	assert.Equal(t, 4.0, body.View.Zoom)
}

func TestBoundaries(t *testing.T) {
	h, st := newTestServer(t)

	err := st.SaveBoundaries(context.Background(), "county", []byte(testBoundaries), 1)
	require.NoError(t, err)

	rec := get(t, h, "/api/boundaries/county")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, testBoundaries, rec.Body.String())

	rec = get(t, h, "/api/boundaries/tract")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, h, "/api/boundaries")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Boundaries []store.BoundaryInfo `json:"boundaries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Boundaries, 1)
	assert.Equal(t, "county", body.Boundaries[0].Name)
	assert.Equal(t, 1, body.Boundaries[0].Features)
}

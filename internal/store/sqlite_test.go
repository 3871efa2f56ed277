package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regionviz/regionviz/internal/choropleth"
	"github.com/regionviz/regionviz/internal/format"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteDatasetRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	id, err := s.SaveDataset(ctx, testDataset())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	rec, err := s.GetDataset(ctx, "median_income")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "Median Household Income", rec.Dataset.Name)
	assert.Equal(t, format.KindCurrency, rec.Dataset.Unit)
	assert.Equal(t, "reds", rec.Dataset.PaletteName)
	assert.Equal(t, 5, rec.Dataset.LegendSteps)
	require.NotNil(t, rec.Dataset.Values["08037"])
	assert.Equal(t, 42.0, *rec.Dataset.Values["08037"])
	assert.Nil(t, rec.Dataset.Values["08059"])
}

func TestSQLiteSaveDataset_ReplacesSnapshot(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	_, err := s.SaveDataset(ctx, testDataset())
	require.NoError(t, err)

	updated := testDataset()
	v := 99.0
	updated.Values = choropleth.ValueMap{"08037": &v}
	secondID, err := s.SaveDataset(ctx, updated)
	require.NoError(t, err)

	rec, err := s.GetDataset(ctx, "median_income")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, secondID, rec.ID)
	assert.Len(t, rec.Dataset.Values, 1)
	assert.Equal(t, 99.0, *rec.Dataset.Values["08037"])

	infos, err := s.ListDatasets(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 1, infos[0].Regions)
}

func TestSQLiteGetDataset_NotFound(t *testing.T) {
	s := newSQLiteStore(t)

	rec, err := s.GetDataset(context.Background(), "absent")
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSQLiteBoundariesRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	geojson := []byte(`{"type":"FeatureCollection","features":[]}`)

	require.NoError(t, s.SaveBoundaries(ctx, "counties", geojson, 3108))

	got, err := s.GetBoundaries(ctx, "counties")
	require.NoError(t, err)
	assert.Equal(t, geojson, got)

	infos, err := s.ListBoundaries(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "counties", infos[0].Name)
	assert.Equal(t, 3108, infos[0].Features)

	got, err = s.GetBoundaries(ctx, "absent")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "duckdb", "", nil)
	assert.Error(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	s, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "o.db"), nil)
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

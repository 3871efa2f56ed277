package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regionviz/regionviz/internal/dataset"
)

func TestReadValues_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.csv")
	require.NoError(t, os.WriteFile(path, []byte("geoid,value\n06075,42.5\n06001,\n"), 0o644))

	values, missing, err := readValues(path, dataset.ReadOptions{SkipRows: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, missing)
	require.NotNil(t, values["06075"])
	assert.Equal(t, 42.5, *values["06075"])
	assert.Nil(t, values["06001"])
}

func TestReadValues_UnsupportedExtension(t *testing.T) {
	_, _, err := readValues("values.parquet", dataset.ReadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dataset file type")
}

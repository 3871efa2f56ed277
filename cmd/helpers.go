package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"

	"github.com/regionviz/regionviz/internal/choropleth"
	"github.com/regionviz/regionviz/internal/dataset"
	"github.com/regionviz/regionviz/internal/format"
	"github.com/regionviz/regionviz/internal/store"
)

// openStore connects to the configured database backend.
func openStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, &store.PoolConfig{
		MaxConns: cfg.Store.MaxConns,
		MinConns: cfg.Store.MinConns,
	})
}

// loadCatalog reads the configured dataset catalog.
func loadCatalog() (*dataset.Catalog, error) {
	return dataset.LoadCatalog(cfg.Catalog.Path)
}

// newFormatter builds the display formatter from config.
func newFormatter() *format.Formatter {
	return format.New(format.Options{
		Tag:            language.AmericanEnglish,
		CurrencySymbol: cfg.Display.CurrencySymbol,
	})
}

// readValues loads a region-id/value file, dispatching on extension.
func readValues(path string, opts dataset.ReadOptions) (choropleth.ValueMap, int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return dataset.ReadXLSX(path, opts)
	case ".csv":
		return dataset.ReadCSV(path, opts)
	default:
		return nil, 0, eris.Errorf("unsupported dataset file type %q", filepath.Ext(path))
	}
}

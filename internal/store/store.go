// Package store persists datasets and boundary collections behind a driver
// interface with Postgres and SQLite implementations.
package store

import (
	"context"
	"time"

	"github.com/regionviz/regionviz/internal/dataset"
)

// DatasetRecord is a stored dataset snapshot.
type DatasetRecord struct {
	ID        string          `json:"id"`
	Dataset   dataset.Dataset `json:"dataset"`
	CreatedAt time.Time       `json:"created_at"`
}

// DatasetInfo is a listing row without the value payload.
type DatasetInfo struct {
	ID        string    `json:"id"`
	DatasetID string    `json:"dataset_id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Regions   int       `json:"regions"`
	CreatedAt time.Time `json:"created_at"`
}

// BoundaryInfo describes a stored boundary collection.
type BoundaryInfo struct {
	Name      string    `json:"name"`
	Features  int       `json:"features"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the persistence interface for the dashboard backend. Datasets
// are immutable snapshots; saving under the same dataset id replaces the
// previous snapshot.
type Store interface {
	SaveDataset(ctx context.Context, ds dataset.Dataset) (string, error)
	GetDataset(ctx context.Context, datasetID string) (*DatasetRecord, error)
	ListDatasets(ctx context.Context) ([]DatasetInfo, error)

	SaveBoundaries(ctx context.Context, name string, geojson []byte, features int) error
	GetBoundaries(ctx context.Context, name string) ([]byte, error)
	ListBoundaries(ctx context.Context) ([]BoundaryInfo, error)

	Migrate(ctx context.Context) error
	Close() error
}

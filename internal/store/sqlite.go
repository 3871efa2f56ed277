package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/regionviz/regionviz/internal/dataset"
	"github.com/regionviz/regionviz/internal/format"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS datasets (
	id         TEXT PRIMARY KEY,
	dataset_id TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	unit       TEXT NOT NULL,
	palette    TEXT NOT NULL,
	steps      INTEGER NOT NULL,
	vals       TEXT NOT NULL,
	regions    INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS boundaries (
	name       TEXT PRIMARY KEY,
	features   INTEGER NOT NULL,
	geojson    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_datasets_dataset_id ON datasets(dataset_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveDataset stores a dataset snapshot, replacing any previous snapshot
// with the same dataset id.
func (s *SQLiteStore) SaveDataset(ctx context.Context, ds dataset.Dataset) (string, error) {
	payload, err := json.Marshal(ds.Values)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal values")
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO datasets (id, dataset_id, name, unit, palette, steps, vals, regions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT (dataset_id) DO UPDATE SET
			id = excluded.id,
			name = excluded.name,
			unit = excluded.unit,
			palette = excluded.palette,
			steps = excluded.steps,
			vals = excluded.vals,
			regions = excluded.regions,
			created_at = excluded.created_at`,
		id, ds.ID, ds.Name, string(ds.Unit), ds.PaletteName, ds.LegendSteps,
		string(payload), len(ds.Values))
	if err != nil {
		return "", eris.Wrapf(err, "sqlite: save dataset %s", ds.ID)
	}
	return id, nil
}

// GetDataset fetches a dataset snapshot by dataset id. Returns nil, nil
// when no snapshot exists.
func (s *SQLiteStore) GetDataset(ctx context.Context, datasetID string) (*DatasetRecord, error) {
	var (
		rec       DatasetRecord
		unit      string
		payload   string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, dataset_id, name, unit, palette, steps, vals, created_at
		FROM datasets WHERE dataset_id = ?`,
		datasetID,
	).Scan(&rec.ID, &rec.Dataset.ID, &rec.Dataset.Name, &unit,
		&rec.Dataset.PaletteName, &rec.Dataset.LegendSteps, &payload, &createdAt)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get dataset %s", datasetID)
	}
	rec.Dataset.Unit = format.Kind(unit)
	if err := json.Unmarshal([]byte(payload), &rec.Dataset.Values); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal values for %s", datasetID)
	}
	if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}

// ListDatasets returns summary rows for all stored datasets.
func (s *SQLiteStore) ListDatasets(ctx context.Context) ([]DatasetInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, dataset_id, name, unit, regions, created_at
		FROM datasets ORDER BY dataset_id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list datasets")
	}
	defer rows.Close() //nolint:errcheck

	var infos []DatasetInfo
	for rows.Next() {
		var (
			info      DatasetInfo
			createdAt string
		)
		if err := rows.Scan(&info.ID, &info.DatasetID, &info.Name, &info.Unit,
			&info.Regions, &createdAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan dataset row")
		}
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			info.CreatedAt = t
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate dataset rows")
	}
	return infos, nil
}

// SaveBoundaries stores a boundary collection under a name, replacing any
// previous collection with that name.
func (s *SQLiteStore) SaveBoundaries(ctx context.Context, name string, geojson []byte, features int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO boundaries (name, features, geojson, created_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT (name) DO UPDATE SET
			features = excluded.features,
			geojson = excluded.geojson,
			created_at = excluded.created_at`,
		name, features, string(geojson))
	return eris.Wrapf(err, "sqlite: save boundaries %s", name)
}

// GetBoundaries fetches a boundary collection by name. Returns nil, nil
// when no collection exists.
func (s *SQLiteStore) GetBoundaries(ctx context.Context, name string) ([]byte, error) {
	var geojson string
	err := s.db.QueryRowContext(ctx, `SELECT geojson FROM boundaries WHERE name = ?`, name).Scan(&geojson)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get boundaries %s", name)
	}
	return []byte(geojson), nil
}

// ListBoundaries returns summary rows for all stored boundary collections.
func (s *SQLiteStore) ListBoundaries(ctx context.Context) ([]BoundaryInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, features, created_at FROM boundaries ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list boundaries")
	}
	defer rows.Close() //nolint:errcheck

	var infos []BoundaryInfo
	for rows.Next() {
		var (
			info      BoundaryInfo
			createdAt string
		)
		if err := rows.Scan(&info.Name, &info.Features, &createdAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan boundary row")
		}
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			info.CreatedAt = t
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate boundary rows")
	}
	return infos, nil
}

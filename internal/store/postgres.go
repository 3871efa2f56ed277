package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/regionviz/regionviz/internal/dataset"
	"github.com/regionviz/regionviz/internal/db"
	"github.com/regionviz/regionviz/internal/format"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests (pgxmock).
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS datasets (
	id         TEXT PRIMARY KEY,
	dataset_id TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	unit       TEXT NOT NULL,
	palette    TEXT NOT NULL,
	steps      INT NOT NULL,
	vals       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS boundaries (
	name       TEXT PRIMARY KEY,
	features   INT NOT NULL,
	geojson    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_datasets_dataset_id ON datasets(dataset_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// SaveDataset stores a dataset snapshot, replacing any previous snapshot
// with the same dataset id. Returns the new snapshot's row id.
func (s *PostgresStore) SaveDataset(ctx context.Context, ds dataset.Dataset) (string, error) {
	payload, err := json.Marshal(ds.Values)
	if err != nil {
		return "", eris.Wrap(err, "postgres: marshal values")
	}

	id := uuid.NewString()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO datasets (id, dataset_id, name, unit, palette, steps, vals, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (dataset_id) DO UPDATE SET
			id = EXCLUDED.id,
			name = EXCLUDED.name,
			unit = EXCLUDED.unit,
			palette = EXCLUDED.palette,
			steps = EXCLUDED.steps,
			vals = EXCLUDED.vals,
			created_at = EXCLUDED.created_at`,
		id, ds.ID, ds.Name, string(ds.Unit), ds.PaletteName, ds.LegendSteps, payload)
	if err != nil {
		return "", eris.Wrapf(err, "postgres: save dataset %s", ds.ID)
	}
	return id, nil
}

// GetDataset fetches a dataset snapshot by dataset id. Returns nil, nil
// when no snapshot exists.
func (s *PostgresStore) GetDataset(ctx context.Context, datasetID string) (*DatasetRecord, error) {
	var (
		rec     DatasetRecord
		unit    string
		payload []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, dataset_id, name, unit, palette, steps, vals, created_at
		FROM datasets WHERE dataset_id = $1`,
		datasetID,
	).Scan(&rec.ID, &rec.Dataset.ID, &rec.Dataset.Name, &unit,
		&rec.Dataset.PaletteName, &rec.Dataset.LegendSteps, &payload, &rec.CreatedAt)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get dataset %s", datasetID)
	}
	rec.Dataset.Unit = format.Kind(unit)
	if err := json.Unmarshal(payload, &rec.Dataset.Values); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal values for %s", datasetID)
	}
	return &rec, nil
}

// ListDatasets returns summary rows for all stored datasets.
func (s *PostgresStore) ListDatasets(ctx context.Context) ([]DatasetInfo, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, dataset_id, name, unit,
		       (SELECT count(*) FROM jsonb_object_keys(vals)) AS regions,
		       created_at
		FROM datasets ORDER BY dataset_id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list datasets")
	}
	defer rows.Close()

	var infos []DatasetInfo
	for rows.Next() {
		var info DatasetInfo
		if err := rows.Scan(&info.ID, &info.DatasetID, &info.Name, &info.Unit,
			&info.Regions, &info.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan dataset row")
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate dataset rows")
	}
	return infos, nil
}

// SaveBoundaries stores a boundary collection under a name, replacing any
// previous collection with that name.
func (s *PostgresStore) SaveBoundaries(ctx context.Context, name string, geojson []byte, features int) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO boundaries (name, features, geojson, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (name) DO UPDATE SET
			features = EXCLUDED.features,
			geojson = EXCLUDED.geojson,
			created_at = EXCLUDED.created_at`,
		name, features, geojson)
	return eris.Wrapf(err, "postgres: save boundaries %s", name)
}

// GetBoundaries fetches a boundary collection by name. Returns nil, nil
// when no collection exists.
func (s *PostgresStore) GetBoundaries(ctx context.Context, name string) ([]byte, error) {
	var geojson []byte
	err := s.pool.QueryRow(ctx, `SELECT geojson FROM boundaries WHERE name = $1`, name).Scan(&geojson)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get boundaries %s", name)
	}
	return geojson, nil
}

// ListBoundaries returns summary rows for all stored boundary collections.
func (s *PostgresStore) ListBoundaries(ctx context.Context) ([]BoundaryInfo, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, features, created_at FROM boundaries ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list boundaries")
	}
	defer rows.Close()

	var infos []BoundaryInfo
	for rows.Next() {
		var info BoundaryInfo
		if err := rows.Scan(&info.Name, &info.Features, &info.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan boundary row")
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate boundary rows")
	}
	return infos, nil
}

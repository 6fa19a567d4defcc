package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const mappingsTable = "_mappings"

// PgxPool is the part of *pgxpool.Pool the postgres store uses.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// postgresMeasureStore maps an index to a schema and a collection to a table
// of (id, body jsonb, created_at) rows. Mappings live in <schema>._mappings.
type postgresMeasureStore struct {
	pool PgxPool

	// tables already created by this process, keyed by sanitized name
	tables sync.Map
}

func NewPostgresMeasureStore(pool PgxPool) MeasureStore {
	return &postgresMeasureStore{pool: pool}
}

func (s *postgresMeasureStore) CreateRecord(ctx context.Context, index, collection string, body map[string]any) error {
	table, err := s.ensureTable(ctx, index, collection)
	if err != nil {
		return err
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	sql := fmt.Sprintf("INSERT INTO %s (id, body) VALUES ($1, $2)", table.Sanitize())
	if _, err := s.pool.Exec(ctx, sql, recordID(body), jsonData); err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

func (s *postgresMeasureStore) BulkCreate(ctx context.Context, index, collection string, records []map[string]any) error {
	table, err := s.ensureTable(ctx, index, collection)
	if err != nil {
		return err
	}
	rows := make([][]any, 0, len(records))
	for _, record := range records {
		jsonData, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		rows = append(rows, []any{recordID(record), jsonData})
	}
	copied, err := s.pool.CopyFrom(ctx, table, []string{"id", "body"}, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to copy records: %w", err)
	}
	if copied != int64(len(rows)) {
		return fmt.Errorf("copied %d of %d records", copied, len(rows))
	}
	return nil
}

func (s *postgresMeasureStore) IndexExists(ctx context.Context, index string) (bool, error) {
	if err := validateLocation(index); err != nil {
		return false, err
	}
	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM information_schema.schemata WHERE schema_name = $1)", index,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check index: %w", err)
	}
	return exists, nil
}

func (s *postgresMeasureStore) CreateIndex(ctx context.Context, index string) error {
	if err := validateLocation(index); err != nil {
		return err
	}
	schema := pgx.Identifier{index}.Sanitize()
	if _, err := s.pool.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	mappings := pgx.Identifier{index, mappingsTable}.Sanitize()
	sql := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	collection text PRIMARY KEY,
	mapping jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`, mappings)
	if _, err := s.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to create mappings table: %w", err)
	}
	return nil
}

func (s *postgresMeasureStore) ListCollections(ctx context.Context, index string) ([]string, error) {
	if err := validateLocation(index); err != nil {
		return nil, err
	}
	var collections []string
	err := s.pool.QueryRow(ctx, `SELECT coalesce(array_agg(table_name::text ORDER BY table_name), '{}')
FROM information_schema.tables
WHERE table_schema = $1 AND table_name <> $2`, index, mappingsTable).Scan(&collections)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return collections, nil
}

func (s *postgresMeasureStore) UpdateMapping(ctx context.Context, index, collection string, mapping map[string]any) error {
	if _, err := s.ensureTable(ctx, index, collection); err != nil {
		return err
	}
	jsonData, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}
	sql := fmt.Sprintf(`INSERT INTO %s (collection, mapping) VALUES ($1, $2)
ON CONFLICT (collection) DO UPDATE SET mapping = EXCLUDED.mapping, updated_at = now()`,
		pgx.Identifier{index, mappingsTable}.Sanitize())
	if _, err := s.pool.Exec(ctx, sql, collection, jsonData); err != nil {
		return fmt.Errorf("failed to store mapping: %w", err)
	}
	return nil
}

func (s *postgresMeasureStore) ensureTable(ctx context.Context, index, collection string) (pgx.Identifier, error) {
	if err := validateLocation(index, collection); err != nil {
		return nil, err
	}
	table := pgx.Identifier{index, collection}
	name := table.Sanitize()
	if _, created := s.tables.Load(name); created {
		return table, nil
	}

	sql := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id text PRIMARY KEY,
	body jsonb NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now()
)`, name)
	if _, err := s.pool.Exec(ctx, sql); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	s.tables.Store(name, struct{}{})
	return table, nil
}

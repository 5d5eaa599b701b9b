package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps the database pool with tracker-specific operations.
type Store struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// New creates a Store on top of an existing pool.
func New(db *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// Close closes the underlying pool.
func (s *Store) Close() {
	s.db.Close()
}

// Ping verifies the connection is healthy.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// InitSchema creates the tracker tables when they do not exist yet.
func (s *Store) InitSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id          BIGSERIAL PRIMARY KEY,
			market_name TEXT NOT NULL UNIQUE,
			type        TEXT NOT NULL DEFAULT '',
			category    TEXT NOT NULL DEFAULT '',
			weapon      TEXT NOT NULL DEFAULT '',
			exterior    TEXT NOT NULL DEFAULT '',
			quality     TEXT NOT NULL DEFAULT '',
			collection  TEXT NOT NULL DEFAULT '',
			icon_url    TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS items_type_idx ON items (type)`,
		`CREATE TABLE IF NOT EXISTS indices (
			id          UUID PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			kind        TEXT NOT NULL,
			category    TEXT NOT NULL DEFAULT '',
			markets     TEXT[] NOT NULL,
			currency    TEXT NOT NULL,
			item_ids    BIGINT[] NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS price_points (
			id              UUID PRIMARY KEY,
			index_id        UUID NOT NULL REFERENCES indices (id) ON DELETE CASCADE,
			ts              TIMESTAMPTZ NOT NULL,
			value           DOUBLE PRECISION NOT NULL,
			currency        TEXT NOT NULL,
			item_count      INT NOT NULL,
			markets_used    TEXT[] NOT NULL,
			items_succeeded INT NOT NULL,
			items_failed    INT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS price_points_index_ts_idx ON price_points (index_id, ts DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Antoniohaas1337/IndexTracker/internal/model"
)

// CreateIndex persists a new index definition, assigning its ID and
// timestamps.
func (s *Store) CreateIndex(ctx context.Context, idx *model.Index) error {
	if idx.ID == uuid.Nil {
		idx.ID = uuid.New()
	}
	now := time.Now().UTC()
	idx.CreatedAt = now
	idx.UpdatedAt = now

	_, err := s.db.Exec(ctx, `
		INSERT INTO indices (id, name, description, kind, category, markets, currency, item_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, idx.ID, idx.Name, idx.Description, string(idx.Kind), idx.Category,
		idx.Markets, idx.Currency, idx.ItemIDs, idx.CreatedAt, idx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	s.logger.Info("index created",
		"id", idx.ID,
		"name", idx.Name,
		"kind", idx.Kind,
		"items", len(idx.ItemIDs),
	)
	return nil
}

// GetIndex loads one index definition.
func (s *Store) GetIndex(ctx context.Context, id uuid.UUID) (*model.Index, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, kind, category, markets, currency, item_ids, created_at, updated_at
		FROM indices
		WHERE id = $1
	`, id)

	idx, err := scanIndex(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get index: %w", err)
	}
	return idx, nil
}

// ListIndices returns index definitions, optionally filtered by kind.
func (s *Store) ListIndices(ctx context.Context, kind model.IndexKind) ([]model.Index, error) {
	query := `
		SELECT id, name, description, kind, category, markets, currency, item_ids, created_at, updated_at
		FROM indices
	`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, string(kind))
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list indices: %w", err)
	}
	defer rows.Close()

	var indices []model.Index
	for rows.Next() {
		idx, err := scanIndex(rows)
		if err != nil {
			return nil, fmt.Errorf("list indices: %w", err)
		}
		indices = append(indices, *idx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list indices: %w", err)
	}
	return indices, nil
}

// PrebuiltByCategory loads the generated index for one category.
func (s *Store) PrebuiltByCategory(ctx context.Context, category string) (*model.Index, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, kind, category, markets, currency, item_ids, created_at, updated_at
		FROM indices
		WHERE kind = $1 AND category = $2
	`, string(model.IndexPrebuilt), category)

	idx, err := scanIndex(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("prebuilt by category: %w", err)
	}
	return idx, nil
}

// UpdateIndex rewrites the mutable fields of an index definition.
func (s *Store) UpdateIndex(ctx context.Context, idx *model.Index) error {
	idx.UpdatedAt = time.Now().UTC()

	tag, err := s.db.Exec(ctx, `
		UPDATE indices
		SET name = $2, description = $3, markets = $4, currency = $5, item_ids = $6, updated_at = $7
		WHERE id = $1
	`, idx.ID, idx.Name, idx.Description, idx.Markets, idx.Currency, idx.ItemIDs, idx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update index: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteIndex removes an index and, via cascade, its price points.
func (s *Store) DeleteIndex(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM indices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	s.logger.Info("index deleted", "id", id)
	return nil
}

func scanIndex(row pgx.Row) (*model.Index, error) {
	var idx model.Index
	var kind string
	if err := row.Scan(
		&idx.ID, &idx.Name, &idx.Description, &kind, &idx.Category,
		&idx.Markets, &idx.Currency, &idx.ItemIDs, &idx.CreatedAt, &idx.UpdatedAt,
	); err != nil {
		return nil, err
	}
	idx.Kind = model.IndexKind(kind)
	return &idx, nil
}

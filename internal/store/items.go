package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Antoniohaas1337/IndexTracker/internal/model"
)

// UpsertItems writes a batch of catalog items, updating rows whose
// market name already exists. Returns how many rows were inserted vs
// refreshed.
func (s *Store) UpsertItems(ctx context.Context, items []model.Item) (inserted, updated int, err error) {
	if len(items) == 0 {
		return 0, 0, nil
	}

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(`
			INSERT INTO items (market_name, type, category, weapon, exterior, quality, collection, icon_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (market_name) DO UPDATE SET
				type = EXCLUDED.type,
				category = EXCLUDED.category,
				weapon = EXCLUDED.weapon,
				exterior = EXCLUDED.exterior,
				quality = EXCLUDED.quality,
				collection = EXCLUDED.collection,
				icon_url = EXCLUDED.icon_url,
				updated_at = now()
			RETURNING (xmax = 0)
		`, item.MarketName, item.Type, item.Category, item.Weapon, item.Exterior, item.Quality, item.Collection, item.IconURL)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for range items {
		var wasInsert bool
		if err := results.QueryRow().Scan(&wasInsert); err != nil {
			return 0, 0, fmt.Errorf("upsert items: %w", err)
		}
		if wasInsert {
			inserted++
		} else {
			updated++
		}
	}

	return inserted, updated, nil
}

// SearchItems returns a page of catalog items whose market name
// matches the query (case-insensitive substring; empty query matches
// everything), plus the total match count for pagination.
func (s *Store) SearchItems(ctx context.Context, query string, limit, offset int) ([]model.Item, int, error) {
	if limit <= 0 {
		limit = 50
	}
	pattern := "%" + query + "%"

	var total int
	err := s.db.QueryRow(ctx,
		`SELECT count(*) FROM items WHERE market_name ILIKE $1`, pattern,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, market_name, type, category, weapon, exterior, quality, collection, icon_url, created_at, updated_at
		FROM items
		WHERE market_name ILIKE $1
		ORDER BY market_name
		LIMIT $2 OFFSET $3
	`, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ItemsByType returns catalog items filtered by item type.
func (s *Store) ItemsByType(ctx context.Context, itemType string, limit int) ([]model.Item, error) {
	if limit <= 0 {
		limit = 1000
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, market_name, type, category, weapon, exterior, quality, collection, icon_url, created_at, updated_at
		FROM items
		WHERE type = $1
		ORDER BY market_name
		LIMIT $2
	`, itemType, limit)
	if err != nil {
		return nil, fmt.Errorf("items by type: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ItemsByIDs resolves catalog items for an index basket. Missing IDs
// are simply absent from the result.
func (s *Store) ItemsByIDs(ctx context.Context, ids []int64) ([]model.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, market_name, type, category, weapon, exterior, quality, collection, icon_url, created_at, updated_at
		FROM items
		WHERE id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("items by ids: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ItemCount returns the catalog size.
func (s *Store) ItemCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

func scanItems(rows pgx.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(
			&item.ID, &item.MarketName, &item.Type, &item.Category,
			&item.Weapon, &item.Exterior, &item.Quality, &item.Collection,
			&item.IconURL, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return items, nil
}

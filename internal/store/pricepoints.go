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

// InsertPricePoint stores one spot valuation result for an index.
func (s *Store) InsertPricePoint(ctx context.Context, p *model.PricePoint) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO price_points (id, index_id, ts, value, currency, item_count, markets_used, items_succeeded, items_failed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.IndexID, p.Timestamp, p.Value, p.Currency, p.ItemCount,
		p.MarketsUsed, p.ItemsSucceeded, p.ItemsFailed)
	if err != nil {
		return fmt.Errorf("insert price point: %w", err)
	}
	return nil
}

// LatestPricePoint returns the most recent stored valuation of an index.
func (s *Store) LatestPricePoint(ctx context.Context, indexID uuid.UUID) (*model.PricePoint, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, index_id, ts, value, currency, item_count, markets_used, items_succeeded, items_failed
		FROM price_points
		WHERE index_id = $1
		ORDER BY ts DESC
		LIMIT 1
	`, indexID)

	p, err := scanPricePoint(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("latest price point: %w", err)
	}
	return p, nil
}

// PriceHistory returns stored valuations of an index since the given
// time, oldest first.
func (s *Store) PriceHistory(ctx context.Context, indexID uuid.UUID, since time.Time) ([]model.PricePoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, index_id, ts, value, currency, item_count, markets_used, items_succeeded, items_failed
		FROM price_points
		WHERE index_id = $1 AND ts >= $2
		ORDER BY ts
	`, indexID, since)
	if err != nil {
		return nil, fmt.Errorf("price history: %w", err)
	}
	defer rows.Close()

	var points []model.PricePoint
	for rows.Next() {
		p, err := scanPricePoint(rows)
		if err != nil {
			return nil, fmt.Errorf("price history: %w", err)
		}
		points = append(points, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("price history: %w", err)
	}
	return points, nil
}

func scanPricePoint(row pgx.Row) (*model.PricePoint, error) {
	var p model.PricePoint
	if err := row.Scan(
		&p.ID, &p.IndexID, &p.Timestamp, &p.Value, &p.Currency,
		&p.ItemCount, &p.MarketsUsed, &p.ItemsSucceeded, &p.ItemsFailed,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

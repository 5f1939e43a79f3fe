package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"trendboard/internal/domain/dashboard"
)

// Store implements dashboard.Store over Postgres.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a Postgres-backed dashboard store.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		db: db,
	}
}

// ListTrends returns active trends, newest first.
func (s *Store) ListTrends(ctx context.Context) ([]dashboard.Trend, error) {
	query := `
		SELECT trend_id, slug, label, is_active, alt_names, created_at, brief_url
		FROM trends
		WHERE is_active = true
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying trends: %w", err)
	}
	defer rows.Close()

	var trends []dashboard.Trend
	for rows.Next() {
		t, err := scanTrend(rows)
		if err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trends: %w", err)
	}

	return trends, nil
}

// GetTrend returns a single trend by ID.
func (s *Store) GetTrend(ctx context.Context, trendID string) (*dashboard.Trend, error) {
	query := `
		SELECT trend_id, slug, label, is_active, alt_names, created_at, brief_url
		FROM trends
		WHERE trend_id = $1
	`

	t, err := scanTrend(s.db.QueryRow(ctx, query, trendID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dashboard.ErrNotFound
		}
		return nil, err
	}

	return &t, nil
}

func scanTrend(row pgx.Row) (dashboard.Trend, error) {
	var t dashboard.Trend
	var briefURL *string

	err := row.Scan(
		&t.TrendID,
		&t.Slug,
		&t.Label,
		&t.IsActive,
		&t.AltNames,
		&t.CreatedAt,
		&briefURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("error scanning trend: %w", err)
	}

	if briefURL != nil {
		t.BriefURL = *briefURL
	}

	return t, nil
}

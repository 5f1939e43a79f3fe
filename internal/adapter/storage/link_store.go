package storage

import (
	"context"
	"fmt"

	"trendboard/internal/domain/dashboard"
)

// ListPostTrendLinks returns all post-trend associations.
func (s *Store) ListPostTrendLinks(ctx context.Context) ([]dashboard.PostTrendLink, error) {
	query := `
		SELECT post_id, trend_id, method, confidence, raw_label, normalized_label, created_at
		FROM post_trends
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying post trends: %w", err)
	}
	defer rows.Close()

	var links []dashboard.PostTrendLink
	for rows.Next() {
		var l dashboard.PostTrendLink
		var method, rawLabel, normalizedLabel *string
		var confidence *float64

		err := rows.Scan(
			&l.PostID,
			&l.TrendID,
			&method,
			&confidence,
			&rawLabel,
			&normalizedLabel,
			&l.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning post trend: %w", err)
		}

		if method != nil {
			l.Method = *method
		}
		if confidence != nil {
			l.Confidence = *confidence
		}
		if rawLabel != nil {
			l.RawLabel = *rawLabel
		}
		if normalizedLabel != nil {
			l.NormalizedLabel = *normalizedLabel
		}

		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post trends: %w", err)
	}

	return links, nil
}

// ListTrendLinks returns the brief artifact links for a trend, newest first.
func (s *Store) ListTrendLinks(ctx context.Context, trendID string) ([]dashboard.TrendLink, error) {
	query := `
		SELECT trend_id, url, label, created_at
		FROM trend_links
		WHERE trend_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query, trendID)
	if err != nil {
		return nil, fmt.Errorf("error querying trend links: %w", err)
	}
	defer rows.Close()

	var links []dashboard.TrendLink
	for rows.Next() {
		var l dashboard.TrendLink
		var label *string

		if err := rows.Scan(&l.TrendID, &l.URL, &label, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning trend link: %w", err)
		}

		if label != nil {
			l.Label = *label
		}

		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trend links: %w", err)
	}

	return links, nil
}

// SaveTrendLink records a generated brief artifact.
func (s *Store) SaveTrendLink(ctx context.Context, link dashboard.TrendLink) error {
	query := `
		INSERT INTO trend_links (trend_id, url, label, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.Exec(ctx, query, link.TrendID, link.URL, link.Label, link.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting trend link: %w", err)
	}

	return nil
}

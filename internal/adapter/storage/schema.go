package storage

import (
	"context"
	"fmt"
)

// EnsureSchema creates the dashboard tables when they do not exist yet.
// Safe to run on every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS trends (
			trend_id TEXT PRIMARY KEY,
			slug TEXT NOT NULL,
			label TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			alt_names TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			brief_url TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			post_id TEXT PRIMARY KEY,
			url TEXT NOT NULL DEFAULT '',
			twitter_url TEXT,
			text TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			search_term TEXT NOT NULL DEFAULT '',
			retweet_count INTEGER NOT NULL DEFAULT 0,
			reply_count INTEGER NOT NULL DEFAULT 0,
			like_count INTEGER NOT NULL DEFAULT 0,
			quote_count INTEGER NOT NULL DEFAULT 0,
			bookmark_count INTEGER NOT NULL DEFAULT 0,
			is_retweet BOOLEAN NOT NULL DEFAULT false,
			is_quote BOOLEAN NOT NULL DEFAULT false,
			engagement_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			inserted_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_search_term ON posts(search_term)`,
		`CREATE TABLE IF NOT EXISTS post_trends (
			post_id TEXT NOT NULL REFERENCES posts(post_id),
			trend_id TEXT NOT NULL REFERENCES trends(trend_id),
			method TEXT,
			confidence DOUBLE PRECISION,
			raw_label TEXT,
			normalized_label TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (post_id, trend_id)
		)`,
		`CREATE TABLE IF NOT EXISTS trend_links (
			id BIGSERIAL PRIMARY KEY,
			trend_id TEXT NOT NULL REFERENCES trends(trend_id),
			url TEXT NOT NULL,
			label TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trend_links_trend ON trend_links(trend_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("error ensuring schema: %w", err)
		}
	}

	return nil
}

package dashboard

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the read-only data access the dashboard core depends on,
// plus the two writes performed by the surrounding workflows (post ingest
// and brief-link recording). Implementations must be safe for concurrent
// use.
type Store interface {
	// ListTrends returns active trends, newest first.
	ListTrends(ctx context.Context) ([]Trend, error)

	// GetTrend returns a single trend by ID, ErrNotFound if absent.
	GetTrend(ctx context.Context, trendID string) (*Trend, error)

	// ListPosts returns all posts, newest first.
	ListPosts(ctx context.Context) ([]Post, error)

	// ListPostTrendLinks returns all post-trend associations.
	ListPostTrendLinks(ctx context.Context) ([]PostTrendLink, error)

	// ListTrendLinks returns the brief artifact links for a trend, newest first.
	ListTrendLinks(ctx context.Context, trendID string) ([]TrendLink, error)

	// SaveTrendLink records a generated brief artifact.
	SaveTrendLink(ctx context.Context, link TrendLink) error

	// SavePosts upserts a batch of ingested posts.
	SavePosts(ctx context.Context, posts []Post) error
}

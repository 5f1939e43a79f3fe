package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendboard/internal/domain/dashboard"
)

func TestSeedStore(t *testing.T) {
	now := time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)
	store := NewStore(now)
	ctx := context.Background()

	t.Run("seeded trends are active", func(t *testing.T) {
		trends, err := store.ListTrends(ctx)
		require.NoError(t, err)
		require.Len(t, trends, 3)
		for _, trend := range trends {
			assert.True(t, trend.IsActive)
			assert.NotEmpty(t, trend.Slug)
			assert.NotEmpty(t, trend.Label)
		}
	})

	t.Run("every post is linked to its trend", func(t *testing.T) {
		posts, err := store.ListPosts(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, posts)

		links, err := store.ListPostTrendLinks(ctx)
		require.NoError(t, err)

		linked := make(map[string]bool, len(links))
		for _, l := range links {
			linked[l.PostID] = true
		}
		for _, p := range posts {
			assert.True(t, linked[p.PostID], "post %s has no trend link", p.PostID)
		}
	})

	t.Run("posts land inside the two-week window", func(t *testing.T) {
		posts, err := store.ListPosts(ctx)
		require.NoError(t, err)

		cutoff := now.AddDate(0, 0, -15)
		for _, p := range posts {
			assert.True(t, p.CreatedAt.After(cutoff))
			assert.False(t, p.CreatedAt.After(now))
		}
	})

	t.Run("seeding is deterministic", func(t *testing.T) {
		other := NewStore(now)
		a, _ := store.ListPosts(ctx)
		b, _ := other.ListPosts(ctx)
		assert.Equal(t, a, b)
	})

	t.Run("get trend", func(t *testing.T) {
		trend, err := store.GetTrend(ctx, "trend-1")
		require.NoError(t, err)
		assert.Equal(t, "ai-code-generation", trend.Slug)

		_, err = store.GetTrend(ctx, "missing")
		assert.ErrorIs(t, err, dashboard.ErrNotFound)
	})

	t.Run("trend links round trip newest first", func(t *testing.T) {
		first := dashboard.TrendLink{TrendID: "trend-1", URL: "https://example.com/a.pdf", CreatedAt: now}
		second := dashboard.TrendLink{TrendID: "trend-1", URL: "https://example.com/b.pdf", CreatedAt: now.Add(time.Hour)}
		require.NoError(t, store.SaveTrendLink(ctx, first))
		require.NoError(t, store.SaveTrendLink(ctx, second))

		links, err := store.ListTrendLinks(ctx, "trend-1")
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "https://example.com/b.pdf", links[0].URL)
	})
}

package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendboard/internal/domain/dashboard"
)

func TestFilterPosts(t *testing.T) {
	now := time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)

	post := func(id string, createdAt time.Time, likes int, term string) dashboard.Post {
		return dashboard.Post{
			PostID:     id,
			CreatedAt:  createdAt,
			LikeCount:  likes,
			SearchTerm: term,
		}
	}

	inWindow := post("in", now.AddDate(0, 0, -3), 50, "ai code")
	onWindowStart := post("start", now.AddDate(0, 0, -7), 50, "ai code")
	onWindowEnd := post("end", now, 50, "ai code")
	tooOld := post("old", now.AddDate(0, 0, -8), 50, "ai code")
	future := post("future", now.Add(time.Hour), 50, "ai code")
	lowEngagement := post("low", now.AddDate(0, 0, -2), 5, "ai code")
	otherTerm := post("other", now.AddDate(0, 0, -2), 50, "crypto")

	posts := []dashboard.Post{inWindow, onWindowStart, onWindowEnd, tooOld, future, lowEngagement, otherTerm}

	t.Run("all conditions conjunctive", func(t *testing.T) {
		filters := dashboard.Filters{
			SearchTerms:   []string{"ai code"},
			DatePreset:    7,
			MinEngagement: 10,
		}

		got := FilterPosts(posts, filters, now)

		require.Len(t, got, 3)
		assert.Equal(t, "in", got[0].PostID)
		assert.Equal(t, "start", got[1].PostID)
		assert.Equal(t, "end", got[2].PostID)
	})

	t.Run("window is inclusive on both ends", func(t *testing.T) {
		filters := dashboard.Filters{DatePreset: 7}
		got := FilterPosts([]dashboard.Post{onWindowStart, onWindowEnd}, filters, now)
		assert.Len(t, got, 2)
	})

	t.Run("empty search terms means no restriction", func(t *testing.T) {
		filters := dashboard.Filters{DatePreset: 7, MinEngagement: 10}
		got := FilterPosts(posts, filters, now)
		assert.Len(t, got, 4) // in, start, end, other
	})

	t.Run("engagement floor is inclusive", func(t *testing.T) {
		filters := dashboard.Filters{DatePreset: 7, MinEngagement: 50}
		got := FilterPosts([]dashboard.Post{inWindow}, filters, now)
		assert.Len(t, got, 1)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		filters := dashboard.Filters{DatePreset: 7, MinEngagement: 10}
		before := make([]dashboard.Post, len(posts))
		copy(before, posts)
		FilterPosts(posts, filters, now)
		assert.Equal(t, before, posts)
	})

	t.Run("empty input", func(t *testing.T) {
		got := FilterPosts(nil, dashboard.Filters{DatePreset: 7}, now)
		assert.Empty(t, got)
	})
}

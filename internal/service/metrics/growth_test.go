package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trendboard/internal/domain/dashboard"
)

func TestWeekOverWeekGrowth(t *testing.T) {
	base := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

	scored := func(createdAt time.Time, score float64) dashboard.Post {
		return dashboard.Post{CreatedAt: createdAt, EngagementScore: score}
	}

	t.Run("empty posts", func(t *testing.T) {
		assert.Zero(t, WeekOverWeekGrowth(nil))
	})

	t.Run("span under seven days yields zero", func(t *testing.T) {
		posts := []dashboard.Post{
			scored(base, 100),
			scored(base.AddDate(0, 0, 3), 900),
		}
		assert.Zero(t, WeekOverWeekGrowth(posts))
	})

	t.Run("midpoint split growth", func(t *testing.T) {
		posts := []dashboard.Post{
			scored(base, 100),
			scored(base.AddDate(0, 0, 8), 150),
		}
		// (150 - 100) / 100 = +50%
		assert.InDelta(t, 0.5, WeekOverWeekGrowth(posts), 1e-9)
	})

	t.Run("clamped at +500%", func(t *testing.T) {
		posts := []dashboard.Post{
			scored(base, 10),
			scored(base.AddDate(0, 0, 8), 10000),
		}
		assert.Equal(t, 5.0, WeekOverWeekGrowth(posts))
	})

	t.Run("clamped at -90%", func(t *testing.T) {
		posts := []dashboard.Post{
			scored(base, 1000),
			scored(base.AddDate(0, 0, 8), 1), // -99.9% raw
		}
		assert.Equal(t, -0.9, WeekOverWeekGrowth(posts))
	})

	t.Run("zero first half with activity counts as +100%", func(t *testing.T) {
		posts := []dashboard.Post{
			{CreatedAt: base},
			scored(base.AddDate(0, 0, 8), 50),
		}
		assert.Equal(t, 1.0, WeekOverWeekGrowth(posts))
	})

	t.Run("zero both halves", func(t *testing.T) {
		posts := []dashboard.Post{
			{CreatedAt: base},
			{CreatedAt: base.AddDate(0, 0, 8)},
		}
		assert.Zero(t, WeekOverWeekGrowth(posts))
	})

	t.Run("unsorted input is sorted first", func(t *testing.T) {
		posts := []dashboard.Post{
			scored(base.AddDate(0, 0, 8), 150),
			scored(base, 100),
		}
		assert.InDelta(t, 0.5, WeekOverWeekGrowth(posts), 1e-9)
	})
}

func TestSplitAtMidpoint(t *testing.T) {
	base := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	posts := []dashboard.Post{
		{PostID: "a", CreatedAt: base},
		{PostID: "b", CreatedAt: base.AddDate(0, 0, 5)}, // exactly on the midpoint
		{PostID: "c", CreatedAt: base.AddDate(0, 0, 10)},
	}

	first, second := splitAtMidpoint(posts)

	assert.Len(t, first, 2)
	assert.Len(t, second, 1)
	assert.Equal(t, "b", first[1].PostID)
	assert.Equal(t, "c", second[0].PostID)
}

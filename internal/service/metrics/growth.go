package metrics

import (
	"math"
	"sort"
	"time"

	"trendboard/internal/domain/dashboard"
)

// Growth is clamped to a -90% floor and +500% ceiling so sparse data cannot
// produce degenerate ratios that dominate the dashboard.
const (
	growthFloor = -0.9
	growthCeil  = 5.0

	// minSpanDays is the minimum observed span required for a
	// week-over-week comparison.
	minSpanDays = 7
)

// WeekOverWeekGrowth compares summed engagement between the first and second
// half of the posts' observed time span and returns the relative change as a
// fraction (0.3 == +30%). Posts spanning fewer than seven days yield 0.
func WeekOverWeekGrowth(posts []dashboard.Post) float64 {
	if len(posts) == 0 {
		return 0
	}

	sorted := sortByCreatedAt(posts)
	earliest := sorted[0].CreatedAt
	latest := sorted[len(sorted)-1].CreatedAt

	if spanDays(earliest, latest) < minSpanDays {
		return 0
	}

	firstHalf, secondHalf := splitAtMidpoint(sorted)
	firstScore := sumScores(firstHalf)
	secondScore := sumScores(secondHalf)

	// A zero base means any second-half activity counts as +100%.
	if firstScore == 0 {
		if secondScore > 0 {
			return 1
		}
		return 0
	}

	growth := (secondScore - firstScore) / firstScore
	return math.Max(growthFloor, math.Min(growthCeil, growth))
}

// spanDays is the observed span in whole days, rounded up.
func spanDays(earliest, latest time.Time) int {
	return int(math.Ceil(latest.Sub(earliest).Hours() / 24))
}

// splitAtMidpoint partitions time-sorted posts at the temporal midpoint of
// their span. Posts exactly on the midpoint land in the first half.
func splitAtMidpoint(sorted []dashboard.Post) (firstHalf, secondHalf []dashboard.Post) {
	earliest := sorted[0].CreatedAt
	latest := sorted[len(sorted)-1].CreatedAt
	midpoint := earliest.Add(latest.Sub(earliest) / 2)

	for _, p := range sorted {
		if p.CreatedAt.After(midpoint) {
			secondHalf = append(secondHalf, p)
		} else {
			firstHalf = append(firstHalf, p)
		}
	}
	return firstHalf, secondHalf
}

// sortByCreatedAt returns a copy of posts sorted ascending by publish time.
func sortByCreatedAt(posts []dashboard.Post) []dashboard.Post {
	sorted := make([]dashboard.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

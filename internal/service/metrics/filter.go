package metrics

import (
	"time"

	"trendboard/internal/domain/dashboard"
)

// dateRange returns the inclusive [start, end] window for a preset of days
// anchored at now.
func dateRange(now time.Time, days int) (start, end time.Time) {
	return now.AddDate(0, 0, -days), now
}

// FilterPosts returns the posts inside the date window that meet the
// engagement floor and the search-term restriction. All three conditions
// are conjunctive. The caller supplies now once so every check in an
// aggregation pass shares the same window. The input is not mutated.
func FilterPosts(posts []dashboard.Post, filters dashboard.Filters, now time.Time) []dashboard.Post {
	start, end := dateRange(now, filters.DatePreset)

	filtered := make([]dashboard.Post, 0, len(posts))
	for _, p := range posts {
		if p.CreatedAt.Before(start) || p.CreatedAt.After(end) {
			continue
		}
		if EngagementScore(p) < filters.MinEngagement {
			continue
		}
		if len(filters.SearchTerms) > 0 && !matchesTerm(filters.SearchTerms, p.SearchTerm) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesTerm(terms []string, term string) bool {
	for _, t := range terms {
		if t == term {
			return true
		}
	}
	return false
}

package metrics

import (
	"time"

	"trendboard/internal/domain/dashboard"
)

// Clock yields the current instant. Injected so tests can pin "now".
type Clock func() time.Time

// Engine computes derived dashboard metrics from the raw entity
// collections. All methods are read-only over their inputs and allocate
// fresh outputs, so an Engine is safe for concurrent use.
type Engine struct {
	clock Clock
}

// NewEngine creates a metrics engine. A nil clock falls back to time.Now.
func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{clock: clock}
}

// Aggregate produces one TrendMetrics record per input trend, including
// trends with zero matching posts. Callers filter empty records downstream
// if they want active trends only.
func (e *Engine) Aggregate(
	trends []dashboard.Trend,
	posts []dashboard.Post,
	links []dashboard.PostTrendLink,
	filters dashboard.Filters,
) []dashboard.TrendMetrics {
	return e.aggregateAt(e.clock(), trends, posts, links, filters)
}

func (e *Engine) aggregateAt(
	now time.Time,
	trends []dashboard.Trend,
	posts []dashboard.Post,
	links []dashboard.PostTrendLink,
	filters dashboard.Filters,
) []dashboard.TrendMetrics {
	// Filtering is trend-independent, so run it once and reuse.
	filtered := FilterPosts(posts, filters, now)

	postsByID := make(map[string]dashboard.Post, len(filtered))
	for _, p := range filtered {
		postsByID[p.PostID] = p
	}

	linksByTrend := make(map[string][]string, len(trends))
	seen := make(map[string]map[string]struct{}, len(trends))
	for _, l := range links {
		// Duplicate (post, trend) rows must not double-count a post.
		byPost, ok := seen[l.TrendID]
		if !ok {
			byPost = make(map[string]struct{})
			seen[l.TrendID] = byPost
		}
		if _, dup := byPost[l.PostID]; dup {
			continue
		}
		byPost[l.PostID] = struct{}{}
		linksByTrend[l.TrendID] = append(linksByTrend[l.TrendID], l.PostID)
	}

	results := make([]dashboard.TrendMetrics, 0, len(trends))
	for _, t := range trends {
		var trendPosts []dashboard.Post
		for _, postID := range linksByTrend[t.TrendID] {
			if p, ok := postsByID[postID]; ok {
				trendPosts = append(trendPosts, p)
			}
		}

		if len(trendPosts) == 0 {
			results = append(results, dashboard.TrendMetrics{
				TrendID:   t.TrendID,
				Trend:     t,
				Posts:     []dashboard.Post{},
				Status:    dashboard.StatusStable,
				FirstSeen: t.CreatedAt,
				LastSeen:  t.CreatedAt,
			})
			continue
		}

		sorted := sortByCreatedAt(trendPosts)
		growth := WeekOverWeekGrowth(sorted)

		// The classifier compares the same midpoint halves the growth
		// calculation uses: previous = first half, current = second half.
		firstHalf, secondHalf := splitAtMidpoint(sorted)
		status := ClassifyStatus(sumScores(secondHalf), sumScores(firstHalf), growth)

		results = append(results, dashboard.TrendMetrics{
			TrendID:         t.TrendID,
			Trend:           t,
			Posts:           sorted,
			TotalEngagement: sumScores(sorted),
			WoWGrowthPct:    growth,
			Status:          status,
			FirstSeen:       sorted[0].CreatedAt,
			LastSeen:        sorted[len(sorted)-1].CreatedAt,
		})
	}

	return results
}

// KPIs derives the dashboard-level summary counters: trends with at least
// one filtered post are "active", and an active trend first seen inside the
// filter window counts as "new".
func (e *Engine) KPIs(
	trends []dashboard.Trend,
	posts []dashboard.Post,
	links []dashboard.PostTrendLink,
	filters dashboard.Filters,
) dashboard.KPIData {
	now := e.clock()
	aggregated := e.aggregateAt(now, trends, posts, links, filters)
	eligible := FilterPosts(posts, filters, now)
	windowStart, _ := dateRange(now, filters.DatePreset)

	var active, newTrends int
	for _, m := range aggregated {
		if len(m.Posts) == 0 {
			continue
		}
		active++
		if !m.FirstSeen.Before(windowStart) {
			newTrends++
		}
	}

	return dashboard.KPIData{
		ActiveTrends:    active,
		EligiblePosts:   len(eligible),
		TotalEngagement: sumScores(eligible),
		NewTrends:       newTrends,
	}
}

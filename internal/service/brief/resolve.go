package brief

import (
	"trendboard/internal/domain/dashboard"
)

// ResolveBriefURL returns the authoritative brief URL for a trend. Link
// records are history: the most recent one by creation time wins, and any
// link beats the URL stored on the trend itself. Returns "" when no brief
// exists yet.
func ResolveBriefURL(t dashboard.Trend, links []dashboard.TrendLink) string {
	var best *dashboard.TrendLink
	for i := range links {
		l := links[i]
		if l.TrendID != t.TrendID || l.URL == "" {
			continue
		}
		if best == nil || l.CreatedAt.After(best.CreatedAt) {
			best = &l
		}
	}

	if best != nil {
		return best.URL
	}
	return t.BriefURL
}

package metrics

import (
	"trendboard/internal/domain/dashboard"
)

// Interaction weights. Retweets amplify reach and weigh heaviest, bookmarks
// signal intent to return, likes are the lowest-friction signal.
const (
	likeWeight     = 1.0
	retweetWeight  = 3.0
	replyWeight    = 2.0
	bookmarkWeight = 2.5
)

// EngagementScore returns a post's weighted engagement value. A precomputed
// score on the post is authoritative; otherwise the score is derived from
// the raw interaction counts.
func EngagementScore(p dashboard.Post) float64 {
	if p.EngagementScore > 0 {
		return p.EngagementScore
	}

	return float64(p.LikeCount)*likeWeight +
		float64(p.RetweetCount)*retweetWeight +
		float64(p.ReplyCount)*replyWeight +
		float64(p.BookmarkCount)*bookmarkWeight
}

// sumScores totals the engagement of a post set.
func sumScores(posts []dashboard.Post) float64 {
	var total float64
	for _, p := range posts {
		total += EngagementScore(p)
	}
	return total
}

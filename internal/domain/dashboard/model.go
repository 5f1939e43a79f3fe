package dashboard

import (
	"time"
)

// TrendStatus is the categorical label derived from a trend's engagement trajectory.
type TrendStatus string

const (
	StatusEmerging  TrendStatus = "Emerging"
	StatusStable    TrendStatus = "Stable"
	StatusDeclining TrendStatus = "Declining"
)

// Post represents a single ingested social-media item.
type Post struct {
	PostID          string    `json:"post_id"`
	URL             string    `json:"url"`
	TwitterURL      string    `json:"twitter_url"`
	Text            string    `json:"text"`
	CreatedAt       time.Time `json:"created_at"`
	SearchTerm      string    `json:"search_term"`
	RetweetCount    int       `json:"retweet_count"`
	ReplyCount      int       `json:"reply_count"`
	LikeCount       int       `json:"like_count"`
	QuoteCount      int       `json:"quote_count"`
	BookmarkCount   int       `json:"bookmark_count"`
	IsRetweet       bool      `json:"is_retweet"`
	IsQuote         bool      `json:"is_quote"`
	EngagementScore float64   `json:"engagement_score"`
	InsertedAt      time.Time `json:"inserted_at"`
}

// Trend represents a labeled topic that posts can be associated with.
type Trend struct {
	TrendID   string    `json:"trend_id"`
	Slug      string    `json:"slug"`
	Label     string    `json:"label"`
	IsActive  bool      `json:"is_active"`
	AltNames  []string  `json:"alt_names"`
	CreatedAt time.Time `json:"created_at"`
	BriefURL  string    `json:"brief_url,omitempty"`
}

// PostTrendLink is the many-to-many association between a post and a trend,
// produced by an external classification process.
type PostTrendLink struct {
	PostID          string    `json:"post_id"`
	TrendID         string    `json:"trend_id"`
	Method          string    `json:"method,omitempty"`
	Confidence      float64   `json:"confidence,omitempty"`
	RawLabel        string    `json:"raw_label,omitempty"`
	NormalizedLabel string    `json:"normalized_label,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// TrendLink records a generated brief artifact for a trend. Multiple links
// may exist per trend; the most recent by CreatedAt wins when resolving the
// brief URL.
type TrendLink struct {
	TrendID   string    `json:"trend_id"`
	URL       string    `json:"url"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// Filters is the ephemeral dashboard filter configuration. It is never
// persisted; every aggregation call receives it explicitly.
type Filters struct {
	// SearchTerms restricts posts to those surfaced by one of these queries.
	// Empty means no restriction.
	SearchTerms []string `json:"search_terms"`

	// DatePreset is the window size in days, anchored to "now".
	DatePreset int `json:"date_preset"`

	// MinEngagement is the inclusive floor on a post's computed score.
	MinEngagement float64 `json:"min_engagement"`
}

// TrendMetrics is the derived per-trend record produced by aggregation.
// Recomputed on every call, never persisted.
type TrendMetrics struct {
	TrendID         string      `json:"trend_id"`
	Trend           Trend       `json:"trend"`
	Posts           []Post      `json:"posts"`
	TotalEngagement float64     `json:"total_engagement"`
	WoWGrowthPct    float64     `json:"wow_growth_pct"`
	Status          TrendStatus `json:"status"`
	FirstSeen       time.Time   `json:"first_seen"`
	LastSeen        time.Time   `json:"last_seen"`
}

// KPIData holds the dashboard-level summary counters.
type KPIData struct {
	ActiveTrends    int     `json:"active_trends"`
	EligiblePosts   int     `json:"eligible_posts"`
	TotalEngagement float64 `json:"total_engagement"`
	NewTrends       int     `json:"new_trends"`
}

// SparklinePoint is one day of a trend's engagement time series.
type SparklinePoint struct {
	Date       string  `json:"date"`
	Engagement float64 `json:"engagement"`
}

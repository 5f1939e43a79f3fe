// Package seed provides a deterministic in-memory dashboard.Store used when
// Postgres is not configured. It backs demos and disconnected development
// with data shaped like real ingest output.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"trendboard/internal/domain/dashboard"
)

const demoSeed = 20240901

// Store is an in-memory dashboard.Store seeded with demo data.
type Store struct {
	mu     sync.RWMutex
	trends []dashboard.Trend
	posts  []dashboard.Post
	links  []dashboard.PostTrendLink
	briefs []dashboard.TrendLink
}

// NewStore builds a seeded store. Post timestamps are laid out relative to
// now so the default dashboard window always contains data.
func NewStore(now time.Time) *Store {
	s := &Store{}
	s.populate(now)
	return s
}

func (s *Store) populate(now time.Time) {
	rng := rand.New(rand.NewSource(demoSeed))

	trends := []dashboard.Trend{
		{
			TrendID:   "trend-1",
			Slug:      "ai-code-generation",
			Label:     "AI Code Generation",
			IsActive:  true,
			AltNames:  []string{"ai code", "codegen", "github copilot"},
			CreatedAt: now.AddDate(0, 0, -45),
			BriefURL:  "https://example.com/marketing-brief-trend-1.pdf",
		},
		{
			TrendID:   "trend-2",
			Slug:      "ai-customer-support",
			Label:     "AI Customer Support",
			IsActive:  true,
			AltNames:  []string{"ai chatbot", "customer support ai", "automated support"},
			CreatedAt: now.AddDate(0, 0, -40),
		},
		{
			TrendID:   "trend-3",
			Slug:      "ai-content-creation",
			Label:     "AI Content Creation",
			IsActive:  true,
			AltNames:  []string{"ai writing", "ai design", "content generation"},
			CreatedAt: now.AddDate(0, 0, -35),
		},
	}

	searchTerms := map[string]string{
		"trend-1": "ai code",
		"trend-2": "ai chatbot",
		"trend-3": "ai writing",
	}

	var posts []dashboard.Post
	var links []dashboard.PostTrendLink

	for _, t := range trends {
		// A burst of posts over the last two weeks per trend, denser in
		// the recent half so growth and status have something to show.
		count := 20 + rng.Intn(15)
		for i := 0; i < count; i++ {
			daysAgo := rng.Intn(14)
			if rng.Float64() < 0.6 {
				daysAgo = rng.Intn(7)
			}
			createdAt := now.AddDate(0, 0, -daysAgo).Add(-time.Duration(rng.Intn(24)) * time.Hour)

			postID := fmt.Sprintf("%s-post-%03d", t.Slug, i)
			posts = append(posts, dashboard.Post{
				PostID:        postID,
				URL:           fmt.Sprintf("https://twitter.com/user%d/status/%d", rng.Intn(500), rng.Int63()),
				TwitterURL:    fmt.Sprintf("https://twitter.com/user%d/status/%d", rng.Intn(500), rng.Int63()),
				Text:          fmt.Sprintf("Demo post %d about %s", i, t.Label),
				CreatedAt:     createdAt,
				SearchTerm:    searchTerms[t.TrendID],
				LikeCount:     rng.Intn(400),
				RetweetCount:  rng.Intn(120),
				ReplyCount:    rng.Intn(60),
				BookmarkCount: rng.Intn(80),
				QuoteCount:    rng.Intn(30),
				InsertedAt:    createdAt.Add(time.Hour),
			})
			links = append(links, dashboard.PostTrendLink{
				PostID:          postID,
				TrendID:         t.TrendID,
				Method:          "seed",
				Confidence:      0.5 + rng.Float64()*0.5,
				NormalizedLabel: t.Slug,
				CreatedAt:       createdAt.Add(2 * time.Hour),
			})
		}
	}

	s.trends = trends
	s.posts = posts
	s.links = links
}

// ListTrends returns the active seeded trends.
func (s *Store) ListTrends(_ context.Context) ([]dashboard.Trend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trends := make([]dashboard.Trend, 0, len(s.trends))
	for _, t := range s.trends {
		if t.IsActive {
			trends = append(trends, t)
		}
	}
	return trends, nil
}

// GetTrend returns a seeded trend by ID.
func (s *Store) GetTrend(_ context.Context, trendID string) (*dashboard.Trend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.trends {
		if t.TrendID == trendID {
			trend := t
			return &trend, nil
		}
	}
	return nil, dashboard.ErrNotFound
}

// ListPosts returns all seeded posts.
func (s *Store) ListPosts(_ context.Context) ([]dashboard.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]dashboard.Post, len(s.posts))
	copy(posts, s.posts)
	return posts, nil
}

// ListPostTrendLinks returns all seeded associations.
func (s *Store) ListPostTrendLinks(_ context.Context) ([]dashboard.PostTrendLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := make([]dashboard.PostTrendLink, len(s.links))
	copy(links, s.links)
	return links, nil
}

// ListTrendLinks returns the recorded brief links for a trend, newest first.
func (s *Store) ListTrendLinks(_ context.Context, trendID string) ([]dashboard.TrendLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var links []dashboard.TrendLink
	for i := len(s.briefs) - 1; i >= 0; i-- {
		if s.briefs[i].TrendID == trendID {
			links = append(links, s.briefs[i])
		}
	}
	return links, nil
}

// SaveTrendLink records a brief link in memory.
func (s *Store) SaveTrendLink(_ context.Context, link dashboard.TrendLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.briefs = append(s.briefs, link)
	return nil
}

// SavePosts appends or replaces posts by ID.
func (s *Store) SavePosts(_ context.Context, posts []dashboard.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]int, len(s.posts))
	for i, p := range s.posts {
		byID[p.PostID] = i
	}

	for _, p := range posts {
		if i, ok := byID[p.PostID]; ok {
			s.posts[i] = p
		} else {
			s.posts = append(s.posts, p)
		}
	}
	return nil
}

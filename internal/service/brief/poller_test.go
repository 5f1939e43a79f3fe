package brief

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendboard/internal/domain/dashboard"
)

type fakeStore struct {
	mu    sync.Mutex
	links map[string][]dashboard.TrendLink
}

func newFakeStore() *fakeStore {
	return &fakeStore{links: make(map[string][]dashboard.TrendLink)}
}

func (s *fakeStore) addLink(link dashboard.TrendLink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[link.TrendID] = append(s.links[link.TrendID], link)
}

func (s *fakeStore) ListTrends(context.Context) ([]dashboard.Trend, error) { return nil, nil }
func (s *fakeStore) GetTrend(context.Context, string) (*dashboard.Trend, error) {
	return nil, dashboard.ErrNotFound
}
func (s *fakeStore) ListPosts(context.Context) ([]dashboard.Post, error) { return nil, nil }
func (s *fakeStore) ListPostTrendLinks(context.Context) ([]dashboard.PostTrendLink, error) {
	return nil, nil
}
func (s *fakeStore) SaveTrendLink(context.Context, dashboard.TrendLink) error { return nil }
func (s *fakeStore) SavePosts(context.Context, []dashboard.Post) error        { return nil }

func (s *fakeStore) ListTrendLinks(_ context.Context, trendID string) ([]dashboard.TrendLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.links[trendID], nil
}

func TestPollerCompletesWorkflow(t *testing.T) {
	store := newFakeStore()
	workflow := NewWorkflow(&fakeSubmitter{}, nil, nil)

	_, err := workflow.Request(context.Background(), dashboard.Trend{TrendID: "t1"}, dashboard.TrendMetrics{})
	require.NoError(t, err)

	poller := NewPoller(store, workflow, 5*time.Millisecond)
	poller.Start(context.Background())
	defer poller.Stop(context.Background())

	// Nothing to find yet.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StateGenerating, workflow.Status("t1").State)

	store.addLink(dashboard.TrendLink{
		TrendID:   "t1",
		URL:       "https://example.com/brief.pdf",
		CreatedAt: time.Now(),
	})

	require.Eventually(t, func() bool {
		return workflow.Status("t1").State == StateReady
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "https://example.com/brief.pdf", workflow.Status("t1").BriefURL)
}

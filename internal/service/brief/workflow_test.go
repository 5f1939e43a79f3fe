package brief

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendboard/internal/domain/dashboard"
)

type fakeSubmitter struct {
	mu       sync.Mutex
	requests []Request
	err      error
}

func (f *fakeSubmitter) Submit(_ context.Context, req Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.requests = append(f.requests, req)
	return nil
}

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func TestWorkflowRequest(t *testing.T) {
	now := time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)

	trend := dashboard.Trend{
		TrendID:  "t1",
		Slug:     "ai-code-generation",
		Label:    "AI Code Generation",
		AltNames: []string{"codegen"},
	}
	trendMetrics := dashboard.TrendMetrics{
		TrendID:         "t1",
		Posts:           []dashboard.Post{{PostID: "p1"}, {PostID: "p2"}},
		TotalEngagement: 4200,
		WoWGrowthPct:    0.4,
		Status:          dashboard.StatusEmerging,
	}

	t.Run("idle to generating with webhook payload", func(t *testing.T) {
		submitter := &fakeSubmitter{}
		w := NewWorkflow(submitter, fixedClock(now), nil)

		status, err := w.Request(context.Background(), trend, trendMetrics)

		require.NoError(t, err)
		assert.Equal(t, StateGenerating, status.State)
		assert.NotEmpty(t, status.RequestID)
		assert.Equal(t, now, status.UpdatedAt)

		require.Len(t, submitter.requests, 1)
		req := submitter.requests[0]
		assert.Equal(t, "t1", req.TrendID)
		assert.Equal(t, "AI Code Generation", req.Label)
		assert.Equal(t, 4200.0, req.TotalEngagement)
		assert.Equal(t, 2, req.PostCount)
		assert.Equal(t, dashboard.StatusEmerging, req.Status)
	})

	t.Run("in-flight request is kept", func(t *testing.T) {
		submitter := &fakeSubmitter{}
		w := NewWorkflow(submitter, fixedClock(now), nil)

		first, err := w.Request(context.Background(), trend, trendMetrics)
		require.NoError(t, err)

		second, err := w.Request(context.Background(), trend, trendMetrics)
		require.NoError(t, err)

		assert.Equal(t, first.RequestID, second.RequestID)
		assert.Len(t, submitter.requests, 1)
	})

	t.Run("submit failure moves to failed", func(t *testing.T) {
		submitter := &fakeSubmitter{err: errors.New("webhook down")}
		w := NewWorkflow(submitter, fixedClock(now), nil)

		status, err := w.Request(context.Background(), trend, trendMetrics)

		require.Error(t, err)
		assert.Equal(t, StateFailed, status.State)
		assert.Contains(t, status.Error, "webhook down")
		assert.Equal(t, StateFailed, w.Status("t1").State)
	})
}

func TestWorkflowNotify(t *testing.T) {
	now := time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)
	trend := dashboard.Trend{TrendID: "t1", Slug: "s", Label: "L"}

	t.Run("generating to ready fires callback", func(t *testing.T) {
		var readyTrend, readyURL string
		w := NewWorkflow(&fakeSubmitter{}, fixedClock(now), func(trendID, url string) {
			readyTrend, readyURL = trendID, url
		})

		_, err := w.Request(context.Background(), trend, dashboard.TrendMetrics{})
		require.NoError(t, err)

		w.Notify("t1", "https://example.com/brief.pdf", nil)

		status := w.Status("t1")
		assert.Equal(t, StateReady, status.State)
		assert.Equal(t, "https://example.com/brief.pdf", status.BriefURL)
		assert.Equal(t, "t1", readyTrend)
		assert.Equal(t, "https://example.com/brief.pdf", readyURL)
	})

	t.Run("generating to failed", func(t *testing.T) {
		w := NewWorkflow(&fakeSubmitter{}, fixedClock(now), nil)

		_, err := w.Request(context.Background(), trend, dashboard.TrendMetrics{})
		require.NoError(t, err)

		w.Notify("t1", "", errors.New("generation blew up"))

		status := w.Status("t1")
		assert.Equal(t, StateFailed, status.State)
		assert.Contains(t, status.Error, "generation blew up")
	})

	t.Run("notify on idle trend is ignored", func(t *testing.T) {
		w := NewWorkflow(&fakeSubmitter{}, fixedClock(now), nil)

		w.Notify("never-requested", "https://example.com/x.pdf", nil)

		assert.Equal(t, StateIdle, w.Status("never-requested").State)
	})

	t.Run("generating list tracks in-flight trends", func(t *testing.T) {
		w := NewWorkflow(&fakeSubmitter{}, fixedClock(now), nil)

		_, err := w.Request(context.Background(), trend, dashboard.TrendMetrics{})
		require.NoError(t, err)
		assert.Equal(t, []string{"t1"}, w.Generating())

		w.Notify("t1", "https://example.com/brief.pdf", nil)
		assert.Empty(t, w.Generating())
	})
}

package brief

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"trendboard/internal/domain/dashboard"
	"trendboard/internal/service/metrics"
)

// State is the brief-generation state for a single trend.
type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateReady      State = "ready"
	StateFailed     State = "failed"
)

// Status describes where one trend's brief generation currently stands.
type Status struct {
	TrendID   string    `json:"trend_id"`
	State     State     `json:"state"`
	RequestID string    `json:"request_id,omitempty"`
	BriefURL  string    `json:"brief_url,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReadyFunc is called when a trend's brief becomes available.
type ReadyFunc func(trendID, url string)

// Workflow tracks brief generation per trend as an explicit state machine:
// Idle -> Generating on Request, Generating -> Ready or Failed on Notify.
// Completion is always signaled from outside (the store poller or an event
// subscriber); the workflow itself holds no timers.
type Workflow struct {
	submitter Submitter
	clock     metrics.Clock
	onReady   ReadyFunc

	mu       sync.RWMutex
	statuses map[string]Status
}

// NewWorkflow creates a workflow. A nil clock falls back to time.Now and a
// nil onReady is ignored.
func NewWorkflow(submitter Submitter, clock metrics.Clock, onReady ReadyFunc) *Workflow {
	if clock == nil {
		clock = time.Now
	}
	return &Workflow{
		submitter: submitter,
		clock:     clock,
		onReady:   onReady,
		statuses:  make(map[string]Status),
	}
}

// Status returns the current state for a trend, StateIdle if never requested.
func (w *Workflow) Status(trendID string) Status {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if s, ok := w.statuses[trendID]; ok {
		return s
	}
	return Status{TrendID: trendID, State: StateIdle}
}

// Generating lists the trend IDs currently waiting on the external process.
func (w *Workflow) Generating() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var ids []string
	for id, s := range w.statuses {
		if s.State == StateGenerating {
			ids = append(ids, id)
		}
	}
	return ids
}

// Request submits a brief-generation request for the trend and moves it to
// Generating. A trend already generating keeps its in-flight request.
func (w *Workflow) Request(ctx context.Context, t dashboard.Trend, m dashboard.TrendMetrics) (Status, error) {
	w.mu.Lock()
	if current, ok := w.statuses[t.TrendID]; ok && current.State == StateGenerating {
		w.mu.Unlock()
		return current, nil
	}

	status := Status{
		TrendID:   t.TrendID,
		State:     StateGenerating,
		RequestID: uuid.New().String(),
		UpdatedAt: w.clock(),
	}
	w.statuses[t.TrendID] = status
	w.mu.Unlock()

	req := Request{
		RequestID:       status.RequestID,
		TrendID:         t.TrendID,
		Slug:            t.Slug,
		Label:           t.Label,
		AltNames:        t.AltNames,
		TotalEngagement: m.TotalEngagement,
		WoWGrowthPct:    m.WoWGrowthPct,
		Status:          m.Status,
		PostCount:       len(m.Posts),
		RequestedAt:     status.UpdatedAt,
	}

	if err := w.submitter.Submit(ctx, req); err != nil {
		failed := Status{
			TrendID:   t.TrendID,
			State:     StateFailed,
			RequestID: status.RequestID,
			Error:     err.Error(),
			UpdatedAt: w.clock(),
		}
		w.mu.Lock()
		w.statuses[t.TrendID] = failed
		w.mu.Unlock()
		return failed, fmt.Errorf("error submitting brief request: %w", err)
	}

	return status, nil
}

// Notify reports completion for a trend. A URL moves it to Ready, an error
// to Failed. Notifications for trends that are not generating are ignored.
func (w *Workflow) Notify(trendID, url string, notifyErr error) {
	w.mu.Lock()
	current, ok := w.statuses[trendID]
	if !ok || current.State != StateGenerating {
		w.mu.Unlock()
		return
	}

	next := Status{
		TrendID:   trendID,
		RequestID: current.RequestID,
		UpdatedAt: w.clock(),
	}
	if notifyErr != nil {
		next.State = StateFailed
		next.Error = notifyErr.Error()
	} else {
		next.State = StateReady
		next.BriefURL = url
	}
	w.statuses[trendID] = next
	w.mu.Unlock()

	if next.State == StateReady && w.onReady != nil {
		w.onReady(trendID, url)
	}
}

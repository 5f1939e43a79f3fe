package brief

import (
	"context"
	"log"
	"time"

	"trendboard/internal/domain/dashboard"
)

// Poller watches the trend links table for completed briefs and notifies
// the workflow. The external generation process writes the link row when it
// finishes; polling the store is the only completion signal it offers.
type Poller struct {
	store    dashboard.Store
	workflow *Workflow
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a poller checking the store at the given interval.
func NewPoller(store dashboard.Store, workflow *Workflow, interval time.Duration) *Poller {
	return &Poller{
		store:    store,
		workflow: workflow,
		interval: interval,
	}
}

// Start begins polling in the background until Stop is called or the parent
// context is canceled.
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.check(ctx)
			}
		}
	}()
}

// Stop halts polling and waits for the loop to exit.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel == nil {
		return nil
	}
	p.cancel()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller) check(ctx context.Context) {
	for _, trendID := range p.workflow.Generating() {
		links, err := p.store.ListTrendLinks(ctx, trendID)
		if err != nil {
			log.Printf("Brief poller: error listing trend links for %s: %v", trendID, err)
			continue
		}

		url := ResolveBriefURL(dashboard.Trend{TrendID: trendID}, links)
		if url != "" {
			p.workflow.Notify(trendID, url, nil)
		}
	}
}

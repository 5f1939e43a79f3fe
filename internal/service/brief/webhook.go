package brief

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"trendboard/internal/domain/dashboard"
)

// Request is the payload sent to the external brief-generation webhook.
type Request struct {
	RequestID       string                `json:"request_id"`
	TrendID         string                `json:"trend_id"`
	Slug            string                `json:"slug"`
	Label           string                `json:"label"`
	AltNames        []string              `json:"alt_names"`
	TotalEngagement float64               `json:"total_engagement"`
	WoWGrowthPct    float64               `json:"wow_growth_pct"`
	Status          dashboard.TrendStatus `json:"status"`
	PostCount       int                   `json:"post_count"`
	RequestedAt     time.Time             `json:"requested_at"`
}

// Submitter delivers brief-generation requests to the external workflow.
type Submitter interface {
	Submit(ctx context.Context, req Request) error
}

// WebhookSubmitter implements Submitter over a plain HTTP POST.
type WebhookSubmitter struct {
	url    string
	client *http.Client
}

// NewWebhookSubmitter creates a submitter targeting the given webhook URL.
func NewWebhookSubmitter(url string, timeout time.Duration) *WebhookSubmitter {
	return &WebhookSubmitter{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Submit posts the request as JSON. Any non-2xx response is an error.
func (s *WebhookSubmitter) Submit(ctx context.Context, req Request) error {
	if s.url == "" {
		return fmt.Errorf("brief webhook URL not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("error marshaling webhook payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating webhook request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error calling brief webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brief webhook returned status code %d", resp.StatusCode)
	}

	return nil
}

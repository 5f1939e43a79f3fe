// Package event defines the NATS subjects shared by the API server, the
// ingest command, and WebSocket fan-out.
package event

const (
	// SubjectPostsIngested is published after a batch of posts is stored.
	SubjectPostsIngested = "dashboard.posts.ingested"

	// SubjectBriefReady is published when a trend's brief becomes available.
	SubjectBriefReady = "dashboard.briefs.ready"

	// SubjectWildcard matches every dashboard event.
	SubjectWildcard = "dashboard.>"
)

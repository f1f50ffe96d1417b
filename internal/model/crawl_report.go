package model

import (
	"time"

	"github.com/google/uuid"
)

// OutcomeStatus classifies what happened to a single topic path during a crawl.
//
// Design decision: We use a string type rather than an integer enum because
// the status is persisted in the history database and rendered in reports.
// A string survives schema evolution and is readable without a lookup table.
type OutcomeStatus string

const (
	// StatusFetched means the document was retrieved and stored successfully.
	StatusFetched OutcomeStatus = "fetched"

	// StatusNotFound means the remote service has no document for the path.
	StatusNotFound OutcomeStatus = "not_found"

	// StatusTransportError means the fetch failed for any reason other than
	// a missing document: network error, timeout, non-200 status, or a
	// response that was not valid JSON.
	StatusTransportError OutcomeStatus = "transport_error"

	// StatusStoreFailed means the document was retrieved but the local write
	// failed. The node still counts as fetched, not as stored.
	StatusStoreFailed OutcomeStatus = "store_failed"
)

// Failed reports whether the status represents a fetch failure.
// Storage failures are not fetch failures: the document was retrieved.
func (s OutcomeStatus) Failed() bool {
	return s == StatusNotFound || s == StatusTransportError
}

// NodeOutcome records the result of processing one topic path.
type NodeOutcome struct {
	// Path is the topic path that was dequeued from the frontier.
	Path string `json:"path"`

	// Status classifies the result.
	Status OutcomeStatus `json:"status"`

	// Error holds the error text for failed outcomes, empty on success.
	Error string `json:"error,omitempty"`

	// Timestamp is when the node was processed.
	Timestamp time.Time `json:"timestamp"`
}

// CrawlReport is the complete record of a single crawl run.
// It is produced by the crawler, rendered by the report writers, and
// persisted in the history database.
type CrawlReport struct {
	// RunID uniquely identifies this crawl run.
	RunID string `json:"run_id"`

	// Module is the documentation namespace that was crawled.
	Module string `json:"module"`

	// Destination is the directory documents were written to.
	Destination string `json:"destination"`

	// Limit is the configured visit budget, 0 when unlimited.
	Limit int `json:"limit"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// LimitReached is true when the run stopped because the visit budget
	// was exhausted while frontier entries remained.
	LimitReached bool `json:"limit_reached,omitempty"`

	// Fetched counts documents successfully retrieved, including those
	// whose local write failed.
	Fetched int `json:"fetched"`

	// Failed counts nodes whose fetch failed (not found or transport error).
	Failed int `json:"failed"`

	// Stored counts documents written to local storage.
	Stored int `json:"stored"`

	// Nodes holds one outcome per processed topic path, in dequeue order.
	Nodes []NodeOutcome `json:"nodes,omitempty"`
}

// NewCrawlReport creates a report for a run that starts now.
func NewCrawlReport(module, destination string, limit int) *CrawlReport {
	return &CrawlReport{
		RunID:       uuid.NewString(),
		Module:      module,
		Destination: destination,
		Limit:       limit,
		StartedAt:   time.Now(),
	}
}

// Record appends a node outcome and updates the tallies.
func (r *CrawlReport) Record(outcome NodeOutcome) {
	if outcome.Timestamp.IsZero() {
		outcome.Timestamp = time.Now()
	}
	r.Nodes = append(r.Nodes, outcome)

	switch outcome.Status {
	case StatusFetched:
		r.Fetched++
		r.Stored++
	case StatusStoreFailed:
		r.Fetched++
	case StatusNotFound, StatusTransportError:
		r.Failed++
	}
}

// Finish stamps the end of the run.
func (r *CrawlReport) Finish() {
	r.FinishedAt = time.Now()
}

// Duration returns the wall-clock time of the run.
// It returns zero if the run has not finished.
func (r *CrawlReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

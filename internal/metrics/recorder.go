// Package metrics defines observability hooks for the navigation loader.
package metrics

import "time"

// OutcomeLabel enumerates reload outcomes for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for load and reload activity.
// Implementations may forward to Prometheus, OpenTelemetry, etc. All methods
// must be safe on the NoopRecorder (allowing optional injection).
type Recorder interface {
	ObserveLoadDuration(d time.Duration)
	IncReload(outcome OutcomeLabel)
	SetIssueCount(severity string, n int)
	ObserveIncludeFetch(d time.Duration, success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveLoadDuration(time.Duration)       {}
func (NoopRecorder) IncReload(OutcomeLabel)                  {}
func (NoopRecorder) SetIssueCount(string, int)               {}
func (NoopRecorder) ObserveIncludeFetch(time.Duration, bool) {}

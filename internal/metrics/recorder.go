package metrics

import "time"

// ResultLabel enumerates handler result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailure ResultLabel = "failure"
	ResultSkipped ResultLabel = "skipped"
)

// BuildOutcomeLabel enumerates final build states.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeWarning  BuildOutcomeLabel = "warning"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
	BuildOutcomeCanceled BuildOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for dispatch and build metrics.
type Recorder interface {
	ObserveHookDuration(event, owner string, d time.Duration)
	IncHookResult(event string, result ResultLabel)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	AddPages(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveHookDuration(string, string, time.Duration) {}
func (NoopRecorder) IncHookResult(string, ResultLabel)                 {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)                {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)                 {}
func (NoopRecorder) AddPages(int)                                      {}

package metrics

import "time"

// ResultLabel enumerates result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultSkipped  ResultLabel = "skipped"
	ResultCanceled ResultLabel = "canceled"
)

// BuildOutcomeLabel is the final status of one orchestrator run.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeSkipped  BuildOutcomeLabel = "skipped"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
	BuildOutcomeCanceled BuildOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for orchestrator runs. Implementations
// may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveProjectDuration(project string, d time.Duration, result ResultLabel)
	IncToolInvocation(tool string, result ResultLabel)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveProjectDuration(string, time.Duration, ResultLabel) {}
func (NoopRecorder) IncToolInvocation(string, ResultLabel)                     {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)                        {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)                         {}

package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	projectDuration *prom.HistogramVec
	toolInvocations *prom.CounterVec
	buildDuration   prom.Histogram
	buildOutcome    *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.projectDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "autodox",
			Name:      "project_duration_seconds",
			Help:      "Duration of a single project (doxygen + doxysphinx)",
			Buckets:   prom.DefBuckets,
		}, []string{"project", "result"})
		pr.toolInvocations = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "autodox",
			Name:      "tool_invocations_total",
			Help:      "External tool invocations by tool and result",
		}, []string{"tool", "result"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "autodox",
			Name:      "build_duration_seconds",
			Help:      "Total orchestrator run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "autodox",
			Name:      "build_outcomes_total",
			Help:      "Orchestrator runs by final status",
		}, []string{"outcome"})
		reg.MustRegister(pr.projectDuration, pr.toolInvocations, pr.buildDuration, pr.buildOutcome)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveProjectDuration(project string, d time.Duration, result ResultLabel) {
	if p == nil || p.projectDuration == nil {
		return
	}
	p.projectDuration.WithLabelValues(project, string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncToolInvocation(tool string, result ResultLabel) {
	if p == nil || p.toolInvocations == nil {
		return
	}
	p.toolInvocations.WithLabelValues(tool, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

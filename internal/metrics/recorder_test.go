package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	projects      map[string]ResultLabel
	tools         map[string]map[ResultLabel]int
	builds        int
	buildOutcomes map[BuildOutcomeLabel]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{projects: map[string]ResultLabel{}, tools: map[string]map[ResultLabel]int{}, buildOutcomes: map[BuildOutcomeLabel]int{}}
}

func (t *testRecorder) ObserveProjectDuration(project string, _ time.Duration, result ResultLabel) {
	t.projects[project] = result
}
func (t *testRecorder) IncToolInvocation(tool string, result ResultLabel) {
	m, ok := t.tools[tool]
	if !ok {
		m = map[ResultLabel]int{}
		t.tools[tool] = m
	}
	m[result]++
}
func (t *testRecorder) ObserveBuildDuration(time.Duration)        { t.builds++ }
func (t *testRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) { t.buildOutcomes[outcome]++ }

func TestRecorderInterfaceSatisfied(t *testing.T) {
	var _ Recorder = NoopRecorder{}
	var _ Recorder = (*PrometheusRecorder)(nil)
	var _ Recorder = newTestRecorder()
}

func TestTestRecorderCounts(t *testing.T) {
	r := newTestRecorder()
	r.IncToolInvocation("doxygen", ResultSuccess)
	r.IncToolInvocation("doxygen", ResultSuccess)
	r.IncBuildOutcome(BuildOutcomeSuccess)
	if r.tools["doxygen"][ResultSuccess] != 2 {
		t.Fatalf("expected 2 doxygen successes, got %d", r.tools["doxygen"][ResultSuccess])
	}
	if r.buildOutcomes[BuildOutcomeSuccess] != 1 {
		t.Fatalf("expected 1 success outcome")
	}
}

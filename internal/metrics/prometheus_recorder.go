package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	hookDuration  *prom.HistogramVec
	hookResults   *prom.CounterVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	pages         prom.Counter
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		hookDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "bookhooks",
			Name:      "hook_duration_seconds",
			Help:      "Duration of individual hook handlers",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}, []string{"event", "owner"}),
		hookResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "bookhooks",
			Name:      "hook_results_total",
			Help:      "Hook dispatch results by event and outcome",
		}, []string{"event", "result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "bookhooks",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "bookhooks",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		pages: prom.NewCounter(prom.CounterOpts{
			Namespace: "bookhooks",
			Name:      "pages_written_total",
			Help:      "Pages written by the host",
		}),
	}
	reg.MustRegister(pr.hookDuration, pr.hookResults, pr.buildDuration, pr.buildOutcome, pr.pages)
	return pr
}

func (p *PrometheusRecorder) ObserveHookDuration(event, owner string, d time.Duration) {
	if p == nil {
		return
	}
	p.hookDuration.WithLabelValues(event, owner).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncHookResult(event string, result ResultLabel) {
	if p == nil {
		return
	}
	p.hookResults.WithLabelValues(event, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddPages(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.pages.Add(float64(n))
}

// HookDurations exposes the per-handler histogram for inspection.
func (p *PrometheusRecorder) HookDurations() prom.Collector {
	return p.hookDuration
}

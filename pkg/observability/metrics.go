package observability

import (
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records the outcome of every evaluated input.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	runs      *prometheus.CounterVec
	steps     prometheus.Histogram
	cacheHits prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pushdown_runs_total",
				Help: "Total number of evaluated inputs by outcome",
			},
			[]string{"outcome"},
		),
		steps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pushdown_run_steps",
				Help:    "Configurations examined per search",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pushdown_cache_hits_total",
				Help: "Evaluations answered from the verdict store",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.runs, m.steps, m.cacheHits} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveVerdict counts a freshly computed verdict.
func (m *Metrics) ObserveVerdict(v *domain.Verdict) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(v.Status()).Inc()
	m.steps.Observe(float64(v.Steps))
}

// CacheHit counts a verdict served from the store.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

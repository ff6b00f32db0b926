// Package metrics holds the prometheus collectors of the dashboard core.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "indash"

type Metrics struct {
	queries       *prometheus.CounterVec
	queryLatency  *prometheus.HistogramVec
	selections    prometheus.Counter
	staleResults  prometheus.Counter
	availability  *prometheus.CounterVec
	provitasCache *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg builds unregistered
// collectors.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		// Labels: source, outcome (success, error, rejected)
		queries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "total",
			Help:      "SQL statements sent to a data source",
		}, []string{"source", "outcome"}),
		queryLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "Data source round-trip latency",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		}, []string{"source"}),
		selections: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "selections_total",
			Help:      "Location selections resolved",
		}),
		staleResults: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "stale_results_total",
			Help:      "Resolutions discarded because a newer selection started",
		}),
		// Labels: panel, reason
		availability: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "unavailable_total",
			Help:      "Panels resolved without data, by reason",
		}, []string{"panel", "reason"}),
		// Labels: result (hit, miss, error)
		provitasCache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provitas",
			Name:      "lookups_total",
			Help:      "District productivity lookups",
		}, []string{"result"}),
	}
}

func (m *Metrics) ObserveQuery(source, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(source, outcome).Inc()
	m.queryLatency.WithLabelValues(source).Observe(d.Seconds())
}

func (m *Metrics) SelectionResolved() {
	if m == nil {
		return
	}
	m.selections.Inc()
}

func (m *Metrics) StaleDiscarded() {
	if m == nil {
		return
	}
	m.staleResults.Inc()
}

func (m *Metrics) Unavailable(panel, reason string) {
	if m == nil {
		return
	}
	m.availability.WithLabelValues(panel, reason).Inc()
}

func (m *Metrics) ProvitasLookup(result string) {
	if m == nil {
		return
	}
	m.provitasCache.WithLabelValues(result).Inc()
}

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ledger"

// Metrics holds the collectors of the ledger engine. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Postings              *prometheus.CounterVec
	Recalculations        *prometheus.CounterVec
	RecalculationDuration prometheus.Histogram
	ReconcileCorrections  prometheus.Counter
	ReconcileFailures     prometheus.Counter
	ReconcileDrift        prometheus.Histogram
	PeriodCloses          *prometheus.CounterVec
	HTTPRequests          *prometheus.CounterVec
	HTTPDuration          *prometheus.HistogramVec
}

// New creates and registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Postings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "poster", Name: "operations_total",
			Help: "Transaction poster operations by kind and outcome.",
		}, []string{"operation", "outcome"}),
		Recalculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "recalculation", Name: "runs_total",
			Help: "Recalculation walks by outcome.",
		}, []string{"outcome"}),
		RecalculationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "recalculation", Name: "duration_seconds",
			Help: "Duration of one ledger head recalculation walk.", Buckets: prometheus.DefBuckets,
		}),
		ReconcileCorrections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "reconciliation", Name: "corrections_total",
			Help: "Ledger head balances overwritten from their latest snapshot.",
		}),
		ReconcileFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "reconciliation", Name: "failures_total",
			Help: "Ledger heads that failed to reconcile.",
		}),
		ReconcileDrift: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "reconciliation", Name: "drift_amount",
			Help:    "Absolute drift corrected per ledger head.",
			Buckets: []float64{0.01, 0.1, 1, 10, 100, 1000, 10000},
		}),
		PeriodCloses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "period", Name: "closes_total",
			Help: "Per-account period closes by outcome.",
		}, []string{"outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help: "HTTP request latency by route.", Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		m.Postings, m.Recalculations, m.RecalculationDuration,
		m.ReconcileCorrections, m.ReconcileFailures, m.ReconcileDrift,
		m.PeriodCloses, m.HTTPRequests, m.HTTPDuration,
	)
	return m
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObservePosting counts a poster operation.
func (m *Metrics) ObservePosting(operation string, err error) {
	if m == nil {
		return
	}
	m.Postings.WithLabelValues(operation, outcome(err)).Inc()
}

// ObserveRecalculation counts a walk and records its duration.
func (m *Metrics) ObserveRecalculation(started time.Time, err error) {
	if m == nil {
		return
	}
	m.Recalculations.WithLabelValues(outcome(err)).Inc()
	m.RecalculationDuration.Observe(time.Since(started).Seconds())
}

// ObserveCorrection records one reconciliation correction of the given absolute drift.
func (m *Metrics) ObserveCorrection(drift float64) {
	if m == nil {
		return
	}
	m.ReconcileCorrections.Inc()
	m.ReconcileDrift.Observe(drift)
}

// ObserveReconcileFailure counts a ledger head that failed to reconcile.
func (m *Metrics) ObserveReconcileFailure() {
	if m == nil {
		return
	}
	m.ReconcileFailures.Inc()
}

// ObservePeriodClose counts one account close.
func (m *Metrics) ObservePeriodClose(err error) {
	if m == nil {
		return
	}
	m.PeriodCloses.WithLabelValues(outcome(err)).Inc()
}

// Package metrics holds the Prometheus collectors of the monitor and exposes
// them over HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rxtech-lab/argo-signal/internal/types"
)

const namespace = "argo_signal"

// Metrics holds the collectors, registered on their own registry.
type Metrics struct {
	registry *prometheus.Registry

	CyclesTotal     *prometheus.CounterVec // labels: outcome=completed|skipped
	AnalysesTotal   *prometheus.CounterVec // labels: outcome=ok|no_result|error
	SignalsTotal    *prometheus.CounterVec // labels: symbol, signal
	AlertsTotal     *prometheus.CounterVec // labels: outcome=sent|failed
	ComputeDuration prometheus.Histogram
	LastSignal      *prometheus.GaugeVec // labels: symbol
	MarketOpen      prometheus.Gauge
}

// NewMetrics creates and registers all collectors, plus the Go runtime and
// process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Monitor cycles by outcome",
		}, []string{"outcome"}),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Instrument analyses by outcome",
		}, []string{"outcome"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_total",
			Help:      "Final signals by instrument and grade",
		}, []string{"symbol", "signal"}),
		AlertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_total",
			Help:      "Alerts by delivery outcome",
		}, []string{"outcome"}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time to fetch and analyze one instrument",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		LastSignal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_signal",
			Help:      "Latest final signal per instrument, from -2 to 2",
		}, []string{"symbol"}),
		MarketOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "market_open",
			Help:      "1 while the exchange session is open",
		}),
	}

	m.registry.MustRegister(
		m.CyclesTotal,
		m.AnalysesTotal,
		m.SignalsTotal,
		m.AlertsTotal,
		m.ComputeDuration,
		m.LastSignal,
		m.MarketOpen,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSignal records the final signal of one analysis.
func (m *Metrics) ObserveSignal(symbol string, signal types.SignalGrade, elapsed time.Duration) {
	m.AnalysesTotal.WithLabelValues("ok").Inc()
	m.SignalsTotal.WithLabelValues(symbol, strconv.Itoa(int(signal))).Inc()
	m.LastSignal.WithLabelValues(symbol).Set(float64(signal))
	m.ComputeDuration.Observe(elapsed.Seconds())
}

// ObserveNoResult records an analysis skipped for missing or short data.
func (m *Metrics) ObserveNoResult() {
	m.AnalysesTotal.WithLabelValues("no_result").Inc()
}

// ObserveError records an analysis that failed unexpectedly.
func (m *Metrics) ObserveError() {
	m.AnalysesTotal.WithLabelValues("error").Inc()
}

// ObserveAlert records one delivery attempt.
func (m *Metrics) ObserveAlert(err error) {
	if err != nil {
		m.AlertsTotal.WithLabelValues("failed").Inc()
		return
	}

	m.AlertsTotal.WithLabelValues("sent").Inc()
}

// ObserveCycle records a cycle and the session state it saw.
func (m *Metrics) ObserveCycle(marketOpen bool, skipped bool) {
	if marketOpen {
		m.MarketOpen.Set(1)
	} else {
		m.MarketOpen.Set(0)
	}

	if skipped {
		m.CyclesTotal.WithLabelValues("skipped").Inc()
		return
	}

	m.CyclesTotal.WithLabelValues("completed").Inc()
}

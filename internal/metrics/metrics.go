// Package metrics holds the Prometheus instruments of the dashboard.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeSuperseded  = "superseded"
	OutcomeError       = "error"
)

// Metrics holds all Prometheus metrics for the dashboard.
type Metrics struct {
	RunsTotal     *prometheus.CounterVec // labels: outcome
	RunDuration   prometheus.Histogram
	FetchDuration *prometheus.HistogramVec // labels: source, status
	HTTPRequests  *prometheus.CounterVec   // labels: route, code

	registry *prometheus.Registry
}

// NewMetrics creates the metrics on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockwatcher_runs_total",
			Help: "Analysis runs by outcome",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockwatcher_run_duration_seconds",
			Help:    "Duration of a full fetch, compute and present run",
			Buckets: prometheus.DefBuckets,
		}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stockwatcher_fetch_duration_seconds",
			Help:    "Duration of daily bar fetches",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source", "status"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockwatcher_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.FetchDuration,
		m.HTTPRequests,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveFetch records one fetch attempt.
func (m *Metrics) ObserveFetch(source string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.FetchDuration.WithLabelValues(source, status).Observe(d.Seconds())
}

// ObserveRun records one run outcome.
func (m *Metrics) ObserveRun(outcome string, d time.Duration) {
	m.RunsTotal.WithLabelValues(outcome).Inc()
	m.RunDuration.Observe(d.Seconds())
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(route string, code int) {
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

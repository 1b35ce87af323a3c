// Package metrics exposes Prometheus instrumentation for the risk API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lumina/risk-api/internal/domain"
)

// Metrics owns a private registry so every server instance (and every test)
// starts from zero.
type Metrics struct {
	registry *prometheus.Registry

	assessments     *prometheus.CounterVec
	scores          prometheus.Histogram
	drivers         *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	rateLimitBlocks prometheus.Counter
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riskscore_assessments_total",
			Help: "Scored assessments by band.",
		}, []string{"band"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "riskscore_score",
			Help:    "Distribution of clamped risk scores.",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
		drivers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riskscore_driver_triggered_total",
			Help: "Surfaced risk drivers by key.",
		}, []string{"key"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riskscore_http_requests_total",
			Help: "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "riskscore_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		rateLimitBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "riskscore_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}),
	}

	m.registry.MustRegister(
		m.assessments,
		m.scores,
		m.drivers,
		m.httpRequests,
		m.httpDuration,
		m.rateLimitBlocks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveAssessment records a scored assessment.
func (m *Metrics) ObserveAssessment(res domain.ScoreResult) {
	m.assessments.WithLabelValues(string(res.Band)).Inc()
	m.scores.Observe(float64(res.Score))
	for _, d := range res.Drivers {
		m.drivers.WithLabelValues(d.Key).Inc()
	}
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveRateLimited counts a rejected request.
func (m *Metrics) ObserveRateLimited() {
	m.rateLimitBlocks.Inc()
}

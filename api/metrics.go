package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instrumentation of the API
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec

	quotes      *prometheus.CounterVec
	comparisons *prometheus.CounterVec
	samples     prometheus.Histogram
}

// NewMetrics builds a metrics container backed by the provided registry. If
// no registry is supplied, a new one is created.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{registry: reg}

	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cloudfee_http_requests_total",
		Help: "HTTP requests grouped by method, route and status",
	}, []string{"method", "route", "status"})
	m.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cloudfee_http_request_duration_seconds",
		Help:    "HTTP request latency distributions",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	m.quotes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cloudfee_quotes_total",
		Help: "Fee quotes served grouped by category and provider",
	}, []string{"category", "provider"})
	m.comparisons = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cloudfee_comparisons_total",
		Help: "Comparisons served grouped by category",
	}, []string{"category"})
	m.samples = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cloudfee_comparison_sample_points",
		Help:    "Number of sample points per comparison",
		Buckets: prometheus.ExponentialBuckets(1, 4, 6),
	})

	reg.MustRegister(m.requests, m.latency, m.quotes, m.comparisons, m.samples)

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRequest counts one served request
func (m *Metrics) RecordRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// RecordQuote counts one successful quote
func (m *Metrics) RecordQuote(category, provider string) {
	m.quotes.WithLabelValues(category, provider).Inc()
}

// RecordComparison counts one successful comparison
func (m *Metrics) RecordComparison(category string, points int) {
	m.comparisons.WithLabelValues(category).Inc()
	m.samples.Observe(float64(points))
}

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pass outcomes.
const (
	OutcomeOK           = "ok"
	OutcomePrecondition = "precondition"
	OutcomeError        = "error"
)

// athleteBuckets covers a single session up to a full national championship.
var athleteBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}

// Manager manages all Prometheus metrics for the liftrank service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Engine metrics
	passes                 *prometheus.CounterVec
	passDuration           *prometheus.HistogramVec
	athletesPerPass        prometheus.Histogram
	preconditionViolations *prometheus.CounterVec
	ranksAssigned          *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "liftrank",
		subsystem:        "engine",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.passes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "passes_total",
		Help:        "Total number of ordering and ranking passes by kind, metric and outcome",
		ConstLabels: labels,
	}, []string{"kind", "metric", "outcome"})

	m.passDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pass_duration_milliseconds",
		Help:        "Duration of one ordering or ranking pass in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"kind"})

	m.athletesPerPass = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "athletes_per_pass",
		Help:        "Number of competitors handled by one pass",
		Buckets:     athleteBuckets,
		ConstLabels: labels,
	})

	m.preconditionViolations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "precondition_violations_total",
		Help:        "Comparisons rejected because the competitors broke a comparator precondition",
		ConstLabels: labels,
	}, []string{"kind"})

	m.ranksAssigned = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ranks_assigned_total",
		Help:        "Rank values written by metric and result (ranked, unscored, ineligible)",
		ConstLabels: labels,
	}, []string{"metric", "result"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_errors_total",
		Help:        "HTTP error responses by endpoint and error code",
		ConstLabels: labels,
	}, []string{"endpoint", "code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "Heap memory in use in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "Average GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// RecordPass records one ordering or ranking pass.
func (m *Manager) RecordPass(kind, metric, outcome string, duration time.Duration, athletes int) {
	m.passes.WithLabelValues(kind, metric, outcome).Inc()
	m.passDuration.WithLabelValues(kind).Observe(float64(duration.Microseconds()) / 1000)
	m.athletesPerPass.Observe(float64(athletes))
	if outcome == OutcomePrecondition {
		m.preconditionViolations.WithLabelValues(kind).Inc()
	}
}

// RecordRanks adds the outcome counts of one rank pass.
func (m *Manager) RecordRanks(metric string, ranked, unscored, ineligible int) {
	m.ranksAssigned.WithLabelValues(metric, "ranked").Add(float64(ranked))
	m.ranksAssigned.WithLabelValues(metric, "unscored").Add(float64(unscored))
	m.ranksAssigned.WithLabelValues(metric, "ineligible").Add(float64(ineligible))
}

// RecordHTTPRequest records an HTTP request and its duration in milliseconds.
func (m *Manager) RecordHTTPRequest(endpoint, method string, status int, durationMs float64) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(endpoint, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, code).Observe(durationMs)
}

// RecordHTTPError records an error response.
func (m *Manager) RecordHTTPError(endpoint, code string) {
	m.httpErrors.WithLabelValues(endpoint, code).Inc()
}

// UpdateSystem sets the runtime gauges and records the average GC pause.
func (m *Manager) UpdateSystem(memoryBytes uint64, goroutines int, gcPauseMs float64) {
	m.systemMemoryUsage.Set(float64(memoryBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if gcPauseMs > 0 {
		m.systemGCPauseTime.Observe(gcPauseMs)
	}
}

// Package-level helpers use the global manager.

// RecordPass records one pass on the global manager.
func RecordPass(kind, metric, outcome string, duration time.Duration, athletes int) {
	globalManager.RecordPass(kind, metric, outcome, duration, athletes)
}

// RecordRanks records rank outcomes on the global manager.
func RecordRanks(metric string, ranked, unscored, ineligible int) {
	globalManager.RecordRanks(metric, ranked, unscored, ineligible)
}

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method string, status int, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, status, durationMs)
}

// RecordHTTPError records an error response on the global manager.
func RecordHTTPError(endpoint, code string) {
	globalManager.RecordHTTPError(endpoint, code)
}

// UpdateSystem records runtime figures on the global manager.
func UpdateSystem(memoryBytes uint64, goroutines int, gcPauseMs float64) {
	globalManager.UpdateSystem(memoryBytes, goroutines, gcPauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

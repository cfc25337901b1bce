// Package metrics provides Prometheus metrics for the trainee evaluation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Persistence
	storageWrites       *prometheus.CounterVec
	storageErrors       *prometheus.CounterVec
	storageWriteLatency prometheus.Histogram
	storageFallbacks    *prometheus.CounterVec
	legacyMigrations    prometheus.Counter

	// Sharing
	shareEncoded       prometheus.Counter
	shareDecoded       prometheus.Counter
	shareDecodeFailure *prometheus.CounterVec

	// Domain state
	participants   prometheus.Gauge
	evaluationDays prometheus.Gauge
	summaries      *prometheus.CounterVec
	mutations      *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByType        *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// Runtime
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // service registry without default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "traineval",
		subsystem:        "evaluator",
		histogramBuckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.storageWrites = m.counterVec("storage_writes_total", "Records written to the key-value storage", "record")
	m.storageErrors = m.counterVec("storage_errors_total", "Storage operations that failed", "record", "op")
	m.storageWriteLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_write_latency_milliseconds",
		Help:      "Latency of a single storage write in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.storageFallbacks = m.counterVec("storage_fallbacks_total", "Malformed records replaced by their defaults on load", "record")
	m.legacyMigrations = m.counter("legacy_migrations_total", "Documents upgraded from the single-score schema")

	m.shareEncoded = m.counter("share_tokens_encoded_total", "Share tokens produced")
	m.shareDecoded = m.counter("share_tokens_decoded_total", "Share tokens decoded successfully")
	m.shareDecodeFailure = m.counterVec("share_decode_failures_total", "Share tokens rejected on decode", "reason")

	m.participants = m.gauge("participants", "Participants currently registered")
	m.evaluationDays = m.gauge("evaluation_days", "Configured training day count")
	m.summaries = m.counterVec("summaries_total", "Report summaries computed by resulting status", "status")
	m.mutations = m.counterVec("mutations_total", "State mutations applied by operation", "op")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint", "endpoint", "method", "error_type")
	m.errorsByType = m.counterVec("errors_by_type_total", "Errors by type and severity", "error_type", "severity")
	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "error_latency_milliseconds",
		Help:      "Latency of operations that resulted in errors",
		Buckets:   m.histogramBuckets,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordStorageWrite counts a successful write of record and its latency.
func RecordStorageWrite(record string, latencyMs float64) {
	globalManager.storageWrites.WithLabelValues(record).Inc()
	globalManager.storageWriteLatency.Observe(latencyMs)
}

// RecordStorageError counts a failed storage operation.
func RecordStorageError(record, op string) {
	globalManager.storageErrors.WithLabelValues(record, op).Inc()
}

// RecordStorageFallback counts a malformed record replaced by its default.
func RecordStorageFallback(record string) {
	globalManager.storageFallbacks.WithLabelValues(record).Inc()
}

// RecordLegacyMigration counts a document upgraded from the legacy schema.
func RecordLegacyMigration() {
	globalManager.legacyMigrations.Inc()
}

// RecordShareEncoded counts a produced share token.
func RecordShareEncoded() {
	globalManager.shareEncoded.Inc()
}

// RecordShareDecoded counts a successfully decoded share token.
func RecordShareDecoded() {
	globalManager.shareDecoded.Inc()
}

// RecordShareDecodeFailure counts a rejected share token.
func RecordShareDecodeFailure(reason string) {
	globalManager.shareDecodeFailure.WithLabelValues(reason).Inc()
}

// UpdateParticipants sets the registered participant gauge.
func UpdateParticipants(count int) {
	globalManager.participants.Set(float64(count))
}

// UpdateEvaluationDays sets the configured day count gauge.
func UpdateEvaluationDays(days int) {
	globalManager.evaluationDays.Set(float64(days))
}

// RecordSummary counts a computed summary by status.
func RecordSummary(status string) {
	globalManager.summaries.WithLabelValues(status).Inc()
}

// RecordMutation counts an applied state mutation.
func RecordMutation(op string) {
	globalManager.mutations.WithLabelValues(op).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry backing the package-level helpers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package metrics provides Prometheus metrics for the derslik classroom service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the derslik service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Core Business Metrics - What really matters for the decision loop
	decisionsProcessed prometheus.Counter
	decisionLatency    prometheus.Histogram
	intentsDetected    *prometheus.CounterVec
	reasoningFallbacks *prometheus.CounterVec
	coherenceOverrides prometheus.Counter

	// Student State Metrics
	stateUpdates    prometheus.Counter
	studentsTracked prometheus.Gauge

	// Gateway Metrics - realtime fan-out health
	wsConnections     prometheus.Gauge
	wsMessagesSent    *prometheus.CounterVec
	wsBroadcastErrors prometheus.Counter
	wsRejectedTokens  prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - Detailed error tracking
	errorRateByComponent *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "derslik",
		subsystem:        "classroom",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	// Core Business Metrics
	m.decisionsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "decisions_processed_total",
		Help:      "Total number of decision pipeline runs",
	})
	m.decisionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "decision_latency_ms",
		Help:      "End-to-end decision pipeline latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.intentsDetected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "intents_detected_total",
		Help:      "Total number of classified intents by label",
	}, []string{"intent"})
	m.reasoningFallbacks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reasoning_fallbacks_total",
		Help:      "Total number of reasoning fallbacks by reason",
	}, []string{"reason"})
	m.coherenceOverrides = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "coherence_overrides_total",
		Help:      "Total number of decisions forced by the sleepy coherence rule",
	})

	// Student State Metrics
	m.stateUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "state_updates_total",
		Help:      "Total number of student state updates",
	})
	m.studentsTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "students_tracked",
		Help:      "Current number of tracked student states",
	})

	// Gateway Metrics
	m.wsConnections = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ws_connections",
		Help:      "Current number of live websocket connections",
	})
	m.wsMessagesSent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ws_messages_sent_total",
		Help:      "Total number of websocket payloads sent by role",
	}, []string{"role"})
	m.wsBroadcastErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ws_broadcast_errors_total",
		Help:      "Total number of per-connection send failures during fan-out",
	})
	m.wsRejectedTokens = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ws_rejected_tokens_total",
		Help:      "Total number of websocket connections rejected at auth",
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	// Enhanced Error Metrics
	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Total number of errors by component and type",
	}, []string{"component", "error_type"})

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap memory usage in bytes",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// Package-level helpers operating on the global manager.

// RecordDecisionProcessed increments the decision counter.
func RecordDecisionProcessed() {
	globalManager.decisionsProcessed.Inc()
}

// RecordDecisionLatency observes one pipeline run's latency.
func RecordDecisionLatency(latencyMs float64) {
	globalManager.decisionLatency.Observe(latencyMs)
}

// RecordIntentDetected increments the per-intent counter.
func RecordIntentDetected(intent string) {
	globalManager.intentsDetected.WithLabelValues(intent).Inc()
}

// RecordReasoningFallback increments the fallback counter for a reason.
func RecordReasoningFallback(reason string) {
	globalManager.reasoningFallbacks.WithLabelValues(reason).Inc()
}

// RecordCoherenceOverride increments the sleepy-override counter.
func RecordCoherenceOverride() {
	globalManager.coherenceOverrides.Inc()
}

// RecordStateUpdate increments the state update counter.
func RecordStateUpdate() {
	globalManager.stateUpdates.Inc()
}

// UpdateStudentsTracked sets the tracked student gauge.
func UpdateStudentsTracked(count int) {
	globalManager.studentsTracked.Set(float64(count))
}

// UpdateWSConnections sets the live connection gauge.
func UpdateWSConnections(count int) {
	globalManager.wsConnections.Set(float64(count))
}

// RecordWSMessageSent increments the per-role sent counter.
func RecordWSMessageSent(role string) {
	globalManager.wsMessagesSent.WithLabelValues(role).Inc()
}

// RecordWSBroadcastError increments the send failure counter.
func RecordWSBroadcastError() {
	globalManager.wsBroadcastErrors.Inc()
}

// RecordWSRejectedToken increments the auth reject counter.
func RecordWSRejectedToken() {
	globalManager.wsRejectedTokens.Inc()
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request's duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent increments the component error counter.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package metrics provides Prometheus metrics for the sireline breeding
// engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the breeding engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Birth pipeline
	birthsProcessed   prometheus.Counter
	birthsDuplicate   prometheus.Counter
	assignmentLatency prometheus.Histogram

	// Trait outcomes
	traitsGranted      *prometheus.CounterVec
	inbreedingDetected *prometheus.CounterVec
	affinityDetected   prometheus.Counter
	legacyTalentGrants prometheus.Counter

	// Pipeline health
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueues    prometheus.Counter
	queueDequeues    prometheus.Counter
	queueFullDrops   prometheus.Counter
	workerCount      prometheus.Gauge
	workerLatency    prometheus.Histogram
	workerErrors     prometheus.Counter
	foalsRegistered  prometheus.Gauge
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
		namespace:        "sireline",
		subsystem:        "breeding",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.birthsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "births_processed_total",
		Help:      "Total number of birth events assigned traits",
	})

	m.birthsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "births_duplicate_total",
		Help:      "Total number of duplicate birth events skipped",
	})

	m.assignmentLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assignment_latency_milliseconds",
		Help:      "Histogram of trait assignment latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.traitsGranted = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "traits_granted_total",
			Help:      "Total number of traits granted, by category",
		},
		[]string{"category"},
	)

	m.inbreedingDetected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "inbreeding_detected_total",
			Help:      "Total number of births with detected inbreeding, by severity",
		},
		[]string{"severity"},
	)

	m.affinityDetected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "affinity_detected_total",
		Help:      "Total number of births with a discipline affinity in the lineage",
	})

	m.legacyTalentGrants = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "legacy_talent_grants_total",
		Help:      "Total number of hidden legacy talent grants",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current number of queued birth events",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Maximum birth event queue capacity",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_utilization_ratio",
		Help:      "Queue utilization ratio (current size / capacity)",
	})

	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_total",
		Help:      "Total number of birth events enqueued",
	})

	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeue_total",
		Help:      "Total number of birth events dequeued",
	})

	m.queueFullDrops = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_full_drops_total",
		Help:      "Total number of birth events rejected by a full or closed queue",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Current number of assignment workers",
	})

	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_processing_latency_milliseconds",
		Help:      "Worker birth processing latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_errors_total",
		Help:      "Total number of worker errors",
	})

	m.foalsRegistered = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "foals_registered",
		Help:      "Number of foal outcomes held in the registry",
	})
}

// RecordBirthProcessed increments the processed births counter.
func RecordBirthProcessed() {
	globalManager.birthsProcessed.Inc()
}

// RecordBirthDuplicate increments the duplicate births counter.
func RecordBirthDuplicate() {
	globalManager.birthsDuplicate.Inc()
}

// RecordAssignmentLatency records trait assignment latency in milliseconds.
func RecordAssignmentLatency(latencyMs float64) {
	globalManager.assignmentLatency.Observe(latencyMs)
}

// RecordTraitsGranted adds granted trait counts for a category.
func RecordTraitsGranted(category string, count int) {
	if count > 0 {
		globalManager.traitsGranted.WithLabelValues(category).Add(float64(count))
	}
}

// RecordInbreedingDetected increments the inbreeding counter for a severity.
func RecordInbreedingDetected(severity string) {
	globalManager.inbreedingDetected.WithLabelValues(severity).Inc()
}

// RecordAffinityDetected increments the affinity detections counter.
func RecordAffinityDetected() {
	globalManager.affinityDetected.Inc()
}

// RecordLegacyTalentGrant increments the legacy talent grant counter.
func RecordLegacyTalentGrant() {
	globalManager.legacyTalentGrants.Inc()
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueues.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeues.Inc()
}

// RecordQueueFullDrop increments the rejected-event counter.
func RecordQueueFullDrop() {
	globalManager.queueFullDrops.Inc()
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// UpdateFoalsRegistered sets the number of outcomes held in the registry.
func UpdateFoalsRegistered(count int) {
	globalManager.foalsRegistered.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

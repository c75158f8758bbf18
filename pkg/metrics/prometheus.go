// Package metrics provides Prometheus metrics for the lure spread service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Recommendation outcomes
	recommendations *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	candidates      *prometheus.HistogramVec
	engineLatency   prometheus.Histogram
	linesFilled     prometheus.Histogram

	// Result cache
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	cacheSize   prometheus.Gauge

	// Catalog
	catalogSize    prometheus.Gauge
	catalogVersion prometheus.Gauge
	catalogReloads *prometheus.CounterVec
	catalogLookup  prometheus.Histogram

	// Queue and workers
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueue       prometheus.Counter
	queueDequeue       prometheus.Counter
	queueEnqueueErrors prometheus.Counter
	queueWait          prometheus.Histogram
	workerCount        prometheus.Gauge
	workerActive       prometheus.Gauge
	workerLatency      prometheus.Histogram
	workerErrors       prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "lurespread",
		subsystem:        "advisor",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.recommendations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "recommendations_total",
		Help: "Recommendations served, by outcome",
	}, []string{"outcome"})
	m.rejections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "filter_rejections_total",
		Help: "Lures rejected by the compatibility filter, by reason",
	}, []string{"reason"})
	m.candidates = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "candidates",
		Help:    "Lures left after each pipeline stage",
		Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50, 100, 250},
	}, []string{"stage"})
	m.engineLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "engine_latency_milliseconds",
		Help:    "Time spent generating one spread",
		Buckets: m.histogramBuckets,
	})
	m.linesFilled = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "spread_lines_filled",
		Help:    "Positions filled per spread",
		Buckets: []float64{1, 2, 3, 4, 5},
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "cache_hits_total", Help: "Spreads served from the result cache",
	})
	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "cache_misses_total", Help: "Spreads computed by the engine",
	})
	m.cacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "cache_entries", Help: "Entries in the result cache",
	})

	m.catalogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "catalog_lures", Help: "Lures in the active catalog",
	})
	m.catalogVersion = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "catalog_version", Help: "Version of the active catalog",
	})
	m.catalogReloads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "catalog_reloads_total", Help: "Catalog reloads, by status",
	}, []string{"status"})
	m.catalogLookup = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "catalog_lookup_latency_milliseconds",
		Help:    "Catalog read latency",
		Buckets: m.histogramBuckets,
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size", Help: "Jobs waiting in the queue",
	})
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_capacity", Help: "Queue capacity",
	})
	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_utilization_ratio", Help: "Queue fill ratio (0-1)",
	})
	m.queueEnqueue = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_total", Help: "Jobs enqueued",
	})
	m.queueDequeue = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_dequeue_total", Help: "Jobs dequeued",
	})
	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_errors_total", Help: "Jobs refused by a full or closed queue",
	})
	m.queueWait = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "queue_wait_milliseconds",
		Help:    "Time a job spent queued before a worker took it",
		Buckets: m.histogramBuckets,
	})
	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count", Help: "Workers in the pool",
	})
	m.workerActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_active_count", Help: "Workers currently running a job",
	})
	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "worker_processing_latency_milliseconds",
		Help:    "Time a worker spent on one job",
		Buckets: m.histogramBuckets,
	})
	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_errors_total", Help: "Jobs that finished with an error",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total", Help: "HTTP requests",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_milliseconds",
		Help:    "HTTP request duration",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "errors_by_component_total", Help: "Errors by component and type",
	}, []string{"component", "error_type"})
	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "errors_by_endpoint_total", Help: "Errors by endpoint, method and type",
	}, []string{"endpoint", "method", "error_type"})
}

// RecordRecommendation counts one served recommendation; outcome is "ok" or an error kind.
func RecordRecommendation(outcome string) {
	globalManager.recommendations.WithLabelValues(outcome).Inc()
}

// RecordRejections adds n filter rejections for reason.
func RecordRejections(reason string, n int) {
	globalManager.rejections.WithLabelValues(reason).Add(float64(n))
}

// RecordCandidates observes how many lures survived a stage.
func RecordCandidates(stage string, n int) {
	globalManager.candidates.WithLabelValues(stage).Observe(float64(n))
}

// RecordEngineLatency observes engine latency in milliseconds.
func RecordEngineLatency(latencyMs float64) {
	globalManager.engineLatency.Observe(latencyMs)
}

// RecordLinesFilled observes the number of positions of a spread.
func RecordLinesFilled(n int) {
	globalManager.linesFilled.Observe(float64(n))
}

func RecordCacheHit()  { globalManager.cacheHits.Inc() }
func RecordCacheMiss() { globalManager.cacheMisses.Inc() }

// UpdateCacheSize sets the number of cached spreads.
func UpdateCacheSize(n int) {
	globalManager.cacheSize.Set(float64(n))
}

// UpdateCatalog sets the size and version of the active catalog.
func UpdateCatalog(size int, version uint64) {
	globalManager.catalogSize.Set(float64(size))
	globalManager.catalogVersion.Set(float64(version))
}

// RecordCatalogReload counts a reload attempt; status is "ok" or "error".
func RecordCatalogReload(status string) {
	globalManager.catalogReloads.WithLabelValues(status).Inc()
}

// RecordCatalogLookupLatency observes a catalog read in milliseconds.
func RecordCatalogLookupLatency(latencyMs float64) {
	globalManager.catalogLookup.Observe(latencyMs)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue fill ratio.
func UpdateQueueUtilization(ratio float64) {
	globalManager.queueUtilization.Set(ratio)
}

func RecordQueueEnqueue()      { globalManager.queueEnqueue.Inc() }
func RecordQueueDequeue()      { globalManager.queueDequeue.Inc() }
func RecordQueueEnqueueError() { globalManager.queueEnqueueErrors.Inc() }

// RecordQueueWait observes how long a job waited in milliseconds.
func RecordQueueWait(latencyMs float64) {
	globalManager.queueWait.Observe(latencyMs)
}

// UpdateWorkerCount sets the pool size.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of busy workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActive.Set(float64(count))
}

// RecordWorkerProcessingLatency observes one job in milliseconds.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordWorkerError counts a failed job.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent counts an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint counts an error with endpoint, method and type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

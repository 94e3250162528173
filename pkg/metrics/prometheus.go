package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the dashboard.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Dataset
	datasetLoads       *prometheus.CounterVec
	datasetLoadLatency prometheus.Histogram
	datasetPlayers     *prometheus.GaugeVec
	datasetDuplicates  prometheus.Counter

	// Percentile engine
	percentileComputations *prometheus.CounterVec
	percentileLatency      prometheus.Histogram
	percentileNullValues   *prometheus.CounterVec

	// Chart renderer
	chartRenders        *prometheus.CounterVec
	chartRenderLatency  *prometheus.HistogramVec
	chartSkippedMetrics prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// Smoke checks
	smokeChecks *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "slugger",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.datasetLoads = auto.NewCounterVec(
		m.counterOpts("dataset_loads_total", "Dataset load attempts by result"),
		[]string{"result"},
	)
	m.datasetLoadLatency = auto.NewHistogram(
		m.histogramOpts("dataset_load_latency_milliseconds", "Dataset load latency in milliseconds", m.histogramBuckets),
	)
	m.datasetPlayers = auto.NewGaugeVec(
		m.gaugeOpts("dataset_players", "Players in the loaded dataset by population"),
		[]string{"population"},
	)
	m.datasetDuplicates = auto.NewCounter(
		m.counterOpts("dataset_duplicate_rows_total", "Dataset rows dropped because the player name was already seen"),
	)

	m.percentileComputations = auto.NewCounterVec(
		m.counterOpts("percentile_computations_total", "Percentile computations by population"),
		[]string{"population"},
	)
	m.percentileLatency = auto.NewHistogram(
		m.histogramOpts("percentile_latency_milliseconds", "Percentile computation latency in milliseconds", m.histogramBuckets),
	)
	m.percentileNullValues = auto.NewCounterVec(
		m.counterOpts("percentile_null_values_total", "Null percentiles produced by metric"),
		[]string{"metric"},
	)

	m.chartRenders = auto.NewCounterVec(
		m.counterOpts("chart_renders_total", "Charts rendered by output format"),
		[]string{"format"},
	)
	m.chartRenderLatency = auto.NewHistogramVec(
		m.histogramOpts("chart_render_latency_milliseconds", "Chart render latency in milliseconds", m.histogramBuckets),
		[]string{"format"},
	)
	m.chartSkippedMetrics = auto.NewCounter(
		m.counterOpts("chart_skipped_metrics_total", "Metrics left off a chart because the value or percentile was null"),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.smokeChecks = auto.NewCounterVec(
		m.counterOpts("smoke_checks_total", "Smoke check results by check name"),
		[]string{"check", "result"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Number of goroutines"),
	)
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// RecordDatasetLoad records a dataset load attempt and its latency.
func RecordDatasetLoad(ok bool, latencyMs float64) {
	result := "success"
	if !ok {
		result = "failure"
	}
	globalManager.datasetLoads.WithLabelValues(result).Inc()
	globalManager.datasetLoadLatency.Observe(latencyMs)
}

// UpdateDatasetPlayers sets the player count of a population.
func UpdateDatasetPlayers(population string, count int) {
	globalManager.datasetPlayers.WithLabelValues(population).Set(float64(count))
}

// RecordDatasetDuplicates adds dropped duplicate rows.
func RecordDatasetDuplicates(n int) {
	globalManager.datasetDuplicates.Add(float64(n))
}

// RecordPercentileComputation records one percentile pass over a population.
func RecordPercentileComputation(population string, latencyMs float64) {
	globalManager.percentileComputations.WithLabelValues(population).Inc()
	globalManager.percentileLatency.Observe(latencyMs)
}

// RecordPercentileNull records a null percentile for metric.
func RecordPercentileNull(metric string) {
	globalManager.percentileNullValues.WithLabelValues(metric).Inc()
}

// RecordChartRender records a chart render in format.
func RecordChartRender(format string, latencyMs float64) {
	globalManager.chartRenders.WithLabelValues(format).Inc()
	globalManager.chartRenderLatency.WithLabelValues(format).Observe(latencyMs)
}

// RecordChartSkippedMetrics adds metrics omitted from a chart.
func RecordChartSkippedMetrics(n int) {
	globalManager.chartSkippedMetrics.Add(float64(n))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordSmokeCheck records the outcome of a named smoke check.
func RecordSmokeCheck(check string, ok bool) {
	result := "pass"
	if !ok {
		result = "fail"
	}
	globalManager.smokeChecks.WithLabelValues(check, result).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package metrics provides the centralized Prometheus metrics registry for the PickPulse service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pickpulse"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	UpstreamFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_fetches_total",
		Help:      "Total number of upstream model slate fetches by status",
	}, []string{"status"})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of upstream circuit breaker trips",
	})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by route and status",
	}, []string{"method", "route", "status"})
)

// Gauge metrics
var (
	ReportCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "report_cache_hit_ratio",
		Help:      "Hit ratio of the performance report cache",
	})
	ReportCacheItems = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "report_cache_items",
		Help:      "Number of performance reports currently cached",
	})
)

// Histogram metrics
var (
	UpstreamFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_fetch_duration_seconds",
		Help:      "Duration of upstream model slate fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register service metrics
		registry.MustRegister(UpstreamFetchesTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)
		registry.MustRegister(HTTPRequestsTotal)
		registry.MustRegister(ReportCacheHitRatio)
		registry.MustRegister(ReportCacheItems)
		registry.MustRegister(UpstreamFetchDuration)
		registry.MustRegister(HTTPRequestDuration)

		// Register decision metrics
		registry.MustRegister(SlatesBuiltTotal)
		registry.MustRegister(PicksByTierTotal)
		registry.MustRegister(CandidatesSkippedTotal)
		registry.MustRegister(PickConfidence)
		registry.MustRegister(SlateBuildDuration)

		// Register grading metrics
		registry.MustRegister(GradingRunsTotal)
		registry.MustRegister(GradedRecordsByBucketTotal)
		registry.MustRegister(GradedRecordsExcludedTotal)
		registry.MustRegister(ReportWinPercentage)
		registry.MustRegister(GradingDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordUpstreamFetch records an upstream fetch and its latency.
func RecordUpstreamFetch(status string, durationSeconds float64) {
	UpstreamFetchesTotal.WithLabelValues(status).Inc()
	UpstreamFetchDuration.Observe(durationSeconds)
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(method, route, status string, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}

// UpdateReportCache updates the report cache gauges.
func UpdateReportCache(hitRatio float64, items int) {
	ReportCacheHitRatio.Set(hitRatio)
	ReportCacheItems.Set(float64(items))
}

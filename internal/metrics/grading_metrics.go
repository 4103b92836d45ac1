// Package metrics defines grading metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	GradingRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grading_runs_total",
		Help:      "Total number of performance aggregations by source and range",
	}, []string{"source", "range"})

	GradedRecordsByBucketTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graded_records_total",
		Help:      "Total number of graded records aggregated by confidence bucket",
	}, []string{"bucket"})

	GradedRecordsExcludedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graded_records_excluded_total",
		Help:      "Total number of graded records excluded by reason",
	}, []string{"reason"})

	ReportWinPercentage = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "report_win_percentage",
		Help:      "Overall win percentage of the latest report per source and range",
	}, []string{"source", "range"})

	GradingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "grading_duration_seconds",
		Help:      "Duration of performance aggregations in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
)

// RecordGradingRun records a finished aggregation.
func RecordGradingRun(source, rangeKey string, winPercentage, durationSeconds float64) {
	GradingRunsTotal.WithLabelValues(source, rangeKey).Inc()
	ReportWinPercentage.WithLabelValues(source, rangeKey).Set(winPercentage)
	GradingDuration.Observe(durationSeconds)
}

// RecordBucketRecords adds aggregated records for a bucket.
func RecordBucketRecords(bucket string, count int) {
	if count <= 0 {
		return
	}
	GradedRecordsByBucketTotal.WithLabelValues(bucket).Add(float64(count))
}

// RecordExcludedRecords adds excluded records for a reason.
func RecordExcludedRecords(reason string, count int) {
	if count <= 0 {
		return
	}
	GradedRecordsExcludedTotal.WithLabelValues(reason).Add(float64(count))
}

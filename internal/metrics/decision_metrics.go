// Package metrics defines decision-engine metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Decision counter vectors
var (
	SlatesBuiltTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slates_built_total",
		Help:      "Total number of decision slates built by origin",
	}, []string{"origin"})

	PicksByTierTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "picks_total",
		Help:      "Total number of picks placed on slates by tier",
	}, []string{"tier"})

	CandidatesSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "candidates_skipped_total",
		Help:      "Total number of market entries skipped by reason",
	}, []string{"reason"})
)

// Decision histogram vectors
var (
	PickConfidence = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pick_confidence",
		Help:      "Calibrated confidence of slate picks",
		Buckets:   []float64{0.55, 0.60, 0.65, 0.70, 0.75, 0.80, 0.85, 0.90, 0.95},
	}, []string{"league"})

	SlateBuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "slate_build_duration_seconds",
		Help:      "Duration of decision slate builds in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})
)

// RecordSlateBuilt records a built slate.
func RecordSlateBuilt(origin string, durationSeconds float64) {
	SlatesBuiltTotal.WithLabelValues(origin).Inc()
	SlateBuildDuration.Observe(durationSeconds)
}

// RecordPick records one pick placed on a slate. league must come from a
// bounded set; callers map unknown leagues to a single label.
func RecordPick(tier, league string, confidence float64) {
	PicksByTierTotal.WithLabelValues(tier).Inc()
	PickConfidence.WithLabelValues(league).Observe(confidence)
}

// RecordCandidateSkipped records a skipped market entry.
func RecordCandidateSkipped(reason string) {
	CandidatesSkippedTotal.WithLabelValues(reason).Inc()
}

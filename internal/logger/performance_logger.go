// Package logger provides performance-report logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// PerformanceLogger provides dedicated logging for grading and reports.
type PerformanceLogger struct {
	*logrus.Entry
}

// NewPerformanceLogger creates a new performance logger.
func NewPerformanceLogger(baseLogger *logrus.Logger) *PerformanceLogger {
	return &PerformanceLogger{
		Entry: baseLogger.WithField("component", "performance"),
	}
}

// LogReportComputed logs a finished aggregation.
func (pl *PerformanceLogger) LogReportComputed(source, rangeKey string, records, excluded, sports int, percentage, units float64, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"source":      source,
		"range":       rangeKey,
		"records":     records,
		"excluded":    excluded,
		"sports":      sports,
		"percentage":  percentage,
		"units":       units,
		"duration_ms": durationMs,
	}).Info("Performance report computed")
}

// LogRecordsExcluded logs the records left out of a report.
func (pl *PerformanceLogger) LogRecordsExcluded(source, rangeKey string, reasons map[string]int) {
	if len(reasons) == 0 {
		return
	}
	pl.WithFields(logrus.Fields{
		"source":  source,
		"range":   rangeKey,
		"reasons": reasons,
	}).Warn("Graded records excluded from report")
}

// LogCacheRefresh logs a scheduled cache warm-up.
func (pl *PerformanceLogger) LogCacheRefresh(refreshed, failed int, durationMs float64) {
	entry := pl.WithFields(logrus.Fields{
		"event_type":  "cache_refresh",
		"refreshed":   refreshed,
		"failed":      failed,
		"duration_ms": durationMs,
	})
	if failed > 0 {
		entry.Warn("Performance cache refresh finished with failures")
		return
	}
	entry.Info("Performance cache refreshed")
}

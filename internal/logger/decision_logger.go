// Package logger provides decision-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// DecisionLogger provides dedicated logging for slate building.
type DecisionLogger struct {
	*logrus.Entry
}

// NewDecisionLogger creates a new decision logger.
func NewDecisionLogger(baseLogger *logrus.Logger) *DecisionLogger {
	return &DecisionLogger{
		Entry: baseLogger.WithField("component", "decision"),
	}
}

// LogSlateBuilt logs a completed slate.
func (dl *DecisionLogger) LogSlateBuilt(date, slateID string, games, candidates, skipped int, hasTopPick bool, strongLeans, watchlist int, durationMs float64) {
	dl.WithFields(logrus.Fields{
		"date":         date,
		"slate_id":     slateID,
		"games":        games,
		"candidates":   candidates,
		"skipped":      skipped,
		"has_top_pick": hasTopPick,
		"strong_leans": strongLeans,
		"watchlist":    watchlist,
		"duration_ms":  durationMs,
	}).Info("Decision slate built")
}

// LogCandidateSkipped logs one market entry left off the slate.
func (dl *DecisionLogger) LogCandidateSkipped(sport, gameID, market, reason string) {
	dl.WithFields(logrus.Fields{
		"sport":   sport,
		"game_id": gameID,
		"market":  market,
		"reason":  reason,
	}).Debug("Candidate skipped")
}

// LogUpstreamFetch logs a model slate fetch.
func (dl *DecisionLogger) LogUpstreamFetch(day string, sports, games int, durationMs float64, err error) {
	entry := dl.WithFields(logrus.Fields{
		"day":         day,
		"sports":      sports,
		"games":       games,
		"duration_ms": durationMs,
	})
	if err != nil {
		entry.WithError(err).Error("Upstream slate fetch failed")
		return
	}
	entry.Info("Upstream slate fetched")
}

// Package grading rolls settled picks up into win/loss tallies by sport,
// market and confidence bucket.
package grading

import "github.com/yourusername/pickpulse/internal/models"

// Thresholds holds the minimum confidence for each bucket when a record
// carries no usable tier.
type Thresholds struct {
	Top    float64
	High   float64
	Medium float64
}

// DefaultThresholds returns the production confidence cut-offs
func DefaultThresholds() Thresholds {
	return Thresholds{Top: 0.80, High: 0.65, Medium: 0.55}
}

// Stage tries to place a record in a bucket. ok is false when the stage has
// nothing to say and the next stage should run.
type Stage func(rec models.GradedPick) (bucket models.Bucket, ok bool)

// TierStage maps the stored decision tier to a bucket
func TierStage(rec models.GradedPick) (models.Bucket, bool) {
	if rec.Tier == nil {
		return models.BucketNone, false
	}
	switch *rec.Tier {
	case models.TierTopPick:
		return models.BucketTop, true
	case models.TierStrongLean:
		return models.BucketHigh, true
	case models.TierWatchlist:
		return models.BucketMedium, true
	default:
		return models.BucketNone, false
	}
}

// ConfidenceStage buckets by stored confidence
func (t Thresholds) ConfidenceStage(rec models.GradedPick) (models.Bucket, bool) {
	if rec.Confidence == nil {
		return models.BucketNone, false
	}
	c := *rec.Confidence
	switch {
	case c >= t.Top:
		return models.BucketTop, true
	case c >= t.High:
		return models.BucketHigh, true
	case c >= t.Medium:
		return models.BucketMedium, true
	default:
		return models.BucketNone, false
	}
}

// Classifier runs its stages in order and returns the first answer.
// The tier stage always runs before the confidence stage.
type Classifier struct {
	stages []Stage
}

// NewClassifier creates the tier-then-confidence classifier
func NewClassifier(th Thresholds) Classifier {
	return Classifier{stages: []Stage{TierStage, th.ConfidenceStage}}
}

// Classify returns the record's bucket, or BucketNone
func (c Classifier) Classify(rec models.GradedPick) models.Bucket {
	for _, stage := range c.stages {
		if bucket, ok := stage(rec); ok {
			return bucket
		}
	}
	return models.BucketNone
}

package grading

import (
	"sort"
	"strings"

	"github.com/yourusername/pickpulse/internal/models"
)

// Exclusion reasons reported in Report.Excluded
const (
	ExcludeInvalidResult = "invalid_result"
	ExcludeMissingSport  = "missing_sport"
)

// Aggregator builds performance reports from graded picks
type Aggregator struct {
	classifier Classifier
}

// NewAggregator creates an aggregator with the given bucket thresholds
func NewAggregator(th Thresholds) *Aggregator {
	return &Aggregator{classifier: NewClassifier(th)}
}

// Aggregate builds a report with the default thresholds
func Aggregate(records []models.GradedPick) models.Report {
	return NewAggregator(DefaultThresholds()).Aggregate(records)
}

// Aggregate rolls the records up. Records that cannot be graded are left
// out and counted in Excluded; nothing here fails.
func (a *Aggregator) Aggregate(records []models.GradedPick) models.Report {
	var (
		topPick  tally
		buckets  = map[models.Bucket]*tally{models.BucketTop: {}, models.BucketHigh: {}, models.BucketMedium: {}}
		sports   = make(map[string]*sportTally)
		included = make([]models.GradedPick, 0, len(records))
		excluded = models.ExclusionSummary{Reasons: map[string]int{}}
	)

	for _, rec := range records {
		if reason, ok := checkRecord(rec); !ok {
			excluded.Records++
			excluded.Reasons[reason]++
			continue
		}
		included = append(included, rec)

		if bucket := a.classifier.Classify(rec); bucket != models.BucketNone {
			buckets[bucket].add(rec.Result, rec.Units)
		} else {
			excluded.Unbucketed++
		}

		if rec.Tier != nil && *rec.Tier == models.TierTopPick {
			topPick.add(rec.Result, rec.Units)
		}

		sport, ok := sports[rec.Sport]
		if !ok {
			sport = &sportTally{}
			sports[rec.Sport] = sport
		}
		sport.add(rec)
	}

	keys := make([]string, 0, len(sports))
	for key := range sports {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var overall tally
	sportTallies := make([]models.SportTally, 0, len(keys))
	for _, key := range keys {
		s := sports[key]
		overall.merge(s.overall)
		sportTallies = append(sportTallies, s.finalize(key))
	}

	return models.Report{
		Overall: overall.finalize(false),
		TopPick: topPick.finalize(true),
		ConfidenceBuckets: models.BucketTallies{
			Top:    buckets[models.BucketTop].finalize(true),
			High:   buckets[models.BucketHigh].finalize(true),
			Medium: buckets[models.BucketMedium].finalize(true),
		},
		Sports:      sportTallies,
		Calibration: Calibration(included),
		Risk:        Risk(included),
		Excluded:    excluded,
	}
}

func checkRecord(rec models.GradedPick) (string, bool) {
	if !rec.Result.IsGraded() {
		return ExcludeInvalidResult, false
	}
	if strings.TrimSpace(rec.Sport) == "" {
		return ExcludeMissingSport, false
	}
	return "", true
}

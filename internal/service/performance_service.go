package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickpulse/internal/cache"
	"github.com/yourusername/pickpulse/internal/grading"
	"github.com/yourusername/pickpulse/internal/logger"
	"github.com/yourusername/pickpulse/internal/metrics"
	"github.com/yourusername/pickpulse/internal/models"
	"github.com/yourusername/pickpulse/internal/repository"
)

// PerformanceService produces performance reports
type PerformanceService struct {
	aggregator  *grading.Aggregator
	repo        repository.GradedPickRepository
	cache       *cache.ReportCache
	seasonStart time.Time
	now         func() time.Time
	logger      *logger.PerformanceLogger
}

// PerformanceOption configures a PerformanceService
type PerformanceOption func(*PerformanceService)

// WithPerformanceClock replaces the wall clock used for rolling windows
func WithPerformanceClock(now func() time.Time) PerformanceOption {
	return func(s *PerformanceService) {
		s.now = now
	}
}

// NewPerformanceService creates a new performance service. reportCache may
// be nil to disable caching.
func NewPerformanceService(
	aggregator *grading.Aggregator,
	repo repository.GradedPickRepository,
	reportCache *cache.ReportCache,
	seasonStart time.Time,
	log *logrus.Logger,
	opts ...PerformanceOption,
) *PerformanceService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &PerformanceService{
		aggregator:  aggregator,
		repo:        repo,
		cache:       reportCache,
		seasonStart: seasonStart,
		now:         time.Now,
		logger:      logger.NewPerformanceLogger(log),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Aggregate grades caller supplied records
func (s *PerformanceService) Aggregate(req models.PerformanceRequest) models.Report {
	start := time.Now()
	report := s.aggregator.Aggregate(req.Records)
	s.observe(req.Source, req.Range, len(req.Records), report, start)
	return report
}

// Report returns the report for a source and range built from stored
// picks, serving it from the cache when possible.
func (s *PerformanceService) Report(ctx context.Context, source, rangeKey string) (models.Report, error) {
	key := cache.ReportKey{Source: source, Range: rangeKey}
	if s.cache != nil {
		if report, ok := s.cache.Get(key); ok {
			return report, nil
		}
	}
	return s.load(ctx, key)
}

// Refresh rebuilds every source and range report into the cache
func (s *PerformanceService) Refresh(ctx context.Context) (refreshed, failed int) {
	start := time.Now()
	for _, source := range models.Sources {
		for _, rangeKey := range models.Ranges {
			if ctx.Err() != nil {
				failed++
				continue
			}
			if _, err := s.load(ctx, cache.ReportKey{Source: source, Range: rangeKey}); err != nil {
				s.logger.WithError(err).WithFields(logrus.Fields{
					"source": source,
					"range":  rangeKey,
				}).Warn("Failed to refresh performance report")
				failed++
				continue
			}
			refreshed++
		}
	}
	s.logger.LogCacheRefresh(refreshed, failed, msSince(start))
	return refreshed, failed
}

func (s *PerformanceService) load(ctx context.Context, key cache.ReportKey) (models.Report, error) {
	since, err := Since(key.Range, s.now(), s.seasonStart)
	if err != nil {
		return models.Report{}, err
	}

	records, err := s.repo.ListGraded(ctx, key.Source, since)
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to load graded picks: %w", err)
	}

	start := time.Now()
	report := s.aggregator.Aggregate(records)
	s.observe(key.Source, key.Range, len(records), report, start)

	if s.cache != nil {
		s.cache.Set(key, report)
	}
	return report, nil
}

func (s *PerformanceService) observe(source, rangeKey string, records int, report models.Report, start time.Time) {
	elapsed := time.Since(start)

	buckets := report.ConfidenceBuckets
	metrics.RecordBucketRecords(string(models.BucketTop), buckets.Top.Picks)
	metrics.RecordBucketRecords(string(models.BucketHigh), buckets.High.Picks)
	metrics.RecordBucketRecords(string(models.BucketMedium), buckets.Medium.Picks)
	for reason, count := range report.Excluded.Reasons {
		metrics.RecordExcludedRecords(reason, count)
	}
	metrics.RecordGradingRun(source, rangeKey, report.Overall.Percentage, elapsed.Seconds())

	s.logger.LogRecordsExcluded(source, rangeKey, report.Excluded.Reasons)
	s.logger.LogReportComputed(
		source,
		rangeKey,
		records,
		report.Excluded.Records,
		len(report.Sports),
		report.Overall.Percentage,
		report.Overall.Units,
		float64(elapsed.Microseconds())/1000,
	)
}

// Since returns the start of a rolling window. 7d and 30d count back from
// now; season starts at seasonStart.
func Since(rangeKey string, now, seasonStart time.Time) (time.Time, error) {
	switch rangeKey {
	case models.Range7Days:
		return now.AddDate(0, 0, -7), nil
	case models.Range30Days:
		return now.AddDate(0, 0, -30), nil
	case models.RangeSeason:
		return seasonStart, nil
	default:
		return time.Time{}, models.NewInputError("range", fmt.Sprintf("must be one of 7d, 30d, season, got %q", rangeKey))
	}
}

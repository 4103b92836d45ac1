// Package scheduler runs periodic background jobs on cron schedules.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ErrNoJobs is returned by Start when nothing has been scheduled
var ErrNoJobs = errors.New("no jobs scheduled")

// ReportRefresher rebuilds cached performance reports
type ReportRefresher interface {
	Refresh(ctx context.Context) (refreshed, failed int)
}

// Scheduler manages scheduled report refresh jobs
type Scheduler struct {
	cron       *cron.Cron
	refresher  ReportRefresher
	logger     *logrus.Logger
	jobTimeout time.Duration

	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a new scheduler
func NewScheduler(refresher ReportRefresher, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		refresher:  refresher,
		logger:     logger,
		jobTimeout: 5 * time.Minute,
		jobIDs:     make([]cron.EntryID, 0),
	}
}

// ScheduleReportRefresh adds a job that refreshes every cached report on
// the given cron expression.
func (s *Scheduler) ScheduleReportRefresh(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, s.RunRefresh)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("schedule", cronExpression).Info("Scheduled report refresh job")
	return nil
}

// RunRefresh performs one refresh immediately
func (s *Scheduler) RunRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	refreshed, failed := s.refresher.Refresh(ctx)
	entry := s.logger.WithFields(logrus.Fields{
		"refreshed": refreshed,
		"failed":    failed,
	})
	if failed > 0 {
		entry.Warn("Scheduled report refresh finished with failures")
		return
	}
	entry.Debug("Scheduled report refresh finished")
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return ErrNoJobs
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the time of the next scheduled job run
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	var next time.Time
	for _, id := range s.jobIDs {
		entry := s.cron.Entry(id)
		if !entry.Valid() {
			continue
		}
		if next.IsZero() || entry.Next.Before(next) {
			next = entry.Next
		}
	}
	return next
}

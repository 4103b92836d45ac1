// Package service wires the pure decision and grading cores to logging,
// metrics, caching and I/O.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickpulse/internal/decision"
	"github.com/yourusername/pickpulse/internal/logger"
	"github.com/yourusername/pickpulse/internal/metrics"
	"github.com/yourusername/pickpulse/internal/models"
	"github.com/yourusername/pickpulse/internal/upstream"
)

// Slate origins reported in metrics
const (
	OriginRequest  = "request"
	OriginUpstream = "upstream"
)

// DecisionService builds decision slates
type DecisionService struct {
	engine  *decision.Engine
	fetcher upstream.SlateFetcher
	logger  *logger.DecisionLogger
}

// NewDecisionService creates a new decision service
func NewDecisionService(engine *decision.Engine, fetcher upstream.SlateFetcher, log *logrus.Logger) *DecisionService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DecisionService{
		engine:  engine,
		fetcher: fetcher,
		logger:  logger.NewDecisionLogger(log),
	}
}

// BuildSlate builds a slate from a caller supplied request
func (s *DecisionService) BuildSlate(ctx context.Context, req models.SlateRequest) models.Slate {
	return s.build(req, OriginRequest)
}

// BuildFromUpstream fetches the model slate for day and builds from it
func (s *DecisionService) BuildFromUpstream(ctx context.Context, day string) (models.Slate, error) {
	date := s.engine.Date(day)

	start := time.Now()
	slate, err := s.fetcher.FetchSlate(ctx, date)
	s.logger.LogUpstreamFetch(date, len(slate), slate.GameCount(), msSince(start), err)
	if err != nil {
		return models.Slate{}, fmt.Errorf("failed to fetch model slate: %w", err)
	}

	return s.build(models.SlateRequest{Day: date, Slate: slate}, OriginUpstream), nil
}

func (s *DecisionService) build(req models.SlateRequest, origin string) models.Slate {
	start := time.Now()
	result := s.engine.Build(req)
	elapsed := time.Since(start)

	for _, skip := range result.Skipped {
		metrics.RecordCandidateSkipped(string(skip.Reason))
		s.logger.LogCandidateSkipped(skip.Sport, skip.GameID, string(skip.Market), string(skip.Reason))
	}
	cfg := s.engine.Config()
	for _, pick := range result.Slate.Picks() {
		metrics.RecordPick(string(pick.Tier), cfg.LeagueLabel(pick.League), pick.Confidence)
	}
	metrics.RecordSlateBuilt(origin, elapsed.Seconds())

	slate := result.Slate
	s.logger.LogSlateBuilt(
		slate.Date,
		slate.Meta.SlateID.String(),
		req.Slate.GameCount(),
		slate.Meta.Candidates,
		slate.Meta.Skipped,
		slate.TopPick != nil,
		len(slate.StrongLeans),
		len(slate.Watchlist),
		float64(elapsed.Microseconds())/1000,
	)
	return slate
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

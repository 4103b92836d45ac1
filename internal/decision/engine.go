// Package decision turns per-game model output into a ranked, deduplicated
// and calibrated slate. Everything here is pure; the wall clock is injected.
package decision

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/pickpulse/internal/models"
)

const dateLayout = "2006-01-02"

// slateNotes are attached verbatim to every slate
var slateNotes = []string{
	"one pick per game across moneyline, spread and total",
	"ranked by model score; confidence is capped per league",
}

// Engine builds decision slates
type Engine struct {
	cfg Config
	now func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces the wall clock used for generated_at and "today"
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine with the given configuration
func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Date resolves day against the engine clock
func (e *Engine) Date(day string) string {
	return ResolveDate(day, e.now())
}

// Result is a built slate together with the entries left out of it
type Result struct {
	Slate   models.Slate
	Skipped []Skip
}

// Build extracts, deduplicates, ranks, tiers and calibrates the request
func (e *Engine) Build(req models.SlateRequest) Result {
	now := e.now().UTC()
	date := ResolveDate(req.Day, now)

	candidates, skipped := Split(Extract(req.Slate))
	tiers := e.cfg.Tier(Rank(Dedupe(candidates)))

	slate := models.Slate{
		Date:        date,
		GeneratedAt: now,
		StrongLeans: e.calibrateAll(tiers.StrongLeans, models.TierStrongLean),
		Watchlist:   e.calibrateAll(tiers.Watchlist, models.TierWatchlist),
		Meta: models.SlateMeta{
			Version:    e.cfg.Version,
			SlateID:    SlateID(date, e.cfg.Version),
			Notes:      append([]string(nil), slateNotes...),
			Candidates: len(candidates),
			Skipped:    len(skipped),
		},
	}
	if tiers.TopPick != nil {
		top := e.calibrate(*tiers.TopPick, models.TierTopPick)
		slate.TopPick = &top
	}

	return Result{Slate: slate, Skipped: skipped}
}

func (e *Engine) calibrate(c models.Candidate, tier models.Tier) models.DecisionPick {
	return models.DecisionPick{
		GameID:     c.GameID,
		Sport:      c.Sport,
		League:     c.League,
		StartTime:  c.StartTime,
		Market:     c.Market,
		Side:       c.Side,
		Confidence: e.cfg.Calibrate(c.Score, c.League),
		Tier:       tier,
		Rationale:  c.Rationale,
	}
}

func (e *Engine) calibrateAll(candidates []models.Candidate, tier models.Tier) []models.DecisionPick {
	picks := make([]models.DecisionPick, 0, len(candidates))
	for _, c := range candidates {
		picks = append(picks, e.calibrate(c, tier))
	}
	return picks
}

// ResolveDate maps "today" or an empty day to the UTC date of now and
// passes anything else through unchanged.
func ResolveDate(day string, now time.Time) string {
	day = strings.TrimSpace(day)
	if day == "" || strings.EqualFold(day, "today") {
		return now.UTC().Format(dateLayout)
	}
	return day
}

// SlateID derives a stable identifier for the slate of a date and version
func SlateID(date, version string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("pickpulse:slate:"+date+":"+version))
}

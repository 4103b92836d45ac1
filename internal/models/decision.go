package models

import (
	"time"

	"github.com/google/uuid"
)

// Tier represents the recommendation strength assigned at decision time
type Tier string

const (
	TierTopPick    Tier = "top_pick"
	TierStrongLean Tier = "strong_lean"
	TierWatchlist  Tier = "watchlist"
)

// Candidate is one market's recommendation for one game before calibration
type Candidate struct {
	GameID    string
	Sport     string
	League    string
	StartTime string
	Market    Market
	Side      string
	Score     float64
	Rationale []string
}

// DecisionPick is a calibrated candidate placed on the slate
type DecisionPick struct {
	GameID     string   `json:"game_id"`
	Sport      string   `json:"sport"`
	League     string   `json:"league"`
	StartTime  string   `json:"start_time,omitempty"`
	Market     Market   `json:"market"`
	Side       string   `json:"side"`
	Confidence float64  `json:"confidence"`
	Tier       Tier     `json:"tier"`
	Rationale  []string `json:"rationale"`
}

// SlateMeta carries versioning and bookkeeping for a slate
type SlateMeta struct {
	Version    string    `json:"version"`
	SlateID    uuid.UUID `json:"slate_id"`
	Notes      []string  `json:"notes"`
	Candidates int       `json:"candidates"`
	Skipped    int       `json:"skipped"`
}

// Slate is the ranked, deduplicated decision output for one day
type Slate struct {
	Date        string         `json:"date"`
	GeneratedAt time.Time      `json:"generated_at"`
	TopPick     *DecisionPick  `json:"top_pick"`
	StrongLeans []DecisionPick `json:"strong_leans"`
	Watchlist   []DecisionPick `json:"watchlist"`
	Meta        SlateMeta      `json:"meta"`
}

// Picks returns every pick on the slate, top pick first
func (s *Slate) Picks() []DecisionPick {
	picks := make([]DecisionPick, 0, 1+len(s.StrongLeans)+len(s.Watchlist))
	if s.TopPick != nil {
		picks = append(picks, *s.TopPick)
	}
	picks = append(picks, s.StrongLeans...)
	picks = append(picks, s.Watchlist...)
	return picks
}

package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Result represents the settled outcome of a pick
type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultPush Result = "push"
)

// IsGraded reports whether r is one of the settled outcomes
func (r Result) IsGraded() bool {
	return r == ResultWin || r == ResultLoss || r == ResultPush
}

// Bucket represents a confidence bucket used in performance reporting
type Bucket string

const (
	BucketNone   Bucket = ""
	BucketTop    Bucket = "top"
	BucketHigh   Bucket = "high"
	BucketMedium Bucket = "medium"
)

// Performance sources and rolling windows
const (
	SourceLive     = "live"
	SourceBacktest = "backtest"

	Range7Days  = "7d"
	Range30Days = "30d"
	RangeSeason = "season"
)

// Sources lists the pick sources reports are produced for
var Sources = []string{SourceLive, SourceBacktest}

// Ranges lists the supported rolling windows
var Ranges = []string{Range7Days, Range30Days, RangeSeason}

// GradedPick is one historical, settled pick
type GradedPick struct {
	ID         *uuid.UUID `json:"id,omitempty" db:"id"`
	Sport      string     `json:"sport" db:"sport"`
	Market     string     `json:"market" db:"market"`
	Result     Result     `json:"result" db:"result"`
	Tier       *Tier      `json:"tier" db:"tier"`
	Confidence *float64   `json:"confidence" db:"confidence"`
	Units      float64    `json:"units" db:"units"`
}

// UnmarshalJSON decodes a graded pick without failing on field types.
// Fields of the wrong type are left empty and the record is later excluded
// or classified by whatever remains.
func (g *GradedPick) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         json.RawMessage `json:"id"`
		Sport      json.RawMessage `json:"sport"`
		Market     json.RawMessage `json:"market"`
		Result     json.RawMessage `json:"result"`
		Tier       json.RawMessage `json:"tier"`
		Confidence json.RawMessage `json:"confidence"`
		Units      json.RawMessage `json:"units"`
	}
	*g = GradedPick{}
	if isNull(data) {
		return nil
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	if id, ok := rawString(raw.ID); ok {
		if parsed, err := uuid.Parse(id); err == nil {
			g.ID = &parsed
		}
	}
	g.Sport, _ = rawString(raw.Sport)
	g.Market, _ = rawString(raw.Market)
	if result, ok := rawString(raw.Result); ok {
		g.Result = Result(result)
	}
	if tier, ok := rawString(raw.Tier); ok {
		t := Tier(tier)
		g.Tier = &t
	}
	if confidence, ok := rawNumber(raw.Confidence); ok {
		g.Confidence = &confidence
	}
	g.Units, _ = rawNumber(raw.Units)
	return nil
}

// PerformanceRequest is the grading aggregator input
type PerformanceRequest struct {
	Source  string       `json:"source" validate:"required,oneof=live backtest"`
	Range   string       `json:"range" validate:"required,oneof=7d 30d season"`
	Records []GradedPick `json:"records"`
}

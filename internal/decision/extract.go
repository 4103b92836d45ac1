package decision

import (
	"strings"

	"github.com/yourusername/pickpulse/internal/models"
)

// MaxRationale is the number of rationale lines kept per candidate
const MaxRationale = 5

// SkipReason explains why a market entry produced no candidate
type SkipReason string

const (
	SkipNoBet            SkipReason = "no_bet"
	SkipInactiveStatus   SkipReason = "inactive_status"
	SkipMissingSelection SkipReason = "missing_selection"
	SkipMissingScore     SkipReason = "missing_score"
	SkipMalformedMarket  SkipReason = "malformed_market"
	SkipMalformedGame    SkipReason = "malformed_game"
	SkipMissingGameID    SkipReason = "missing_game_id"
)

// Skip records one excluded game or market entry. Market is empty when the
// whole game was excluded.
type Skip struct {
	Sport  string        `json:"sport"`
	GameID string        `json:"game_id,omitempty"`
	Market models.Market `json:"market,omitempty"`
	Reason SkipReason    `json:"reason"`
}

// Outcome is the result of inspecting one entry: exactly one of Candidate
// or Skipped is set.
type Outcome struct {
	Candidate *models.Candidate
	Skipped   *Skip
}

func candidateOutcome(c models.Candidate) Outcome {
	return Outcome{Candidate: &c}
}

func skippedOutcome(s Skip) Outcome {
	return Outcome{Skipped: &s}
}

// Extract inspects every game and market of the slate in input order
func Extract(slate models.SportSlate) []Outcome {
	outcomes := make([]Outcome, 0, slate.GameCount()*len(models.Markets))
	for _, group := range slate {
		for _, game := range group.Games {
			outcomes = append(outcomes, ExtractGame(group.Sport, game)...)
		}
	}
	return outcomes
}

// ExtractGame inspects the markets of one game
func ExtractGame(sport string, game models.Game) []Outcome {
	if game.Malformed {
		return []Outcome{skippedOutcome(Skip{Sport: sport, GameID: game.GameID, Reason: SkipMalformedGame})}
	}
	if strings.TrimSpace(game.GameID) == "" {
		return []Outcome{skippedOutcome(Skip{Sport: sport, Reason: SkipMissingGameID})}
	}

	league := strings.TrimSpace(game.League)
	if league == "" {
		league = models.DefaultLeague(sport)
	}

	var outcomes []Outcome
	for _, market := range models.Markets {
		entry := game.Markets.Get(market)
		if entry == nil {
			continue
		}
		skip := Skip{Sport: sport, GameID: game.GameID, Market: market}
		if reason, ok := checkEntry(entry); !ok {
			skip.Reason = reason
			outcomes = append(outcomes, skippedOutcome(skip))
			continue
		}

		outcomes = append(outcomes, candidateOutcome(models.Candidate{
			GameID:    game.GameID,
			Sport:     sport,
			League:    league,
			StartTime: game.StartTime,
			Market:    market,
			Side:      strings.TrimSpace(entry.Selection),
			Score:     clampScore(*entry.Score),
			Rationale: keepRationale(entry.Rationale),
		}))
	}
	return outcomes
}

func checkEntry(entry *models.MarketPick) (SkipReason, bool) {
	switch {
	case entry.Malformed:
		return SkipMalformedMarket, false
	case entry.Status == models.PickStatusNoBet:
		return SkipNoBet, false
	case entry.Status != models.PickStatusPick:
		return SkipInactiveStatus, false
	case !entry.HasSelection || strings.TrimSpace(entry.Selection) == "":
		return SkipMissingSelection, false
	case entry.Score == nil:
		return SkipMissingScore, false
	}
	return "", true
}

func keepRationale(lines []string) []string {
	kept := make([]string, 0, MaxRationale)
	for _, line := range lines {
		if len(kept) == MaxRationale {
			break
		}
		kept = append(kept, line)
	}
	return kept
}

// Split separates outcomes into candidates and skips, keeping order
func Split(outcomes []Outcome) ([]models.Candidate, []Skip) {
	candidates := make([]models.Candidate, 0, len(outcomes))
	skipped := make([]Skip, 0)
	for _, o := range outcomes {
		switch {
		case o.Candidate != nil:
			candidates = append(candidates, *o.Candidate)
		case o.Skipped != nil:
			skipped = append(skipped, *o.Skipped)
		}
	}
	return candidates, skipped
}

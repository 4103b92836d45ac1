package grading

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/yourusername/pickpulse/internal/models"
)

const unitsPlaces = 3

// tally accumulates one slice of records. Units are kept exact until
// finalize so sums do not depend on input order.
type tally struct {
	wins   int
	losses int
	pushes int
	picks  int
	units  decimal.Decimal
}

// add records a result with bucket semantics: pushes are counted and
// units move only on a decision.
func (t *tally) add(result models.Result, units float64) {
	t.picks++
	switch result {
	case models.ResultWin:
		t.wins++
		t.units = t.units.Add(decimal.NewFromFloat(units))
	case models.ResultLoss:
		t.losses++
		t.units = t.units.Add(decimal.NewFromFloat(units))
	case models.ResultPush:
		t.pushes++
	}
}

// merge folds another tally's unrounded figures into t
func (t *tally) merge(other tally) {
	t.wins += other.wins
	t.losses += other.losses
	t.pushes += other.pushes
	t.picks += other.picks
	t.units = t.units.Add(other.units)
}

func (t tally) decided() int {
	return t.wins + t.losses
}

// finalize rounds the tally for output. Pushes is reported only when
// withPushes is set.
func (t tally) finalize(withPushes bool) models.Tally {
	out := models.Tally{
		Wins:       t.wins,
		Losses:     t.losses,
		Picks:      t.picks,
		Percentage: Percentage(t.wins, t.losses),
		Units:      t.units.Round(unitsPlaces).InexactFloat64(),
		ROI:        roi(t.units, t.decided()),
	}
	if withPushes {
		pushes := t.pushes
		out.Pushes = &pushes
	}
	return out
}

// Percentage returns wins over decided picks as a percentage with one
// decimal, or 0 when nothing was decided. Pushes are not decisions.
func Percentage(wins, losses int) float64 {
	decided := wins + losses
	if decided == 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(decided)*1000) / 10
}

func roi(units decimal.Decimal, decided int) float64 {
	if decided == 0 {
		return 0
	}
	return units.Div(decimal.NewFromInt(int64(decided))).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

// sportTally holds one sport's overall and per market figures
type sportTally struct {
	overall   tally
	moneyline tally
	spread    tally
	overUnder tally
}

// add applies sport semantics: a push bumps only the pick count, a
// decision updates the overall figures and the market's sub-tally.
func (s *sportTally) add(rec models.GradedPick) {
	if rec.Result == models.ResultPush {
		s.overall.picks++
		return
	}
	s.overall.add(rec.Result, rec.Units)
	if market := s.market(rec.Market); market != nil {
		market.add(rec.Result, rec.Units)
	}
}

func (s *sportTally) market(name string) *tally {
	switch models.Market(name) {
	case models.MarketMoneyline:
		return &s.moneyline
	case models.MarketSpread:
		return &s.spread
	case models.MarketTotal:
		return &s.overUnder
	default:
		return nil
	}
}

func (s *sportTally) finalize(sport string) models.SportTally {
	return models.SportTally{
		Sport:     sport,
		Moneyline: s.moneyline.finalize(false),
		Spread:    s.spread.finalize(false),
		OverUnder: s.overUnder.finalize(false),
		Overall:   s.overall.finalize(false),
	}
}

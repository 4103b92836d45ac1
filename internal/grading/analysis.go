package grading

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourusername/pickpulse/internal/models"
)

const ratioPlaces = 4

// calibrationEdges are the lower bounds of the confidence bins; the last
// bin closes at 1.01 so a confidence of exactly 1 is binned.
var calibrationEdges = []float64{0.50, 0.55, 0.60, 0.65, 0.70, 0.75, 0.80, 0.85, 0.90, 0.95, 1.01}

type calibrationBin struct {
	picks     int
	wins      int
	predicted decimal.Decimal
}

// Calibration compares predicted confidence with the realised win rate
// of decided records. Records without a confidence, pushes, and
// confidences below the first bin are ignored. Empty bins are omitted.
func Calibration(records []models.GradedPick) []models.CalibrationBin {
	bins := make([]calibrationBin, len(calibrationEdges)-1)
	for _, rec := range records {
		if rec.Confidence == nil || rec.Result == models.ResultPush {
			continue
		}
		idx := binIndex(*rec.Confidence)
		if idx < 0 {
			continue
		}
		bins[idx].picks++
		bins[idx].predicted = bins[idx].predicted.Add(decimal.NewFromFloat(*rec.Confidence))
		if rec.Result == models.ResultWin {
			bins[idx].wins++
		}
	}

	out := make([]models.CalibrationBin, 0, len(bins))
	for i, bin := range bins {
		if bin.picks == 0 {
			continue
		}
		n := decimal.NewFromInt(int64(bin.picks))
		avg := bin.predicted.Div(n)
		actual := decimal.NewFromInt(int64(bin.wins)).Div(n)
		out = append(out, models.CalibrationBin{
			Range:         fmt.Sprintf("%.2f-%.2f", calibrationEdges[i], calibrationEdges[i+1]),
			Picks:         bin.picks,
			AvgPredicted:  avg.Round(ratioPlaces).InexactFloat64(),
			ActualWinRate: actual.Round(ratioPlaces).InexactFloat64(),
			Delta:         actual.Sub(avg).Round(ratioPlaces).InexactFloat64(),
		})
	}
	return out
}

func binIndex(confidence float64) int {
	for i := 0; i < len(calibrationEdges)-1; i++ {
		if confidence >= calibrationEdges[i] && confidence < calibrationEdges[i+1] {
			return i
		}
	}
	return -1
}

// Risk walks the records in input order and reports the deepest fall of
// cumulative units from a running peak, and the longest run of losses.
// Pushes neither extend nor break a losing run.
func Risk(records []models.GradedPick) models.RiskSummary {
	var (
		cumulative  decimal.Decimal
		peak        decimal.Decimal
		maxDrawdown decimal.Decimal
		streak      int
		longest     int
	)

	for _, rec := range records {
		switch rec.Result {
		case models.ResultWin:
			streak = 0
		case models.ResultLoss:
			streak++
			if streak > longest {
				longest = streak
			}
		default:
			continue
		}

		cumulative = cumulative.Add(decimal.NewFromFloat(rec.Units))
		if cumulative.GreaterThan(peak) {
			peak = cumulative
		}
		if dd := cumulative.Sub(peak); dd.LessThan(maxDrawdown) {
			maxDrawdown = dd
		}
	}

	return models.RiskSummary{
		MaxDrawdown:         maxDrawdown.Round(unitsPlaces).InexactFloat64(),
		LongestLosingStreak: longest,
	}
}

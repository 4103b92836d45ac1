package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/pickpulse/internal/models"
)

func TestCalibrationBins(t *testing.T) {
	records := []models.GradedPick{
		{Result: models.ResultWin, Confidence: confPtr(0.56)},
		{Result: models.ResultLoss, Confidence: confPtr(0.58)},
		{Result: models.ResultWin, Confidence: confPtr(0.57)},
		{Result: models.ResultPush, Confidence: confPtr(0.57)},
		{Result: models.ResultWin, Confidence: confPtr(1.0)},
		{Result: models.ResultWin, Confidence: confPtr(0.40)},
		{Result: models.ResultLoss},
	}

	bins := Calibration(records)

	require.Len(t, bins, 2)
	assert.Equal(t, "0.55-0.60", bins[0].Range)
	assert.Equal(t, 3, bins[0].Picks)
	assert.Equal(t, 0.57, bins[0].AvgPredicted)
	assert.Equal(t, 0.6667, bins[0].ActualWinRate)
	assert.Equal(t, 0.0967, bins[0].Delta)

	assert.Equal(t, "0.95-1.01", bins[1].Range)
	assert.Equal(t, 1, bins[1].Picks)
	assert.Equal(t, 1.0, bins[1].ActualWinRate)
}

func TestRiskDrawdownAndStreak(t *testing.T) {
	records := []models.GradedPick{
		{Result: models.ResultWin, Units: 2},
		{Result: models.ResultLoss, Units: -1},
		{Result: models.ResultPush, Units: 0},
		{Result: models.ResultLoss, Units: -1.5},
		{Result: models.ResultLoss, Units: -0.25},
		{Result: models.ResultWin, Units: 1},
		{Result: models.ResultLoss, Units: -1},
	}

	risk := Risk(records)

	// peak 2, trough -0.75
	assert.Equal(t, -2.75, risk.MaxDrawdown)
	assert.Equal(t, 3, risk.LongestLosingStreak)
}

func TestRiskNoLosses(t *testing.T) {
	risk := Risk([]models.GradedPick{
		{Result: models.ResultWin, Units: 1},
		{Result: models.ResultWin, Units: 1},
	})

	assert.Equal(t, 0.0, risk.MaxDrawdown)
	assert.Equal(t, 0, risk.LongestLosingStreak)
}

func TestRiskLossFromStart(t *testing.T) {
	risk := Risk([]models.GradedPick{
		{Result: models.ResultLoss, Units: -1},
		{Result: models.ResultLoss, Units: -1},
	})

	assert.Equal(t, -2.0, risk.MaxDrawdown)
	assert.Equal(t, 2, risk.LongestLosingStreak)
}

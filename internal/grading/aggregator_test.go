package grading

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/pickpulse/internal/models"
)

func tierPtr(t models.Tier) *models.Tier { return &t }

func confPtr(c float64) *float64 { return &c }

func rec(sport, market string, result models.Result, units float64) models.GradedPick {
	return models.GradedPick{Sport: sport, Market: market, Result: result, Units: units}
}

func repeat(n int, r models.GradedPick) []models.GradedPick {
	out := make([]models.GradedPick, n)
	for i := range out {
		out[i] = r
	}
	return out
}

func TestClassifierTierTakesPriority(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	tests := []struct {
		name       string
		tier       *models.Tier
		confidence *float64
		want       models.Bucket
	}{
		{"tier top", tierPtr(models.TierTopPick), nil, models.BucketTop},
		{"tier strong", tierPtr(models.TierStrongLean), confPtr(0.99), models.BucketHigh},
		{"watchlist overrides high confidence", tierPtr(models.TierWatchlist), confPtr(0.95), models.BucketMedium},
		{"null tier falls back to confidence", nil, confPtr(0.82), models.BucketTop},
		{"unknown tier falls back", tierPtr("legacy"), confPtr(0.70), models.BucketHigh},
		{"medium boundary", nil, confPtr(0.55), models.BucketMedium},
		{"below medium", nil, confPtr(0.549), models.BucketNone},
		{"nothing to classify", nil, nil, models.BucketNone},
		{"high boundary", nil, confPtr(0.65), models.BucketHigh},
		{"top boundary", nil, confPtr(0.80), models.BucketTop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(models.GradedPick{Tier: tt.tier, Confidence: tt.confidence})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 70.0, Percentage(7, 3))
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 66.7, Percentage(2, 1))
	assert.Equal(t, 100.0, Percentage(4, 0))
}

func TestAggregateSevenThree(t *testing.T) {
	records := append(
		repeat(7, rec("nba", "moneyline", models.ResultWin, 0.91)),
		repeat(3, rec("nba", "moneyline", models.ResultLoss, -1))...,
	)

	report := Aggregate(records)

	assert.Equal(t, 70.0, report.Overall.Percentage)
	assert.Equal(t, 7, report.Overall.Wins)
	assert.Equal(t, 3, report.Overall.Losses)
	assert.Equal(t, 10, report.Overall.Picks)
	assert.Equal(t, 3.37, report.Overall.Units)
	assert.Equal(t, 33.7, report.Overall.ROI)
	assert.Nil(t, report.Overall.Pushes)

	require.Len(t, report.Sports, 1)
	assert.Equal(t, 70.0, report.Sports[0].Moneyline.Percentage)
	assert.Equal(t, 0, report.Sports[0].Spread.Picks)
}

func TestAggregatePushHandling(t *testing.T) {
	records := []models.GradedPick{
		{Sport: "nfl", Market: "spread", Result: models.ResultWin, Units: 1, Tier: tierPtr(models.TierTopPick)},
		{Sport: "nfl", Market: "spread", Result: models.ResultPush, Units: 5, Tier: tierPtr(models.TierTopPick)},
		{Sport: "nfl", Market: "total", Result: models.ResultLoss, Units: -1.1, Tier: tierPtr(models.TierTopPick)},
	}

	report := Aggregate(records)

	nfl := report.Sports[0]
	assert.Equal(t, 3, nfl.Overall.Picks)
	assert.Equal(t, 1, nfl.Overall.Wins)
	assert.Equal(t, 1, nfl.Overall.Losses)
	assert.Equal(t, -0.1, nfl.Overall.Units)
	assert.Equal(t, 1, nfl.Spread.Picks)
	assert.Equal(t, 1, nfl.OverUnder.Picks)
	assert.Equal(t, 0.0, nfl.OverUnder.Percentage)

	top := report.TopPick
	require.NotNil(t, top.Pushes)
	assert.Equal(t, 1, *top.Pushes)
	assert.Equal(t, 3, top.Picks)
	assert.Equal(t, 50.0, top.Percentage)
	assert.Equal(t, -0.1, top.Units)

	bucket := report.ConfidenceBuckets.Top
	require.NotNil(t, bucket.Pushes)
	assert.Equal(t, 1, *bucket.Pushes)
	assert.Equal(t, -0.1, bucket.Units)
}

func TestAggregateBucketsAndTopPickAreIndependent(t *testing.T) {
	records := []models.GradedPick{
		{Sport: "nba", Market: "moneyline", Result: models.ResultWin, Units: 1, Confidence: confPtr(0.85)},
		{Sport: "nba", Market: "moneyline", Result: models.ResultLoss, Units: -1, Tier: tierPtr(models.TierStrongLean), Confidence: confPtr(0.9)},
		{Sport: "nba", Market: "moneyline", Result: models.ResultWin, Units: 1, Confidence: confPtr(0.3)},
	}

	report := Aggregate(records)

	assert.Equal(t, 1, report.ConfidenceBuckets.Top.Wins)
	assert.Equal(t, 1, report.ConfidenceBuckets.High.Losses)
	assert.Equal(t, 0, report.ConfidenceBuckets.Medium.Picks)
	assert.Equal(t, 0, report.TopPick.Picks)
	assert.Equal(t, 1, report.Excluded.Unbucketed)
	// unbucketed records still count toward the sport totals
	assert.Equal(t, 3, report.Overall.Picks)
}

func TestAggregateExcludesUngradable(t *testing.T) {
	records := []models.GradedPick{
		rec("nba", "moneyline", "void", 1),
		rec("", "moneyline", models.ResultWin, 1),
		rec("nba", "moneyline", "", 1),
		rec("nba", "moneyline", models.ResultWin, 1),
	}

	report := Aggregate(records)

	assert.Equal(t, 3, report.Excluded.Records)
	assert.Equal(t, 2, report.Excluded.Reasons[ExcludeInvalidResult])
	assert.Equal(t, 1, report.Excluded.Reasons[ExcludeMissingSport])
	assert.Equal(t, 1, report.Overall.Picks)
}

func TestAggregateSportsSortedAndOverallSummed(t *testing.T) {
	records := []models.GradedPick{
		rec("nhl", "moneyline", models.ResultWin, 0.0005),
		rec("mlb", "total", models.ResultWin, 0.0005),
		rec("nba", "spread", models.ResultLoss, -1),
		rec("mlb", "prop", models.ResultLoss, -1),
	}

	report := Aggregate(records)

	require.Len(t, report.Sports, 3)
	assert.Equal(t, "mlb", report.Sports[0].Sport)
	assert.Equal(t, "nba", report.Sports[1].Sport)
	assert.Equal(t, "nhl", report.Sports[2].Sport)

	// unknown markets count toward the sport but no sub-tally
	assert.Equal(t, 2, report.Sports[0].Overall.Picks)
	assert.Equal(t, 1, report.Sports[0].OverUnder.Picks)

	// 0.0005 + 0.0005 - 2 is summed before rounding
	assert.Equal(t, -1.999, report.Overall.Units)
	assert.Equal(t, 4, report.Overall.Picks)
	assert.Equal(t, 50.0, report.Overall.Percentage)
}

func TestAggregateOrderIndependent(t *testing.T) {
	sports := []string{"nba", "nfl", "mlb", "ncaab"}
	markets := []string{"moneyline", "spread", "total"}
	results := []models.Result{models.ResultWin, models.ResultLoss, models.ResultPush}
	tiers := []*models.Tier{nil, tierPtr(models.TierTopPick), tierPtr(models.TierStrongLean), tierPtr(models.TierWatchlist)}

	rng := rand.New(rand.NewSource(7))
	records := make([]models.GradedPick, 0, 200)
	for i := 0; i < 200; i++ {
		records = append(records, models.GradedPick{
			Sport:      sports[rng.Intn(len(sports))],
			Market:     markets[rng.Intn(len(markets))],
			Result:     results[rng.Intn(len(results))],
			Tier:       tiers[rng.Intn(len(tiers))],
			Confidence: confPtr(0.5 + rng.Float64()*0.45),
			Units:      float64(rng.Intn(300)-150) / 97,
		})
	}

	shuffled := append([]models.GradedPick(nil), records...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	a := Aggregate(records)
	b := Aggregate(shuffled)

	assert.Equal(t, a.Overall, b.Overall)
	assert.Equal(t, a.TopPick, b.TopPick)
	assert.Equal(t, a.ConfidenceBuckets, b.ConfidenceBuckets)
	assert.Equal(t, a.Sports, b.Sports)
	assert.Equal(t, a.Calibration, b.Calibration)
}

func TestAggregateEmpty(t *testing.T) {
	report := Aggregate(nil)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"overall":{"wins":0,"losses":0,"picks":0,"percentage":0,"units":0,"roi":0},
		"topPick":{"wins":0,"losses":0,"pushes":0,"picks":0,"percentage":0,"units":0,"roi":0},
		"confidenceBuckets":{
			"top":{"wins":0,"losses":0,"pushes":0,"picks":0,"percentage":0,"units":0,"roi":0},
			"high":{"wins":0,"losses":0,"pushes":0,"picks":0,"percentage":0,"units":0,"roi":0},
			"medium":{"wins":0,"losses":0,"pushes":0,"picks":0,"percentage":0,"units":0,"roi":0}
		},
		"sports":[],
		"calibration":[],
		"risk":{"maxDrawdown":0,"longestLosingStreak":0},
		"excluded":{"records":0,"unbucketed":0,"reasons":{}}
	}`, string(data))
}

func TestAggregateIsIdempotent(t *testing.T) {
	records := []models.GradedPick{
		{Sport: "nba", Market: "spread", Result: models.ResultWin, Units: 0.95, Confidence: confPtr(0.71)},
		{Sport: "nfl", Market: "total", Result: models.ResultLoss, Units: -1, Tier: tierPtr(models.TierWatchlist)},
	}

	first, err := json.Marshal(Aggregate(records))
	require.NoError(t, err)
	second, err := json.Marshal(Aggregate(records))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

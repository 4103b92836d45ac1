package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/pickpulse/internal/database"
	"github.com/yourusername/pickpulse/internal/models"
)

type fakeRow struct {
	values []interface{}
	err    error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case **string:
			if r.values[i] != nil {
				s := r.values[i].(string)
				*p = &s
			}
		case **float64:
			if r.values[i] != nil {
				f := r.values[i].(float64)
				*p = &f
			}
		case *float64:
			*p = r.values[i].(float64)
		}
	}
	return nil
}

func TestDisabledRepository(t *testing.T) {
	repos := NewRepositories(nil)

	_, err := repos.GradedPicks.ListGraded(context.Background(), models.SourceLive, time.Now())
	assert.ErrorIs(t, err, ErrDatabaseDisabled)
}

func TestScanGradedPick(t *testing.T) {
	pick, err := scanGradedPick(fakeRow{values: []interface{}{nil, "nba", "total", "win", "strong_lean", 0.71, 0.91}})
	require.NoError(t, err)

	assert.Equal(t, "nba", pick.Sport)
	assert.Equal(t, models.ResultWin, pick.Result)
	require.NotNil(t, pick.Tier)
	assert.Equal(t, models.TierStrongLean, *pick.Tier)
	require.NotNil(t, pick.Confidence)
	assert.Equal(t, 0.71, *pick.Confidence)
	assert.Equal(t, 0.91, pick.Units)
}

func TestScanGradedPickNullable(t *testing.T) {
	pick, err := scanGradedPick(fakeRow{values: []interface{}{nil, "nfl", "spread", "push", nil, nil, 0.0}})
	require.NoError(t, err)

	assert.Nil(t, pick.Tier)
	assert.Nil(t, pick.Confidence)
}

func TestScanGradedPickError(t *testing.T) {
	_, err := scanGradedPick(fakeRow{err: errors.New("bad row")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to scan graded pick")
}

// TestListGradedIntegration reads from a migrated database
func TestListGradedIntegration(t *testing.T) {
	db := database.SetupTestDB(t)
	repos := NewRepositories(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	picks, err := repos.GradedPicks.ListGraded(ctx, models.SourceLive, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	for _, p := range picks {
		assert.NotNil(t, p.ID)
	}
}

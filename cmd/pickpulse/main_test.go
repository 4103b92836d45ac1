package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pickpulse/internal/models"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("AWS_SECRETS_ENABLED", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", "testdata/missing.yaml"))

	err := cmd.Execute()
	return out.String(), err
}

func TestSlateCommand(t *testing.T) {
	out, err := run(t, "", "slate", "--input", "testdata/slate.json")
	require.NoError(t, err)

	var slate models.Slate
	require.NoError(t, json.Unmarshal([]byte(out), &slate))

	assert.Equal(t, "2025-11-04", slate.Date)
	require.NotNil(t, slate.TopPick)
	assert.Equal(t, "nba-bos-nyk", slate.TopPick.GameID)
	assert.Equal(t, models.MarketMoneyline, slate.TopPick.Market)
	assert.Equal(t, 0.81, slate.TopPick.Confidence)

	require.Len(t, slate.StrongLeans, 1)
	assert.Equal(t, "nfl-kc-buf", slate.StrongLeans[0].GameID)
	assert.Equal(t, 0.77, slate.StrongLeans[0].Confidence)
	assert.Empty(t, slate.Watchlist)

	assert.Equal(t, 3, slate.Meta.Candidates)
	assert.Equal(t, 2, slate.Meta.Skipped)
}

func TestSlateCommandDayOverrideAndStdin(t *testing.T) {
	stdin := `{"day":"2025-11-04","slate":{"nhl":[{"game_id":"h1","markets":{"total":{"status":"pick","selection":"Under 6","score":61}}}]}}`

	out, err := run(t, stdin, "slate", "--day", "2025-11-09")
	require.NoError(t, err)

	var slate models.Slate
	require.NoError(t, json.Unmarshal([]byte(out), &slate))
	assert.Equal(t, "2025-11-09", slate.Date)
	assert.Nil(t, slate.TopPick)
	require.Len(t, slate.Watchlist, 1)
	assert.Equal(t, "NHL", slate.Watchlist[0].League)
}

func TestSlateCommandRejectsBadShape(t *testing.T) {
	_, err := run(t, `{"slate":["nba"]}`, "slate")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	_, err = run(t, `not json`, "slate")
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestSlateCommandUpstreamDisabled(t *testing.T) {
	_, err := run(t, "", "slate", "--upstream")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream.enabled")
}

func TestGradeCommand(t *testing.T) {
	out, err := run(t, "", "grade", "--input", "testdata/graded.json")
	require.NoError(t, err)

	var report models.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, 2, report.Overall.Wins)
	assert.Equal(t, 1, report.Overall.Losses)
	assert.Equal(t, 66.7, report.Overall.Percentage)
	assert.Equal(t, 0.81, report.Overall.Units)

	require.Len(t, report.Sports, 2)
	assert.Equal(t, "nba", report.Sports[0].Sport)
	assert.Equal(t, "nfl", report.Sports[1].Sport)

	assert.Equal(t, 1, report.TopPick.Wins)
	assert.Equal(t, 1, report.Excluded.Records)
	assert.Equal(t, 1, report.Excluded.Reasons["invalid_result"])
}

func TestGradeCommandRequestObject(t *testing.T) {
	stdin := `{"source":"backtest","range":"season","records":[{"sport":"mlb","market":"total","result":"loss","units":-1}]}`

	out, err := run(t, stdin, "grade")
	require.NoError(t, err)
	assert.Contains(t, out, `"sport": "mlb"`)
}

func TestGradeCommandEmptyInput(t *testing.T) {
	_, err := run(t, "  \n", "grade")
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

package models

// Tally holds win/loss figures for one slice of graded picks.
// Pushes is only reported for bucket and top pick tallies.
type Tally struct {
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Pushes     *int    `json:"pushes,omitempty"`
	Picks      int     `json:"picks"`
	Percentage float64 `json:"percentage"`
	Units      float64 `json:"units"`
	ROI        float64 `json:"roi"`
}

// SportTally breaks one sport's picks down by market
type SportTally struct {
	Sport     string `json:"sport"`
	Moneyline Tally  `json:"moneyline"`
	Spread    Tally  `json:"spread"`
	OverUnder Tally  `json:"overUnder"`
	Overall   Tally  `json:"overall"`
}

// BucketTallies holds the per confidence bucket tallies
type BucketTallies struct {
	Top    Tally `json:"top"`
	High   Tally `json:"high"`
	Medium Tally `json:"medium"`
}

// CalibrationBin compares predicted confidence with realised win rate
type CalibrationBin struct {
	Range         string  `json:"range"`
	Picks         int     `json:"picks"`
	AvgPredicted  float64 `json:"avgPredicted"`
	ActualWinRate float64 `json:"actualWinRate"`
	Delta         float64 `json:"delta"`
}

// RiskSummary describes the running unit curve of the input sequence
type RiskSummary struct {
	MaxDrawdown         float64 `json:"maxDrawdown"`
	LongestLosingStreak int     `json:"longestLosingStreak"`
}

// ExclusionSummary counts records left out of aggregates
type ExclusionSummary struct {
	Records    int            `json:"records"`
	Unbucketed int            `json:"unbucketed"`
	Reasons    map[string]int `json:"reasons"`
}

// Report is the grading aggregator output
type Report struct {
	Overall           Tally            `json:"overall"`
	TopPick           Tally            `json:"topPick"`
	ConfidenceBuckets BucketTallies    `json:"confidenceBuckets"`
	Sports            []SportTally     `json:"sports"`
	Calibration       []CalibrationBin `json:"calibration"`
	Risk              RiskSummary      `json:"risk"`
	Excluded          ExclusionSummary `json:"excluded"`
}

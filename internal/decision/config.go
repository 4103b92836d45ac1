package decision

import (
	"fmt"
	"strings"

	"github.com/yourusername/pickpulse/internal/config"
)

// DefaultVersion is reported in slate meta when no version is configured
const DefaultVersion = "2024.10"

// OtherLeague labels leagues without a configured cap
const OtherLeague = "other"

// Thresholds holds the minimum raw score for each tier
type Thresholds struct {
	TopPick    float64
	StrongLean float64
	Watchlist  float64
}

// Limits caps the length of the tier lists
type Limits struct {
	MaxStrongLeans int
	MaxWatchlist   int
}

// Curve describes the score to confidence mapping:
// confidence = Floor + Span * (score/100)^Exponent
type Curve struct {
	Exponent float64
	Floor    float64
	Span     float64
}

// Config holds every tunable of the decision engine. Treat a Config as
// immutable once handed to an Engine.
type Config struct {
	Version    string
	Curve      Curve
	LeagueCaps map[string]float64
	DefaultCap float64
	Thresholds Thresholds
	Limits     Limits
}

// DefaultConfig returns the production tables
func DefaultConfig() Config {
	return Config{
		Version: DefaultVersion,
		Curve: Curve{
			Exponent: 1.35,
			Floor:    0.52,
			Span:     0.43,
		},
		LeagueCaps: map[string]float64{
			"NBA":   0.90,
			"NFL":   0.92,
			"NCAAF": 0.91,
			"NCAAB": 0.91,
			"MLB":   0.91,
			"NHL":   0.92,
		},
		DefaultCap: 0.92,
		Thresholds: Thresholds{
			TopPick:    74,
			StrongLean: 66,
			Watchlist:  60,
		},
		Limits: Limits{
			MaxStrongLeans: 5,
			MaxWatchlist:   10,
		},
	}
}

// FromConfig overlays the non-zero application settings onto DefaultConfig
func FromConfig(cfg *config.DecisionConfig) (Config, error) {
	out := DefaultConfig()
	if cfg == nil {
		return out, nil
	}

	if cfg.Version != "" {
		out.Version = cfg.Version
	}
	if cfg.DefaultCap > 0 {
		out.DefaultCap = cfg.DefaultCap
	}
	for league, leagueCap := range cfg.LeagueCaps {
		// viper folds map keys to lower case
		out.LeagueCaps[strings.ToUpper(strings.TrimSpace(league))] = leagueCap
	}
	if cfg.Thresholds.TopPick > 0 {
		out.Thresholds.TopPick = cfg.Thresholds.TopPick
	}
	if cfg.Thresholds.StrongLean > 0 {
		out.Thresholds.StrongLean = cfg.Thresholds.StrongLean
	}
	if cfg.Thresholds.Watchlist > 0 {
		out.Thresholds.Watchlist = cfg.Thresholds.Watchlist
	}
	if cfg.MaxStrongLeans > 0 {
		out.Limits.MaxStrongLeans = cfg.MaxStrongLeans
	}
	if cfg.MaxWatchlist > 0 {
		out.Limits.MaxWatchlist = cfg.MaxWatchlist
	}

	return out, out.Validate()
}

// LeagueCap returns the confidence ceiling for a league, matched
// case-insensitively, or DefaultCap for unknown leagues.
func (c Config) LeagueCap(league string) float64 {
	if leagueCap, ok := c.LeagueCaps[strings.ToUpper(strings.TrimSpace(league))]; ok {
		return leagueCap
	}
	return c.DefaultCap
}

// LeagueLabel returns the canonical league name when it has a configured
// cap and OtherLeague otherwise.
func (c Config) LeagueLabel(league string) string {
	name := strings.ToUpper(strings.TrimSpace(league))
	if _, ok := c.LeagueCaps[name]; ok {
		return name
	}
	return OtherLeague
}

// Validate checks the configuration for internal consistency
func (c Config) Validate() error {
	if c.Curve.Exponent <= 0 {
		return fmt.Errorf("curve exponent must be positive")
	}
	if c.Curve.Floor < 0 || c.Curve.Span <= 0 || c.Curve.Floor+c.Curve.Span > 1 {
		return fmt.Errorf("curve range must stay within [0, 1]")
	}
	if c.DefaultCap < c.Curve.Floor {
		return fmt.Errorf("default cap %.2f is below the curve floor %.2f", c.DefaultCap, c.Curve.Floor)
	}
	for league, leagueCap := range c.LeagueCaps {
		if leagueCap < c.Curve.Floor {
			return fmt.Errorf("cap for %s is below the curve floor", league)
		}
	}
	if c.Thresholds.TopPick < c.Thresholds.StrongLean || c.Thresholds.StrongLean < c.Thresholds.Watchlist {
		return fmt.Errorf("thresholds must satisfy top_pick >= strong_lean >= watchlist")
	}
	if c.Limits.MaxStrongLeans < 0 || c.Limits.MaxWatchlist < 0 {
		return fmt.Errorf("tier limits cannot be negative")
	}
	return nil
}

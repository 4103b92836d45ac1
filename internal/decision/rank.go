package decision

import (
	"sort"

	"github.com/yourusername/pickpulse/internal/models"
)

// gameKey identifies a game. Game ids are only unique within a sport.
type gameKey struct {
	sport  string
	gameID string
}

func keyOf(c models.Candidate) gameKey {
	return gameKey{sport: c.Sport, gameID: c.GameID}
}

// Dedupe keeps the highest scoring candidate per game. On equal scores the
// candidate seen first wins, so the result depends on input order. Output
// keeps the position of each game's first appearance.
func Dedupe(candidates []models.Candidate) []models.Candidate {
	index := make(map[gameKey]int, len(candidates))
	out := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		pos, seen := index[keyOf(c)]
		if !seen {
			index[keyOf(c)] = len(out)
			out = append(out, c)
			continue
		}
		if c.Score > out[pos].Score {
			out[pos] = c
		}
	}
	return out
}

// Rank sorts candidates by descending raw score. Equal scores keep their
// input order.
func Rank(candidates []models.Candidate) []models.Candidate {
	ranked := make([]models.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Tiers is the partition of ranked candidates
type Tiers struct {
	TopPick     *models.Candidate
	StrongLeans []models.Candidate
	Watchlist   []models.Candidate
}

// Tier partitions ranked, deduplicated candidates by score threshold.
// A game lands in at most one tier.
func (c Config) Tier(ranked []models.Candidate) Tiers {
	tiers := Tiers{
		StrongLeans: make([]models.Candidate, 0, c.Limits.MaxStrongLeans),
		Watchlist:   make([]models.Candidate, 0, c.Limits.MaxWatchlist),
	}
	used := make(map[gameKey]bool)

	if len(ranked) > 0 && ranked[0].Score >= c.Thresholds.TopPick {
		top := ranked[0]
		tiers.TopPick = &top
		used[keyOf(top)] = true
	}

	for _, cand := range ranked {
		if len(tiers.StrongLeans) == c.Limits.MaxStrongLeans {
			break
		}
		if used[keyOf(cand)] || cand.Score < c.Thresholds.StrongLean {
			continue
		}
		tiers.StrongLeans = append(tiers.StrongLeans, cand)
		used[keyOf(cand)] = true
	}

	for _, cand := range ranked {
		if len(tiers.Watchlist) == c.Limits.MaxWatchlist {
			break
		}
		if used[keyOf(cand)] || cand.Score < c.Thresholds.Watchlist {
			continue
		}
		tiers.Watchlist = append(tiers.Watchlist, cand)
		used[keyOf(cand)] = true
	}

	return tiers
}

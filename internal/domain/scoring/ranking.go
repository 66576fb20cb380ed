package scoring

import (
	"sort"
	"time"
)

// RankedEntry is one row fed to Rank. TiebreakAt orders entries with
// identical scores deterministically: for competition standings it is the
// participant's joined-at, for raw leaderboards the earliest catch.
type RankedEntry struct {
	ID         string
	Score      float64
	CatchCount int
	TiebreakAt time.Time
	Rank       *int
}

// Rank assigns competition ranks: entries sort descending by score, ties
// share a rank, and the next distinct score's rank equals its 1-based
// position in the sorted order, so [100, 100, 80, 50] ranks [1, 1, 3, 4].
// Entries with zero qualifying activity are excluded from the returned
// ordering and stay unranked. The input slice is not modified.
func Rank(entries []RankedEntry) []RankedEntry {
	ranked := make([]RankedEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.CatchCount <= 0 {
			continue
		}
		entry.Rank = nil
		ranked = append(ranked, entry)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].TiebreakAt.Before(ranked[j].TiebreakAt)
	})

	currentRank := 0
	var previousScore float64
	for i := range ranked {
		if i == 0 || ranked[i].Score != previousScore {
			currentRank = i + 1
			previousScore = ranked[i].Score
		}
		rank := currentRank
		ranked[i].Rank = &rank
	}

	return ranked
}

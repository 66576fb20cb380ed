package leaderboard

import "time"

// StateAll is the partition key for the country-wide leaderboard.
const StateAll = "all"

// Entry is the materialized per-user aggregate backing global and friends
// leaderboards. It is derived from catches, never authored directly; totals
// are floored at zero.
type Entry struct {
	UserID            string
	State             string
	TotalCatches      int
	TotalPoints       int
	BiggestFishWeight float64
	BiggestFishLength float64
	// EarliestCatchAt is the oldest caught-at in the partition; ties on a
	// metric break in favor of whoever got there first.
	EarliestCatchAt time.Time
	UpdatedAt       time.Time
}

// RankedEntry is an Entry with a position assigned relative to some entry
// set. Rank is nil for users with no qualifying activity.
type RankedEntry struct {
	Entry
	Rank *int
}

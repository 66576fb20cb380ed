package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/domain/leaderboard"
)

// LeaderboardRepository keeps leaderboard partitions in process memory.
// Used when Redis is not configured; single instance deployments only.
type LeaderboardRepository struct {
	mu      sync.RWMutex
	entries map[string]map[string]leaderboard.Entry
}

func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{
		entries: make(map[string]map[string]leaderboard.Entry),
	}
}

func (r *LeaderboardRepository) Upsert(_ context.Context, entry leaderboard.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	partition, ok := r.entries[entry.State]
	if !ok {
		partition = make(map[string]leaderboard.Entry)
		r.entries[entry.State] = partition
	}
	partition[entry.UserID] = entry

	return nil
}

func (r *LeaderboardRepository) Get(_ context.Context, userID, state string) (leaderboard.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[state][userID]
	return entry, ok, nil
}

func (r *LeaderboardRepository) Top(_ context.Context, state string, metric competition.Metric, limit int) ([]leaderboard.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	partition := r.entries[state]
	out := make([]leaderboard.Entry, 0, len(partition))
	for _, entry := range partition {
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		si, sj := metricScore(out[i], metric), metricScore(out[j], metric)
		if si != sj {
			return si > sj
		}
		return out[i].UserID < out[j].UserID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *LeaderboardRepository) ListByUsers(_ context.Context, userIDs []string, state string) ([]leaderboard.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	partition := r.entries[state]
	out := make([]leaderboard.Entry, 0, len(userIDs))
	for _, userID := range userIDs {
		if entry, ok := partition[userID]; ok {
			out = append(out, entry)
		}
	}

	return out, nil
}

func (r *LeaderboardRepository) StatesForUser(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var states []string
	for state, partition := range r.entries {
		if _, ok := partition[userID]; ok {
			states = append(states, state)
		}
	}
	sort.Strings(states)

	return states, nil
}

func (r *LeaderboardRepository) Delete(_ context.Context, userID, state string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries[state], userID)
	return nil
}

func metricScore(entry leaderboard.Entry, metric competition.Metric) float64 {
	switch metric {
	case competition.MetricCatches:
		return float64(entry.TotalCatches)
	case competition.MetricWeight:
		return entry.BiggestFishWeight
	case competition.MetricLength:
		return entry.BiggestFishLength
	default:
		return float64(entry.TotalPoints)
	}
}

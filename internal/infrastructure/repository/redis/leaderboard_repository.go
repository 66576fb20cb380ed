// Package redis keeps the materialized leaderboard in Redis so reads stay
// cheap under fan-out. Each state partition holds a hash of entry payloads
// plus one sorted set per metric for ordered retrieval.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/domain/leaderboard"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const (
	keyEntryHash  = "leaderboard:entries:"
	keyMetricRank = "leaderboard:rank:"
	keyUserStates = "leaderboard:user-states:"

	entryTTL = 7 * 24 * time.Hour
)

type entryPayload struct {
	UserID            string    `json:"user_id"`
	State             string    `json:"state"`
	TotalCatches      int       `json:"total_catches"`
	TotalPoints       int       `json:"total_points"`
	BiggestFishWeight float64   `json:"biggest_fish_weight"`
	BiggestFishLength float64   `json:"biggest_fish_length"`
	EarliestCatchAt   time.Time `json:"earliest_catch_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type LeaderboardRepository struct {
	client *redis.Client
}

func NewLeaderboardRepository(client *redis.Client) *LeaderboardRepository {
	return &LeaderboardRepository{client: client}
}

func (r *LeaderboardRepository) Upsert(ctx context.Context, entry leaderboard.Entry) error {
	payload, err := sonic.Marshal(entryPayload(entry))
	if err != nil {
		return fmt.Errorf("encode leaderboard entry: %w", err)
	}

	hashKey := keyEntryHash + entry.State
	statesKey := keyUserStates + entry.UserID
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, hashKey, entry.UserID, payload)
	for metric, score := range metricScores(entry) {
		rankKey := rankKey(entry.State, metric)
		pipe.ZAdd(ctx, rankKey, redis.Z{Score: score, Member: entry.UserID})
		pipe.Expire(ctx, rankKey, entryTTL)
	}
	pipe.SAdd(ctx, statesKey, entry.State)
	pipe.Expire(ctx, statesKey, entryTTL)
	pipe.Expire(ctx, hashKey, entryTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("upsert leaderboard entry: %w", err)
	}
	return nil
}

func (r *LeaderboardRepository) Get(ctx context.Context, userID, state string) (leaderboard.Entry, bool, error) {
	raw, err := r.client.HGet(ctx, keyEntryHash+state, userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return leaderboard.Entry{}, false, nil
		}
		return leaderboard.Entry{}, false, fmt.Errorf("get leaderboard entry: %w", err)
	}

	entry, err := decodeEntry(raw)
	if err != nil {
		return leaderboard.Entry{}, false, err
	}
	return entry, true, nil
}

// Top returns entries ordered by the metric's sorted set, best first. A
// limit of zero or less returns the whole partition.
func (r *LeaderboardRepository) Top(ctx context.Context, state string, metric competition.Metric, limit int) ([]leaderboard.Entry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	userIDs, err := r.client.ZRevRange(ctx, rankKey(state, metric), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list top leaderboard entries: %w", err)
	}

	return r.fetchEntries(ctx, state, userIDs)
}

func (r *LeaderboardRepository) ListByUsers(ctx context.Context, userIDs []string, state string) ([]leaderboard.Entry, error) {
	return r.fetchEntries(ctx, state, userIDs)
}

func (r *LeaderboardRepository) StatesForUser(ctx context.Context, userID string) ([]string, error) {
	states, err := r.client.SMembers(ctx, keyUserStates+userID).Result()
	if err != nil {
		return nil, fmt.Errorf("list leaderboard states for user: %w", err)
	}
	return states, nil
}

func (r *LeaderboardRepository) Delete(ctx context.Context, userID, state string) error {
	pipe := r.client.TxPipeline()
	pipe.HDel(ctx, keyEntryHash+state, userID)
	for _, metric := range []competition.Metric{
		competition.MetricPoints,
		competition.MetricCatches,
		competition.MetricWeight,
		competition.MetricLength,
	} {
		pipe.ZRem(ctx, rankKey(state, metric), userID)
	}
	pipe.SRem(ctx, keyUserStates+userID, state)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete leaderboard entry: %w", err)
	}
	return nil
}

func (r *LeaderboardRepository) fetchEntries(ctx context.Context, state string, userIDs []string) ([]leaderboard.Entry, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	raws, err := r.client.HMGet(ctx, keyEntryHash+state, userIDs...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard entries: %w", err)
	}

	entries := make([]leaderboard.Entry, 0, len(raws))
	for _, raw := range raws {
		str, ok := raw.(string)
		if !ok {
			continue
		}
		entry, err := decodeEntry([]byte(str))
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeEntry(raw []byte) (leaderboard.Entry, error) {
	var payload entryPayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return leaderboard.Entry{}, fmt.Errorf("decode leaderboard entry: %w", err)
	}
	return leaderboard.Entry(payload), nil
}

func rankKey(state string, metric competition.Metric) string {
	return keyMetricRank + state + ":" + string(metric)
}

func metricScores(entry leaderboard.Entry) map[competition.Metric]float64 {
	return map[competition.Metric]float64{
		competition.MetricPoints:  float64(entry.TotalPoints),
		competition.MetricCatches: float64(entry.TotalCatches),
		competition.MetricWeight:  entry.BiggestFishWeight,
		competition.MetricLength:  entry.BiggestFishLength,
	}
}

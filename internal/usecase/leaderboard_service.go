package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/catch"
	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/domain/friendship"
	"github.com/astorrey/TackleHogs/internal/domain/leaderboard"
	"github.com/astorrey/TackleHogs/internal/domain/scoring"
	"github.com/astorrey/TackleHogs/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultLeaderboardLimit = 50
	defaultRebuildWorkers   = 8
)

// LeaderboardService maintains the global leaderboard cache and serves
// ranked reads from it. Cache entries are always rebuilt from the full catch
// history, never incremented, so the cache converges after any replay.
type LeaderboardService struct {
	lbRepo         leaderboard.Repository
	catchRepo      catch.Repository
	friendRepo     friendship.Repository
	logger         *logging.Logger
	rebuildWorkers int
	now            func() time.Time
}

func NewLeaderboardService(
	lbRepo leaderboard.Repository,
	catchRepo catch.Repository,
	friendRepo friendship.Repository,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{
		lbRepo:         lbRepo,
		catchRepo:      catchRepo,
		friendRepo:     friendRepo,
		logger:         logger,
		rebuildWorkers: defaultRebuildWorkers,
		now:            time.Now,
	}
}

// ApplyCatchChange rebuilds every cache partition the user appears in from
// their full catch history. Called after any catch write for the user.
func (s *LeaderboardService) ApplyCatchChange(ctx context.Context, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.ApplyCatchChange")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	catches, err := s.catchRepo.List(ctx, catch.Filter{UserID: userID})
	if err != nil {
		return fmt.Errorf("list catches: %w", err)
	}

	previousStates, err := s.lbRepo.StatesForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list leaderboard states: %w", err)
	}

	now := s.now().UTC()
	entries := map[string]*leaderboard.Entry{
		leaderboard.StateAll: {UserID: userID, State: leaderboard.StateAll, UpdatedAt: now},
	}

	for _, c := range catches {
		partitions := []string{leaderboard.StateAll}
		if c.State != "" {
			partitions = append(partitions, c.State)
		}
		for _, state := range partitions {
			entry, ok := entries[state]
			if !ok {
				entry = &leaderboard.Entry{UserID: userID, State: state, UpdatedAt: now}
				entries[state] = entry
			}
			entry.TotalCatches++
			entry.TotalPoints += c.Points
			if c.Weight != nil && *c.Weight > entry.BiggestFishWeight {
				entry.BiggestFishWeight = *c.Weight
			}
			if c.Length != nil && *c.Length > entry.BiggestFishLength {
				entry.BiggestFishLength = *c.Length
			}
			if entry.EarliestCatchAt.IsZero() || c.CaughtAt.Before(entry.EarliestCatchAt) {
				entry.EarliestCatchAt = c.CaughtAt
			}
		}
	}

	for _, entry := range entries {
		if err := s.lbRepo.Upsert(ctx, *entry); err != nil {
			return fmt.Errorf("upsert leaderboard entry: %w", err)
		}
	}

	// Partitions the user no longer has catches in are removed, so deleting
	// the last catch in a state also clears that state's row.
	for _, state := range previousStates {
		if _, ok := entries[state]; ok {
			continue
		}
		if err := s.lbRepo.Delete(ctx, userID, state); err != nil {
			return fmt.Errorf("delete leaderboard entry: %w", err)
		}
	}

	return nil
}

// Global returns the top entries for a partition, ranked under the metric.
func (s *LeaderboardService) Global(ctx context.Context, state string, metric competition.Metric, limit int) ([]leaderboard.RankedEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.Global")
	defer span.End()

	state = normalizeState(state)
	if _, err := competition.ParseMetric(string(metric)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	entries, err := s.lbRepo.Top(ctx, state, metric, limit)
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	return rankEntries(entries, metric), nil
}

// Friends ranks the user and their accepted friends against each other. The
// entries come from the same cache as the global board; only the rank is
// recomputed within the smaller set.
func (s *LeaderboardService) Friends(ctx context.Context, userID, state string, metric competition.Metric) ([]leaderboard.RankedEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.Friends")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	state = normalizeState(state)
	if _, err := competition.ParseMetric(string(metric)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	friendIDs, err := s.friendRepo.ListAcceptedFriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}

	entries, err := s.lbRepo.ListByUsers(ctx, append(friendIDs, userID), state)
	if err != nil {
		return nil, fmt.Errorf("read leaderboard entries: %w", err)
	}

	return rankEntries(entries, metric), nil
}

// UserRank locates one user's position on a partition. Rank is nil when the
// user has no qualifying activity there.
func (s *LeaderboardService) UserRank(ctx context.Context, userID, state string, metric competition.Metric) (leaderboard.RankedEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.UserRank")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return leaderboard.RankedEntry{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	state = normalizeState(state)
	if _, err := competition.ParseMetric(string(metric)); err != nil {
		return leaderboard.RankedEntry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	entry, exists, err := s.lbRepo.Get(ctx, userID, state)
	if err != nil {
		return leaderboard.RankedEntry{}, fmt.Errorf("get leaderboard entry: %w", err)
	}
	if !exists {
		return leaderboard.RankedEntry{}, fmt.Errorf("%w: user=%s state=%s", ErrNotFound, userID, state)
	}

	// Rank requires the whole partition under the same tie rules as Top.
	entries, err := s.lbRepo.Top(ctx, state, metric, 0)
	if err != nil {
		return leaderboard.RankedEntry{}, fmt.Errorf("read leaderboard: %w", err)
	}
	for _, ranked := range rankEntries(entries, metric) {
		if ranked.UserID == userID {
			return ranked, nil
		}
	}

	return leaderboard.RankedEntry{Entry: entry}, nil
}

// RebuildResult summarizes one full cache rebuild.
type RebuildResult struct {
	Users  int
	Failed int
}

// RebuildAll regenerates the cache for every user with logged catches. Used
// after migrations or when the cache store is lost. Per-user failures are
// counted, not fatal.
func (s *LeaderboardService) RebuildAll(ctx context.Context) (RebuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.RebuildAll")
	defer span.End()

	var result RebuildResult

	userIDs, err := s.catchRepo.ListUserIDs(ctx)
	if err != nil {
		return result, fmt.Errorf("list users with catches: %w", err)
	}
	result.Users = len(userIDs)

	workers := s.rebuildWorkers
	if workers < 1 {
		workers = 1
	}
	p := pool.NewWithResults[bool]().WithContext(ctx).WithMaxGoroutines(workers)
	for _, userID := range userIDs {
		userID := userID
		p.Go(func(ctx context.Context) (bool, error) {
			if err := s.ApplyCatchChange(ctx, userID); err != nil {
				s.logger.ErrorContext(ctx, "leaderboard rebuild failed", "user_id", userID, "error", err)
				return false, nil
			}
			return true, nil
		})
	}
	outcomes, err := p.Wait()
	if err != nil {
		return result, fmt.Errorf("rebuild leaderboard: %w", err)
	}
	for _, ok := range outcomes {
		if !ok {
			result.Failed++
		}
	}

	s.logger.InfoContext(ctx, "leaderboard cache rebuilt", "users", result.Users, "failed", result.Failed)
	return result, nil
}

// rankEntries applies competition-style ranking to cache entries: sort by
// the metric's dimension, ties share a rank, users with no catches stay
// unranked and sink to the bottom.
func rankEntries(entries []leaderboard.Entry, metric competition.Metric) []leaderboard.RankedEntry {
	byUser := make(map[string]leaderboard.Entry, len(entries))
	scored := make([]scoring.RankedEntry, 0, len(entries))
	for _, entry := range entries {
		byUser[entry.UserID] = entry
		scored = append(scored, scoring.RankedEntry{
			ID:         entry.UserID,
			Score:      metricValue(entry, metric),
			CatchCount: entry.TotalCatches,
			TiebreakAt: entry.EarliestCatchAt,
		})
	}

	ranked := make([]leaderboard.RankedEntry, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, row := range scoring.Rank(scored) {
		ranked = append(ranked, leaderboard.RankedEntry{Entry: byUser[row.ID], Rank: row.Rank})
		seen[row.ID] = true
	}
	for _, entry := range entries {
		if !seen[entry.UserID] {
			ranked = append(ranked, leaderboard.RankedEntry{Entry: entry})
		}
	}

	return ranked
}

func metricValue(entry leaderboard.Entry, metric competition.Metric) float64 {
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

func normalizeState(state string) string {
	state = strings.ToUpper(strings.TrimSpace(state))
	if state == "" || strings.EqualFold(state, leaderboard.StateAll) {
		return leaderboard.StateAll
	}
	return state
}

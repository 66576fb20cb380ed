package memory

import (
	"context"
	"testing"

	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/domain/leaderboard"
)

func seedLeaderboard(t *testing.T) *LeaderboardRepository {
	t.Helper()

	repo := NewLeaderboardRepository()
	entries := []leaderboard.Entry{
		{UserID: "angler-1", State: "TX", TotalPoints: 120, TotalCatches: 4, BiggestFishWeight: 6.5},
		{UserID: "angler-2", State: "TX", TotalPoints: 200, TotalCatches: 2, BiggestFishWeight: 9.1},
		{UserID: "angler-3", State: "TX", TotalPoints: 120, TotalCatches: 8, BiggestFishWeight: 3.2},
		{UserID: "angler-4", State: "FL", TotalPoints: 500, TotalCatches: 1, BiggestFishWeight: 12.0},
	}
	for _, entry := range entries {
		if err := repo.Upsert(context.Background(), entry); err != nil {
			t.Fatalf("Upsert error: %v", err)
		}
	}
	return repo
}

func TestLeaderboardRepository_TopOrdersByMetric(t *testing.T) {
	t.Parallel()

	repo := seedLeaderboard(t)

	top, err := repo.Top(context.Background(), "TX", competition.MetricPoints, 0)
	if err != nil {
		t.Fatalf("Top error: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 entries for TX, got %d", len(top))
	}
	if top[0].UserID != "angler-2" {
		t.Fatalf("expected angler-2 first on points, got %s", top[0].UserID)
	}
	// Ties break on user id for a stable page order.
	if top[1].UserID != "angler-1" || top[2].UserID != "angler-3" {
		t.Fatalf("unexpected tie order: %s, %s", top[1].UserID, top[2].UserID)
	}

	top, err = repo.Top(context.Background(), "TX", competition.MetricCatches, 2)
	if err != nil {
		t.Fatalf("Top error: %v", err)
	}
	if len(top) != 2 || top[0].UserID != "angler-3" {
		t.Fatalf("unexpected catches leaders: %+v", top)
	}
}

func TestLeaderboardRepository_PartitionsByState(t *testing.T) {
	t.Parallel()

	repo := seedLeaderboard(t)

	top, err := repo.Top(context.Background(), "FL", competition.MetricWeight, 0)
	if err != nil {
		t.Fatalf("Top error: %v", err)
	}
	if len(top) != 1 || top[0].UserID != "angler-4" {
		t.Fatalf("unexpected FL leaders: %+v", top)
	}

	if _, ok, _ := repo.Get(context.Background(), "angler-4", "TX"); ok {
		t.Fatalf("angler-4 should not appear in the TX partition")
	}
}

func TestLeaderboardRepository_ListByUsersAndDelete(t *testing.T) {
	t.Parallel()

	repo := seedLeaderboard(t)

	entries, err := repo.ListByUsers(context.Background(), []string{"angler-1", "angler-3", "angler-unknown"}, "TX")
	if err != nil {
		t.Fatalf("ListByUsers error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 known users, got %d", len(entries))
	}

	states, err := repo.StatesForUser(context.Background(), "angler-1")
	if err != nil {
		t.Fatalf("StatesForUser error: %v", err)
	}
	if len(states) != 1 || states[0] != "TX" {
		t.Fatalf("unexpected states for angler-1: %v", states)
	}

	if err := repo.Delete(context.Background(), "angler-1", "TX"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok, _ := repo.Get(context.Background(), "angler-1", "TX"); ok {
		t.Fatalf("expected angler-1 removed")
	}
	if states, _ := repo.StatesForUser(context.Background(), "angler-1"); len(states) != 0 {
		t.Fatalf("expected no states after delete, got %v", states)
	}
	// Deleting an absent entry is a no-op.
	if err := repo.Delete(context.Background(), "angler-1", "TX"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

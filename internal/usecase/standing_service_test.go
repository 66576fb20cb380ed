package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/catch"
	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/platform/resilience"
)

func newStandingFixture(t *testing.T, metric competition.Metric) (*StandingService, *stubCompetitionRepository, *stubCatchRepository, competition.Competition) {
	t.Helper()

	now := time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)
	comp := competition.Competition{
		ID:         "comp-1",
		CreatorID:  "angler-1",
		Name:       "June Derby",
		Type:       competition.TypeWeekly,
		Metric:     metric,
		Visibility: competition.VisibilityPublic,
		StartAt:    now.Add(-72 * time.Hour),
		EndAt:      now.Add(72 * time.Hour),
		Status:     competition.StatusActive,
	}

	compRepo := newStubCompetitionRepository()
	if err := compRepo.Create(context.Background(), comp); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	catchRepo := newStubCatchRepository()
	service := NewStandingService(compRepo, catchRepo, &resilience.SingleFlight{}, nil)
	service.now = func() time.Time { return now }
	return service, compRepo, catchRepo, comp
}

func addParticipant(t *testing.T, repo *stubCompetitionRepository, competitionID, userID string, joinedAt time.Time) {
	t.Helper()
	err := repo.AddParticipant(context.Background(), competition.Participant{
		CompetitionID: competitionID,
		UserID:        userID,
		JoinedAt:      joinedAt,
	})
	if err != nil {
		t.Fatalf("AddParticipant error: %v", err)
	}
}

func addCatch(t *testing.T, repo *stubCatchRepository, id, userID string, points int, caughtAt time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), catch.Catch{
		ID:        id,
		UserID:    userID,
		SpeciesID: "bass",
		Points:    points,
		CaughtAt:  caughtAt,
	})
	if err != nil {
		t.Fatalf("Create catch error: %v", err)
	}
}

func TestStandingService_Recompute_PointsAndRanks(t *testing.T) {
	t.Parallel()

	service, compRepo, catchRepo, comp := newStandingFixture(t, competition.MetricPoints)
	joined := comp.StartAt

	addParticipant(t, compRepo, comp.ID, "angler-1", joined)
	addParticipant(t, compRepo, comp.ID, "angler-2", joined.Add(time.Minute))
	addParticipant(t, compRepo, comp.ID, "angler-3", joined.Add(2*time.Minute))

	addCatch(t, catchRepo, "c1", "angler-1", 30, comp.StartAt.Add(time.Hour))
	addCatch(t, catchRepo, "c2", "angler-1", 20, comp.StartAt.Add(2*time.Hour))
	addCatch(t, catchRepo, "c3", "angler-2", 50, comp.StartAt.Add(3*time.Hour))

	for _, userID := range []string{"angler-1", "angler-2"} {
		if err := service.Recompute(context.Background(), comp.ID, userID); err != nil {
			t.Fatalf("Recompute(%s) error: %v", userID, err)
		}
	}

	standings, err := service.Standings(context.Background(), comp.ID)
	if err != nil {
		t.Fatalf("Standings error: %v", err)
	}
	if len(standings) != 3 {
		t.Fatalf("expected 3 participants, got %d", len(standings))
	}

	// Both leaders score 50; the earlier join breaks the tie.
	first, second, third := standings[0], standings[1], standings[2]
	if first.UserID != "angler-1" || first.Rank == nil || *first.Rank != 1 {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if second.UserID != "angler-2" || second.Rank == nil || *second.Rank != 1 {
		t.Fatalf("unexpected second row: %+v", second)
	}
	if third.UserID != "angler-3" || third.Rank != nil {
		t.Fatalf("zero-activity participant should be unranked: %+v", third)
	}
	if first.Score != 50 || first.CatchCount != 2 {
		t.Fatalf("unexpected aggregate for angler-1: %+v", first)
	}
	if first.BestCatchID == nil || *first.BestCatchID != "c1" {
		t.Fatalf("best catch = %v, want c1", first.BestCatchID)
	}
}

func TestStandingService_Recompute_WindowAndSpeciesFilter(t *testing.T) {
	t.Parallel()

	service, compRepo, catchRepo, comp := newStandingFixture(t, competition.MetricPoints)
	target := "bass"
	comp.TargetSpeciesID = &target
	if err := compRepo.Update(context.Background(), comp); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	addParticipant(t, compRepo, comp.ID, "angler-1", comp.StartAt)

	addCatch(t, catchRepo, "early", "angler-1", 40, comp.StartAt.Add(-time.Minute))
	addCatch(t, catchRepo, "boundary-start", "angler-1", 15, comp.StartAt)
	addCatch(t, catchRepo, "boundary-end", "angler-1", 25, comp.EndAt)
	addCatch(t, catchRepo, "late", "angler-1", 60, comp.EndAt.Add(time.Minute))
	err := catchRepo.Create(context.Background(), catch.Catch{
		ID:        "wrong-species",
		UserID:    "angler-1",
		SpeciesID: "trout",
		Points:    99,
		CaughtAt:  comp.StartAt.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Create catch error: %v", err)
	}

	if err := service.Recompute(context.Background(), comp.ID, "angler-1"); err != nil {
		t.Fatalf("Recompute error: %v", err)
	}

	p, _, err := compRepo.GetParticipant(context.Background(), comp.ID, "angler-1")
	if err != nil {
		t.Fatalf("GetParticipant error: %v", err)
	}
	// Window boundaries are inclusive; out-of-window and off-species catches
	// never count.
	if p.Score != 40 || p.CatchCount != 2 {
		t.Fatalf("unexpected aggregate: score=%g count=%d", p.Score, p.CatchCount)
	}
}

func TestStandingService_Recompute_Idempotent(t *testing.T) {
	t.Parallel()

	service, compRepo, catchRepo, comp := newStandingFixture(t, competition.MetricPoints)
	addParticipant(t, compRepo, comp.ID, "angler-1", comp.StartAt)
	addCatch(t, catchRepo, "c1", "angler-1", 35, comp.StartAt.Add(time.Hour))

	for i := 0; i < 3; i++ {
		if err := service.Recompute(context.Background(), comp.ID, "angler-1"); err != nil {
			t.Fatalf("Recompute error: %v", err)
		}
	}

	p, _, err := compRepo.GetParticipant(context.Background(), comp.ID, "angler-1")
	if err != nil {
		t.Fatalf("GetParticipant error: %v", err)
	}
	if p.Score != 35 || p.CatchCount != 1 || p.Rank == nil || *p.Rank != 1 {
		t.Fatalf("repeat recompute drifted: %+v", p)
	}
}

func TestStandingService_Recompute_NotAParticipant(t *testing.T) {
	t.Parallel()

	service, _, _, comp := newStandingFixture(t, competition.MetricPoints)
	if err := service.Recompute(context.Background(), comp.ID, "stranger"); !errors.Is(err, ErrNotAParticipant) {
		t.Fatalf("expected ErrNotAParticipant, got %v", err)
	}
}

func TestStandingService_ClosedCompetitionRejectsRecompute(t *testing.T) {
	t.Parallel()

	service, compRepo, _, comp := newStandingFixture(t, competition.MetricPoints)
	addParticipant(t, compRepo, comp.ID, "angler-1", comp.StartAt)

	frozen := comp.EndAt
	comp.Status = competition.StatusCompleted
	comp.FrozenAt = &frozen
	if err := compRepo.Update(context.Background(), comp); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if err := service.Recompute(context.Background(), comp.ID, "angler-1"); !errors.Is(err, ErrCompetitionClosed) {
		t.Fatalf("expected ErrCompetitionClosed, got %v", err)
	}
	if err := service.RecomputeAll(context.Background(), comp.ID); !errors.Is(err, ErrCompetitionClosed) {
		t.Fatalf("expected ErrCompetitionClosed from RecomputeAll, got %v", err)
	}
}

func TestStandingService_FinalizeRecomputesEveryParticipant(t *testing.T) {
	t.Parallel()

	service, compRepo, catchRepo, comp := newStandingFixture(t, competition.MetricCatches)
	addParticipant(t, compRepo, comp.ID, "angler-1", comp.StartAt)
	addParticipant(t, compRepo, comp.ID, "angler-2", comp.StartAt.Add(time.Minute))

	addCatch(t, catchRepo, "c1", "angler-1", 10, comp.StartAt.Add(time.Hour))
	addCatch(t, catchRepo, "c2", "angler-1", 10, comp.StartAt.Add(2*time.Hour))
	addCatch(t, catchRepo, "c3", "angler-2", 10, comp.StartAt.Add(3*time.Hour))

	if err := service.Finalize(context.Background(), comp.ID); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	first, _, err := compRepo.GetParticipant(context.Background(), comp.ID, "angler-1")
	if err != nil {
		t.Fatalf("GetParticipant error: %v", err)
	}
	second, _, err := compRepo.GetParticipant(context.Background(), comp.ID, "angler-2")
	if err != nil {
		t.Fatalf("GetParticipant error: %v", err)
	}

	if first.Score != 2 || first.Rank == nil || *first.Rank != 1 {
		t.Fatalf("unexpected angler-1 row: %+v", first)
	}
	if second.Score != 1 || second.Rank == nil || *second.Rank != 2 {
		t.Fatalf("unexpected angler-2 row: %+v", second)
	}
	// Best catch stays empty under the catches metric.
	if first.BestCatchID != nil {
		t.Fatalf("best catch = %v, want nil for catches metric", first.BestCatchID)
	}
}

package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/domain/species"
)

type stubFinalizer struct {
	mu        sync.Mutex
	finalized []string
	err       error
}

func (s *stubFinalizer) Finalize(_ context.Context, competitionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.finalized = append(s.finalized, competitionID)
	return nil
}

func newCompetitionService(t *testing.T, repo *stubCompetitionRepository, finalizer *stubFinalizer, now time.Time) *CompetitionService {
	t.Helper()
	speciesRepo := &stubSpeciesRepository{byID: map[string]species.Species{
		"bass": {ID: "bass", Name: "Largemouth Bass"},
	}}
	service := NewCompetitionService(repo, speciesRepo, finalizer, &stubIDGenerator{}, nil)
	service.now = func() time.Time { return now }
	return service
}

func weeklyInput(creatorID string, startAt time.Time) CreateCompetitionInput {
	return CreateCompetitionInput{
		CreatorID: creatorID,
		Name:      "Summer Slam",
		Type:      competition.TypeWeekly,
		Metric:    competition.MetricPoints,
		StartAt:   startAt,
	}
}

func TestCompetitionService_Create_FutureStartIsPending(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubCompetitionRepository()
	service := newCompetitionService(t, repo, nil, now)

	comp, err := service.Create(context.Background(), weeklyInput("angler-1", now.Add(24*time.Hour)))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if comp.Status != competition.StatusPending {
		t.Fatalf("status = %s, want pending", comp.Status)
	}
	if want := comp.StartAt.AddDate(0, 0, 7); !comp.EndAt.Equal(want) {
		t.Fatalf("end at = %v, want %v", comp.EndAt, want)
	}

	_, joined, err := repo.GetParticipant(context.Background(), comp.ID, "angler-1")
	if err != nil || !joined {
		t.Fatalf("creator not enrolled: joined=%v err=%v", joined, err)
	}
}

func TestCompetitionService_Create_PastStartIsActive(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubCompetitionRepository()
	service := newCompetitionService(t, repo, nil, now)

	comp, err := service.Create(context.Background(), weeklyInput("angler-1", now.Add(-time.Hour)))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if comp.Status != competition.StatusActive {
		t.Fatalf("status = %s, want active", comp.Status)
	}
}

func TestCompetitionService_Create_UnknownSpecies(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	service := newCompetitionService(t, newStubCompetitionRepository(), nil, now)

	input := weeklyInput("angler-1", now.Add(time.Hour))
	input.TargetSpeciesID = "kraken"
	if _, err := service.Create(context.Background(), input); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompetitionService_Join(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubCompetitionRepository()
	service := newCompetitionService(t, repo, nil, now)

	comp, err := service.Create(context.Background(), weeklyInput("angler-1", now.Add(time.Hour)))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := service.Join(context.Background(), comp.ID, "angler-2"); err != nil {
		t.Fatalf("Join error: %v", err)
	}
	if _, err := service.Join(context.Background(), comp.ID, "angler-2"); !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}
}

func TestCompetitionService_Join_CapacityAndClosedWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubCompetitionRepository()
	service := newCompetitionService(t, repo, nil, now)

	input := weeklyInput("angler-1", now.Add(time.Hour))
	input.MaxParticipants = 2
	comp, err := service.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := service.Join(context.Background(), comp.ID, "angler-2"); err != nil {
		t.Fatalf("Join error: %v", err)
	}
	if _, err := service.Join(context.Background(), comp.ID, "angler-3"); !errors.Is(err, ErrCompetitionFull) {
		t.Fatalf("expected ErrCompetitionFull, got %v", err)
	}

	comp.Status = competition.StatusCompleted
	if err := repo.Update(context.Background(), comp); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if _, err := service.Join(context.Background(), comp.ID, "angler-4"); !errors.Is(err, ErrJoinWindowClosed) {
		t.Fatalf("expected ErrJoinWindowClosed, got %v", err)
	}
}

func TestCompetitionService_Leave(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubCompetitionRepository()
	service := newCompetitionService(t, repo, nil, now)

	comp, err := service.Create(context.Background(), weeklyInput("angler-1", now.Add(time.Hour)))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := service.Join(context.Background(), comp.ID, "angler-2"); err != nil {
		t.Fatalf("Join error: %v", err)
	}

	if err := service.Leave(context.Background(), comp.ID, "angler-3"); !errors.Is(err, ErrNotAParticipant) {
		t.Fatalf("expected ErrNotAParticipant, got %v", err)
	}
	if err := service.Leave(context.Background(), comp.ID, "angler-2"); err != nil {
		t.Fatalf("Leave error: %v", err)
	}

	comp.Status = competition.StatusActive
	if err := repo.Update(context.Background(), comp); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := service.Leave(context.Background(), comp.ID, "angler-1"); !errors.Is(err, ErrCannotLeaveActive) {
		t.Fatalf("expected ErrCannotLeaveActive, got %v", err)
	}
}

func TestCompetitionService_InviteAndRespond(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubCompetitionRepository()
	service := newCompetitionService(t, repo, nil, now)

	comp, err := service.Create(context.Background(), weeklyInput("angler-1", now.Add(time.Hour)))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := service.Invite(context.Background(), comp.ID, "angler-2", "angler-3"); !errors.Is(err, ErrNotAParticipant) {
		t.Fatalf("expected ErrNotAParticipant for non-member inviter, got %v", err)
	}

	inv, err := service.Invite(context.Background(), comp.ID, "angler-1", "angler-3")
	if err != nil {
		t.Fatalf("Invite error: %v", err)
	}
	if _, err := service.Invite(context.Background(), comp.ID, "angler-1", "angler-3"); !errors.Is(err, ErrDuplicateInvitation) {
		t.Fatalf("expected ErrDuplicateInvitation, got %v", err)
	}

	if _, err := service.Respond(context.Background(), inv.ID, "angler-4", true); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong invitee, got %v", err)
	}

	resolved, err := service.Respond(context.Background(), inv.ID, "angler-3", true)
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if resolved.Status != competition.InvitationAccepted {
		t.Fatalf("invitation status = %s, want accepted", resolved.Status)
	}
	if _, joined, _ := repo.GetParticipant(context.Background(), comp.ID, "angler-3"); !joined {
		t.Fatal("accepting an invitation should join the competition")
	}

	if _, err := service.Respond(context.Background(), inv.ID, "angler-3", false); !errors.Is(err, ErrInvitationResolved) {
		t.Fatalf("expected ErrInvitationResolved on second response, got %v", err)
	}
}

func TestCompetitionService_Respond_FullCompetitionKeepsInvitationPending(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubCompetitionRepository()
	service := newCompetitionService(t, repo, nil, now)

	input := weeklyInput("angler-1", now.Add(time.Hour))
	input.MaxParticipants = 2
	comp, err := service.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	inv, err := service.Invite(context.Background(), comp.ID, "angler-1", "angler-3")
	if err != nil {
		t.Fatalf("Invite error: %v", err)
	}

	// The last slot fills between invite and respond.
	if _, err := service.Join(context.Background(), comp.ID, "angler-2"); err != nil {
		t.Fatalf("Join error: %v", err)
	}

	if _, err := service.Respond(context.Background(), inv.ID, "angler-3", true); !errors.Is(err, ErrCompetitionFull) {
		t.Fatalf("expected ErrCompetitionFull, got %v", err)
	}

	stored, _, err := repo.GetInvitation(context.Background(), inv.ID)
	if err != nil {
		t.Fatalf("GetInvitation error: %v", err)
	}
	if stored.Status != competition.InvitationPending {
		t.Fatalf("invitation status = %s, want pending after failed join", stored.Status)
	}

	// A freed slot makes the retry succeed.
	if err := service.Leave(context.Background(), comp.ID, "angler-2"); err != nil {
		t.Fatalf("Leave error: %v", err)
	}
	resolved, err := service.Respond(context.Background(), inv.ID, "angler-3", true)
	if err != nil {
		t.Fatalf("Respond retry error: %v", err)
	}
	if resolved.Status != competition.InvitationAccepted {
		t.Fatalf("invitation status = %s, want accepted", resolved.Status)
	}
	if _, joined, _ := repo.GetParticipant(context.Background(), comp.ID, "angler-3"); !joined {
		t.Fatal("retry after a freed slot should join the competition")
	}
}

func TestCompetitionService_Cancel(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubCompetitionRepository()
	service := newCompetitionService(t, repo, nil, now)

	comp, err := service.Create(context.Background(), weeklyInput("angler-1", now.Add(time.Hour)))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := service.Cancel(context.Background(), comp.ID, "angler-2"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-creator, got %v", err)
	}
	if err := service.Cancel(context.Background(), comp.ID, "angler-1"); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}

	got, _, _ := repo.GetByID(context.Background(), comp.ID)
	if got.Status != competition.StatusCancelled || got.FrozenAt == nil {
		t.Fatalf("expected cancelled and frozen, got status=%s frozenAt=%v", got.Status, got.FrozenAt)
	}

	if err := service.Cancel(context.Background(), comp.ID, "angler-1"); !errors.Is(err, ErrCompetitionClosed) {
		t.Fatalf("expected ErrCompetitionClosed on second cancel, got %v", err)
	}
}

func TestCompetitionService_AdvanceDue(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubCompetitionRepository()
	finalizer := &stubFinalizer{}
	service := newCompetitionService(t, repo, finalizer, now)

	pending := competition.Competition{
		ID:         "c-pending",
		CreatorID:  "angler-1",
		Name:       "Opens Soon",
		Type:       competition.TypeDaily,
		Metric:     competition.MetricPoints,
		Visibility: competition.VisibilityPublic,
		StartAt:    now.Add(-time.Hour),
		EndAt:      now.Add(23 * time.Hour),
		Status:     competition.StatusPending,
	}
	ended := competition.Competition{
		ID:         "c-ended",
		CreatorID:  "angler-1",
		Name:       "Already Over",
		Type:       competition.TypeDaily,
		Metric:     competition.MetricWeight,
		Visibility: competition.VisibilityPublic,
		StartAt:    now.Add(-48 * time.Hour),
		EndAt:      now.Add(-time.Hour),
		Status:     competition.StatusActive,
	}
	for _, c := range []competition.Competition{pending, ended} {
		if err := repo.Create(context.Background(), c); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	result, err := service.AdvanceDue(context.Background())
	if err != nil {
		t.Fatalf("AdvanceDue error: %v", err)
	}
	if result.Activated != 1 || result.Completed != 1 || result.Failed != 0 {
		t.Fatalf("unexpected sweep result: %+v", result)
	}

	activated, _, _ := repo.GetByID(context.Background(), "c-pending")
	if activated.Status != competition.StatusActive {
		t.Fatalf("pending competition status = %s, want active", activated.Status)
	}

	completed, _, _ := repo.GetByID(context.Background(), "c-ended")
	if completed.Status != competition.StatusCompleted || completed.FrozenAt == nil {
		t.Fatalf("expected completed and frozen, got status=%s frozenAt=%v", completed.Status, completed.FrozenAt)
	}

	finalizer.mu.Lock()
	finalized := append([]string(nil), finalizer.finalized...)
	finalizer.mu.Unlock()
	sort.Strings(finalized)
	if len(finalized) != 1 || finalized[0] != "c-ended" {
		t.Fatalf("finalizer calls = %v, want [c-ended]", finalized)
	}
}

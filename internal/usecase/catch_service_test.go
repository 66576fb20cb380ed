package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/domain/species"
	"github.com/astorrey/TackleHogs/internal/domain/weather"
)

type stubWeatherProvider struct {
	data weather.Data
	err  error
	hits int
}

func (s *stubWeatherProvider) Current(_ context.Context, _, _ float64) (weather.Data, error) {
	s.hits++
	return s.data, s.err
}

type recordingLeaderboardUpdater struct {
	mu    sync.Mutex
	users []string
}

func (r *recordingLeaderboardUpdater) ApplyCatchChange(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
	return nil
}

type recordingStandingUpdater struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingStandingUpdater) Recompute(_ context.Context, competitionID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, competitionID+"|"+userID)
	return nil
}

type catchFixture struct {
	service     *CatchService
	catchRepo   *stubCatchRepository
	compRepo    *stubCompetitionRepository
	weather     *stubWeatherProvider
	leaderboard *recordingLeaderboardUpdater
	standings   *recordingStandingUpdater
}

func newCatchFixture(t *testing.T) catchFixture {
	t.Helper()

	f := catchFixture{
		catchRepo:   newStubCatchRepository(),
		compRepo:    newStubCompetitionRepository(),
		weather:     &stubWeatherProvider{data: weather.Data{Temperature: 72, Conditions: "Clear"}},
		leaderboard: &recordingLeaderboardUpdater{},
		standings:   &recordingStandingUpdater{},
	}
	speciesRepo := &stubSpeciesRepository{byID: map[string]species.Species{
		"bass": {ID: "bass", Name: "Largemouth Bass"},
	}}
	f.service = NewCatchService(
		f.catchRepo, speciesRepo, f.compRepo,
		f.weather, f.leaderboard, f.standings,
		&stubIDGenerator{}, nil,
	)
	f.service.now = func() time.Time {
		return time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)
	}
	return f
}

func TestCatchService_Create_ComputesPointsAndWeather(t *testing.T) {
	t.Parallel()

	f := newCatchFixture(t)
	caughtAt := time.Date(2026, time.June, 1, 6, 30, 0, 0, time.UTC)

	got, err := f.service.Create(context.Background(), CreateCatchInput{
		UserID:    "angler-1",
		SpeciesID: "bass",
		State:     "tx",
		Weight:    floatPtr(8.0),
		Latitude:  floatPtr(30.2),
		Longitude: floatPtr(-97.7),
		CaughtAt:  caughtAt,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// base 10 + weight bonus 40 + prime time 5
	if got.Points != 55 {
		t.Fatalf("points = %d, want 55", got.Points)
	}
	if len(got.Bonuses) != 2 || got.Bonuses[0] != "Size bonus: +40" || got.Bonuses[1] != "Time bonus: +5" {
		t.Fatalf("unexpected bonuses: %v", got.Bonuses)
	}
	if got.State != "TX" {
		t.Fatalf("state = %q, want TX", got.State)
	}
	if got.Weather == nil || got.Weather.Conditions != "Clear" {
		t.Fatalf("expected weather snapshot, got %+v", got.Weather)
	}

	if len(f.leaderboard.users) != 1 || f.leaderboard.users[0] != "angler-1" {
		t.Fatalf("leaderboard calls = %v", f.leaderboard.users)
	}
}

func TestCatchService_Create_WeatherFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	f := newCatchFixture(t)
	f.weather.err = fmt.Errorf("upstream timeout")

	got, err := f.service.Create(context.Background(), CreateCatchInput{
		UserID:    "angler-1",
		SpeciesID: "bass",
		Latitude:  floatPtr(30.2),
		Longitude: floatPtr(-97.7),
		CaughtAt:  time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Weather != nil {
		t.Fatalf("expected no weather snapshot, got %+v", got.Weather)
	}
}

func TestCatchService_Create_UnknownSpecies(t *testing.T) {
	t.Parallel()

	f := newCatchFixture(t)
	_, err := f.service.Create(context.Background(), CreateCatchInput{
		UserID:    "angler-1",
		SpeciesID: "kraken",
		CaughtAt:  time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatchService_Create_RejectsOutOfRangeMeasurements(t *testing.T) {
	t.Parallel()

	f := newCatchFixture(t)
	_, err := f.service.Create(context.Background(), CreateCatchInput{
		UserID:    "angler-1",
		SpeciesID: "bass",
		Weight:    floatPtr(1200),
		CaughtAt:  time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCatchService_Create_PropagatesToActiveCompetitions(t *testing.T) {
	t.Parallel()

	f := newCatchFixture(t)
	now := time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)

	active := competition.Competition{
		ID: "comp-active", CreatorID: "angler-1", Name: "Derby",
		Type: competition.TypeWeekly, Metric: competition.MetricPoints,
		Visibility: competition.VisibilityPublic,
		StartAt:    now.Add(-time.Hour), EndAt: now.Add(time.Hour),
		Status: competition.StatusActive,
	}
	done := active
	done.ID = "comp-done"
	done.Status = competition.StatusCompleted
	for _, c := range []competition.Competition{active, done} {
		if err := f.compRepo.Create(context.Background(), c); err != nil {
			t.Fatalf("Create competition error: %v", err)
		}
		err := f.compRepo.AddParticipant(context.Background(), competition.Participant{
			CompetitionID: c.ID, UserID: "angler-1", JoinedAt: now,
		})
		if err != nil {
			t.Fatalf("AddParticipant error: %v", err)
		}
	}

	_, err := f.service.Create(context.Background(), CreateCatchInput{
		UserID:    "angler-1",
		SpeciesID: "bass",
		CaughtAt:  now,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if len(f.standings.calls) != 1 || f.standings.calls[0] != "comp-active|angler-1" {
		t.Fatalf("standings calls = %v, want only the active competition", f.standings.calls)
	}
}

func TestCatchService_Update_RecomputesPoints(t *testing.T) {
	t.Parallel()

	f := newCatchFixture(t)
	caughtAt := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

	created, err := f.service.Create(context.Background(), CreateCatchInput{
		UserID:    "angler-1",
		SpeciesID: "bass",
		Weight:    floatPtr(2.0),
		CaughtAt:  caughtAt,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Points != 20 {
		t.Fatalf("points = %d, want 20", created.Points)
	}

	updated, err := f.service.Update(context.Background(), created.ID, "angler-1", UpdateCatchInput{
		Weight: floatPtr(12.0),
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Points != 60 {
		t.Fatalf("points after update = %d, want 60", updated.Points)
	}

	if _, err := f.service.Update(context.Background(), created.ID, "angler-2", UpdateCatchInput{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign update, got %v", err)
	}
}

func TestCatchService_Delete(t *testing.T) {
	t.Parallel()

	f := newCatchFixture(t)
	created, err := f.service.Create(context.Background(), CreateCatchInput{
		UserID:    "angler-1",
		SpeciesID: "bass",
		CaughtAt:  time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := f.service.Delete(context.Background(), created.ID, "angler-2"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := f.service.Delete(context.Background(), created.ID, "angler-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := f.service.Get(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

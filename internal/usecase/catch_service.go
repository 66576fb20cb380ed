package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/catch"
	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/domain/scoring"
	"github.com/astorrey/TackleHogs/internal/domain/species"
	"github.com/astorrey/TackleHogs/internal/domain/weather"
	idgen "github.com/astorrey/TackleHogs/internal/platform/id"
	"github.com/astorrey/TackleHogs/internal/platform/logging"
)

type CreateCatchInput struct {
	UserID     string
	SpeciesID  string
	TackleID   string
	LocationID string
	State      string
	Weight     *float64
	Length     *float64
	Latitude   *float64
	Longitude  *float64
	Notes      string
	PhotoURL   string
	CaughtAt   time.Time
}

type UpdateCatchInput struct {
	Weight   *float64
	Length   *float64
	Notes    *string
	PhotoURL *string
	CaughtAt *time.Time
}

// weatherProvider captures conditions at the catch site. Lookups are best
// effort; a failure never blocks logging the catch.
type weatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (weather.Data, error)
}

type leaderboardUpdater interface {
	ApplyCatchChange(ctx context.Context, userID string) error
}

type standingUpdater interface {
	Recompute(ctx context.Context, competitionID, userID string) error
}

// CatchService owns the catch log. Points and bonuses are computed here on
// every write; score changes fan out to the leaderboard cache and to the
// user's active competitions.
type CatchService struct {
	catchRepo   catch.Repository
	speciesRepo species.Repository
	compRepo    competition.Repository
	weather     weatherProvider
	leaderboard leaderboardUpdater
	standings   standingUpdater
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewCatchService(
	catchRepo catch.Repository,
	speciesRepo species.Repository,
	compRepo competition.Repository,
	weatherClient weatherProvider,
	leaderboardSvc leaderboardUpdater,
	standingSvc standingUpdater,
	idGen idgen.Generator,
	logger *logging.Logger,
) *CatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CatchService{
		catchRepo:   catchRepo,
		speciesRepo: speciesRepo,
		compRepo:    compRepo,
		weather:     weatherClient,
		leaderboard: leaderboardSvc,
		standings:   standingSvc,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *CatchService) Create(ctx context.Context, input CreateCatchInput) (catch.Catch, error) {
	ctx, span := startUsecaseSpan(ctx, "CatchService.Create")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.SpeciesID = strings.TrimSpace(input.SpeciesID)
	if input.UserID == "" {
		return catch.Catch{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.SpeciesID == "" {
		return catch.Catch{}, fmt.Errorf("%w: species id is required", ErrInvalidInput)
	}
	if input.CaughtAt.IsZero() {
		return catch.Catch{}, fmt.Errorf("%w: caught at timestamp is required", ErrInvalidInput)
	}

	if _, exists, err := s.speciesRepo.GetByID(ctx, input.SpeciesID); err != nil {
		return catch.Catch{}, fmt.Errorf("get species: %w", err)
	} else if !exists {
		return catch.Catch{}, fmt.Errorf("%w: species=%s", ErrNotFound, input.SpeciesID)
	}

	catchID, err := s.idGen.NewID()
	if err != nil {
		return catch.Catch{}, fmt.Errorf("generate catch id: %w", err)
	}

	breakdown := scoring.CalculatePoints(input.Weight, input.Length, input.CaughtAt)
	now := s.now().UTC()

	c := catch.Catch{
		ID:         catchID,
		UserID:     input.UserID,
		SpeciesID:  input.SpeciesID,
		TackleID:   optionalString(input.TackleID),
		LocationID: optionalString(input.LocationID),
		State:      strings.ToUpper(strings.TrimSpace(input.State)),
		Weight:     input.Weight,
		Length:     input.Length,
		Points:     breakdown.Points,
		Bonuses:    breakdown.Bonuses,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		Notes:      strings.TrimSpace(input.Notes),
		PhotoURL:   strings.TrimSpace(input.PhotoURL),
		CaughtAt:   input.CaughtAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := c.Validate(); err != nil {
		return catch.Catch{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	c.Weather = s.lookupWeather(ctx, input.Latitude, input.Longitude)

	if err := s.catchRepo.Create(ctx, c); err != nil {
		return catch.Catch{}, fmt.Errorf("create catch: %w", err)
	}

	s.propagate(ctx, c.UserID)
	return c, nil
}

func (s *CatchService) Update(ctx context.Context, catchID, userID string, input UpdateCatchInput) (catch.Catch, error) {
	ctx, span := startUsecaseSpan(ctx, "CatchService.Update")
	defer span.End()

	c, err := s.getOwned(ctx, catchID, userID)
	if err != nil {
		return catch.Catch{}, err
	}

	if input.Weight != nil {
		c.Weight = input.Weight
	}
	if input.Length != nil {
		c.Length = input.Length
	}
	if input.Notes != nil {
		c.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.PhotoURL != nil {
		c.PhotoURL = strings.TrimSpace(*input.PhotoURL)
	}
	if input.CaughtAt != nil && !input.CaughtAt.IsZero() {
		c.CaughtAt = *input.CaughtAt
	}

	breakdown := scoring.CalculatePoints(c.Weight, c.Length, c.CaughtAt)
	c.Points = breakdown.Points
	c.Bonuses = breakdown.Bonuses
	c.UpdatedAt = s.now().UTC()

	if err := c.Validate(); err != nil {
		return catch.Catch{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.catchRepo.Update(ctx, c); err != nil {
		return catch.Catch{}, fmt.Errorf("update catch: %w", err)
	}

	s.propagate(ctx, c.UserID)
	return c, nil
}

func (s *CatchService) Delete(ctx context.Context, catchID, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "CatchService.Delete")
	defer span.End()

	c, err := s.getOwned(ctx, catchID, userID)
	if err != nil {
		return err
	}

	if err := s.catchRepo.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("delete catch: %w", err)
	}

	s.propagate(ctx, c.UserID)
	return nil
}

func (s *CatchService) Get(ctx context.Context, catchID string) (catch.Catch, error) {
	catchID = strings.TrimSpace(catchID)
	if catchID == "" {
		return catch.Catch{}, fmt.Errorf("%w: catch id is required", ErrInvalidInput)
	}

	c, exists, err := s.catchRepo.GetByID(ctx, catchID)
	if err != nil {
		return catch.Catch{}, fmt.Errorf("get catch by id: %w", err)
	}
	if !exists {
		return catch.Catch{}, fmt.Errorf("%w: catch=%s", ErrNotFound, catchID)
	}

	return c, nil
}

func (s *CatchService) List(ctx context.Context, filter catch.Filter) ([]catch.Catch, error) {
	items, err := s.catchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list catches: %w", err)
	}
	return items, nil
}

func (s *CatchService) getOwned(ctx context.Context, catchID, userID string) (catch.Catch, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return catch.Catch{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	c, err := s.Get(ctx, catchID)
	if err != nil {
		return catch.Catch{}, err
	}
	if c.UserID != userID {
		return catch.Catch{}, fmt.Errorf("%w: catch belongs to another user", ErrUnauthorized)
	}

	return c, nil
}

func (s *CatchService) lookupWeather(ctx context.Context, lat, lon *float64) *weather.Data {
	if s.weather == nil || lat == nil || lon == nil {
		return nil
	}

	data, err := s.weather.Current(ctx, *lat, *lon)
	if err != nil {
		s.logger.WarnContext(ctx, "weather lookup failed", "error", err)
		return nil
	}

	return &data
}

// propagate pushes a score change into the leaderboard cache and into the
// user's active competitions. Downstream failures are logged, not returned:
// the catch is already durable and the periodic freshness pass converges any
// drift.
func (s *CatchService) propagate(ctx context.Context, userID string) {
	if s.leaderboard != nil {
		if err := s.leaderboard.ApplyCatchChange(ctx, userID); err != nil {
			s.logger.ErrorContext(ctx, "leaderboard update failed", "user_id", userID, "error", err)
		}
	}

	if s.standings == nil {
		return
	}

	competitionIDs, err := s.compRepo.ListCompetitionIDsForUser(ctx, userID, []competition.Status{competition.StatusActive})
	if err != nil {
		s.logger.ErrorContext(ctx, "list active competitions failed", "user_id", userID, "error", err)
		return
	}

	for _, competitionID := range competitionIDs {
		err := s.standings.Recompute(ctx, competitionID, userID)
		if err != nil && !errors.Is(err, ErrCompetitionClosed) && !errors.Is(err, ErrNotAParticipant) {
			s.logger.ErrorContext(ctx, "standings update failed",
				"competition_id", competitionID,
				"user_id", userID,
				"error", err,
			)
		}
	}
}

func optionalString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

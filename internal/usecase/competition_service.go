package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/domain/species"
	idgen "github.com/astorrey/TackleHogs/internal/platform/id"
	"github.com/astorrey/TackleHogs/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const defaultSweepWorkers = 4

type CreateCompetitionInput struct {
	CreatorID       string
	Name            string
	Description     string
	Type            competition.Type
	Metric          competition.Metric
	TargetSpeciesID string
	Visibility      competition.Visibility
	MaxParticipants int
	StartAt         time.Time
	EndAt           time.Time
}

// standingsFinalizer runs the last recompute pass when a competition closes.
type standingsFinalizer interface {
	Finalize(ctx context.Context, competitionID string) error
}

type CompetitionService struct {
	compRepo     competition.Repository
	speciesRepo  species.Repository
	finalizer    standingsFinalizer
	idGen        idgen.Generator
	logger       *logging.Logger
	sweepWorkers int
	now          func() time.Time
}

func NewCompetitionService(
	compRepo competition.Repository,
	speciesRepo species.Repository,
	finalizer standingsFinalizer,
	idGen idgen.Generator,
	logger *logging.Logger,
) *CompetitionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CompetitionService{
		compRepo:     compRepo,
		speciesRepo:  speciesRepo,
		finalizer:    finalizer,
		idGen:        idGen,
		logger:       logger,
		sweepWorkers: defaultSweepWorkers,
		now:          time.Now,
	}
}

// SetSweepWorkers bounds the completion sweep's concurrency.
func (s *CompetitionService) SetSweepWorkers(workers int) {
	if workers < 1 {
		workers = 1
	}
	s.sweepWorkers = workers
}

func (s *CompetitionService) Create(ctx context.Context, input CreateCompetitionInput) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.Create")
	defer span.End()

	input.CreatorID = strings.TrimSpace(input.CreatorID)
	input.Name = strings.TrimSpace(input.Name)
	input.TargetSpeciesID = strings.TrimSpace(input.TargetSpeciesID)
	if input.CreatorID == "" {
		return competition.Competition{}, fmt.Errorf("%w: creator id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition name is required", ErrInvalidInput)
	}
	if input.StartAt.IsZero() {
		return competition.Competition{}, fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}
	if input.Visibility == "" {
		input.Visibility = competition.VisibilityPublic
	}

	startAt := input.StartAt.UTC()
	endAt := input.EndAt.UTC()
	if input.EndAt.IsZero() {
		startAt, endAt = competition.DefaultWindow(input.Type, startAt)
	}

	var targetSpeciesID *string
	if input.TargetSpeciesID != "" {
		_, exists, err := s.speciesRepo.GetByID(ctx, input.TargetSpeciesID)
		if err != nil {
			return competition.Competition{}, fmt.Errorf("get target species: %w", err)
		}
		if !exists {
			return competition.Competition{}, fmt.Errorf("%w: species=%s", ErrNotFound, input.TargetSpeciesID)
		}
		targetSpeciesID = &input.TargetSpeciesID
	}

	competitionID, err := s.idGen.NewID()
	if err != nil {
		return competition.Competition{}, fmt.Errorf("generate competition id: %w", err)
	}

	now := s.now().UTC()
	status := competition.StatusPending
	if !startAt.After(now) {
		status = competition.StatusActive
	}

	comp := competition.Competition{
		ID:              competitionID,
		CreatorID:       input.CreatorID,
		Name:            input.Name,
		Description:     strings.TrimSpace(input.Description),
		Type:            input.Type,
		Metric:          input.Metric,
		TargetSpeciesID: targetSpeciesID,
		Visibility:      input.Visibility,
		MaxParticipants: input.MaxParticipants,
		StartAt:         startAt,
		EndAt:           endAt,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := comp.Validate(); err != nil {
		return competition.Competition{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.compRepo.Create(ctx, comp); err != nil {
		return competition.Competition{}, fmt.Errorf("create competition: %w", err)
	}

	// The creator is always the first participant.
	creator := competition.Participant{
		CompetitionID: comp.ID,
		UserID:        comp.CreatorID,
		JoinedAt:      now,
		UpdatedAt:     now,
	}
	if err := s.compRepo.AddParticipant(ctx, creator); err != nil && !errors.Is(err, competition.ErrParticipantExists) {
		return competition.Competition{}, fmt.Errorf("enroll creator: %w", err)
	}

	return comp, nil
}

func (s *CompetitionService) Get(ctx context.Context, competitionID string) (competition.Competition, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	comp, exists, err := s.compRepo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition by id: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	return comp, nil
}

func (s *CompetitionService) List(ctx context.Context, filter competition.Filter) ([]competition.Competition, error) {
	items, err := s.compRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return items, nil
}

func (s *CompetitionService) Join(ctx context.Context, competitionID, userID string) (competition.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.Join")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	userID = strings.TrimSpace(userID)
	if competitionID == "" || userID == "" {
		return competition.Participant{}, fmt.Errorf("%w: competition id and user id are required", ErrInvalidInput)
	}

	comp, err := s.Get(ctx, competitionID)
	if err != nil {
		return competition.Participant{}, err
	}
	if comp.Closed() {
		return competition.Participant{}, fmt.Errorf("%w: competition status is %s", ErrJoinWindowClosed, comp.Status)
	}

	// Pre-checks are an optimization; the unique (competition_id, user_id)
	// constraint is the real guard against concurrent joins.
	if _, exists, err := s.compRepo.GetParticipant(ctx, competitionID, userID); err != nil {
		return competition.Participant{}, fmt.Errorf("get participant: %w", err)
	} else if exists {
		return competition.Participant{}, fmt.Errorf("%w: competition=%s", ErrAlreadyJoined, competitionID)
	}

	if comp.MaxParticipants > 0 {
		count, err := s.compRepo.CountParticipants(ctx, competitionID)
		if err != nil {
			return competition.Participant{}, fmt.Errorf("count participants: %w", err)
		}
		if count >= comp.MaxParticipants {
			return competition.Participant{}, fmt.Errorf("%w: cap=%d", ErrCompetitionFull, comp.MaxParticipants)
		}
	}

	now := s.now().UTC()
	participant := competition.Participant{
		CompetitionID: competitionID,
		UserID:        userID,
		JoinedAt:      now,
		UpdatedAt:     now,
	}
	if err := s.compRepo.AddParticipant(ctx, participant); err != nil {
		if errors.Is(err, competition.ErrParticipantExists) {
			return competition.Participant{}, fmt.Errorf("%w: competition=%s", ErrAlreadyJoined, competitionID)
		}
		return competition.Participant{}, fmt.Errorf("add participant: %w", err)
	}

	return participant, nil
}

func (s *CompetitionService) Leave(ctx context.Context, competitionID, userID string) error {
	competitionID = strings.TrimSpace(competitionID)
	userID = strings.TrimSpace(userID)
	if competitionID == "" || userID == "" {
		return fmt.Errorf("%w: competition id and user id are required", ErrInvalidInput)
	}

	comp, err := s.Get(ctx, competitionID)
	if err != nil {
		return err
	}
	if comp.Status != competition.StatusPending {
		return fmt.Errorf("%w: competition status is %s", ErrCannotLeaveActive, comp.Status)
	}

	_, exists, err := s.compRepo.GetParticipant(ctx, competitionID, userID)
	if err != nil {
		return fmt.Errorf("get participant: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: competition=%s user=%s", ErrNotAParticipant, competitionID, userID)
	}

	if err := s.compRepo.RemoveParticipant(ctx, competitionID, userID); err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}

	return nil
}

func (s *CompetitionService) Invite(ctx context.Context, competitionID, inviterID, inviteeID string) (competition.Invitation, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.Invite")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	inviterID = strings.TrimSpace(inviterID)
	inviteeID = strings.TrimSpace(inviteeID)
	if competitionID == "" || inviterID == "" || inviteeID == "" {
		return competition.Invitation{}, fmt.Errorf("%w: competition id, inviter id, and invitee id are required", ErrInvalidInput)
	}
	if inviterID == inviteeID {
		return competition.Invitation{}, fmt.Errorf("%w: cannot invite yourself", ErrInvalidInput)
	}

	comp, err := s.Get(ctx, competitionID)
	if err != nil {
		return competition.Invitation{}, err
	}
	if comp.Closed() {
		return competition.Invitation{}, fmt.Errorf("%w: competition status is %s", ErrJoinWindowClosed, comp.Status)
	}

	if _, exists, err := s.compRepo.GetParticipant(ctx, competitionID, inviterID); err != nil {
		return competition.Invitation{}, fmt.Errorf("get inviter participant: %w", err)
	} else if !exists {
		return competition.Invitation{}, fmt.Errorf("%w: inviter=%s", ErrNotAParticipant, inviterID)
	}

	if _, exists, err := s.compRepo.GetParticipant(ctx, competitionID, inviteeID); err != nil {
		return competition.Invitation{}, fmt.Errorf("get invitee participant: %w", err)
	} else if exists {
		return competition.Invitation{}, fmt.Errorf("%w: invitee=%s", ErrAlreadyJoined, inviteeID)
	}

	invitationID, err := s.idGen.NewID()
	if err != nil {
		return competition.Invitation{}, fmt.Errorf("generate invitation id: %w", err)
	}

	inv := competition.Invitation{
		ID:            invitationID,
		CompetitionID: competitionID,
		InviterID:     inviterID,
		InviteeID:     inviteeID,
		Status:        competition.InvitationPending,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.compRepo.CreateInvitation(ctx, inv); err != nil {
		if errors.Is(err, competition.ErrInvitationExists) {
			return competition.Invitation{}, fmt.Errorf("%w: invitee=%s", ErrDuplicateInvitation, inviteeID)
		}
		return competition.Invitation{}, fmt.Errorf("create invitation: %w", err)
	}

	return inv, nil
}

func (s *CompetitionService) Respond(ctx context.Context, invitationID, userID string, accept bool) (competition.Invitation, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.Respond")
	defer span.End()

	invitationID = strings.TrimSpace(invitationID)
	userID = strings.TrimSpace(userID)
	if invitationID == "" || userID == "" {
		return competition.Invitation{}, fmt.Errorf("%w: invitation id and user id are required", ErrInvalidInput)
	}

	inv, exists, err := s.compRepo.GetInvitation(ctx, invitationID)
	if err != nil {
		return competition.Invitation{}, fmt.Errorf("get invitation: %w", err)
	}
	if !exists {
		return competition.Invitation{}, fmt.Errorf("%w: invitation=%s", ErrNotFound, invitationID)
	}
	if inv.InviteeID != userID {
		return competition.Invitation{}, fmt.Errorf("%w: invitation belongs to another user", ErrUnauthorized)
	}
	if inv.Status != competition.InvitationPending {
		return competition.Invitation{}, fmt.Errorf("%w: status=%s", ErrInvitationResolved, inv.Status)
	}

	respondedAt := s.now().UTC()
	inv.RespondedAt = &respondedAt
	inv.Status = competition.InvitationDeclined
	if accept {
		inv.Status = competition.InvitationAccepted
		// Join before resolving so a failed join (competition filled up in
		// the meantime) leaves the invitation pending and retryable. A
		// racing direct join is fine; the invitation resolves either way.
		if _, err := s.Join(ctx, inv.CompetitionID, userID); err != nil && !errors.Is(err, ErrAlreadyJoined) {
			return competition.Invitation{}, err
		}
	}

	if err := s.compRepo.UpdateInvitation(ctx, inv); err != nil {
		return competition.Invitation{}, fmt.Errorf("update invitation: %w", err)
	}

	return inv, nil
}

func (s *CompetitionService) ListInvitations(ctx context.Context, inviteeID string, status competition.InvitationStatus) ([]competition.Invitation, error) {
	inviteeID = strings.TrimSpace(inviteeID)
	if inviteeID == "" {
		return nil, fmt.Errorf("%w: invitee id is required", ErrInvalidInput)
	}

	items, err := s.compRepo.ListInvitationsForUser(ctx, inviteeID, status)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return items, nil
}

func (s *CompetitionService) Cancel(ctx context.Context, competitionID, userID string) error {
	competitionID = strings.TrimSpace(competitionID)
	userID = strings.TrimSpace(userID)
	if competitionID == "" || userID == "" {
		return fmt.Errorf("%w: competition id and user id are required", ErrInvalidInput)
	}

	comp, err := s.Get(ctx, competitionID)
	if err != nil {
		return err
	}
	if comp.CreatorID != userID {
		return fmt.Errorf("%w: only the creator can cancel a competition", ErrUnauthorized)
	}
	if !competition.CanTransition(comp.Status, competition.StatusCancelled) {
		return fmt.Errorf("%w: status=%s", ErrCompetitionClosed, comp.Status)
	}

	now := s.now().UTC()
	comp.Status = competition.StatusCancelled
	comp.FrozenAt = &now
	comp.UpdatedAt = now
	if err := s.compRepo.Update(ctx, comp); err != nil {
		return fmt.Errorf("cancel competition: %w", err)
	}

	return nil
}

// SweepResult summarizes one lifecycle pass.
type SweepResult struct {
	Activated int
	Completed int
	Failed    int
}

// AdvanceDue moves competitions across time boundaries: pending ones whose
// start has passed become active, active ones whose end has passed become
// completed with a final standings pass and frozen scores. Competitions are
// processed independently; one failure never aborts the sweep.
func (s *CompetitionService) AdvanceDue(ctx context.Context) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.AdvanceDue")
	defer span.End()

	now := s.now().UTC()
	var result SweepResult

	due, err := s.compRepo.ListDueForActivation(ctx, now)
	if err != nil {
		return result, fmt.Errorf("list competitions due for activation: %w", err)
	}
	for _, comp := range due {
		if !competition.CanTransition(comp.Status, competition.StatusActive) {
			continue
		}
		comp.Status = competition.StatusActive
		comp.UpdatedAt = now
		if err := s.compRepo.Update(ctx, comp); err != nil {
			result.Failed++
			s.logger.ErrorContext(ctx, "activate competition failed", "competition_id", comp.ID, "error", err)
			continue
		}
		result.Activated++
	}

	ending, err := s.compRepo.ListDueForCompletion(ctx, now)
	if err != nil {
		return result, fmt.Errorf("list competitions due for completion: %w", err)
	}

	workers := s.sweepWorkers
	if workers < 1 {
		workers = 1
	}
	p := pool.NewWithResults[bool]().WithContext(ctx).WithMaxGoroutines(workers)
	for _, comp := range ending {
		comp := comp
		p.Go(func(ctx context.Context) (bool, error) {
			if err := s.completeCompetition(ctx, comp, now); err != nil {
				s.logger.ErrorContext(ctx, "complete competition failed", "competition_id", comp.ID, "error", err)
				return false, nil
			}
			return true, nil
		})
	}
	outcomes, err := p.Wait()
	if err != nil {
		return result, fmt.Errorf("completion sweep: %w", err)
	}
	for _, ok := range outcomes {
		if ok {
			result.Completed++
		} else {
			result.Failed++
		}
	}

	return result, nil
}

func (s *CompetitionService) completeCompetition(ctx context.Context, comp competition.Competition, now time.Time) error {
	if !competition.CanTransition(comp.Status, competition.StatusCompleted) {
		return nil
	}

	// Final recompute happens before the status flips so the freeze captures
	// every qualifying catch.
	if s.finalizer != nil {
		if err := s.finalizer.Finalize(ctx, comp.ID); err != nil {
			return fmt.Errorf("finalize standings: %w", err)
		}
	}

	comp.Status = competition.StatusCompleted
	comp.FrozenAt = &now
	comp.UpdatedAt = now
	if err := s.compRepo.Update(ctx, comp); err != nil {
		return fmt.Errorf("update competition status: %w", err)
	}

	return nil
}

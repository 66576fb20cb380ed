package cache

import (
	"context"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/domain/species"
	basecache "github.com/astorrey/TackleHogs/internal/platform/cache"
)

type SpeciesRepository struct {
	next  species.Repository
	cache *basecache.Store
}

func NewSpeciesRepository(next species.Repository, cache *basecache.Store) *SpeciesRepository {
	return &SpeciesRepository{next: next, cache: cache}
}

func (r *SpeciesRepository) List(ctx context.Context) ([]species.Species, error) {
	v, err := r.cache.GetOrLoad(ctx, "species:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]species.Species(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]species.Species)
	return append([]species.Species(nil), items...), nil
}

func (r *SpeciesRepository) GetByID(ctx context.Context, speciesID string) (species.Species, bool, error) {
	key := "species:id:" + speciesID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, speciesID)
		if err != nil {
			return nil, err
		}
		return cachedSpeciesByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return species.Species{}, false, err
	}

	cached, _ := v.(cachedSpeciesByID)
	return cached.value, cached.exists, nil
}

type cachedSpeciesByID struct {
	value  species.Species
	exists bool
}

// CompetitionRepository caches competition reads and invalidates on every
// write. Participant rows change on each score recompute so they pass
// through uncached.
type CompetitionRepository struct {
	next  competition.Repository
	cache *basecache.Store
}

func NewCompetitionRepository(next competition.Repository, cache *basecache.Store) *CompetitionRepository {
	return &CompetitionRepository{next: next, cache: cache}
}

func (r *CompetitionRepository) Create(ctx context.Context, c competition.Competition) error {
	if err := r.next.Create(ctx, c); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, competitionListPrefix)
	return nil
}

func (r *CompetitionRepository) Update(ctx context.Context, c competition.Competition) error {
	if err := r.next.Update(ctx, c); err != nil {
		return err
	}
	r.cache.Delete(ctx, competitionByIDKey(c.ID))
	r.cache.DeletePrefix(ctx, competitionListPrefix)
	return nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, competitionByIDKey(competitionID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, competitionID)
		if err != nil {
			return nil, err
		}
		return cachedCompetitionByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return competition.Competition{}, false, err
	}

	cached, _ := v.(cachedCompetitionByID)
	return cached.value, cached.exists, nil
}

func (r *CompetitionRepository) List(ctx context.Context, filter competition.Filter) ([]competition.Competition, error) {
	return r.next.List(ctx, filter)
}

func (r *CompetitionRepository) ListDueForActivation(ctx context.Context, now time.Time) ([]competition.Competition, error) {
	return r.next.ListDueForActivation(ctx, now)
}

func (r *CompetitionRepository) ListDueForCompletion(ctx context.Context, now time.Time) ([]competition.Competition, error) {
	return r.next.ListDueForCompletion(ctx, now)
}

func (r *CompetitionRepository) AddParticipant(ctx context.Context, p competition.Participant) error {
	return r.next.AddParticipant(ctx, p)
}

func (r *CompetitionRepository) GetParticipant(ctx context.Context, competitionID, userID string) (competition.Participant, bool, error) {
	return r.next.GetParticipant(ctx, competitionID, userID)
}

func (r *CompetitionRepository) ListParticipants(ctx context.Context, competitionID string) ([]competition.Participant, error) {
	return r.next.ListParticipants(ctx, competitionID)
}

func (r *CompetitionRepository) CountParticipants(ctx context.Context, competitionID string) (int, error) {
	return r.next.CountParticipants(ctx, competitionID)
}

func (r *CompetitionRepository) UpsertParticipant(ctx context.Context, p competition.Participant) error {
	return r.next.UpsertParticipant(ctx, p)
}

func (r *CompetitionRepository) SaveParticipantRanks(ctx context.Context, competitionID string, participants []competition.Participant) error {
	return r.next.SaveParticipantRanks(ctx, competitionID, participants)
}

func (r *CompetitionRepository) RemoveParticipant(ctx context.Context, competitionID, userID string) error {
	return r.next.RemoveParticipant(ctx, competitionID, userID)
}

func (r *CompetitionRepository) ListCompetitionIDsForUser(ctx context.Context, userID string, statuses []competition.Status) ([]string, error) {
	return r.next.ListCompetitionIDsForUser(ctx, userID, statuses)
}

func (r *CompetitionRepository) CreateInvitation(ctx context.Context, inv competition.Invitation) error {
	return r.next.CreateInvitation(ctx, inv)
}

func (r *CompetitionRepository) GetInvitation(ctx context.Context, invitationID string) (competition.Invitation, bool, error) {
	return r.next.GetInvitation(ctx, invitationID)
}

func (r *CompetitionRepository) UpdateInvitation(ctx context.Context, inv competition.Invitation) error {
	return r.next.UpdateInvitation(ctx, inv)
}

func (r *CompetitionRepository) ListInvitationsForUser(ctx context.Context, inviteeID string, status competition.InvitationStatus) ([]competition.Invitation, error) {
	return r.next.ListInvitationsForUser(ctx, inviteeID, status)
}

type cachedCompetitionByID struct {
	value  competition.Competition
	exists bool
}

const competitionListPrefix = "competition:list:"

func competitionByIDKey(competitionID string) string {
	return "competition:id:" + competitionID
}

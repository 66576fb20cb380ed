package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/catch"
	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/domain/scoring"
	"github.com/astorrey/TackleHogs/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

const (
	defaultEnsureInterval   = 30 * time.Second
	defaultRecomputeWorkers = 8
)

// StandingService maintains per-participant scores and ranks. Every
// recompute is a wholesale overwrite derived from the qualifying catch set,
// so replays and out-of-order updates converge to the same standings.
type StandingService struct {
	compRepo  competition.Repository
	catchRepo catch.Repository
	logger    *logging.Logger
	now       func() time.Time

	ensureFlight     singleFlight
	ensureMu         sync.Mutex
	lastEnsureAt     map[string]time.Time
	ensureInterval   time.Duration
	recomputeWorkers int
}

type singleFlight interface {
	Do(key string, fn func() (any, error)) (any, error, bool)
}

func NewStandingService(
	compRepo competition.Repository,
	catchRepo catch.Repository,
	flight singleFlight,
	logger *logging.Logger,
) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingService{
		compRepo:         compRepo,
		catchRepo:        catchRepo,
		logger:           logger,
		now:              time.Now,
		ensureFlight:     flight,
		lastEnsureAt:     make(map[string]time.Time),
		ensureInterval:   defaultEnsureInterval,
		recomputeWorkers: defaultRecomputeWorkers,
	}
}

// Recompute rebuilds one participant's score from their qualifying catches
// and refreshes the competition's ranks. Closed competitions are frozen and
// reject recomputes.
func (s *StandingService) Recompute(ctx context.Context, competitionID, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "StandingService.Recompute")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	userID = strings.TrimSpace(userID)
	if competitionID == "" || userID == "" {
		return fmt.Errorf("%w: competition id and user id are required", ErrInvalidInput)
	}

	comp, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return err
	}
	if comp.Closed() {
		return fmt.Errorf("%w: standings frozen at %s", ErrCompetitionClosed, comp.Status)
	}

	if err := s.recomputeParticipant(ctx, comp, userID); err != nil {
		return err
	}

	return s.recalculateStandings(ctx, comp)
}

// RecomputeAll rebuilds every participant's score, then the ranks. Used by
// admin backfills and the finalization pass. Individual participant failures
// are logged and counted without aborting the batch; ranks are recalculated
// only when every participant recomputed cleanly.
func (s *StandingService) RecomputeAll(ctx context.Context, competitionID string) error {
	ctx, span := startUsecaseSpan(ctx, "StandingService.RecomputeAll")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	comp, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return err
	}
	if comp.Closed() {
		return fmt.Errorf("%w: standings frozen at %s", ErrCompetitionClosed, comp.Status)
	}

	return s.recomputeAll(ctx, comp)
}

// Finalize runs the last full recompute for a competition that is about to
// close. Unlike RecomputeAll it tolerates any current status since it runs
// inside the completion transition.
func (s *StandingService) Finalize(ctx context.Context, competitionID string) error {
	ctx, span := startUsecaseSpan(ctx, "StandingService.Finalize")
	defer span.End()

	comp, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return err
	}

	return s.recomputeAll(ctx, comp)
}

// Standings returns the competition's participants ordered by rank, unranked
// participants last. Open competitions get a freshness check first; frozen
// ones are served as stored.
func (s *StandingService) Standings(ctx context.Context, competitionID string) ([]competition.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingService.Standings")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	comp, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	if !comp.Closed() {
		if err := s.ensureUpToDate(ctx, comp); err != nil {
			s.logger.WarnContext(ctx, "standings freshness check failed", "competition_id", comp.ID, "error", err)
		}
	}

	participants, err := s.compRepo.ListParticipants(ctx, comp.ID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	sortParticipantsByRank(participants)
	return participants, nil
}

// ensureUpToDate refreshes standings at most once per interval per
// competition, collapsing concurrent callers into a single recompute.
func (s *StandingService) ensureUpToDate(ctx context.Context, comp competition.Competition) error {
	if s.ensureFlight == nil || s.shouldSkipEnsure(comp.ID) {
		return nil
	}

	_, err, _ := s.ensureFlight.Do("standings:ensure:"+comp.ID, func() (any, error) {
		if s.shouldSkipEnsure(comp.ID) {
			return nil, nil
		}
		if err := s.recomputeAll(ctx, comp); err != nil {
			return nil, err
		}
		s.markEnsure(comp.ID)
		return nil, nil
	})
	return err
}

func (s *StandingService) shouldSkipEnsure(competitionID string) bool {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	last, ok := s.lastEnsureAt[competitionID]
	return ok && s.now().Sub(last) < s.ensureInterval
}

func (s *StandingService) markEnsure(competitionID string) {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	s.lastEnsureAt[competitionID] = s.now()
}

func (s *StandingService) recomputeAll(ctx context.Context, comp competition.Competition) error {
	participants, err := s.compRepo.ListParticipants(ctx, comp.ID)
	if err != nil {
		return fmt.Errorf("list participants: %w", err)
	}
	if len(participants) == 0 {
		return nil
	}

	workerCount := s.recomputeWorkers
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(participants) {
		workerCount = len(participants)
	}

	p, err := ants.NewPool(workerCount)
	if err != nil {
		return fmt.Errorf("create recompute pool: %w", err)
	}
	defer p.Release()

	var workers sync.WaitGroup
	var succeeded, failed atomic.Int32

	for _, participant := range participants {
		participant := participant
		workers.Add(1)
		submitErr := p.Submit(func() {
			defer workers.Done()
			if err := s.recomputeParticipant(ctx, comp, participant.UserID); err != nil {
				failed.Add(1)
				s.logger.ErrorContext(ctx, "recompute participant failed",
					"competition_id", comp.ID,
					"user_id", participant.UserID,
					"error", err,
				)
				return
			}
			succeeded.Add(1)
		})
		if submitErr != nil {
			workers.Done()
			failed.Add(1)
			s.logger.ErrorContext(ctx, "submit recompute task failed",
				"competition_id", comp.ID,
				"user_id", participant.UserID,
				"error", submitErr,
			)
		}
	}
	workers.Wait()

	if failed.Load() > 0 {
		return fmt.Errorf("recompute standings: %d of %d participants failed", failed.Load(), len(participants))
	}

	s.logger.DebugContext(ctx, "standings recomputed",
		"competition_id", comp.ID,
		"participants", succeeded.Load(),
	)

	return s.recalculateStandings(ctx, comp)
}

// recomputeParticipant overwrites one participant row from scratch. The
// qualifying set is every catch inside the inclusive competition window,
// narrowed to the target species when one is set.
func (s *StandingService) recomputeParticipant(ctx context.Context, comp competition.Competition, userID string) error {
	participant, exists, err := s.compRepo.GetParticipant(ctx, comp.ID, userID)
	if err != nil {
		return fmt.Errorf("get participant: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: competition=%s user=%s", ErrNotAParticipant, comp.ID, userID)
	}

	filter := catch.Filter{
		UserID: userID,
		From:   comp.StartAt,
		To:     comp.EndAt,
	}
	if comp.TargetSpeciesID != nil {
		filter.SpeciesID = *comp.TargetSpeciesID
	}

	catches, err := s.catchRepo.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("list catches: %w", err)
	}

	agg := scoring.AggregateCatches(comp.Metric, catches)
	participant.Score = agg.Score
	participant.CatchCount = agg.CatchCount
	participant.BestCatchID = nil
	if agg.BestCatch != nil {
		participant.BestCatchID = &agg.BestCatch.ID
	}
	participant.UpdatedAt = s.now().UTC()

	if err := s.compRepo.UpsertParticipant(ctx, participant); err != nil {
		return fmt.Errorf("upsert participant: %w", err)
	}

	return nil
}

// recalculateStandings reranks the full participant set from stored scores.
func (s *StandingService) recalculateStandings(ctx context.Context, comp competition.Competition) error {
	participants, err := s.compRepo.ListParticipants(ctx, comp.ID)
	if err != nil {
		return fmt.Errorf("list participants: %w", err)
	}
	if len(participants) == 0 {
		return nil
	}

	entries := make([]scoring.RankedEntry, 0, len(participants))
	for _, p := range participants {
		entries = append(entries, scoring.RankedEntry{
			ID:         p.UserID,
			Score:      p.Score,
			CatchCount: p.CatchCount,
			TiebreakAt: p.JoinedAt,
		})
	}

	rankByUser := make(map[string]*int, len(participants))
	for _, entry := range scoring.Rank(entries) {
		rankByUser[entry.ID] = entry.Rank
	}

	updatedAt := s.now().UTC()
	for i := range participants {
		participants[i].Rank = rankByUser[participants[i].UserID]
		participants[i].UpdatedAt = updatedAt
	}

	if err := s.compRepo.SaveParticipantRanks(ctx, comp.ID, participants); err != nil {
		return fmt.Errorf("save participant ranks: %w", err)
	}

	return nil
}

func (s *StandingService) getCompetition(ctx context.Context, competitionID string) (competition.Competition, error) {
	comp, exists, err := s.compRepo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition by id: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}
	return comp, nil
}

func sortParticipantsByRank(participants []competition.Participant) {
	sort.SliceStable(participants, func(i, j int) bool {
		a, b := participants[i].Rank, participants[j].Rank
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}

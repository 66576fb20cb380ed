package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/catch"
	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/domain/friendship"
	"github.com/astorrey/TackleHogs/internal/domain/leaderboard"
	"github.com/astorrey/TackleHogs/internal/domain/species"
	"github.com/astorrey/TackleHogs/internal/domain/tackle"
)

type stubIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *stubIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

type stubSpeciesRepository struct {
	byID map[string]species.Species
}

func (s *stubSpeciesRepository) List(_ context.Context) ([]species.Species, error) {
	out := make([]species.Species, 0, len(s.byID))
	for _, item := range s.byID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *stubSpeciesRepository) GetByID(_ context.Context, speciesID string) (species.Species, bool, error) {
	item, ok := s.byID[speciesID]
	return item, ok, nil
}

type stubCompetitionRepository struct {
	mu           sync.Mutex
	comps        map[string]competition.Competition
	participants map[string]competition.Participant
	invitations  map[string]competition.Invitation
}

func newStubCompetitionRepository() *stubCompetitionRepository {
	return &stubCompetitionRepository{
		comps:        make(map[string]competition.Competition),
		participants: make(map[string]competition.Participant),
		invitations:  make(map[string]competition.Invitation),
	}
}

func participantKey(competitionID, userID string) string {
	return competitionID + "|" + userID
}

func (s *stubCompetitionRepository) Create(_ context.Context, c competition.Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comps[c.ID] = c
	return nil
}

func (s *stubCompetitionRepository) Update(_ context.Context, c competition.Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comps[c.ID] = c
	return nil
}

func (s *stubCompetitionRepository) GetByID(_ context.Context, competitionID string) (competition.Competition, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comps[competitionID]
	return c, ok, nil
}

func (s *stubCompetitionRepository) List(_ context.Context, filter competition.Filter) ([]competition.Competition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]competition.Competition, 0, len(s.comps))
	for _, c := range s.comps {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.PublicOnly && c.Visibility != competition.VisibilityPublic {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubCompetitionRepository) ListDueForActivation(_ context.Context, now time.Time) ([]competition.Competition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []competition.Competition
	for _, c := range s.comps {
		if c.Status == competition.StatusPending && !c.StartAt.After(now) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCompetitionRepository) ListDueForCompletion(_ context.Context, now time.Time) ([]competition.Competition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []competition.Competition
	for _, c := range s.comps {
		if c.Status == competition.StatusActive && c.EndAt.Before(now) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCompetitionRepository) AddParticipant(_ context.Context, p competition.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := participantKey(p.CompetitionID, p.UserID)
	if _, ok := s.participants[key]; ok {
		return competition.ErrParticipantExists
	}
	s.participants[key] = p
	return nil
}

func (s *stubCompetitionRepository) GetParticipant(_ context.Context, competitionID, userID string) (competition.Participant, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[participantKey(competitionID, userID)]
	return p, ok, nil
}

func (s *stubCompetitionRepository) ListParticipants(_ context.Context, competitionID string) ([]competition.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []competition.Participant
	for _, p := range s.participants {
		if p.CompetitionID == competitionID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *stubCompetitionRepository) CountParticipants(_ context.Context, competitionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, p := range s.participants {
		if p.CompetitionID == competitionID {
			count++
		}
	}
	return count, nil
}

func (s *stubCompetitionRepository) UpsertParticipant(_ context.Context, p competition.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := participantKey(p.CompetitionID, p.UserID)
	if existing, ok := s.participants[key]; ok {
		p.JoinedAt = existing.JoinedAt
		p.Rank = existing.Rank
	}
	s.participants[key] = p
	return nil
}

func (s *stubCompetitionRepository) SaveParticipantRanks(_ context.Context, competitionID string, participants []competition.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range participants {
		key := participantKey(competitionID, p.UserID)
		existing, ok := s.participants[key]
		if !ok {
			continue
		}
		existing.Rank = p.Rank
		existing.UpdatedAt = p.UpdatedAt
		s.participants[key] = existing
	}
	return nil
}

func (s *stubCompetitionRepository) RemoveParticipant(_ context.Context, competitionID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.participants, participantKey(competitionID, userID))
	return nil
}

func (s *stubCompetitionRepository) ListCompetitionIDsForUser(_ context.Context, userID string, statuses []competition.Status) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	allowed := make(map[competition.Status]bool, len(statuses))
	for _, status := range statuses {
		allowed[status] = true
	}
	var out []string
	for _, p := range s.participants {
		if p.UserID != userID {
			continue
		}
		comp, ok := s.comps[p.CompetitionID]
		if !ok {
			continue
		}
		if len(statuses) > 0 && !allowed[comp.Status] {
			continue
		}
		out = append(out, comp.ID)
	}
	sort.Strings(out)
	return out, nil
}

func (s *stubCompetitionRepository) CreateInvitation(_ context.Context, inv competition.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.invitations {
		if existing.CompetitionID == inv.CompetitionID &&
			existing.InviteeID == inv.InviteeID &&
			existing.Status == competition.InvitationPending {
			return competition.ErrInvitationExists
		}
	}
	s.invitations[inv.ID] = inv
	return nil
}

func (s *stubCompetitionRepository) GetInvitation(_ context.Context, invitationID string) (competition.Invitation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invitations[invitationID]
	return inv, ok, nil
}

func (s *stubCompetitionRepository) UpdateInvitation(_ context.Context, inv competition.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invitations[inv.ID] = inv
	return nil
}

func (s *stubCompetitionRepository) ListInvitationsForUser(_ context.Context, inviteeID string, status competition.InvitationStatus) ([]competition.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []competition.Invitation
	for _, inv := range s.invitations {
		if inv.InviteeID != inviteeID {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubCatchRepository struct {
	mu      sync.Mutex
	catches map[string]catch.Catch
}

func newStubCatchRepository() *stubCatchRepository {
	return &stubCatchRepository{catches: make(map[string]catch.Catch)}
}

func (s *stubCatchRepository) Create(_ context.Context, c catch.Catch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catches[c.ID] = c
	return nil
}

func (s *stubCatchRepository) Update(_ context.Context, c catch.Catch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catches[c.ID] = c
	return nil
}

func (s *stubCatchRepository) Delete(_ context.Context, catchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.catches, catchID)
	return nil
}

func (s *stubCatchRepository) GetByID(_ context.Context, catchID string) (catch.Catch, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.catches[catchID]
	return c, ok, nil
}

func (s *stubCatchRepository) List(_ context.Context, filter catch.Filter) ([]catch.Catch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	allowedUsers := make(map[string]bool, len(filter.UserIDs))
	for _, id := range filter.UserIDs {
		allowedUsers[id] = true
	}
	var out []catch.Catch
	for _, c := range s.catches {
		if filter.UserID != "" && c.UserID != filter.UserID {
			continue
		}
		if len(filter.UserIDs) > 0 && !allowedUsers[c.UserID] {
			continue
		}
		if filter.SpeciesID != "" && c.SpeciesID != filter.SpeciesID {
			continue
		}
		if filter.State != "" && c.State != filter.State {
			continue
		}
		if !filter.From.IsZero() && c.CaughtAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && c.CaughtAt.After(filter.To) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CaughtAt.Before(out[j].CaughtAt) })
	return out, nil
}

func (s *stubCatchRepository) ListUserIDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool)
	var out []string
	for _, c := range s.catches {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			out = append(out, c.UserID)
		}
	}
	sort.Strings(out)
	return out, nil
}

type stubLeaderboardRepository struct {
	mu      sync.Mutex
	entries map[string]leaderboard.Entry
}

func newStubLeaderboardRepository() *stubLeaderboardRepository {
	return &stubLeaderboardRepository{entries: make(map[string]leaderboard.Entry)}
}

func leaderboardKey(userID, state string) string {
	return userID + "|" + state
}

func (s *stubLeaderboardRepository) Upsert(_ context.Context, entry leaderboard.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[leaderboardKey(entry.UserID, entry.State)] = entry
	return nil
}

func (s *stubLeaderboardRepository) Get(_ context.Context, userID, state string) (leaderboard.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[leaderboardKey(userID, state)]
	return entry, ok, nil
}

func (s *stubLeaderboardRepository) Top(_ context.Context, state string, metric competition.Metric, limit int) ([]leaderboard.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []leaderboard.Entry
	for _, entry := range s.entries {
		if entry.State == state {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return metricValue(out[i], metric) > metricValue(out[j], metric)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubLeaderboardRepository) ListByUsers(_ context.Context, userIDs []string, state string) ([]leaderboard.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []leaderboard.Entry
	for _, userID := range userIDs {
		if entry, ok := s.entries[leaderboardKey(userID, state)]; ok {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (s *stubLeaderboardRepository) StatesForUser(_ context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var states []string
	for _, entry := range s.entries {
		if entry.UserID == userID {
			states = append(states, entry.State)
		}
	}
	sort.Strings(states)
	return states, nil
}

func (s *stubLeaderboardRepository) Delete(_ context.Context, userID, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, leaderboardKey(userID, state))
	return nil
}

type stubFriendshipRepository struct {
	mu    sync.Mutex
	edges map[string]friendship.Friendship
}

func newStubFriendshipRepository() *stubFriendshipRepository {
	return &stubFriendshipRepository{edges: make(map[string]friendship.Friendship)}
}

func friendshipKey(userID, friendID string) string {
	return userID + "|" + friendID
}

func (s *stubFriendshipRepository) Create(_ context.Context, f friendship.Friendship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges[friendshipKey(f.UserID, f.FriendID)] = f
	return nil
}

func (s *stubFriendshipRepository) UpdateStatus(_ context.Context, friendshipID string, status friendship.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, f := range s.edges {
		if f.ID == friendshipID {
			f.Status = status
			s.edges[key] = f
			return nil
		}
	}
	return fmt.Errorf("friendship %s not found", friendshipID)
}

func (s *stubFriendshipRepository) Get(_ context.Context, userID, friendID string) (friendship.Friendship, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.edges[friendshipKey(userID, friendID)]
	return f, ok, nil
}

func (s *stubFriendshipRepository) ListAcceptedFriendIDs(_ context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, f := range s.edges {
		if f.Status != friendship.StatusAccepted {
			continue
		}
		switch userID {
		case f.UserID:
			out = append(out, f.FriendID)
		case f.FriendID:
			out = append(out, f.UserID)
		}
	}
	sort.Strings(out)
	return out, nil
}

type stubTackleRepository struct {
	mu    sync.Mutex
	items map[string]tackle.Item
}

func newStubTackleRepository() *stubTackleRepository {
	return &stubTackleRepository{items: make(map[string]tackle.Item)}
}

func (s *stubTackleRepository) Create(_ context.Context, item tackle.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

func (s *stubTackleRepository) GetByID(_ context.Context, itemID string) (tackle.Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[itemID]
	return item, ok, nil
}

func (s *stubTackleRepository) ListByUser(_ context.Context, userID string) ([]tackle.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []tackle.Item
	for _, item := range s.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *stubTackleRepository) Delete(_ context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, itemID)
	return nil
}

type stubPageScraper struct {
	item tackle.ScrapedItem
	err  error
	urls []string
}

func (s *stubPageScraper) Scrape(_ context.Context, pageURL string) (tackle.ScrapedItem, error) {
	s.urls = append(s.urls, pageURL)
	return s.item, s.err
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/friendship"
	idgen "github.com/astorrey/TackleHogs/internal/platform/id"
)

// FriendshipService manages friend edges backing the friends leaderboard.
type FriendshipService struct {
	repo  friendship.Repository
	idGen idgen.Generator
	now   func() time.Time
}

func NewFriendshipService(repo friendship.Repository, idGen idgen.Generator) *FriendshipService {
	return &FriendshipService{
		repo:  repo,
		idGen: idGen,
		now:   time.Now,
	}
}

func (s *FriendshipService) Request(ctx context.Context, userID, friendID string) (friendship.Friendship, error) {
	ctx, span := startUsecaseSpan(ctx, "FriendshipService.Request")
	defer span.End()

	userID = strings.TrimSpace(userID)
	friendID = strings.TrimSpace(friendID)

	now := s.now().UTC()
	f := friendship.Friendship{
		UserID:    userID,
		FriendID:  friendID,
		Status:    friendship.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.Validate(); err != nil {
		return friendship.Friendship{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// A pending or accepted edge in either direction blocks a new request.
	for _, pair := range [][2]string{{userID, friendID}, {friendID, userID}} {
		existing, exists, err := s.repo.Get(ctx, pair[0], pair[1])
		if err != nil {
			return friendship.Friendship{}, fmt.Errorf("get friendship: %w", err)
		}
		if exists && existing.Status != friendship.StatusDeclined {
			return friendship.Friendship{}, fmt.Errorf("%w: friendship already %s", ErrDuplicateInvitation, existing.Status)
		}
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return friendship.Friendship{}, fmt.Errorf("generate friendship id: %w", err)
	}
	f.ID = id

	if err := s.repo.Create(ctx, f); err != nil {
		return friendship.Friendship{}, fmt.Errorf("create friendship: %w", err)
	}

	return f, nil
}

// Respond resolves a pending request. Only the receiving side may respond.
func (s *FriendshipService) Respond(ctx context.Context, userID, requesterID string, accept bool) error {
	ctx, span := startUsecaseSpan(ctx, "FriendshipService.Respond")
	defer span.End()

	userID = strings.TrimSpace(userID)
	requesterID = strings.TrimSpace(requesterID)
	if userID == "" || requesterID == "" {
		return fmt.Errorf("%w: user id and requester id are required", ErrInvalidInput)
	}

	f, exists, err := s.repo.Get(ctx, requesterID, userID)
	if err != nil {
		return fmt.Errorf("get friendship: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: no request from %s", ErrNotFound, requesterID)
	}
	if f.Status != friendship.StatusPending {
		return fmt.Errorf("%w: status=%s", ErrInvitationResolved, f.Status)
	}

	status := friendship.StatusDeclined
	if accept {
		status = friendship.StatusAccepted
	}
	if err := s.repo.UpdateStatus(ctx, f.ID, status); err != nil {
		return fmt.Errorf("update friendship status: %w", err)
	}

	return nil
}

func (s *FriendshipService) FriendIDs(ctx context.Context, userID string) ([]string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	ids, err := s.repo.ListAcceptedFriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return ids, nil
}

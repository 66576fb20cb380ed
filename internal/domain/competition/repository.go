package competition

import (
	"context"
	"time"
)

// Filter narrows competition listings. Zero values mean "no constraint".
type Filter struct {
	Status        Status
	ParticipantID string
	PublicOnly    bool
	Limit         int
	Offset        int
}

// Repository describes competition persistence needs from use cases.
// AddParticipant and CreateInvitation must be atomic against concurrent
// writers and return ErrParticipantExists / ErrInvitationExists on unique
// constraint violations.
type Repository interface {
	Create(ctx context.Context, c Competition) error
	Update(ctx context.Context, c Competition) error
	GetByID(ctx context.Context, competitionID string) (Competition, bool, error)
	List(ctx context.Context, filter Filter) ([]Competition, error)
	ListDueForActivation(ctx context.Context, now time.Time) ([]Competition, error)
	ListDueForCompletion(ctx context.Context, now time.Time) ([]Competition, error)

	AddParticipant(ctx context.Context, p Participant) error
	GetParticipant(ctx context.Context, competitionID, userID string) (Participant, bool, error)
	ListParticipants(ctx context.Context, competitionID string) ([]Participant, error)
	CountParticipants(ctx context.Context, competitionID string) (int, error)
	UpsertParticipant(ctx context.Context, p Participant) error
	SaveParticipantRanks(ctx context.Context, competitionID string, participants []Participant) error
	RemoveParticipant(ctx context.Context, competitionID, userID string) error
	ListCompetitionIDsForUser(ctx context.Context, userID string, statuses []Status) ([]string, error)

	CreateInvitation(ctx context.Context, inv Invitation) error
	GetInvitation(ctx context.Context, invitationID string) (Invitation, bool, error)
	UpdateInvitation(ctx context.Context, inv Invitation) error
	ListInvitationsForUser(ctx context.Context, inviteeID string, status InvitationStatus) ([]Invitation, error)
}

package competition

import (
	"errors"
	"fmt"
	"time"
)

// Returned by repositories when a unique constraint rejects a write; the use
// case layer translates these into caller-facing conflict errors.
var (
	ErrParticipantExists = errors.New("participant already exists")
	ErrInvitationExists  = errors.New("pending invitation already exists")
)

type Type string

const (
	TypeDaily   Type = "daily"
	TypeWeekly  Type = "weekly"
	TypeMonthly Type = "monthly"
	TypeYearly  Type = "yearly"
)

type Metric string

const (
	MetricPoints  Metric = "points"
	MetricCatches Metric = "catches"
	MetricWeight  Metric = "weight"
	MetricLength  Metric = "length"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Competition is a time-boxed, metric-scored contest among participants.
type Competition struct {
	ID              string
	CreatorID       string
	Name            string
	Description     string
	Type            Type
	Metric          Metric
	TargetSpeciesID *string
	Visibility      Visibility
	MaxParticipants int
	StartAt         time.Time
	EndAt           time.Time
	Status          Status
	FrozenAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c Competition) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("competition name is required")
	}
	if c.CreatorID == "" {
		return fmt.Errorf("competition creator id is required")
	}
	if _, ok := AllTypes[c.Type]; !ok {
		return fmt.Errorf("unknown competition type: %s", c.Type)
	}
	if _, ok := AllMetrics[c.Metric]; !ok {
		return fmt.Errorf("unknown competition metric: %s", c.Metric)
	}
	if c.Visibility != VisibilityPublic && c.Visibility != VisibilityPrivate {
		return fmt.Errorf("unknown competition visibility: %s", c.Visibility)
	}
	if c.StartAt.IsZero() || c.EndAt.IsZero() {
		return fmt.Errorf("competition start and end are required")
	}
	if !c.StartAt.Before(c.EndAt) {
		return fmt.Errorf("competition start must be before end")
	}
	if c.MaxParticipants < 0 {
		return fmt.Errorf("max participants cannot be negative")
	}

	return nil
}

// Closed reports whether the competition has reached a terminal status and
// its standings are frozen.
func (c Competition) Closed() bool {
	return c.Status == StatusCompleted || c.Status == StatusCancelled
}

// Participant is a user's membership and running score within one
// competition. Score semantics depend on the competition metric; Rank stays
// nil until standings are computed and for participants with no qualifying
// catches.
type Participant struct {
	CompetitionID string
	UserID        string
	Score         float64
	CatchCount    int
	BestCatchID   *string
	Rank          *int
	JoinedAt      time.Time
	UpdatedAt     time.Time
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Invitation is an outstanding invite from a participant to a non-member.
type Invitation struct {
	ID            string
	CompetitionID string
	InviterID     string
	InviteeID     string
	Status        InvitationStatus
	CreatedAt     time.Time
	RespondedAt   *time.Time
}

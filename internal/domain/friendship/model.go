package friendship

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Friendship is a directed friend edge. A pair is considered friends when an
// accepted edge exists in either direction.
type Friendship struct {
	ID        string
	UserID    string
	FriendID  string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (f Friendship) Validate() error {
	if f.UserID == "" {
		return fmt.Errorf("friendship user id is required")
	}
	if f.FriendID == "" {
		return fmt.Errorf("friendship friend id is required")
	}
	if f.UserID == f.FriendID {
		return fmt.Errorf("cannot befriend yourself")
	}

	return nil
}

package friendship

import "context"

// Repository describes friendship persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, f Friendship) error
	UpdateStatus(ctx context.Context, friendshipID string, status Status) error
	Get(ctx context.Context, userID, friendID string) (Friendship, bool, error)
	// ListAcceptedFriendIDs resolves accepted edges in both directions and
	// returns the other side of each.
	ListAcceptedFriendIDs(ctx context.Context, userID string) ([]string, error)
}

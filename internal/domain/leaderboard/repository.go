package leaderboard

import (
	"context"

	"github.com/astorrey/TackleHogs/internal/domain/competition"
)

// Repository describes leaderboard cache persistence needs from use cases.
// Top returns entries ordered by the dimension the metric maps to, best
// first; ranking on top of that ordering happens in the use case layer.
type Repository interface {
	Upsert(ctx context.Context, entry Entry) error
	Get(ctx context.Context, userID, state string) (Entry, bool, error)
	Top(ctx context.Context, state string, metric competition.Metric, limit int) ([]Entry, error)
	ListByUsers(ctx context.Context, userIDs []string, state string) ([]Entry, error)
	// StatesForUser lists every partition key currently holding an entry
	// for the user, so refreshes can drop partitions the user vacated.
	StatesForUser(ctx context.Context, userID string) ([]string, error)
	Delete(ctx context.Context, userID, state string) error
}

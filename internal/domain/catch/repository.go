package catch

import (
	"context"
	"time"
)

// Filter narrows List queries. Zero values mean "no constraint".
type Filter struct {
	UserID    string
	UserIDs   []string
	SpeciesID string
	State     string
	From      time.Time
	To        time.Time
	Limit     int
	Offset    int
}

// Repository describes catch persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, c Catch) error
	Update(ctx context.Context, c Catch) error
	Delete(ctx context.Context, catchID string) error
	GetByID(ctx context.Context, catchID string) (Catch, bool, error)
	List(ctx context.Context, filter Filter) ([]Catch, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}

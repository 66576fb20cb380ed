package tackle

import "context"

// Repository describes tackle box persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Item) error
	GetByID(ctx context.Context, itemID string) (Item, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Item, error)
	Delete(ctx context.Context, itemID string) error
}

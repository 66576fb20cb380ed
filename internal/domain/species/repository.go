package species

import "context"

// Repository describes species catalog persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Species, error)
	GetByID(ctx context.Context, speciesID string) (Species, bool, error)
}

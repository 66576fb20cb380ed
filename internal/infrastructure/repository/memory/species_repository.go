package memory

import (
	"context"
	"sync"

	"github.com/astorrey/TackleHogs/internal/domain/species"
)

type SpeciesRepository struct {
	mu     sync.RWMutex
	items  map[string]species.Species
	orders []string
}

func NewSpeciesRepository(catalog []species.Species) *SpeciesRepository {
	items := make(map[string]species.Species, len(catalog))
	orders := make([]string, 0, len(catalog))

	for _, s := range catalog {
		items[s.ID] = s
		orders = append(orders, s.ID)
	}

	return &SpeciesRepository{
		items:  items,
		orders: orders,
	}
}

func (r *SpeciesRepository) List(_ context.Context) ([]species.Species, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]species.Species, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *SpeciesRepository) GetByID(_ context.Context, speciesID string) (species.Species, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[speciesID]
	if !ok {
		return species.Species{}, false, nil
	}

	return s, true, nil
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/astorrey/TackleHogs/internal/domain/species"
	"github.com/astorrey/TackleHogs/internal/platform/cache"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const speciesCatalogCacheKey = "species:catalog"

// SpeciesService serves the species catalog. The catalog is small and nearly
// static, so reads go through the in-process cache and search is fuzzy
// matching over the cached list.
type SpeciesService struct {
	repo  species.Repository
	cache *cache.Store
}

func NewSpeciesService(repo species.Repository, store *cache.Store) *SpeciesService {
	return &SpeciesService{repo: repo, cache: store}
}

func (s *SpeciesService) List(ctx context.Context) ([]species.Species, error) {
	return s.catalog(ctx)
}

func (s *SpeciesService) Get(ctx context.Context, speciesID string) (species.Species, error) {
	speciesID = strings.TrimSpace(speciesID)
	if speciesID == "" {
		return species.Species{}, fmt.Errorf("%w: species id is required", ErrInvalidInput)
	}

	sp, exists, err := s.repo.GetByID(ctx, speciesID)
	if err != nil {
		return species.Species{}, fmt.Errorf("get species by id: %w", err)
	}
	if !exists {
		return species.Species{}, fmt.Errorf("%w: species=%s", ErrNotFound, speciesID)
	}

	return sp, nil
}

// Search fuzzy-matches the query against common and scientific names,
// best matches first. An empty query returns the whole catalog.
func (s *SpeciesService) Search(ctx context.Context, query string) ([]species.Species, error) {
	query = strings.TrimSpace(query)

	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return catalog, nil
	}

	type match struct {
		sp   species.Species
		dist int
	}

	matches := make([]match, 0, len(catalog))
	for _, sp := range catalog {
		dist := fuzzy.RankMatchNormalizedFold(query, sp.Name)
		if scientific := fuzzy.RankMatchNormalizedFold(query, sp.ScientificName); scientific >= 0 && (dist < 0 || scientific < dist) {
			dist = scientific
		}
		if dist < 0 {
			continue
		}
		matches = append(matches, match{sp: sp, dist: dist})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].dist < matches[j].dist
	})

	out := make([]species.Species, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.sp)
	}
	return out, nil
}

func (s *SpeciesService) catalog(ctx context.Context) ([]species.Species, error) {
	if s.cache == nil {
		items, err := s.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list species: %w", err)
		}
		return items, nil
	}

	cached, err := s.cache.GetOrLoad(ctx, speciesCatalogCacheKey, func(ctx context.Context) (any, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}

	items, ok := cached.([]species.Species)
	if !ok {
		return nil, fmt.Errorf("unexpected species catalog cache payload %T", cached)
	}
	return items, nil
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/species"
	"github.com/astorrey/TackleHogs/internal/platform/cache"
)

func newSpeciesFixture(store *cache.Store) (*SpeciesService, *countingSpeciesRepository) {
	repo := &countingSpeciesRepository{
		stubSpeciesRepository: stubSpeciesRepository{byID: map[string]species.Species{
			"sp-bass": {ID: "sp-bass", Name: "Largemouth Bass", ScientificName: "Micropterus salmoides", WaterType: "freshwater"},
			"sp-pike": {ID: "sp-pike", Name: "Northern Pike", ScientificName: "Esox lucius", WaterType: "freshwater"},
			"sp-redf": {ID: "sp-redf", Name: "Red Drum", ScientificName: "Sciaenops ocellatus", WaterType: "saltwater"},
		}},
	}
	return NewSpeciesService(repo, store), repo
}

type countingSpeciesRepository struct {
	stubSpeciesRepository
	listCalls int
}

func (s *countingSpeciesRepository) List(ctx context.Context) ([]species.Species, error) {
	s.listCalls++
	return s.stubSpeciesRepository.List(ctx)
}

func TestSpeciesService_List_UsesCatalogCache(t *testing.T) {
	t.Parallel()

	service, repo := newSpeciesFixture(cache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		catalog, err := service.List(context.Background())
		if err != nil {
			t.Fatalf("List error: %v", err)
		}
		if len(catalog) != 3 {
			t.Fatalf("unexpected catalog size: %d", len(catalog))
		}
	}

	if repo.listCalls != 1 {
		t.Fatalf("expected a single repository load, got %d", repo.listCalls)
	}
}

func TestSpeciesService_List_WorksWithoutCache(t *testing.T) {
	t.Parallel()

	service, repo := newSpeciesFixture(nil)

	if _, err := service.List(context.Background()); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if _, err := service.List(context.Background()); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if repo.listCalls != 2 {
		t.Fatalf("expected a load per call without cache, got %d", repo.listCalls)
	}
}

func TestSpeciesService_Get(t *testing.T) {
	t.Parallel()

	service, _ := newSpeciesFixture(cache.NewStore(time.Minute))

	sp, err := service.Get(context.Background(), "sp-pike")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if sp.Name != "Northern Pike" {
		t.Fatalf("unexpected species: %+v", sp)
	}

	if _, err := service.Get(context.Background(), "sp-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.Get(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank id, got %v", err)
	}
}

func TestSpeciesService_Search_FuzzyMatchesNames(t *testing.T) {
	t.Parallel()

	service, _ := newSpeciesFixture(cache.NewStore(time.Minute))

	results, err := service.Search(context.Background(), "bass")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) == 0 || results[0].ID != "sp-bass" {
		t.Fatalf("expected largemouth bass first, got %+v", results)
	}

	// Scientific names match too.
	results, err = service.Search(context.Background(), "esox")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 1 || results[0].ID != "sp-pike" {
		t.Fatalf("expected pike via scientific name, got %+v", results)
	}

	results, err = service.Search(context.Background(), "zzzzqqq")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no matches, got %+v", results)
	}
}

func TestSpeciesService_Search_EmptyQueryReturnsCatalog(t *testing.T) {
	t.Parallel()

	service, _ := newSpeciesFixture(cache.NewStore(time.Minute))

	results, err := service.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected full catalog, got %d entries", len(results))
	}
}

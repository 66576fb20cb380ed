package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/tackle"
	idgen "github.com/astorrey/TackleHogs/internal/platform/id"
	"github.com/astorrey/TackleHogs/internal/platform/logging"
)

type CreateTackleInput struct {
	UserID      string
	Name        string
	Brand       string
	Model       string
	Description string
	Price       *float64
	ImageURL    string
	SourceURL   string
}

// pageScraper extracts product attributes from a retailer page.
type pageScraper interface {
	Scrape(ctx context.Context, pageURL string) (tackle.ScrapedItem, error)
}

// TackleService manages users' tackle boxes. Items can be entered by hand or
// seeded from a retailer URL; scraped attributes never override what the
// user typed.
type TackleService struct {
	repo    tackle.Repository
	scraper pageScraper
	idGen   idgen.Generator
	logger  *logging.Logger
	now     func() time.Time
}

func NewTackleService(repo tackle.Repository, scraper pageScraper, idGen idgen.Generator, logger *logging.Logger) *TackleService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TackleService{
		repo:    repo,
		scraper: scraper,
		idGen:   idGen,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *TackleService) Create(ctx context.Context, input CreateTackleInput) (tackle.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "TackleService.Create")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	input.SourceURL = strings.TrimSpace(input.SourceURL)

	item := tackle.Item{
		UserID:      input.UserID,
		Name:        input.Name,
		Brand:       strings.TrimSpace(input.Brand),
		Model:       strings.TrimSpace(input.Model),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		SourceURL:   input.SourceURL,
	}

	if input.SourceURL != "" {
		if _, err := url.ParseRequestURI(input.SourceURL); err != nil {
			return tackle.Item{}, fmt.Errorf("%w: invalid source url", ErrInvalidInput)
		}
		s.fillFromPage(ctx, &item)
	}

	if err := item.Validate(); err != nil {
		return tackle.Item{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return tackle.Item{}, fmt.Errorf("generate tackle item id: %w", err)
	}
	item.ID = id

	now := s.now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.repo.Create(ctx, item); err != nil {
		return tackle.Item{}, fmt.Errorf("create tackle item: %w", err)
	}

	return item, nil
}

func (s *TackleService) Get(ctx context.Context, itemID string) (tackle.Item, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return tackle.Item{}, fmt.Errorf("%w: tackle item id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return tackle.Item{}, fmt.Errorf("get tackle item: %w", err)
	}
	if !exists {
		return tackle.Item{}, fmt.Errorf("%w: tackle=%s", ErrNotFound, itemID)
	}

	return item, nil
}

func (s *TackleService) ListByUser(ctx context.Context, userID string) ([]tackle.Item, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tackle items: %w", err)
	}
	return items, nil
}

func (s *TackleService) Delete(ctx context.Context, itemID, userID string) error {
	item, err := s.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != strings.TrimSpace(userID) {
		return fmt.Errorf("%w: tackle item belongs to another user", ErrUnauthorized)
	}

	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete tackle item: %w", err)
	}
	return nil
}

// fillFromPage fills blank item fields from the scraped page. Scrape
// failures are logged and the item proceeds with what the user provided.
func (s *TackleService) fillFromPage(ctx context.Context, item *tackle.Item) {
	if s.scraper == nil {
		return
	}

	scraped, err := s.scraper.Scrape(ctx, item.SourceURL)
	if err != nil {
		s.logger.WarnContext(ctx, "tackle page scrape failed", "url", item.SourceURL, "error", err)
		return
	}

	if item.Name == "" {
		item.Name = scraped.Name
	}
	if item.Brand == "" {
		item.Brand = scraped.Brand
	}
	if item.Model == "" {
		item.Model = scraped.Model
	}
	if item.Description == "" {
		item.Description = scraped.Description
	}
	if item.Price == nil {
		item.Price = scraped.Price
	}
	if item.ImageURL == "" {
		item.ImageURL = scraped.ImageURL
	}
	if len(item.Specifications) == 0 {
		item.Specifications = scraped.Specifications
	}
}

package tackle

import (
	"fmt"
	"time"
)

// Item is a piece of gear in an angler's tackle box.
type Item struct {
	ID             string
	UserID         string
	Name           string
	Brand          string
	Model          string
	Description    string
	Price          *float64
	ImageURL       string
	Specifications map[string]string
	SourceURL      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (i Item) Validate() error {
	if i.UserID == "" {
		return fmt.Errorf("tackle item user id is required")
	}
	if i.Name == "" {
		return fmt.Errorf("tackle item name is required")
	}
	if i.Price != nil && *i.Price < 0 {
		return fmt.Errorf("tackle item price cannot be negative")
	}

	return nil
}

// ScrapedItem is the partial attribute record returned by the retailer page
// normalizer. Every field is optional.
type ScrapedItem struct {
	Name           string
	Brand          string
	Model          string
	Description    string
	Price          *float64
	ImageURL       string
	Specifications map[string]string
}

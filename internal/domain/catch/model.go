package catch

import (
	"fmt"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/weather"
)

// Physical sanity bounds for reported measurements.
const (
	MaxWeightPounds = 1000.0
	MaxLengthInches = 200.0
)

// Catch is a single logged fishing event. Points are derived from the
// measurements at write time and never accepted from the client.
type Catch struct {
	ID         string
	UserID     string
	SpeciesID  string
	TackleID   *string
	LocationID *string
	State      string
	Weight     *float64
	Length     *float64
	Points     int
	Bonuses    []string
	Latitude   *float64
	Longitude  *float64
	Weather    *weather.Data
	Notes      string
	PhotoURL   string
	CaughtAt   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (c Catch) Validate() error {
	if c.UserID == "" {
		return fmt.Errorf("catch user id is required")
	}
	if c.SpeciesID == "" {
		return fmt.Errorf("catch species id is required")
	}
	if c.CaughtAt.IsZero() {
		return fmt.Errorf("caught at timestamp is required")
	}
	if c.Weight != nil && (*c.Weight <= 0 || *c.Weight >= MaxWeightPounds) {
		return fmt.Errorf("weight must be between 0 and %g pounds", MaxWeightPounds)
	}
	if c.Length != nil && (*c.Length <= 0 || *c.Length >= MaxLengthInches) {
		return fmt.Errorf("length must be between 0 and %g inches", MaxLengthInches)
	}
	if c.Latitude != nil && (*c.Latitude < -90 || *c.Latitude > 90) {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if c.Longitude != nil && (*c.Longitude < -180 || *c.Longitude > 180) {
		return fmt.Errorf("longitude must be between -180 and 180")
	}

	return nil
}

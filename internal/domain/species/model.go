package species

import "fmt"

// Species is a catalog entry for a catchable fish species.
type Species struct {
	ID             string
	Name           string
	ScientificName string
	WaterType      string
	Description    string
}

func (s Species) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("species id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("species name is required")
	}

	return nil
}

package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/catch"
	"github.com/astorrey/TackleHogs/internal/domain/weather"
	"github.com/bytedance/sonic"
	"github.com/lib/pq"
)

type catchTableModel struct {
	ID         int64          `db:"id"`
	PublicID   string         `db:"public_id"`
	UserID     string         `db:"user_id"`
	SpeciesID  string         `db:"species_public_id"`
	TackleID   sql.NullString `db:"tackle_public_id"`
	LocationID sql.NullString `db:"location_id"`
	State      sql.NullString `db:"state"`
	Weight     *float64       `db:"weight_lbs"`
	Length     *float64       `db:"length_in"`
	Points     int            `db:"points"`
	Bonuses    pq.StringArray `db:"bonuses"`
	Latitude   *float64       `db:"latitude"`
	Longitude  *float64       `db:"longitude"`
	Weather    []byte         `db:"weather"`
	Notes      sql.NullString `db:"notes"`
	PhotoURL   sql.NullString `db:"photo_url"`
	CaughtAt   time.Time      `db:"caught_at"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
	DeletedAt  *time.Time     `db:"deleted_at"`
}

type catchInsertModel struct {
	PublicID   string         `db:"public_id"`
	UserID     string         `db:"user_id"`
	SpeciesID  string         `db:"species_public_id"`
	TackleID   *string        `db:"tackle_public_id"`
	LocationID *string        `db:"location_id"`
	State      string         `db:"state"`
	Weight     *float64       `db:"weight_lbs"`
	Length     *float64       `db:"length_in"`
	Points     int            `db:"points"`
	Bonuses    pq.StringArray `db:"bonuses"`
	Latitude   *float64       `db:"latitude"`
	Longitude  *float64       `db:"longitude"`
	Weather    []byte         `db:"weather"`
	Notes      string         `db:"notes"`
	PhotoURL   string         `db:"photo_url"`
	CaughtAt   time.Time      `db:"caught_at"`
}

func catchToInsertModel(c catch.Catch) (catchInsertModel, error) {
	weatherJSON, err := marshalWeather(c.Weather)
	if err != nil {
		return catchInsertModel{}, err
	}

	return catchInsertModel{
		PublicID:   c.ID,
		UserID:     c.UserID,
		SpeciesID:  c.SpeciesID,
		TackleID:   c.TackleID,
		LocationID: c.LocationID,
		State:      c.State,
		Weight:     c.Weight,
		Length:     c.Length,
		Points:     c.Points,
		Bonuses:    pq.StringArray(c.Bonuses),
		Latitude:   c.Latitude,
		Longitude:  c.Longitude,
		Weather:    weatherJSON,
		Notes:      c.Notes,
		PhotoURL:   c.PhotoURL,
		CaughtAt:   c.CaughtAt,
	}, nil
}

func catchFromRow(row catchTableModel) (catch.Catch, error) {
	var snapshot *weather.Data
	if len(row.Weather) > 0 {
		var data weather.Data
		if err := sonic.Unmarshal(row.Weather, &data); err != nil {
			return catch.Catch{}, fmt.Errorf("decode catch weather: %w", err)
		}
		snapshot = &data
	}

	return catch.Catch{
		ID:         row.PublicID,
		UserID:     row.UserID,
		SpeciesID:  row.SpeciesID,
		TackleID:   nullStringToPtr(row.TackleID),
		LocationID: nullStringToPtr(row.LocationID),
		State:      row.State.String,
		Weight:     row.Weight,
		Length:     row.Length,
		Points:     row.Points,
		Bonuses:    []string(row.Bonuses),
		Latitude:   row.Latitude,
		Longitude:  row.Longitude,
		Weather:    snapshot,
		Notes:      row.Notes.String,
		PhotoURL:   row.PhotoURL.String,
		CaughtAt:   row.CaughtAt,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

func marshalWeather(data *weather.Data) ([]byte, error) {
	if data == nil {
		return nil, nil
	}
	out, err := sonic.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode catch weather: %w", err)
	}
	return out, nil
}

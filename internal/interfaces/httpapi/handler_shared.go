package httpapi

import (
	"context"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/catch"
	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/domain/leaderboard"
	"github.com/astorrey/TackleHogs/internal/domain/species"
	"github.com/astorrey/TackleHogs/internal/domain/tackle"
	"github.com/astorrey/TackleHogs/internal/domain/weather"
)

type catchDTO struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	SpeciesID  string      `json:"species_id"`
	TackleID   *string     `json:"tackle_id,omitempty"`
	LocationID *string     `json:"location_id,omitempty"`
	State      string      `json:"state,omitempty"`
	Weight     *float64    `json:"weight,omitempty"`
	Length     *float64    `json:"length,omitempty"`
	Points     int         `json:"points"`
	Bonuses    []string    `json:"bonuses,omitempty"`
	Latitude   *float64    `json:"latitude,omitempty"`
	Longitude  *float64    `json:"longitude,omitempty"`
	Weather    *weatherDTO `json:"weather,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	PhotoURL   string      `json:"photo_url,omitempty"`
	CaughtAt   string      `json:"caught_at"`
	CreatedAt  string      `json:"created_at"`
	UpdatedAt  string      `json:"updated_at"`
}

type weatherDTO struct {
	Conditions    string  `json:"conditions,omitempty"`
	Description   string  `json:"description,omitempty"`
	Icon          string  `json:"icon,omitempty"`
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection float64 `json:"wind_direction"`
	Pressure      float64 `json:"pressure"`
	Humidity      float64 `json:"humidity"`
}

func catchToDTO(ctx context.Context, v catch.Catch) catchDTO {
	ctx, span := startSpan(ctx, "httpapi.catchToDTO")
	defer span.End()

	dto := catchDTO{
		ID:         v.ID,
		UserID:     v.UserID,
		SpeciesID:  v.SpeciesID,
		TackleID:   v.TackleID,
		LocationID: v.LocationID,
		State:      v.State,
		Weight:     v.Weight,
		Length:     v.Length,
		Points:     v.Points,
		Bonuses:    append([]string(nil), v.Bonuses...),
		Latitude:   v.Latitude,
		Longitude:  v.Longitude,
		Notes:      v.Notes,
		PhotoURL:   v.PhotoURL,
		CaughtAt:   v.CaughtAt.UTC().Format(time.RFC3339),
		CreatedAt:  v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  v.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if v.Weather != nil {
		dto.Weather = weatherToDTO(ctx, *v.Weather)
	}
	return dto
}

func weatherToDTO(ctx context.Context, v weather.Data) *weatherDTO {
	_ = ctx

	return &weatherDTO{
		Conditions:    v.Conditions,
		Description:   v.Description,
		Icon:          v.Icon,
		Temperature:   v.Temperature,
		WindSpeed:     v.WindSpeed,
		WindDirection: v.WindDirection,
		Pressure:      v.Pressure,
		Humidity:      v.Humidity,
	}
}

type competitionDTO struct {
	ID              string  `json:"id"`
	CreatorID       string  `json:"creator_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Type            string  `json:"type"`
	Metric          string  `json:"metric"`
	TargetSpeciesID *string `json:"target_species_id,omitempty"`
	Visibility      string  `json:"visibility"`
	MaxParticipants int     `json:"max_participants"`
	StartAt         string  `json:"start_at"`
	EndAt           string  `json:"end_at"`
	Status          string  `json:"status"`
	FrozenAt        *string `json:"frozen_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func competitionToDTO(ctx context.Context, v competition.Competition) competitionDTO {
	_, span := startSpan(ctx, "httpapi.competitionToDTO")
	defer span.End()

	dto := competitionDTO{
		ID:              v.ID,
		CreatorID:       v.CreatorID,
		Name:            v.Name,
		Description:     v.Description,
		Type:            string(v.Type),
		Metric:          string(v.Metric),
		TargetSpeciesID: v.TargetSpeciesID,
		Visibility:      string(v.Visibility),
		MaxParticipants: v.MaxParticipants,
		StartAt:         v.StartAt.UTC().Format(time.RFC3339),
		EndAt:           v.EndAt.UTC().Format(time.RFC3339),
		Status:          string(v.Status),
		CreatedAt:       v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.FrozenAt != nil {
		frozen := v.FrozenAt.UTC().Format(time.RFC3339)
		dto.FrozenAt = &frozen
	}
	return dto
}

type participantDTO struct {
	CompetitionID string  `json:"competition_id"`
	UserID        string  `json:"user_id"`
	Score         float64 `json:"score"`
	CatchCount    int     `json:"catch_count"`
	BestCatchID   *string `json:"best_catch_id,omitempty"`
	Rank          *int    `json:"rank,omitempty"`
	JoinedAt      string  `json:"joined_at"`
}

func participantToDTO(ctx context.Context, v competition.Participant) participantDTO {
	_, span := startSpan(ctx, "httpapi.participantToDTO")
	defer span.End()

	return participantDTO{
		CompetitionID: v.CompetitionID,
		UserID:        v.UserID,
		Score:         v.Score,
		CatchCount:    v.CatchCount,
		BestCatchID:   v.BestCatchID,
		Rank:          v.Rank,
		JoinedAt:      v.JoinedAt.UTC().Format(time.RFC3339),
	}
}

type invitationDTO struct {
	ID            string  `json:"id"`
	CompetitionID string  `json:"competition_id"`
	InviterID     string  `json:"inviter_id"`
	InviteeID     string  `json:"invitee_id"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
	RespondedAt   *string `json:"responded_at,omitempty"`
}

func invitationToDTO(ctx context.Context, v competition.Invitation) invitationDTO {
	_, span := startSpan(ctx, "httpapi.invitationToDTO")
	defer span.End()

	dto := invitationDTO{
		ID:            v.ID,
		CompetitionID: v.CompetitionID,
		InviterID:     v.InviterID,
		InviteeID:     v.InviteeID,
		Status:        string(v.Status),
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.RespondedAt != nil {
		responded := v.RespondedAt.UTC().Format(time.RFC3339)
		dto.RespondedAt = &responded
	}
	return dto
}

type leaderboardEntryDTO struct {
	UserID            string  `json:"user_id"`
	State             string  `json:"state,omitempty"`
	Rank              *int    `json:"rank,omitempty"`
	TotalCatches      int     `json:"total_catches"`
	TotalPoints       int     `json:"total_points"`
	BiggestFishWeight float64 `json:"biggest_fish_weight"`
	BiggestFishLength float64 `json:"biggest_fish_length"`
	UpdatedAt         string  `json:"updated_at"`
}

func rankedEntryToDTO(ctx context.Context, v leaderboard.RankedEntry) leaderboardEntryDTO {
	_, span := startSpan(ctx, "httpapi.rankedEntryToDTO")
	defer span.End()

	state := v.State
	if state == leaderboard.StateAll {
		state = ""
	}

	return leaderboardEntryDTO{
		UserID:            v.UserID,
		State:             state,
		Rank:              v.Rank,
		TotalCatches:      v.TotalCatches,
		TotalPoints:       v.TotalPoints,
		BiggestFishWeight: v.BiggestFishWeight,
		BiggestFishLength: v.BiggestFishLength,
		UpdatedAt:         v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type speciesDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ScientificName string `json:"scientific_name,omitempty"`
	WaterType      string `json:"water_type,omitempty"`
	Description    string `json:"description,omitempty"`
}

func speciesToDTO(ctx context.Context, v species.Species) speciesDTO {
	_, span := startSpan(ctx, "httpapi.speciesToDTO")
	defer span.End()

	return speciesDTO{
		ID:             v.ID,
		Name:           v.Name,
		ScientificName: v.ScientificName,
		WaterType:      v.WaterType,
		Description:    v.Description,
	}
}

type tackleItemDTO struct {
	ID             string            `json:"id"`
	UserID         string            `json:"user_id"`
	Name           string            `json:"name"`
	Brand          string            `json:"brand,omitempty"`
	Model          string            `json:"model,omitempty"`
	Description    string            `json:"description,omitempty"`
	Price          *float64          `json:"price,omitempty"`
	ImageURL       string            `json:"image_url,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	SourceURL      string            `json:"source_url,omitempty"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
}

func tackleItemToDTO(ctx context.Context, v tackle.Item) tackleItemDTO {
	_, span := startSpan(ctx, "httpapi.tackleItemToDTO")
	defer span.End()

	return tackleItemDTO{
		ID:             v.ID,
		UserID:         v.UserID,
		Name:           v.Name,
		Brand:          v.Brand,
		Model:          v.Model,
		Description:    v.Description,
		Price:          v.Price,
		ImageURL:       v.ImageURL,
		Specifications: v.Specifications,
		SourceURL:      v.SourceURL,
		CreatedAt:      v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

package postgres

import (
	"database/sql"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/competition"
)

type competitionTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	CreatorUserID   string         `db:"creator_user_id"`
	Name            string         `db:"name"`
	Description     sql.NullString `db:"description"`
	Type            string         `db:"comp_type"`
	Metric          string         `db:"metric"`
	TargetSpeciesID sql.NullString `db:"target_species_public_id"`
	Visibility      string         `db:"visibility"`
	MaxParticipants int            `db:"max_participants"`
	StartAt         time.Time      `db:"start_at"`
	EndAt           time.Time      `db:"end_at"`
	Status          string         `db:"status"`
	FrozenAt        *time.Time     `db:"frozen_at"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}

type competitionInsertModel struct {
	PublicID        string     `db:"public_id"`
	CreatorUserID   string     `db:"creator_user_id"`
	Name            string     `db:"name"`
	Description     string     `db:"description"`
	Type            string     `db:"comp_type"`
	Metric          string     `db:"metric"`
	TargetSpeciesID *string    `db:"target_species_public_id"`
	Visibility      string     `db:"visibility"`
	MaxParticipants int        `db:"max_participants"`
	StartAt         time.Time  `db:"start_at"`
	EndAt           time.Time  `db:"end_at"`
	Status          string     `db:"status"`
	FrozenAt        *time.Time `db:"frozen_at"`
}

type participantTableModel struct {
	ID            int64          `db:"id"`
	CompetitionID string         `db:"competition_public_id"`
	UserID        string         `db:"user_id"`
	Score         float64        `db:"score"`
	CatchCount    int            `db:"catch_count"`
	BestCatchID   sql.NullString `db:"best_catch_public_id"`
	Rank          sql.NullInt64  `db:"rank"`
	JoinedAt      time.Time      `db:"joined_at"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	DeletedAt     *time.Time     `db:"deleted_at"`
}

type participantInsertModel struct {
	CompetitionID string    `db:"competition_public_id"`
	UserID        string    `db:"user_id"`
	Score         float64   `db:"score"`
	CatchCount    int       `db:"catch_count"`
	BestCatchID   *string   `db:"best_catch_public_id"`
	JoinedAt      time.Time `db:"joined_at"`
}

type invitationTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	CompetitionID string     `db:"competition_public_id"`
	InviterUserID string     `db:"inviter_user_id"`
	InviteeUserID string     `db:"invitee_user_id"`
	Status        string     `db:"status"`
	CreatedAt     time.Time  `db:"created_at"`
	RespondedAt   *time.Time `db:"responded_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type invitationInsertModel struct {
	PublicID      string `db:"public_id"`
	CompetitionID string `db:"competition_public_id"`
	InviterUserID string `db:"inviter_user_id"`
	InviteeUserID string `db:"invitee_user_id"`
	Status        string `db:"status"`
}

func competitionFromRow(row competitionTableModel) competition.Competition {
	return competition.Competition{
		ID:              row.PublicID,
		CreatorID:       row.CreatorUserID,
		Name:            row.Name,
		Description:     row.Description.String,
		Type:            competition.Type(row.Type),
		Metric:          competition.Metric(row.Metric),
		TargetSpeciesID: nullStringToPtr(row.TargetSpeciesID),
		Visibility:      competition.Visibility(row.Visibility),
		MaxParticipants: row.MaxParticipants,
		StartAt:         row.StartAt,
		EndAt:           row.EndAt,
		Status:          competition.Status(row.Status),
		FrozenAt:        row.FrozenAt,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func participantFromRow(row participantTableModel) competition.Participant {
	return competition.Participant{
		CompetitionID: row.CompetitionID,
		UserID:        row.UserID,
		Score:         row.Score,
		CatchCount:    row.CatchCount,
		BestCatchID:   nullStringToPtr(row.BestCatchID),
		Rank:          nullInt64ToIntPtr(row.Rank),
		JoinedAt:      row.JoinedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func invitationFromRow(row invitationTableModel) competition.Invitation {
	return competition.Invitation{
		ID:            row.PublicID,
		CompetitionID: row.CompetitionID,
		InviterID:     row.InviterUserID,
		InviteeID:     row.InviteeUserID,
		Status:        competition.InvitationStatus(row.Status),
		CreatedAt:     row.CreatedAt,
		RespondedAt:   row.RespondedAt,
	}
}

func nullStringToPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

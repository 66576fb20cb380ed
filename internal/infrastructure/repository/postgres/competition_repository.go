package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/competition"
	qb "github.com/astorrey/TackleHogs/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) Create(ctx context.Context, c competition.Competition) error {
	insertModel := competitionInsertModel{
		PublicID:        c.ID,
		CreatorUserID:   c.CreatorID,
		Name:            c.Name,
		Description:     c.Description,
		Type:            string(c.Type),
		Metric:          string(c.Metric),
		TargetSpeciesID: c.TargetSpeciesID,
		Visibility:      string(c.Visibility),
		MaxParticipants: c.MaxParticipants,
		StartAt:         c.StartAt,
		EndAt:           c.EndAt,
		Status:          string(c.Status),
		FrozenAt:        c.FrozenAt,
	}
	query, args, err := qb.InsertModel("competitions", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create competition query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create competition: %w", err)
	}

	return nil
}

func (r *CompetitionRepository) Update(ctx context.Context, c competition.Competition) error {
	query, args, err := qb.Update("competitions").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("status", string(c.Status)).
		Set("frozen_at", c.FrozenAt).
		Set("start_at", c.StartAt).
		Set("end_at", c.EndAt).
		Set("max_participants", c.MaxParticipants).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", c.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update competition query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update competition: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update competition: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update competition: not found")
	}

	return nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(
			qb.Eq("public_id", competitionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition by id query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition by id: %w", err)
	}

	return competitionFromRow(row), true, nil
}

func (r *CompetitionRepository) List(ctx context.Context, filter competition.Filter) ([]competition.Competition, error) {
	builder := qb.Select("c.*").From("competitions c")
	conditions := []qb.Condition{qb.IsNull("c.deleted_at")}

	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("c.status", string(filter.Status)))
	}
	if filter.PublicOnly {
		conditions = append(conditions, qb.Eq("c.visibility", string(competition.VisibilityPublic)))
	}
	if filter.ParticipantID != "" {
		builder = qb.Select("c.*").
			From("competitions c JOIN competition_participants cp ON cp.competition_public_id = c.public_id")
		conditions = append(conditions,
			qb.Eq("cp.user_id", filter.ParticipantID),
			qb.IsNull("cp.deleted_at"),
		)
	}

	builder = builder.Where(conditions...).OrderBy("c.start_at DESC", "c.id DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competitionFromRow(row))
	}
	return out, nil
}

func (r *CompetitionRepository) ListDueForActivation(ctx context.Context, now time.Time) ([]competition.Competition, error) {
	return r.listByStatusAndBoundary(ctx, competition.StatusPending, "start_at", now)
}

func (r *CompetitionRepository) ListDueForCompletion(ctx context.Context, now time.Time) ([]competition.Competition, error) {
	return r.listByStatusAndBoundary(ctx, competition.StatusActive, "end_at", now)
}

func (r *CompetitionRepository) listByStatusAndBoundary(ctx context.Context, status competition.Status, boundaryColumn string, now time.Time) ([]competition.Competition, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(
			qb.Eq("status", string(status)),
			qb.Lte(boundaryColumn, now),
			qb.IsNull("deleted_at"),
		).
		OrderBy(boundaryColumn + " ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list due competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list due competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competitionFromRow(row))
	}
	return out, nil
}

func (r *CompetitionRepository) AddParticipant(ctx context.Context, p competition.Participant) error {
	insertModel := participantInsertModel{
		CompetitionID: p.CompetitionID,
		UserID:        p.UserID,
		Score:         p.Score,
		CatchCount:    p.CatchCount,
		BestCatchID:   p.BestCatchID,
		JoinedAt:      p.JoinedAt,
	}
	query, args, err := qb.InsertModel("competition_participants", insertModel, "")
	if err != nil {
		return fmt.Errorf("build add participant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return competition.ErrParticipantExists
		}
		return fmt.Errorf("add participant: %w", err)
	}

	return nil
}

func (r *CompetitionRepository) GetParticipant(ctx context.Context, competitionID, userID string) (competition.Participant, bool, error) {
	query, args, err := qb.Select("*").From("competition_participants").
		Where(
			qb.Eq("competition_public_id", competitionID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return competition.Participant{}, false, fmt.Errorf("build get participant query: %w", err)
	}

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Participant{}, false, nil
		}
		return competition.Participant{}, false, fmt.Errorf("get participant: %w", err)
	}

	return participantFromRow(row), true, nil
}

func (r *CompetitionRepository) ListParticipants(ctx context.Context, competitionID string) ([]competition.Participant, error) {
	query, args, err := qb.Select("*").From("competition_participants").
		Where(
			qb.Eq("competition_public_id", competitionID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("rank ASC NULLS LAST", "joined_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list participants query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	out := make([]competition.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, participantFromRow(row))
	}
	return out, nil
}

func (r *CompetitionRepository) CountParticipants(ctx context.Context, competitionID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("competition_participants").
		Where(
			qb.Eq("competition_public_id", competitionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count participants query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}

	return count, nil
}

func (r *CompetitionRepository) UpsertParticipant(ctx context.Context, p competition.Participant) error {
	insertModel := participantInsertModel{
		CompetitionID: p.CompetitionID,
		UserID:        p.UserID,
		Score:         p.Score,
		CatchCount:    p.CatchCount,
		BestCatchID:   p.BestCatchID,
		JoinedAt:      p.JoinedAt,
	}
	query, args, err := qb.InsertModel("competition_participants", insertModel, `ON CONFLICT (competition_public_id, user_id) WHERE deleted_at IS NULL
DO UPDATE SET
    score = EXCLUDED.score,
    catch_count = EXCLUDED.catch_count,
    best_catch_public_id = EXCLUDED.best_catch_public_id,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert participant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert participant: %w", err)
	}

	return nil
}

func (r *CompetitionRepository) SaveParticipantRanks(ctx context.Context, competitionID string, participants []competition.Participant) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx save participant ranks: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range participants {
		var rank any
		if p.Rank != nil {
			rank = *p.Rank
		}
		query, args, err := qb.Update("competition_participants").
			Set("rank", rank).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("competition_public_id", competitionID),
				qb.Eq("user_id", p.UserID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build save participant rank query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save participant rank: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save participant ranks tx: %w", err)
	}

	return nil
}

func (r *CompetitionRepository) RemoveParticipant(ctx context.Context, competitionID, userID string) error {
	query, args, err := qb.Update("competition_participants").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("competition_public_id", competitionID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build remove participant query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected remove participant: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("remove participant: not found")
	}

	return nil
}

func (r *CompetitionRepository) ListCompetitionIDsForUser(ctx context.Context, userID string, statuses []competition.Status) ([]string, error) {
	conditions := []qb.Condition{
		qb.Eq("cp.user_id", userID),
		qb.IsNull("cp.deleted_at"),
		qb.IsNull("c.deleted_at"),
	}
	if len(statuses) > 0 {
		values := make([]any, 0, len(statuses))
		for _, status := range statuses {
			values = append(values, string(status))
		}
		conditions = append(conditions, qb.In("c.status", values))
	}

	query, args, err := qb.Select("c.public_id").
		From("competition_participants cp JOIN competitions c ON c.public_id = cp.competition_public_id").
		Where(conditions...).
		OrderBy("c.public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competition ids for user query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list competition ids for user: %w", err)
	}

	return ids, nil
}

func (r *CompetitionRepository) CreateInvitation(ctx context.Context, inv competition.Invitation) error {
	insertModel := invitationInsertModel{
		PublicID:      inv.ID,
		CompetitionID: inv.CompetitionID,
		InviterUserID: inv.InviterID,
		InviteeUserID: inv.InviteeID,
		Status:        string(inv.Status),
	}
	query, args, err := qb.InsertModel("competition_invitations", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create invitation query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return competition.ErrInvitationExists
		}
		return fmt.Errorf("create invitation: %w", err)
	}

	return nil
}

func (r *CompetitionRepository) GetInvitation(ctx context.Context, invitationID string) (competition.Invitation, bool, error) {
	query, args, err := qb.Select("*").From("competition_invitations").
		Where(
			qb.Eq("public_id", invitationID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return competition.Invitation{}, false, fmt.Errorf("build get invitation query: %w", err)
	}

	var row invitationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Invitation{}, false, nil
		}
		return competition.Invitation{}, false, fmt.Errorf("get invitation: %w", err)
	}

	return invitationFromRow(row), true, nil
}

func (r *CompetitionRepository) UpdateInvitation(ctx context.Context, inv competition.Invitation) error {
	query, args, err := qb.Update("competition_invitations").
		Set("status", string(inv.Status)).
		Set("responded_at", inv.RespondedAt).
		Where(
			qb.Eq("public_id", inv.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update invitation query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update invitation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update invitation: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update invitation: not found")
	}

	return nil
}

func (r *CompetitionRepository) ListInvitationsForUser(ctx context.Context, inviteeID string, status competition.InvitationStatus) ([]competition.Invitation, error) {
	conditions := []qb.Condition{
		qb.Eq("invitee_user_id", inviteeID),
		qb.IsNull("deleted_at"),
	}
	if status != "" {
		conditions = append(conditions, qb.Eq("status", string(status)))
	}

	query, args, err := qb.Select("*").From("competition_invitations").
		Where(conditions...).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list invitations query: %w", err)
	}

	var rows []invitationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	out := make([]competition.Invitation, 0, len(rows))
	for _, row := range rows {
		out = append(out, invitationFromRow(row))
	}
	return out, nil
}

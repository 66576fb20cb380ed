package postgres

import (
	"context"
	"fmt"

	"github.com/astorrey/TackleHogs/internal/domain/catch"
	qb "github.com/astorrey/TackleHogs/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type CatchRepository struct {
	db *sqlx.DB
}

func NewCatchRepository(db *sqlx.DB) *CatchRepository {
	return &CatchRepository{db: db}
}

func (r *CatchRepository) Create(ctx context.Context, c catch.Catch) error {
	insertModel, err := catchToInsertModel(c)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("catches", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create catch query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create catch: %w", err)
	}

	return nil
}

func (r *CatchRepository) Update(ctx context.Context, c catch.Catch) error {
	weatherJSON, err := marshalWeather(c.Weather)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("catches").
		Set("weight_lbs", c.Weight).
		Set("length_in", c.Length).
		Set("points", c.Points).
		Set("bonuses", pq.StringArray(c.Bonuses)).
		Set("weather", weatherJSON).
		Set("notes", c.Notes).
		Set("photo_url", c.PhotoURL).
		Set("caught_at", c.CaughtAt).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", c.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update catch query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update catch: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update catch: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update catch: not found")
	}

	return nil
}

func (r *CatchRepository) Delete(ctx context.Context, catchID string) error {
	query, args, err := qb.Update("catches").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", catchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete catch query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete catch: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected delete catch: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete catch: not found")
	}

	return nil
}

func (r *CatchRepository) GetByID(ctx context.Context, catchID string) (catch.Catch, bool, error) {
	query, args, err := qb.Select("*").From("catches").
		Where(
			qb.Eq("public_id", catchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return catch.Catch{}, false, fmt.Errorf("build get catch by id query: %w", err)
	}

	var row catchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return catch.Catch{}, false, nil
		}
		return catch.Catch{}, false, fmt.Errorf("get catch by id: %w", err)
	}

	item, err := catchFromRow(row)
	if err != nil {
		return catch.Catch{}, false, err
	}
	return item, true, nil
}

func (r *CatchRepository) List(ctx context.Context, filter catch.Filter) ([]catch.Catch, error) {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.UserID != "" {
		conditions = append(conditions, qb.Eq("user_id", filter.UserID))
	}
	if len(filter.UserIDs) > 0 {
		values := make([]any, 0, len(filter.UserIDs))
		for _, id := range filter.UserIDs {
			values = append(values, id)
		}
		conditions = append(conditions, qb.In("user_id", values))
	}
	if filter.SpeciesID != "" {
		conditions = append(conditions, qb.Eq("species_public_id", filter.SpeciesID))
	}
	if filter.State != "" {
		conditions = append(conditions, qb.Eq("state", filter.State))
	}
	if !filter.From.IsZero() {
		conditions = append(conditions, qb.Gte("caught_at", filter.From))
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, qb.Lte("caught_at", filter.To))
	}

	builder := qb.Select("*").From("catches").
		Where(conditions...).
		OrderBy("caught_at DESC", "id DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list catches query: %w", err)
	}

	var rows []catchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list catches: %w", err)
	}

	out := make([]catch.Catch, 0, len(rows))
	for _, row := range rows {
		item, err := catchFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *CatchRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("DISTINCT user_id").From("catches").
		Where(qb.IsNull("deleted_at")).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list catch user ids query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list catch user ids: %w", err)
	}

	return ids, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/tackle"
	qb "github.com/astorrey/TackleHogs/internal/platform/querybuilder"
	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
)

type tackleTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	UserID         string         `db:"user_id"`
	Name           string         `db:"name"`
	Brand          sql.NullString `db:"brand"`
	Model          sql.NullString `db:"model"`
	Description    sql.NullString `db:"description"`
	Price          *float64       `db:"price"`
	ImageURL       sql.NullString `db:"image_url"`
	Specifications []byte         `db:"specifications"`
	SourceURL      sql.NullString `db:"source_url"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type tackleInsertModel struct {
	PublicID       string   `db:"public_id"`
	UserID         string   `db:"user_id"`
	Name           string   `db:"name"`
	Brand          string   `db:"brand"`
	Model          string   `db:"model"`
	Description    string   `db:"description"`
	Price          *float64 `db:"price"`
	ImageURL       string   `db:"image_url"`
	Specifications []byte   `db:"specifications"`
	SourceURL      string   `db:"source_url"`
}

type TackleRepository struct {
	db *sqlx.DB
}

func NewTackleRepository(db *sqlx.DB) *TackleRepository {
	return &TackleRepository{db: db}
}

func (r *TackleRepository) Create(ctx context.Context, item tackle.Item) error {
	var specs []byte
	if len(item.Specifications) > 0 {
		encoded, err := sonic.Marshal(item.Specifications)
		if err != nil {
			return fmt.Errorf("encode tackle specifications: %w", err)
		}
		specs = encoded
	}

	insertModel := tackleInsertModel{
		PublicID:       item.ID,
		UserID:         item.UserID,
		Name:           item.Name,
		Brand:          item.Brand,
		Model:          item.Model,
		Description:    item.Description,
		Price:          item.Price,
		ImageURL:       item.ImageURL,
		Specifications: specs,
		SourceURL:      item.SourceURL,
	}
	query, args, err := qb.InsertModel("tackle_items", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create tackle item query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create tackle item: %w", err)
	}

	return nil
}

func (r *TackleRepository) GetByID(ctx context.Context, itemID string) (tackle.Item, bool, error) {
	query, args, err := qb.Select("*").From("tackle_items").
		Where(
			qb.Eq("public_id", itemID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return tackle.Item{}, false, fmt.Errorf("build get tackle item query: %w", err)
	}

	var row tackleTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tackle.Item{}, false, nil
		}
		return tackle.Item{}, false, fmt.Errorf("get tackle item: %w", err)
	}

	item, err := tackleFromRow(row)
	if err != nil {
		return tackle.Item{}, false, err
	}
	return item, true, nil
}

func (r *TackleRepository) ListByUser(ctx context.Context, userID string) ([]tackle.Item, error) {
	query, args, err := qb.Select("*").From("tackle_items").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tackle items query: %w", err)
	}

	var rows []tackleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tackle items: %w", err)
	}

	out := make([]tackle.Item, 0, len(rows))
	for _, row := range rows {
		item, err := tackleFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *TackleRepository) Delete(ctx context.Context, itemID string) error {
	query, args, err := qb.Update("tackle_items").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", itemID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete tackle item query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete tackle item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected delete tackle item: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete tackle item: not found")
	}

	return nil
}

func tackleFromRow(row tackleTableModel) (tackle.Item, error) {
	var specs map[string]string
	if len(row.Specifications) > 0 {
		if err := sonic.Unmarshal(row.Specifications, &specs); err != nil {
			return tackle.Item{}, fmt.Errorf("decode tackle specifications: %w", err)
		}
	}

	return tackle.Item{
		ID:             row.PublicID,
		UserID:         row.UserID,
		Name:           row.Name,
		Brand:          row.Brand.String,
		Model:          row.Model.String,
		Description:    row.Description.String,
		Price:          row.Price,
		ImageURL:       row.ImageURL.String,
		Specifications: specs,
		SourceURL:      row.SourceURL.String,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/astorrey/TackleHogs/internal/domain/species"
	qb "github.com/astorrey/TackleHogs/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type speciesTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	Name           string         `db:"name"`
	ScientificName sql.NullString `db:"scientific_name"`
	WaterType      sql.NullString `db:"water_type"`
	Description    sql.NullString `db:"description"`
}

type SpeciesRepository struct {
	db *sqlx.DB
}

func NewSpeciesRepository(db *sqlx.DB) *SpeciesRepository {
	return &SpeciesRepository{db: db}
}

func (r *SpeciesRepository) List(ctx context.Context) ([]species.Species, error) {
	query, args, err := qb.Select("*").From("species").
		OrderBy("name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list species query: %w", err)
	}

	var rows []speciesTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}

	out := make([]species.Species, 0, len(rows))
	for _, row := range rows {
		out = append(out, speciesFromRow(row))
	}
	return out, nil
}

func (r *SpeciesRepository) GetByID(ctx context.Context, speciesID string) (species.Species, bool, error) {
	query, args, err := qb.Select("*").From("species").
		Where(qb.Eq("public_id", speciesID)).
		ToSQL()
	if err != nil {
		return species.Species{}, false, fmt.Errorf("build get species by id query: %w", err)
	}

	var row speciesTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return species.Species{}, false, nil
		}
		return species.Species{}, false, fmt.Errorf("get species by id: %w", err)
	}

	return speciesFromRow(row), true, nil
}

func speciesFromRow(row speciesTableModel) species.Species {
	return species.Species{
		ID:             row.PublicID,
		Name:           row.Name,
		ScientificName: row.ScientificName.String,
		WaterType:      row.WaterType.String,
		Description:    row.Description.String,
	}
}

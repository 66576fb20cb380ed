package postgres

import (
	"context"
	"fmt"

	"github.com/astorrey/TackleHogs/internal/infrastructure/repository/memory"
	"github.com/jmoiron/sqlx"
)

func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM species`); err != nil {
		return fmt.Errorf("count species for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, s := range memory.SeedSpecies() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO species (public_id, name, scientific_name, water_type, description)
VALUES (:public_id, :name, :scientific_name, :water_type, :description)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":       s.ID,
			"name":            s.Name,
			"scientific_name": s.ScientificName,
			"water_type":      s.WaterType,
			"description":     s.Description,
		})
		if err != nil {
			return fmt.Errorf("bind seed species %s query: %w", s.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed species %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"relocation-planner-service/internal/domain"
	"relocation-planner-service/internal/platform/obs"
)

// Postgres-backed implementation of the PopulationRepository port (pgx stdlib driver).
type PostgresPopulationRepository struct{ DB *sql.DB }

func NewPostgresPopulationRepository(db *sql.DB) *PostgresPopulationRepository {
	return &PostgresPopulationRepository{DB: db}
}

// Return every entity stored in the database.
func (s *PostgresPopulationRepository) ListEntities(ctx context.Context) (_ domain.Population, err error) {
	defer obs.Time(ctx, "postgres.ListEntities")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres population repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT entity_id, x, y, health
	FROM entities
	ORDER BY entity_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list entities: query entities table: %w", err)
	}
	defer rows.Close()

	pop, err := scanPopulation(rows)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}

	return pop, nil
}

// Return the subset of entities with the given IDs. Unknown IDs are ignored.
func (s *PostgresPopulationRepository) ListEntitiesByID(ctx context.Context, ids []string) (_ domain.Population, err error) {
	defer obs.Time(ctx, "postgres.ListEntitiesByID")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres population repository: DB is nil")
	}

	if len(ids) == 0 {
		return domain.Population{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT entity_id, x, y, health
	FROM entities
	WHERE entity_id = ANY($1::text[])
	ORDER BY entity_id;
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("list entities by id: query entities table: %w", err)
	}
	defer rows.Close()

	pop, err := scanPopulation(rows)
	if err != nil {
		return nil, fmt.Errorf("list entities by id: %w", err)
	}

	return pop, nil
}

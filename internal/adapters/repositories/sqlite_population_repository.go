package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"relocation-planner-service/internal/domain"
	"strings"
)

// SQLite-backed implementation of the PopulationRepository port.
type SqlitePopulationRepository struct{ DB *sql.DB }

func NewSqlitePopulationRepository(db *sql.DB) *SqlitePopulationRepository {
	return &SqlitePopulationRepository{DB: db}
}

// Return every entity stored in the database.
func (s *SqlitePopulationRepository) ListEntities(ctx context.Context) (domain.Population, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite population repository: DB is nil")
	}

	query := `
	SELECT
		entity_id,
		x,
		y,
		health
	FROM entities
	ORDER BY entity_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
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
func (s *SqlitePopulationRepository) ListEntitiesByID(ctx context.Context, ids []string) (domain.Population, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite population repository: DB is nil")
	}

	seen := map[string]struct{}{}
	args := make([]any, 0, len(ids))
	ph := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		args = append(args, id)
		ph = append(ph, "?")
	}

	if len(args) == 0 {
		return domain.Population{}, nil
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	query := fmt.Sprintf(`
	SELECT
		entity_id,
		x,
		y,
		health
	FROM entities
	WHERE entity_id IN (%s)
	ORDER BY entity_id;
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, query, args...)
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

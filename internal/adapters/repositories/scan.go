package repositories

import (
	"database/sql"
	"fmt"
	"relocation-planner-service/internal/domain"
)

// scanPopulation reads (entity_id, x, y, health) rows into a Population.
// NULL columns become InvalidEntityError naming the row.
func scanPopulation(rows *sql.Rows) (domain.Population, error) {
	pop := make(domain.Population)

	for rows.Next() {
		var id string
		var x, y, health sql.NullFloat64
		if err := rows.Scan(&id, &x, &y, &health); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		if !x.Valid || !y.Valid {
			return nil, &domain.InvalidEntityError{ID: id, Reason: "missing position"}
		}
		if !health.Valid {
			return nil, &domain.InvalidEntityError{ID: id, Reason: "missing health"}
		}

		e := domain.Entity{
			ID:       id,
			Position: domain.Position{X: x.Float64, Y: y.Float64},
			Health:   health.Float64,
		}
		if err := e.Validate(); err != nil {
			return nil, err
		}
		pop[id] = e
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return pop, nil
}

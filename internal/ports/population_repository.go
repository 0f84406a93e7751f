package ports

import (
	"context"
	"relocation-planner-service/internal/domain"
)

// Port: a boundary for retrieving a Population snapshot from a data source.
type PopulationRepository interface {
	// Retrieve every entity available for planning.
	ListEntities(ctx context.Context) (domain.Population, error)
}

package ports

import (
	"context"
	"relocation-planner-service/internal/domain"
)

// Optional extension of PopulationRepository that fetches a subset by ID.
type PopulationLookup interface {
	PopulationRepository
	// Return the entities with the given IDs; unknown IDs are skipped.
	ListEntitiesByID(ctx context.Context, ids []string) (domain.Population, error)
}

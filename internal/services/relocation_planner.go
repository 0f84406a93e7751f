package services

import (
	"errors"
	"fmt"
	"math"
	"relocation-planner-service/internal/domain"
)

// ErrInvalidRequest is wrapped when the target or threshold cannot be planned with.
var ErrInvalidRequest = errors.New("invalid plan request")

// Parameters of a single planning run.
type PlanRequest struct {
	Target    domain.Position
	Threshold float64
	Options   MatchOptions
}

// Everything a planning run derives from one population snapshot.
type Relocation struct {
	Partition Partition
	Plan      *domain.Plan
	Graph     domain.LocationGraph
}

// PlanRelocation validates the snapshot, partitions it, runs the greedy matcher and
// builds the location graph.
//
// The computation is synchronous and side-effect free; the population is not modified.
// Donor exhaustion is reported through Plan.Unreplaced, not as an error.
func PlanRelocation(pop domain.Population, req PlanRequest) (*Relocation, error) {
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("plan relocation: %w", err)
	}

	if err := pop.Validate(); err != nil {
		return nil, fmt.Errorf("plan relocation: %w", err)
	}

	part := PartitionPopulation(pop, req.Target, req.Threshold)
	plan := MatchDonors(req.Target, part, req.Options)

	return &Relocation{
		Partition: part,
		Plan:      plan,
		Graph:     BuildLocationGraph(pop, req.Target, plan),
	}, nil
}

func validateRequest(req PlanRequest) error {
	if math.IsNaN(req.Threshold) || math.IsInf(req.Threshold, 0) {
		return fmt.Errorf("%w: threshold must be finite", ErrInvalidRequest)
	}
	if math.IsNaN(req.Target.X) || math.IsNaN(req.Target.Y) ||
		math.IsInf(req.Target.X, 0) || math.IsInf(req.Target.Y, 0) {
		return fmt.Errorf("%w: target must be finite", ErrInvalidRequest)
	}
	return nil
}

package services

import (
	"maps"
	"relocation-planner-service/internal/domain"
	"slices"
)

// MatchDonors pairs each below-threshold entity with the nearest remaining healthy donor.
//
// Below-threshold IDs are visited in opts.Order. At each step the donor closest
// to the target (squared distance) is chosen, its distance is added to the plan
// cost, and it is removed from the pool. When the pool runs dry the remaining
// IDs are recorded as unreplaced and matching stops.
//
// This is a greedy heuristic: it does not search for a globally minimal assignment.
// The partition passed in is not modified.
func MatchDonors(target domain.Position, part Partition, opts MatchOptions) *domain.Plan {
	opts = opts.withDefaults()
	plan := domain.NewPlan()

	pool := maps.Clone(part.HealthyElsewhere)
	if pool == nil {
		pool = domain.Population{}
	}

	order := slices.SortedFunc(maps.Keys(part.BelowThreshold), opts.Order)

	for i, id := range order {
		if len(pool) == 0 {
			plan.Unreplaced = append(plan.Unreplaced, order[i:]...)
			break
		}

		donor, cost := nearestDonor(target, pool, opts.TieBreak)
		plan.Record(id, donor.ID, cost)

		delete(pool, donor.ID)
	}

	return plan
}

// nearestDonor scans a non-empty pool for the donor closest to target.
func nearestDonor(
	target domain.Position,
	pool domain.Population,
	tieBreak func(a, b domain.Entity) int,
) (domain.Entity, float64) {
	var best domain.Entity
	var minCost float64
	found := false

	for _, e := range pool {
		cost := domain.SquaredDistance(e.Position, target)
		// Tie-breaker keeps the choice deterministic when distances are equal.
		if !found || cost < minCost || (cost == minCost && tieBreak(e, best) < 0) {
			best = e
			minCost = cost
			found = true
		}
	}

	return best, minCost
}

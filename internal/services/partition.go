package services

import "relocation-planner-service/internal/domain"

// Partition splits a population into the two cohorts the matcher works on.
// BelowThreshold is keyed by ID, so an entity can be replaced at most once.
type Partition struct {
	BelowThreshold   domain.Population
	HealthyElsewhere domain.Population
}

// PartitionPopulation classifies entities relative to the target location.
//
// Entities at the target with health >= threshold need no replacement and are
// not donors. Unhealthy entities elsewhere are outside this planner's concern.
func PartitionPopulation(pop domain.Population, target domain.Position, threshold float64) Partition {
	part := Partition{
		BelowThreshold:   domain.Population{},
		HealthyElsewhere: domain.Population{},
	}

	for id, e := range pop {
		atTarget := e.Position == target
		switch {
		case atTarget && e.Health < threshold:
			part.BelowThreshold[id] = e
		case !atTarget && e.Health >= threshold:
			part.HealthyElsewhere[id] = e
		}
	}

	return part
}

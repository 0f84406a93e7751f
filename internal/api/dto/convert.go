package dto

import (
	"maps"
	"relocation-planner-service/internal/domain"
	"relocation-planner-service/internal/services"
	"slices"
)

// NewPlanResponse renders a service result; locations are sorted by position.
func NewPlanResponse(req services.PlanPopulationRequest, res *services.PlanResult) PlanResponse {
	out := PlanResponse{
		Target:         pair(req.Target),
		Threshold:      req.Threshold,
		Pairs:          pairResponses(res.Plan.Pairs),
		TotalCost:      res.Plan.TotalCost,
		Unreplaced:     res.Plan.Unreplaced,
		BelowThreshold: res.Partition.BelowThreshold.IDs(),
		DonorPool:      res.Partition.HealthyElsewhere.IDs(),
		Locations:      make([]LocationResponse, 0, len(res.Graph.Categories)),
		Edges:          make([]EdgeResponse, 0, len(res.Graph.Edges)),
		Fingerprint:    res.Fingerprint,
		Cached:         res.CacheHit,
	}
	if out.Unreplaced == nil {
		out.Unreplaced = []string{}
	}

	for _, loc := range sortedLocations(res.Graph.Categories) {
		out.Locations = append(out.Locations, LocationResponse{
			Location: pair(loc),
			Category: string(res.Graph.Categories[loc]),
		})
	}

	for _, e := range res.Graph.Edges {
		out.Edges = append(out.Edges, EdgeResponse{
			From:      pair(e.From),
			To:        pair(e.To),
			Label:     e.Label(),
			Transfers: pairResponses(e.Transfers),
		})
	}

	return out
}

func pairResponses(pairs []domain.RelocationPair) []RelocationPairResponse {
	out := make([]RelocationPairResponse, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, RelocationPairResponse{Replaced: p.Replaced, Replacement: p.Replacement})
	}
	return out
}

func pair(p domain.Position) [2]float64 { return [2]float64{p.X, p.Y} }

func sortedLocations(m map[domain.Position]domain.LocationCategory) []domain.Position {
	return slices.SortedFunc(maps.Keys(m), domain.Position.Compare)
}

func NewEntityResponse(e domain.Entity) EntityResponse {
	return EntityResponse{ID: e.ID, Location: pair(e.Position), Health: e.Health}
}

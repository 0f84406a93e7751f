package services

import "relocation-planner-service/internal/domain"

// BuildLocationGraph derives the categorisation and transfer edges of a plan.
//
// Every location occupied by the population is categorised: the target location
// as target, any location a chosen donor started from as donor, and the rest as
// neutral. One edge is emitted per donor location, pointing at the target and
// carrying every transfer that originated there, in plan order.
func BuildLocationGraph(pop domain.Population, target domain.Position, plan *domain.Plan) domain.LocationGraph {
	graph := domain.LocationGraph{
		Target:     target,
		Categories: make(map[domain.Position]domain.LocationCategory),
		Edges:      []domain.Edge{},
	}

	edgeIdx := make(map[domain.Position]int)
	if plan != nil {
		for _, pair := range plan.Pairs {
			donor, ok := pop[pair.Replacement]
			if !ok {
				continue
			}
			from := donor.Position

			i, seen := edgeIdx[from]
			if !seen {
				i = len(graph.Edges)
				edgeIdx[from] = i
				graph.Edges = append(graph.Edges, domain.Edge{From: from, To: target})
			}
			graph.Edges[i].Transfers = append(graph.Edges[i].Transfers, pair)
		}
	}

	for _, loc := range pop.Locations() {
		switch {
		case loc == target:
			graph.Categories[loc] = domain.CategoryTarget
		case hasKey(edgeIdx, loc):
			graph.Categories[loc] = domain.CategoryDonor
		default:
			graph.Categories[loc] = domain.CategoryNeutral
		}
	}

	return graph
}

func hasKey[K comparable, V any](m map[K]V, k K) bool {
	_, ok := m[k]
	return ok
}

package domain

import "strings"

// Role a known location plays in a relocation plan.
type LocationCategory string

const (
	CategoryTarget  LocationCategory = "target"
	CategoryDonor   LocationCategory = "donor"
	CategoryNeutral LocationCategory = "neutral"
)

// A directed transfer edge from a donor location to the target location.
// Transfers carries every pair whose donor started at From.
type Edge struct {
	From      Position
	To        Position
	Transfers []RelocationPair
}

// Label renders the edge as "<replacement> → <replaced>" entries separated by spaces.
// Each entry reads in the edge's direction: the donor moves toward the entity it replaces.
func (e Edge) Label() string {
	parts := make([]string, 0, len(e.Transfers))
	for _, t := range e.Transfers {
		parts = append(parts, t.Replacement+" → "+t.Replaced)
	}
	return strings.Join(parts, " ")
}

// Categorised locations and transfer edges derived from a plan.
// It carries no rendering concerns; an external renderer consumes it as-is.
type LocationGraph struct {
	Target     Position
	Categories map[Position]LocationCategory
	Edges      []Edge
}

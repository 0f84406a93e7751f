package services

import (
	"cmp"
	"errors"
	"fmt"
	"relocation-planner-service/internal/domain"
	"strings"
)

// MatchOptions controls the two ordering decisions the greedy matcher makes.
//
// Order sorts the below-threshold IDs before they are visited.
// TieBreak ranks two donors at equal distance from the target; the lower one wins.
// A TieBreak that returns 0 for distinct donors leaves the choice to map iteration
// order, which is not reproducible.
type MatchOptions struct {
	Order    func(a, b string) int
	TieBreak func(a, b domain.Entity) int
}

// ErrUnknownPolicy is returned for policy names ResolveMatchOptions does not recognise.
var ErrUnknownPolicy = errors.New("unknown policy")

// Named policies selectable from configuration.
const (
	PolicyIDAsc      = "id-asc"
	PolicyIDDesc     = "id-desc"
	PolicyHealthDesc = "health-desc"
)

// DefaultMatchOptions visits IDs lexicographically and prefers the lexicographically smaller donor on ties.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		Order:    strings.Compare,
		TieBreak: donorIDAsc,
	}
}

func (o MatchOptions) withDefaults() MatchOptions {
	def := DefaultMatchOptions()
	if o.Order == nil {
		o.Order = def.Order
	}
	if o.TieBreak == nil {
		o.TieBreak = def.TieBreak
	}
	return o
}

func donorIDAsc(a, b domain.Entity) int  { return strings.Compare(a.ID, b.ID) }
func donorIDDesc(a, b domain.Entity) int { return strings.Compare(b.ID, a.ID) }

// Healthier donors first, then ID ascending.
func donorHealthDesc(a, b domain.Entity) int {
	if c := cmp.Compare(b.Health, a.Health); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// ResolveMatchOptions maps policy names to comparators. Empty names select the defaults.
func ResolveMatchOptions(orderPolicy, tieBreakPolicy string) (MatchOptions, error) {
	opts := DefaultMatchOptions()

	switch strings.TrimSpace(orderPolicy) {
	case "", PolicyIDAsc:
	case PolicyIDDesc:
		opts.Order = func(a, b string) int { return strings.Compare(b, a) }
	default:
		return MatchOptions{}, fmt.Errorf("resolve match options: order %w %q", ErrUnknownPolicy, orderPolicy)
	}

	switch strings.TrimSpace(tieBreakPolicy) {
	case "", PolicyIDAsc:
	case PolicyIDDesc:
		opts.TieBreak = donorIDDesc
	case PolicyHealthDesc:
		opts.TieBreak = donorHealthDesc
	default:
		return MatchOptions{}, fmt.Errorf("resolve match options: tie-break %w %q", ErrUnknownPolicy, tieBreakPolicy)
	}

	return opts, nil
}

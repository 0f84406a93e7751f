package domain

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrInvalidEntity is wrapped by every InvalidEntityError.
var ErrInvalidEntity = errors.New("invalid entity record")

// InvalidEntityError identifies the malformed record and why it was rejected.
type InvalidEntityError struct {
	ID     string
	Reason string
}

func (e *InvalidEntityError) Error() string {
	return fmt.Sprintf("%v: id=%q: %s", ErrInvalidEntity, e.ID, e.Reason)
}

func (e *InvalidEntityError) Unwrap() error { return ErrInvalidEntity }

// Represents a single identifiable unit with a location and a health score.
// Health is conceptually in [0, 1] but any finite value is accepted.
// An Entity is treated as immutable for the duration of a planning run.
type Entity struct {
	ID       string
	Position Position
	Health   float64
}

// Validate reports whether the entity can take part in planning.
func (e Entity) Validate() error {
	if e.ID == "" {
		return &InvalidEntityError{ID: e.ID, Reason: "empty identifier"}
	}
	if !finite(e.Position.X) || !finite(e.Position.Y) {
		return &InvalidEntityError{ID: e.ID, Reason: "non-finite coordinate"}
	}
	if !finite(e.Health) {
		return &InvalidEntityError{ID: e.ID, Reason: "non-finite health score"}
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Population maps entity identifiers to entities.
type Population map[string]Entity

// Validate checks every record and that each key matches its entity ID.
// Records are checked in ID order so the reported record is stable.
func (p Population) Validate() error {
	for _, id := range p.IDs() {
		e := p[id]
		if e.ID != id {
			return &InvalidEntityError{ID: id, Reason: fmt.Sprintf("key does not match entity id %q", e.ID)}
		}
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IDs returns the population keys sorted ascending.
func (p Population) IDs() []string {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Locations returns the distinct positions occupied by the population, ordered by Position.Compare.
func (p Population) Locations() []Position {
	seen := make(map[Position]struct{}, len(p))
	out := make([]Position, 0, len(p))
	for _, e := range p {
		if _, ok := seen[e.Position]; ok {
			continue
		}
		seen[e.Position] = struct{}{}
		out = append(out, e.Position)
	}
	slices.SortFunc(out, Position.Compare)
	return out
}

package domain

import "fmt"

// Immutable planar coordinates of a location.
// Positions are compared with exact equality; callers are expected to supply
// the same numeric values for entities sharing a location.
type Position struct {
	X float64
	Y float64
}

// Return the position as [x, y] for wire formats.
func (p Position) ToList() []float64 { return []float64{p.X, p.Y} }

func (p Position) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Compare orders positions by X then Y.
func (p Position) Compare(o Position) int {
	switch {
	case p.X < o.X:
		return -1
	case p.X > o.X:
		return 1
	case p.Y < o.Y:
		return -1
	case p.Y > o.Y:
		return 1
	}
	return 0
}

// SquaredDistance returns (x1-x2)² + (y1-y2)².
// The square root is never taken: ordering by squared distance is identical.
func SquaredDistance(a, b Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

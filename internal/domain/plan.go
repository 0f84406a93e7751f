package domain

// Represents a single replacement decision.
// Replaced is the under-threshold entity at the target location,
// Replacement is the healthy donor moved in to take its place.
type RelocationPair struct {
	Replaced    string
	Replacement string
}

// Represents the output of the relocation matcher.
// Pairs are ordered by the sequence in which the matcher made its decisions.
// TotalCost is the sum of the squared distances from each chosen donor to the target.
// Unreplaced lists below-threshold entities left over once the donor pool ran out;
// a non-empty Unreplaced is a partial plan, not an error.
type Plan struct {
	Pairs      []RelocationPair
	TotalCost  float64
	Unreplaced []string
}

// NewPlan returns an empty plan with zero cost.
func NewPlan() *Plan {
	return &Plan{
		Pairs:      []RelocationPair{},
		Unreplaced: []string{},
	}
}

// Record appends a replacement decision and accumulates its cost.
func (p *Plan) Record(replaced, replacement string, cost float64) {
	p.Pairs = append(p.Pairs, RelocationPair{Replaced: replaced, Replacement: replacement})
	p.TotalCost += cost
}

// Complete reports whether every below-threshold entity received a replacement.
func (p *Plan) Complete() bool { return len(p.Unreplaced) == 0 }

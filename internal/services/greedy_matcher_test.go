package services

import (
	"fmt"
	"math/rand"
	"relocation-planner-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ent(id string, x, y, health float64) domain.Entity {
	return domain.Entity{ID: id, Position: domain.Position{X: x, Y: y}, Health: health}
}

func population(es ...domain.Entity) domain.Population {
	pop := make(domain.Population, len(es))
	for _, e := range es {
		pop[e.ID] = e
	}
	return pop
}

var target23 = domain.Position{X: 2, Y: 3}

func TestPartitionPopulation(t *testing.T) {
	pop := population(
		ent("A", 2, 3, 0.5),  // unhealthy at target
		ent("B", 0, 0, 0.95), // donor
		ent("C", 5, 5, 0.99), // donor
		ent("D", 2, 3, 0.95), // healthy at target: neither
		ent("E", 7, 7, 0.10), // unhealthy elsewhere: neither
		ent("F", 1, 1, 0.9),  // exactly at threshold counts as healthy
	)

	part := PartitionPopulation(pop, target23, 0.9)

	assert.Equal(t, []string{"A"}, part.BelowThreshold.IDs())
	assert.Equal(t, []string{"B", "C", "F"}, part.HealthyElsewhere.IDs())
}

func TestMatchDonorsTieScenario(t *testing.T) {
	pop := population(
		ent("A", 2, 3, 0.5),
		ent("B", 0, 0, 0.95),
		ent("C", 5, 5, 0.99),
	)
	part := PartitionPopulation(pop, target23, 0.9)

	require.Equal(t, 13.0, domain.SquaredDistance(pop["B"].Position, target23))
	require.Equal(t, 13.0, domain.SquaredDistance(pop["C"].Position, target23))

	plan := MatchDonors(target23, part, DefaultMatchOptions())
	require.Len(t, plan.Pairs, 1)
	assert.Equal(t, domain.RelocationPair{Replaced: "A", Replacement: "B"}, plan.Pairs[0])
	assert.Equal(t, 13.0, plan.TotalCost)
	assert.Empty(t, plan.Unreplaced)

	opts, err := ResolveMatchOptions(PolicyIDAsc, PolicyIDDesc)
	require.NoError(t, err)
	plan = MatchDonors(target23, part, opts)
	require.Len(t, plan.Pairs, 1)
	assert.Equal(t, "C", plan.Pairs[0].Replacement)
	assert.Equal(t, 13.0, plan.TotalCost)

	opts, err = ResolveMatchOptions("", PolicyHealthDesc)
	require.NoError(t, err)
	plan = MatchDonors(target23, part, opts)
	assert.Equal(t, "C", plan.Pairs[0].Replacement, "C is healthier than B")
}

func TestMatchDonorsPoolExhaustion(t *testing.T) {
	pop := population(
		ent("A1", 2, 3, 0.1),
		ent("A2", 2, 3, 0.2),
		ent("B", 4, 3, 0.95),
	)
	part := PartitionPopulation(pop, target23, 0.9)

	plan := MatchDonors(target23, part, MatchOptions{})

	require.Len(t, plan.Pairs, 1)
	assert.Equal(t, domain.RelocationPair{Replaced: "A1", Replacement: "B"}, plan.Pairs[0])
	assert.Equal(t, []string{"A2"}, plan.Unreplaced)
	assert.Equal(t, 4.0, plan.TotalCost)
	assert.False(t, plan.Complete())
}

func TestMatchDonorsOrderPolicy(t *testing.T) {
	pop := population(
		ent("A1", 2, 3, 0.1),
		ent("A2", 2, 3, 0.2),
		ent("near", 2, 4, 0.95),
		ent("far", 9, 9, 0.95),
	)
	part := PartitionPopulation(pop, target23, 0.9)

	opts, err := ResolveMatchOptions(PolicyIDDesc, "")
	require.NoError(t, err)
	plan := MatchDonors(target23, part, opts)

	require.Len(t, plan.Pairs, 2)
	assert.Equal(t, domain.RelocationPair{Replaced: "A2", Replacement: "near"}, plan.Pairs[0])
	assert.Equal(t, domain.RelocationPair{Replaced: "A1", Replacement: "far"}, plan.Pairs[1])
	assert.Equal(t, 1.0+49.0+36.0, plan.TotalCost)
}

func TestMatchDonorsEmptyCohorts(t *testing.T) {
	t.Run("no donors", func(t *testing.T) {
		pop := population(ent("A", 2, 3, 0.1), ent("B", 2, 3, 0.2))
		plan := MatchDonors(target23, PartitionPopulation(pop, target23, 0.9), MatchOptions{})
		assert.Empty(t, plan.Pairs)
		assert.Zero(t, plan.TotalCost)
		assert.Equal(t, []string{"A", "B"}, plan.Unreplaced)
	})

	t.Run("nothing below threshold", func(t *testing.T) {
		pop := population(ent("A", 2, 3, 0.99), ent("B", 0, 0, 0.95), ent("C", 1, 1, 0.95))
		plan := MatchDonors(target23, PartitionPopulation(pop, target23, 0.9), MatchOptions{})
		assert.Empty(t, plan.Pairs)
		assert.Zero(t, plan.TotalCost)
		assert.Empty(t, plan.Unreplaced)
	})
}

func TestMatchDonorsDoesNotMutatePartition(t *testing.T) {
	pop := population(ent("A", 2, 3, 0.1), ent("B", 0, 0, 0.95))
	part := PartitionPopulation(pop, target23, 0.9)

	MatchDonors(target23, part, MatchOptions{})

	assert.Len(t, part.HealthyElsewhere, 1)
	assert.Len(t, part.BelowThreshold, 1)
}

// Checks the invariants that must hold for any population.
func TestMatchDonorsProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	target := domain.Position{X: 3, Y: 3}
	const threshold = 0.6

	for run := 0; run < 200; run++ {
		n := rng.Intn(30)
		pop := make(domain.Population, n)
		for i := 0; i < n; i++ {
			id := fmt.Sprintf("e%02d", i)
			pos := domain.Position{X: float64(rng.Intn(6)), Y: float64(rng.Intn(6))}
			if rng.Intn(3) == 0 {
				pos = target
			}
			pop[id] = domain.Entity{ID: id, Position: pos, Health: rng.Float64()}
		}

		part := PartitionPopulation(pop, target, threshold)
		plan := MatchDonors(target, part, DefaultMatchOptions())

		below, healthy := len(part.BelowThreshold), len(part.HealthyElsewhere)
		require.LessOrEqual(t, len(plan.Pairs), min(below, healthy), "run %d", run)
		require.Equal(t, below, len(plan.Pairs)+len(plan.Unreplaced), "run %d", run)

		donors := map[string]bool{}
		replaced := map[string]bool{}
		var cost float64
		for _, p := range plan.Pairs {
			require.False(t, donors[p.Replacement], "run %d: donor %s reused", run, p.Replacement)
			require.False(t, replaced[p.Replaced], "run %d: %s replaced twice", run, p.Replaced)
			donors[p.Replacement] = true
			replaced[p.Replaced] = true

			require.Contains(t, part.HealthyElsewhere, p.Replacement)
			require.Contains(t, part.BelowThreshold, p.Replaced)
			cost += domain.SquaredDistance(pop[p.Replacement].Position, target)
		}
		require.InDelta(t, cost, plan.TotalCost, 1e-9, "run %d", run)

		if healthy == 0 || below == 0 {
			require.Empty(t, plan.Pairs)
			require.Zero(t, plan.TotalCost)
		}
	}
}

func TestResolveMatchOptionsRejectsUnknown(t *testing.T) {
	_, err := ResolveMatchOptions("random", "")
	require.ErrorIs(t, err, ErrUnknownPolicy)

	_, err = ResolveMatchOptions("", "closest-first")
	require.ErrorIs(t, err, ErrUnknownPolicy)
}

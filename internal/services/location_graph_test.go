package services

import (
	"relocation-planner-service/internal/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildLocationGraph(t *testing.T) {
	pop := population(
		ent("A1", 2, 3, 0.1),
		ent("A2", 2, 3, 0.2),
		ent("A3", 2, 3, 0.3),
		ent("B1", 2, 4, 0.95),
		ent("B2", 2, 4, 0.96),
		ent("C", 3, 3, 0.97),
		ent("N", 9, 9, 0.1),
	)
	plan := domain.NewPlan()
	plan.Record("A1", "B1", 1)
	plan.Record("A2", "C", 1)
	plan.Record("A3", "B2", 1)

	got := BuildLocationGraph(pop, target23, plan)

	want := domain.LocationGraph{
		Target: target23,
		Categories: map[domain.Position]domain.LocationCategory{
			{X: 2, Y: 3}: domain.CategoryTarget,
			{X: 2, Y: 4}: domain.CategoryDonor,
			{X: 3, Y: 3}: domain.CategoryDonor,
			{X: 9, Y: 9}: domain.CategoryNeutral,
		},
		Edges: []domain.Edge{
			{
				From: domain.Position{X: 2, Y: 4},
				To:   target23,
				Transfers: []domain.RelocationPair{
					{Replaced: "A1", Replacement: "B1"},
					{Replaced: "A3", Replacement: "B2"},
				},
			},
			{
				From:      domain.Position{X: 3, Y: 3},
				To:        target23,
				Transfers: []domain.RelocationPair{{Replaced: "A2", Replacement: "C"}},
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("BuildLocationGraph mismatch (-want +got):\n%s", diff)
	}
	if label := got.Edges[0].Label(); label != "B1 → A1 B2 → A3" {
		t.Fatalf("edge label = %q", label)
	}
}

func TestBuildLocationGraphEmptyPlan(t *testing.T) {
	pop := population(ent("A", 2, 3, 0.99), ent("B", 0, 0, 0.5))

	got := BuildLocationGraph(pop, target23, domain.NewPlan())

	if len(got.Edges) != 0 {
		t.Fatalf("edges = %v, want none", got.Edges)
	}
	if got.Categories[domain.Position{X: 0, Y: 0}] != domain.CategoryNeutral {
		t.Fatalf("(0,0) should be neutral, got %q", got.Categories[domain.Position{X: 0, Y: 0}])
	}
	if got.Categories[target23] != domain.CategoryTarget {
		t.Fatalf("target should be categorised target")
	}
}

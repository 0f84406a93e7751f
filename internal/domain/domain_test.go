package domain

import (
	"errors"
	"math"
	"testing"
)

func TestSquaredDistance(t *testing.T) {
	cases := []struct {
		a, b Position
		want float64
	}{
		{Position{0, 0}, Position{2, 3}, 13},
		{Position{5, 5}, Position{2, 3}, 13},
		{Position{2, 3}, Position{2, 3}, 0},
		{Position{-1, -1}, Position{1, 1}, 8},
	}

	for _, c := range cases {
		if got := SquaredDistance(c.a, c.b); got != c.want {
			t.Errorf("SquaredDistance(%v, %v) = %g, want %g", c.a, c.b, got, c.want)
		}
		if got := SquaredDistance(c.b, c.a); got != c.want {
			t.Errorf("SquaredDistance(%v, %v) not symmetric: %g", c.b, c.a, got)
		}
	}
}

func TestEntityValidate(t *testing.T) {
	cases := []struct {
		name    string
		entity  Entity
		wantErr bool
	}{
		{"ok", Entity{ID: "A", Position: Position{1, 2}, Health: 0.5}, false},
		{"health above one is allowed", Entity{ID: "A", Health: 1.7}, false},
		{"empty id", Entity{Health: 0.5}, true},
		{"nan x", Entity{ID: "A", Position: Position{math.NaN(), 0}}, true},
		{"inf health", Entity{ID: "A", Health: math.Inf(1)}, true},
	}

	for _, c := range cases {
		err := c.entity.Validate()
		if (err != nil) != c.wantErr {
			t.Fatalf("%s: err = %v, wantErr %v", c.name, err, c.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidEntity) {
			t.Fatalf("%s: err %v does not wrap ErrInvalidEntity", c.name, err)
		}
	}
}

func TestPopulationValidateReportsOffendingID(t *testing.T) {
	pop := Population{
		"A": {ID: "A", Position: Position{0, 0}, Health: 1},
		"B": {ID: "B", Position: Position{0, math.Inf(-1)}, Health: 1},
	}

	err := pop.Validate()
	var ie *InvalidEntityError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InvalidEntityError, got %v", err)
	}
	if ie.ID != "B" {
		t.Fatalf("offending id = %q, want %q", ie.ID, "B")
	}
}

func TestPopulationValidateKeyMismatch(t *testing.T) {
	pop := Population{"A": {ID: "Z", Health: 1}}
	if err := pop.Validate(); !errors.Is(err, ErrInvalidEntity) {
		t.Fatalf("expected invalid entity error, got %v", err)
	}
}

func TestPopulationLocationsDistinctAndOrdered(t *testing.T) {
	pop := Population{
		"A": {ID: "A", Position: Position{2, 3}},
		"B": {ID: "B", Position: Position{0, 0}},
		"C": {ID: "C", Position: Position{2, 3}},
		"D": {ID: "D", Position: Position{2, 1}},
	}

	got := pop.Locations()
	want := []Position{{0, 0}, {2, 1}, {2, 3}}
	if len(got) != len(want) {
		t.Fatalf("locations = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("locations[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPlanRecordAccumulates(t *testing.T) {
	plan := NewPlan()
	plan.Record("A", "B", 13)
	plan.Record("C", "D", 2)

	if len(plan.Pairs) != 2 {
		t.Fatalf("pairs = %d, want 2", len(plan.Pairs))
	}
	if plan.Pairs[0] != (RelocationPair{Replaced: "A", Replacement: "B"}) {
		t.Fatalf("first pair = %+v", plan.Pairs[0])
	}
	if plan.TotalCost != 15 {
		t.Fatalf("total cost = %g, want 15", plan.TotalCost)
	}
	if !plan.Complete() {
		t.Fatalf("plan without unreplaced entities should be complete")
	}
}

func TestEdgeLabel(t *testing.T) {
	e := Edge{Transfers: []RelocationPair{{Replaced: "A", Replacement: "B"}, {Replaced: "C", Replacement: "D"}}}
	if got, want := e.Label(), "B → A D → C"; got != want {
		t.Fatalf("label = %q, want %q", got, want)
	}
}

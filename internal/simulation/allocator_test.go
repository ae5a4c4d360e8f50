package simulation

import (
	"testing"

	"backlog-mcp/internal/backlog"
)

func pendingItem(id string, pr backlog.Priority, cx backlog.Complexity, age, created int) *backlog.Item {
	return &backlog.Item{
		ID:         id,
		Priority:   pr,
		Complexity: cx,
		Status:     backlog.StatusPending,
		AgeDays:    age,
		CreatedOn:  created,
	}
}

func selectedIDs(a Allocation) []string {
	ids := make([]string, len(a.Selected))
	for i, it := range a.Selected {
		ids[i] = it.ID
	}
	return ids
}

func TestAllocateOrdersByPriorityThenAge(t *testing.T) {
	pending := []*backlog.Item{
		pendingItem("a", backlog.PriorityLow, backlog.ComplexityTrivial, 9, 0),
		pendingItem("b", backlog.PriorityCritical, backlog.ComplexityTrivial, 1, 3),
		pendingItem("c", backlog.PriorityHigh, backlog.ComplexityTrivial, 2, 2),
		pendingItem("d", backlog.PriorityHigh, backlog.ComplexityTrivial, 6, 1),
	}
	alloc := Allocate(pending, 3, nil, 1)
	want := []string{"b", "d", "c"}
	got := selectedIDs(alloc)
	if len(got) != len(want) {
		t.Fatalf("Selected %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Selected %v, want %v", got, want)
		}
	}
}

func TestAllocateBreaksTiesDeterministically(t *testing.T) {
	pending := []*backlog.Item{
		pendingItem("itm-00002", backlog.PriorityMedium, backlog.ComplexityTrivial, 3, 1),
		pendingItem("itm-00001", backlog.PriorityMedium, backlog.ComplexityTrivial, 3, 1),
	}
	alloc := Allocate(pending, 1, nil, 1)
	if alloc.Selected[0].ID != "itm-00001" {
		t.Errorf("Tie-break picked %s, want itm-00001", alloc.Selected[0].ID)
	}
}

func TestAllocateOvershootsByAtMostOneItem(t *testing.T) {
	pending := []*backlog.Item{
		pendingItem("a", backlog.PriorityHigh, backlog.ComplexityComplex, 5, 0),
		pendingItem("b", backlog.PriorityHigh, backlog.ComplexityComplex, 4, 0),
		pendingItem("c", backlog.PriorityHigh, backlog.ComplexityComplex, 3, 0),
	}
	// 10 hours against 8-hour items: the second item starts while budget
	// remains and finishes it, the third never starts.
	alloc := Allocate(pending, 10, nil, 1)
	if len(alloc.Selected) != 2 {
		t.Fatalf("Selected %d items, want 2", len(alloc.Selected))
	}
	if alloc.ConsumedHours != 16 {
		t.Errorf("ConsumedHours = %v, want 16", alloc.ConsumedHours)
	}
}

func TestAllocateRespectsMaxItems(t *testing.T) {
	pending := []*backlog.Item{
		pendingItem("a", backlog.PriorityHigh, backlog.ComplexityTrivial, 3, 0),
		pendingItem("b", backlog.PriorityHigh, backlog.ComplexityTrivial, 2, 0),
		pendingItem("c", backlog.PriorityHigh, backlog.ComplexityTrivial, 1, 0),
	}
	max := 2
	alloc := Allocate(pending, 100, &max, 1)
	if len(alloc.Selected) != 2 {
		t.Errorf("Selected %d items, want 2 under max_items", len(alloc.Selected))
	}
}

func TestAllocateAppliesProductivityModifier(t *testing.T) {
	pending := []*backlog.Item{
		pendingItem("a", backlog.PriorityHigh, backlog.ComplexityStandard, 3, 0),
		pendingItem("b", backlog.PriorityHigh, backlog.ComplexityStandard, 2, 0),
	}
	// 8 hours at half productivity buys 4 effective hours: an hour is
	// still left after the first 3-hour item, so the second starts too.
	alloc := Allocate(pending, 8, nil, 0.5)
	if len(alloc.Selected) != 2 {
		t.Errorf("Selected %d items, want 2", len(alloc.Selected))
	}
	alloc = Allocate(pending, 6, nil, 0.5)
	if len(alloc.Selected) != 1 {
		t.Errorf("Selected %d items at 3 effective hours, want 1", len(alloc.Selected))
	}
}

func TestAllocateEmptyInputs(t *testing.T) {
	if got := Allocate(nil, 10, nil, 1); len(got.Selected) != 0 {
		t.Errorf("Allocate(nil) selected %d items", len(got.Selected))
	}
	pending := []*backlog.Item{pendingItem("a", backlog.PriorityLow, backlog.ComplexityTrivial, 0, 0)}
	if got := Allocate(pending, 0, nil, 1); len(got.Selected) != 0 {
		t.Errorf("Zero capacity selected %d items", len(got.Selected))
	}
	if got := Allocate(pending, 10, nil, 0); len(got.Selected) != 0 {
		t.Errorf("Zero productivity selected %d items", len(got.Selected))
	}
}

func TestAllocateDoesNotMutateInputOrder(t *testing.T) {
	pending := []*backlog.Item{
		pendingItem("a", backlog.PriorityLow, backlog.ComplexityTrivial, 0, 0),
		pendingItem("b", backlog.PriorityCritical, backlog.ComplexityTrivial, 0, 0),
	}
	Allocate(pending, 10, nil, 1)
	if pending[0].ID != "a" || pending[1].ID != "b" {
		t.Error("Allocate reordered the caller's slice")
	}
}

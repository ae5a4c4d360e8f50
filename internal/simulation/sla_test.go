package simulation

import (
	"testing"

	"backlog-mcp/internal/backlog"
)

func dueItem(id string, due int) *backlog.Item {
	it := pendingItem(id, backlog.PriorityMedium, backlog.ComplexityStandard, 0, 0)
	it.DueDay = due
	return it
}

func TestScanBreachesMarksOnlyPastDue(t *testing.T) {
	var tracker slaTracker
	pending := []*backlog.Item{
		dueItem("past", 3),
		dueItem("due-today", 5),
		dueItem("future", 9),
	}
	newly := tracker.ScanBreaches(pending, 5)
	if len(newly) != 1 || newly[0].ID != "past" {
		t.Fatalf("ScanBreaches returned %d items, want exactly [past]", len(newly))
	}
	if !pending[0].Breached {
		t.Error("Past-due item not marked breached")
	}
	if pending[1].Breached || pending[2].Breached {
		t.Error("Item at or before its due day must not breach")
	}
}

func TestScanBreachesIsIdempotent(t *testing.T) {
	var tracker slaTracker
	pending := []*backlog.Item{dueItem("a", 1)}

	if got := tracker.ScanBreaches(pending, 3); len(got) != 1 {
		t.Fatalf("First scan returned %d, want 1", len(got))
	}
	if got := tracker.ScanBreaches(pending, 4); len(got) != 0 {
		t.Errorf("Second scan returned %d, want 0: breach fires once", len(got))
	}
	if tracker.totalBreachedItems != 1 {
		t.Errorf("totalBreachedItems = %d, want 1", tracker.totalBreachedItems)
	}
}

func TestAccrueCost(t *testing.T) {
	profile := backlog.Profile{SLAPenaltyPerDay: 10, CustomerSatisfactionImpact: -0.5}
	var tracker slaTracker

	a, b := dueItem("a", 0), dueItem("b", 0)
	a.Breached, b.Breached = true, true
	pending := []*backlog.Item{a, b}

	penalty, satisfaction := tracker.AccrueCost(pending, 2, &profile)
	if penalty != 20 {
		t.Errorf("Day 1 penalty = %v, want 20", penalty)
	}
	if satisfaction != -1 {
		t.Errorf("Day 1 satisfaction = %v, want -1", satisfaction)
	}

	// Next day, no new breaches: penalty repeats, satisfaction does not.
	penalty, satisfaction = tracker.AccrueCost(pending, 0, &profile)
	if penalty != 20 {
		t.Errorf("Day 2 penalty = %v, want 20", penalty)
	}
	if satisfaction != 0 {
		t.Errorf("Day 2 satisfaction = %v, want 0", satisfaction)
	}
	if tracker.totalPenalty != 40 {
		t.Errorf("totalPenalty = %v, want 40", tracker.totalPenalty)
	}
	if tracker.totalSatisfaction != -1 {
		t.Errorf("totalSatisfaction = %v, want -1", tracker.totalSatisfaction)
	}
}

func TestAccrueCostSkipsSettledItems(t *testing.T) {
	profile := backlog.Profile{SLAPenaltyPerDay: 10}
	var tracker slaTracker

	resolved := dueItem("resolved", 0)
	resolved.Breached = true
	if err := resolved.Transition(backlog.StatusResolved, 2); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	penalty, _ := tracker.AccrueCost([]*backlog.Item{resolved}, 0, &profile)
	if penalty != 0 {
		t.Errorf("Penalty = %v, want 0 for settled breached item", penalty)
	}
}

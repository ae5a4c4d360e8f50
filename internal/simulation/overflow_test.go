package simulation

import (
	"testing"

	"backlog-mcp/internal/backlog"
)

func TestSelectExcessPicksLowestPriorityNewest(t *testing.T) {
	pending := []*backlog.Item{
		pendingItem("old-critical", backlog.PriorityCritical, backlog.ComplexityStandard, 9, 0),
		pendingItem("fresh-low", backlog.PriorityLow, backlog.ComplexityTrivial, 0, 8),
		pendingItem("aged-low", backlog.PriorityLow, backlog.ComplexityTrivial, 6, 2),
		pendingItem("fresh-medium", backlog.PriorityMedium, backlog.ComplexityStandard, 0, 8),
	}
	excess := selectExcess(pending, 2)
	if len(excess) != 2 {
		t.Fatalf("Selected %d items, want 2", len(excess))
	}
	if excess[0].ID != "fresh-low" || excess[1].ID != "aged-low" {
		t.Errorf("Excess = [%s %s], want [fresh-low aged-low]", excess[0].ID, excess[1].ID)
	}
}

func TestSelectExcessClampsCount(t *testing.T) {
	pending := []*backlog.Item{pendingItem("a", backlog.PriorityLow, backlog.ComplexityTrivial, 0, 0)}
	if got := selectExcess(pending, 5); len(got) != 1 {
		t.Errorf("Selected %d items, want 1", len(got))
	}
	if got := selectExcess(pending, 0); got != nil {
		t.Errorf("Expected nil for zero count, got %d items", len(got))
	}
}

func TestOverflowResolverStrategies(t *testing.T) {
	cases := []struct {
		strategy backlog.OverflowStrategy
		check    func(t *testing.T, out OverflowOutcome, items []*backlog.Item)
	}{
		{backlog.OverflowReject, func(t *testing.T, out OverflowOutcome, items []*backlog.Item) {
			if out.Rejected != 2 {
				t.Errorf("Rejected = %d, want 2", out.Rejected)
			}
			for _, it := range items {
				if it.Status != backlog.StatusRejected {
					t.Errorf("Item %s status = %s, want rejected", it.ID, it.Status)
				}
			}
		}},
		{backlog.OverflowDefer, func(t *testing.T, out OverflowOutcome, items []*backlog.Item) {
			if out.Deferred != 2 {
				t.Errorf("Deferred = %d, want 2", out.Deferred)
			}
			for _, it := range items {
				if it.Status != backlog.StatusPending {
					t.Errorf("Item %s status = %s, want pending", it.ID, it.Status)
				}
			}
		}},
		{backlog.OverflowEscalate, func(t *testing.T, out OverflowOutcome, items []*backlog.Item) {
			if out.Escalated != 2 {
				t.Errorf("Escalated = %d, want 2", out.Escalated)
			}
			for _, it := range items {
				if it.Priority != backlog.PriorityMedium {
					t.Errorf("Item %s priority = %s, want medium", it.ID, it.Priority)
				}
				if it.Status != backlog.StatusPending {
					t.Errorf("Item %s status = %s, want pending", it.ID, it.Status)
				}
			}
		}},
		{backlog.OverflowOutsource, func(t *testing.T, out OverflowOutcome, items []*backlog.Item) {
			if out.Outsourced != 2 {
				t.Errorf("Outsourced = %d, want 2", out.Outsourced)
			}
			if out.OutsourcedHours != 2 {
				t.Errorf("OutsourcedHours = %v, want 2", out.OutsourcedHours)
			}
			for _, it := range items {
				if it.Status != backlog.StatusOutsourced {
					t.Errorf("Item %s status = %s, want outsourced", it.ID, it.Status)
				}
				if it.ResolvedOn == nil || *it.ResolvedOn != 3 {
					t.Errorf("Item %s resolved_on = %v, want 3", it.ID, it.ResolvedOn)
				}
			}
		}},
	}

	for _, c := range cases {
		t.Run(string(c.strategy), func(t *testing.T) {
			p := backlog.Profile{OverflowStrategy: c.strategy}
			resolver, err := newOverflowResolver(&p)
			if err != nil {
				t.Fatalf("newOverflowResolver failed: %v", err)
			}
			items := []*backlog.Item{
				pendingItem("x", backlog.PriorityLow, backlog.ComplexityTrivial, 1, 0),
				pendingItem("y", backlog.PriorityLow, backlog.ComplexityTrivial, 0, 1),
			}
			out, err := resolver.Apply(items, 3)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			c.check(t, out, items)
		})
	}
}

func TestOverflowEscalateUsesRecoveryBoost(t *testing.T) {
	p := backlog.Profile{OverflowStrategy: backlog.OverflowEscalate, RecoveryPriorityBoost: 2}
	resolver, err := newOverflowResolver(&p)
	if err != nil {
		t.Fatalf("newOverflowResolver failed: %v", err)
	}
	items := []*backlog.Item{pendingItem("x", backlog.PriorityLow, backlog.ComplexityTrivial, 0, 0)}
	if _, err := resolver.Apply(items, 0); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if items[0].Priority != backlog.PriorityHigh {
		t.Errorf("Priority = %s, want high after boost of 2", items[0].Priority)
	}
}

func TestNewOverflowResolverRejectsUnknownStrategy(t *testing.T) {
	p := backlog.Profile{OverflowStrategy: "shred"}
	if _, err := newOverflowResolver(&p); err == nil {
		t.Fatal("Expected error for unknown strategy")
	}
}

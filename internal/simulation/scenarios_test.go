package simulation

import (
	"context"
	"encoding/json"
	"testing"

	"backlog-mcp/internal/backlog"
)

func TestQuickScenariosComparesFourPresets(t *testing.T) {
	res, err := QuickScenarios(context.Background(), OrganizationContext{}, 10, 99)
	if err != nil {
		t.Fatalf("QuickScenarios failed: %v", err)
	}
	if res.HorizonDays != 10 {
		t.Errorf("HorizonDays = %d, want 10", res.HorizonDays)
	}
	if len(res.Comparisons) != 4 {
		t.Fatalf("Got %d comparisons, want 4", len(res.Comparisons))
	}

	wantOrder := []string{"standard", "high-volume", "recovery", "strict-sla"}
	for i, cmp := range res.Comparisons {
		if cmp.Name != wantOrder[i] {
			t.Errorf("Comparison %d = %q, want %q", i, cmp.Name, wantOrder[i])
		}
		if cmp.Summary.TotalCreated == 0 {
			t.Errorf("Comparison %q has empty summary", cmp.Name)
		}
	}

	// Presets shape their own workloads: high-volume sees double arrivals,
	// recovery starts from a tripled backlog.
	std := res.Comparisons[0].Summary
	hv := res.Comparisons[1].Summary
	rec := res.Comparisons[2].Summary
	if hv.TotalCreated <= std.TotalCreated {
		t.Errorf("High-volume created %d items, want more than standard's %d", hv.TotalCreated, std.TotalCreated)
	}
	if rec.TotalCreated-std.TotalCreated != 40 {
		t.Errorf("Recovery created %d items, want standard's %d plus 40 extra initial", rec.TotalCreated, std.TotalCreated)
	}
}

func TestQuickScenariosDefaultsHorizon(t *testing.T) {
	res, err := QuickScenarios(context.Background(), OrganizationContext{}, 0, 1)
	if err != nil {
		t.Fatalf("QuickScenarios failed: %v", err)
	}
	if res.HorizonDays != DefaultHorizonDays {
		t.Errorf("HorizonDays = %d, want %d", res.HorizonDays, DefaultHorizonDays)
	}
}

func TestQuickScenariosDeterministic(t *testing.T) {
	org := OrganizationContext{
		DailyCapacityHours: 24,
		StaffCount:         3,
		DailyArrivals: []backlog.DemandEntry{
			{Priority: backlog.PriorityMedium, Complexity: backlog.ComplexityStandard, Count: 4},
		},
		InitialPending: 10,
	}
	first, err := QuickScenarios(context.Background(), org, 12, 5)
	if err != nil {
		t.Fatalf("First call failed: %v", err)
	}
	second, err := QuickScenarios(context.Background(), org, 12, 5)
	if err != nil {
		t.Fatalf("Second call failed: %v", err)
	}
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Error("Concurrent preset runs diverged across identical calls")
	}
}

func TestQuickScenariosHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := QuickScenarios(ctx, OrganizationContext{}, 10, 1); err == nil {
		t.Fatal("Expected cancelled comparison to fail")
	}
}

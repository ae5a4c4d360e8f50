package simulation

import (
	"testing"

	"backlog-mcp/internal/backlog"
)

func TestMaybeEscalate(t *testing.T) {
	cases := []struct {
		name      string
		priority  backlog.Priority
		age       int
		lastEsc   int
		threshold int
		want      backlog.Priority
		escalated bool
	}{
		{"below threshold", backlog.PriorityLow, 1, 0, 2, backlog.PriorityLow, false},
		{"at threshold", backlog.PriorityLow, 2, 0, 2, backlog.PriorityMedium, true},
		{"past threshold", backlog.PriorityMedium, 5, 0, 2, backlog.PriorityHigh, true},
		{"window re-armed", backlog.PriorityMedium, 3, 2, 2, backlog.PriorityMedium, false},
		{"second window complete", backlog.PriorityMedium, 4, 2, 2, backlog.PriorityHigh, true},
		{"critical ceiling", backlog.PriorityCritical, 100, 0, 2, backlog.PriorityCritical, false},
	}
	for _, c := range cases {
		got, ok := MaybeEscalate(c.priority, c.age, c.lastEsc, c.threshold)
		if got != c.want || ok != c.escalated {
			t.Errorf("%s: MaybeEscalate(%s, age=%d, last=%d, threshold=%d) = (%s, %v), want (%s, %v)",
				c.name, c.priority, c.age, c.lastEsc, c.threshold, got, ok, c.want, c.escalated)
		}
	}
}

func TestMaybeEscalateOneLevelPerWindow(t *testing.T) {
	// Walk an item's ages day by day and verify it climbs exactly one
	// level each time a full window elapses, never skipping levels.
	priority := backlog.PriorityLow
	lastEsc := 0
	var history []backlog.Priority
	for age := 1; age <= 9; age++ {
		if next, ok := MaybeEscalate(priority, age, lastEsc, 3); ok {
			priority = next
			lastEsc = age
		}
		history = append(history, priority)
	}
	want := []backlog.Priority{
		backlog.PriorityLow, backlog.PriorityLow, backlog.PriorityMedium,
		backlog.PriorityMedium, backlog.PriorityMedium, backlog.PriorityHigh,
		backlog.PriorityHigh, backlog.PriorityHigh, backlog.PriorityCritical,
	}
	for i := range want {
		if history[i] != want[i] {
			t.Fatalf("Age %d: priority %s, want %s (history %v)", i+1, history[i], want[i], history)
		}
	}
}

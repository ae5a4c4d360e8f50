package simulation

import "backlog-mcp/internal/backlog"

// MaybeEscalate decides whether a pending item's priority should rise one
// level given its age. It is a pure decision; the caller applies the
// result. Items already at critical never escalate further, and each
// escalation re-arms the threshold window so an item climbs at most one
// level per window.
func MaybeEscalate(priority backlog.Priority, ageDays, lastEscalationAge, thresholdDays int) (backlog.Priority, bool) {
	if priority == backlog.PriorityCritical {
		return priority, false
	}
	if ageDays-lastEscalationAge < thresholdDays {
		return priority, false
	}
	return priority.Raise(1), true
}

package simulation

import (
	"sort"

	"backlog-mcp/internal/backlog"
)

// Allocation is the outcome of one day's capacity consumption.
type Allocation struct {
	Selected      []*backlog.Item
	ConsumedHours float64
}

// Allocate selects the pending items to resolve today. Candidates are
// ordered by priority descending, then age descending (oldest first within
// a band, preventing starvation), with creation day and ID as final
// tie-breaks so runs are reproducible. Selection walks the order greedily
// while capacity remains; it stops after an item exhausts the budget rather
// than splitting it, so consumed hours may overshoot by at most one item's
// cost. Any recovery multiplier is applied by the caller before this step;
// the allocator itself is policy-agnostic.
func Allocate(pending []*backlog.Item, capacityHours float64, maxItems *int, productivityModifier float64) Allocation {
	if len(pending) == 0 || capacityHours <= 0 || productivityModifier <= 0 {
		return Allocation{}
	}

	candidates := make([]*backlog.Item, len(pending))
	copy(candidates, pending)
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		if a.AgeDays != b.AgeDays {
			return a.AgeDays > b.AgeDays
		}
		if a.CreatedOn != b.CreatedOn {
			return a.CreatedOn < b.CreatedOn
		}
		return a.ID < b.ID
	})

	remaining := capacityHours * productivityModifier
	var alloc Allocation
	for _, it := range candidates {
		if remaining <= 0 {
			break
		}
		if maxItems != nil && len(alloc.Selected) >= *maxItems {
			break
		}
		cost := it.Complexity.EffortHours()
		alloc.Selected = append(alloc.Selected, it)
		alloc.ConsumedHours += cost
		remaining -= cost
	}
	return alloc
}

package simulation

import (
	"sort"

	"backlog-mcp/internal/backlog"
)

// OverflowOutcome counts what happened to the excess set on one day.
type OverflowOutcome struct {
	Rejected        int
	Outsourced      int
	Escalated       int
	Deferred        int
	OutsourcedHours float64
}

// overflowResolver applies the profile's configured strategy to the excess
// item set. The strategy set is closed; construction fails on an unknown
// strategy, so Apply never silently no-ops.
type overflowResolver struct {
	strategy backlog.OverflowStrategy
	boost    int
}

func newOverflowResolver(p *backlog.Profile) (*overflowResolver, error) {
	if !p.OverflowStrategy.IsValid() {
		return nil, backlog.NewConfigurationError("overflow_strategy", "unknown strategy %q", p.OverflowStrategy)
	}
	boost := p.RecoveryPriorityBoost
	if boost < 1 {
		boost = 1
	}
	return &overflowResolver{strategy: p.OverflowStrategy, boost: boost}, nil
}

// Apply routes the excess set through the active strategy.
func (r *overflowResolver) Apply(excess []*backlog.Item, day int) (OverflowOutcome, error) {
	var out OverflowOutcome
	switch r.strategy {
	case backlog.OverflowReject:
		for _, it := range excess {
			if err := it.Transition(backlog.StatusRejected, day); err != nil {
				return out, err
			}
			out.Rejected++
		}
	case backlog.OverflowDefer:
		// Excess items simply compete again tomorrow.
		out.Deferred = len(excess)
	case backlog.OverflowEscalate:
		for _, it := range excess {
			if it.Status != backlog.StatusPending {
				return out, &backlog.IllegalTransitionError{ItemID: it.ID, From: it.Status, To: it.Status, Message: "escalating non-pending item " + it.ID}
			}
			it.Priority = it.Priority.Raise(r.boost)
			out.Escalated++
		}
	case backlog.OverflowOutsource:
		for _, it := range excess {
			out.OutsourcedHours += it.Complexity.EffortHours()
			if err := it.Transition(backlog.StatusOutsourced, day); err != nil {
				return out, err
			}
			out.Outsourced++
		}
	}
	return out, nil
}

// selectExcess picks count items for overflow handling, lowest priority and
// newest first, protecting aged and high-priority work.
func selectExcess(pending []*backlog.Item, count int) []*backlog.Item {
	if count <= 0 || len(pending) == 0 {
		return nil
	}
	candidates := make([]*backlog.Item, len(pending))
	copy(candidates, pending)
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		if a.AgeDays != b.AgeDays {
			return a.AgeDays < b.AgeDays
		}
		if a.CreatedOn != b.CreatedOn {
			return a.CreatedOn > b.CreatedOn
		}
		return a.ID > b.ID
	})
	if count > len(candidates) {
		count = len(candidates)
	}
	return candidates[:count]
}

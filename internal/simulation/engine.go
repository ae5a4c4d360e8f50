package simulation

import (
	"context"
	"fmt"
	"math/rand"

	"backlog-mcp/internal/backlog"
)

// Input carries everything a single run depends on. A run is a pure
// function of its input; no shared mutable state crosses run boundaries.
type Input struct {
	Profile      backlog.Profile         `json:"profile"`
	InitialItems []backlog.Item          `json:"initial_items,omitempty"`
	Capacities   []backlog.DailyCapacity `json:"capacities"`
	Demands      []backlog.DailyDemand   `json:"demands"`
	StartDay     int                     `json:"start_day"`
	EndDay       int                     `json:"end_day"`
	Seed         int64                   `json:"seed"`

	// RecoveryWindow flags a day range as a recovery regime: capacity
	// hours are pre-multiplied by the profile's recovery multiplier before
	// allocation.
	RecoveryWindow *backlog.DayWindow `json:"recovery_window,omitempty"`
}

// Engine steps one simulation run day by day. Each engine owns its item
// set and seeded RNG for exactly one run; day N's output is a hard
// dependency of day N+1, so a run is strictly sequential.
type Engine struct {
	in       Input
	rng      *rand.Rand
	resolver *overflowResolver
	tracker  slaTracker
	items    []*backlog.Item
	seq      int
}

// NewEngine prepares a single-use engine for the given input.
func NewEngine(in Input) *Engine {
	return &Engine{in: in, rng: rand.New(rand.NewSource(in.Seed))}
}

// Run executes the full day loop and assembles the result. All validation
// happens before the first simulated day; a run either fully completes or
// fails without partial output. Cancellation is honoured between days,
// never mid-day, to preserve the conservation invariant.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if e.in.EndDay < e.in.StartDay {
		return nil, backlog.NewConfigurationError("end_day", "must be >= start_day (%d < %d)", e.in.EndDay, e.in.StartDay)
	}
	if err := e.in.Profile.Validate(); err != nil {
		return nil, err
	}

	capPlan, err := backlog.NewCapacityPlan(e.in.Capacities)
	if err != nil {
		return nil, err
	}
	if err := capPlan.Cover(e.in.StartDay, e.in.EndDay); err != nil {
		return nil, err
	}
	demPlan, err := backlog.NewDemandPlan(e.in.Demands)
	if err != nil {
		return nil, err
	}
	if err := demPlan.Cover(e.in.StartDay, e.in.EndDay); err != nil {
		return nil, err
	}

	resolver, err := newOverflowResolver(&e.in.Profile)
	if err != nil {
		return nil, err
	}
	e.resolver = resolver

	if err := e.seedInitialItems(); err != nil {
		return nil, err
	}

	snapshots := make([]Snapshot, 0, e.in.EndDay-e.in.StartDay+1)
	for day := e.in.StartDay; day <= e.in.EndDay; day++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run aborted before day %d: %w", day, err)
		}
		snap, err := e.step(day, capPlan[day], demPlan[day])
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}

	final := make([]backlog.Item, len(e.items))
	for i, it := range e.items {
		final[i] = *it
	}
	return &Result{
		Snapshots:  snapshots,
		FinalItems: final,
		Summary:    buildSummary(e.in.StartDay, e.in.EndDay, e.in.Seed, snapshots, e.items, &e.tracker),
	}, nil
}

// step executes the daily pipeline: age, escalate, decay, intake,
// overflow, SLA scan, resolution, snapshot.
func (e *Engine) step(day int, capacity backlog.DailyCapacity, demand backlog.DailyDemand) (Snapshot, error) {
	var tally dayTally

	// 1. Age every pending item.
	for _, it := range e.pending() {
		it.AgeDays++
	}

	// 2. Priority aging escalation.
	if e.in.Profile.AgingEnabled {
		for _, it := range e.pending() {
			if next, ok := MaybeEscalate(it.Priority, it.AgeDays, it.LastEscalationAge, e.in.Profile.AgingThresholdDays); ok {
				it.Priority = next
				it.LastEscalationAge = it.AgeDays
				tally.escalated++
			}
		}
	}

	// 3. Decay: a seeded pseudo-random subset of expected size
	// decay_rate x pending self-resolves without consuming capacity.
	if e.in.Profile.DecayRate > 0 {
		for _, it := range e.pending() {
			if e.rng.Float64() < e.in.Profile.DecayRate {
				if err := it.Transition(backlog.StatusDecayed, day); err != nil {
					return Snapshot{}, err
				}
				tally.decayed++
			}
		}
	}

	// 4. Intake from today's demand plan.
	for _, arrival := range demand.Arrivals {
		for i := 0; i < arrival.Count; i++ {
			e.seq++
			e.items = append(e.items, &backlog.Item{
				ID:         fmt.Sprintf("itm-%05d", e.seq),
				Priority:   arrival.Priority,
				Complexity: arrival.Complexity,
				Status:     backlog.StatusPending,
				CreatedOn:  day,
				DueDay:     day + e.in.Profile.SLAThresholdFor(arrival.Priority),
			})
			tally.intake++
		}
	}

	// 5. Overflow check against the backlog cap and the day's item cap.
	pend := e.pending()
	if excess := e.excessCount(len(pend), capacity.MaxItems); excess > 0 {
		outcome, err := e.resolver.Apply(selectExcess(pend, excess), day)
		if err != nil {
			return Snapshot{}, err
		}
		tally.rejected += outcome.Rejected
		tally.outsourced += outcome.Outsourced
		tally.escalated += outcome.Escalated
		tally.outsourcedCost += outcome.OutsourcedHours
	}

	// 6. SLA breach scan and cost accrual.
	pend = e.pending()
	newly := e.tracker.ScanBreaches(pend, day)
	tally.breached = len(newly)
	e.tracker.AccrueCost(pend, len(newly), &e.in.Profile)

	// 7. Resolution under today's effective capacity.
	hours := capacity.CapacityHours
	if e.in.RecoveryWindow != nil && e.in.RecoveryWindow.Contains(day) {
		hours *= e.in.Profile.RecoveryRateMultiplier
	}
	tally.effectiveHours = hours * capacity.EffectiveModifier()
	alloc := Allocate(e.pending(), hours, capacity.MaxItems, capacity.EffectiveModifier())
	for _, it := range alloc.Selected {
		if err := it.Transition(backlog.StatusResolved, day); err != nil {
			return Snapshot{}, err
		}
		tally.resolved++
	}
	tally.consumedHours = alloc.ConsumedHours

	// 8. Snapshot and conservation check.
	if err := e.checkConservation(day); err != nil {
		return Snapshot{}, err
	}
	return buildSnapshot(day, e.items, tally, &e.tracker), nil
}

func (e *Engine) pending() []*backlog.Item {
	out := make([]*backlog.Item, 0, len(e.items))
	for _, it := range e.items {
		if it.Status == backlog.StatusPending {
			out = append(out, it)
		}
	}
	return out
}

// excessCount returns how many pending items exceed the tightest configured
// cap. Zero caps set means no overflow handling ever triggers.
func (e *Engine) excessCount(pendingCount int, maxItems *int) int {
	limit := -1
	if e.in.Profile.MaxBacklogCapacity != nil {
		limit = *e.in.Profile.MaxBacklogCapacity
	}
	if maxItems != nil && (limit < 0 || *maxItems < limit) {
		limit = *maxItems
	}
	if limit < 0 || pendingCount <= limit {
		return 0
	}
	return pendingCount - limit
}

// checkConservation verifies that every item ever created is accounted for
// by exactly one status. A mismatch is an engine bug.
func (e *Engine) checkConservation(day int) error {
	counts := make(map[backlog.Status]int)
	for _, it := range e.items {
		counts[it.Status]++
	}
	total := counts[backlog.StatusPending] + counts[backlog.StatusResolved] +
		counts[backlog.StatusRejected] + counts[backlog.StatusOutsourced] +
		counts[backlog.StatusDecayed]
	if total != len(e.items) {
		return &backlog.IllegalTransitionError{
			Message: fmt.Sprintf("conservation violated on day %d: %d items in known statuses, %d created", day, total, len(e.items)),
		}
	}
	return nil
}

// seedInitialItems copies and normalizes the caller-supplied initial
// backlog: IDs are assigned when empty, created-on is back-dated from age,
// and due days derive from the profile's SLA threshold at creation.
func (e *Engine) seedInitialItems() error {
	for _, src := range e.in.InitialItems {
		it := src
		if it.Status == "" {
			it.Status = backlog.StatusPending
		}
		if it.Status != backlog.StatusPending {
			return backlog.NewConfigurationError("initial_items", "item %q must be pending, got %q", it.ID, it.Status)
		}
		if !it.Priority.IsValid() {
			return backlog.NewConfigurationError("initial_items", "item %q has unknown priority %q", it.ID, it.Priority)
		}
		if !it.Complexity.IsValid() {
			return backlog.NewConfigurationError("initial_items", "item %q has unknown complexity %q", it.ID, it.Complexity)
		}
		if it.AgeDays < 0 {
			return backlog.NewConfigurationError("initial_items", "item %q age_days must be >= 0, got %d", it.ID, it.AgeDays)
		}
		if it.ID == "" {
			e.seq++
			it.ID = fmt.Sprintf("itm-%05d", e.seq)
		}
		if it.CreatedOn == 0 {
			it.CreatedOn = e.in.StartDay - it.AgeDays
		}
		if it.DueDay == 0 {
			it.DueDay = it.CreatedOn + e.in.Profile.SLAThresholdFor(it.Priority)
		}
		e.items = append(e.items, &it)
	}
	return nil
}

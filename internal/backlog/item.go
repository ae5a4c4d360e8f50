package backlog

import "fmt"

// Priority is the urgency band of a backlog item. Higher priorities win
// capacity first during allocation.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// priorityRank orders priorities for allocation and escalation. Critical is
// the ceiling; escalation never moves past it.
var priorityRank = map[Priority]int{
	PriorityLow:      0,
	PriorityMedium:   1,
	PriorityHigh:     2,
	PriorityCritical: 3,
}

var rankPriority = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Priorities lists all known priorities from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// Rank returns the numeric ordering of a priority (low=0 .. critical=3).
func (p Priority) Rank() int {
	return priorityRank[p]
}

// IsValid reports whether p is one of the known priority bands.
func (p Priority) IsValid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Raise returns the priority levels steps above p, capped at critical.
// Raising by zero or from critical is a no-op.
func (p Priority) Raise(levels int) Priority {
	r := priorityRank[p] + levels
	if r >= len(rankPriority) {
		r = len(rankPriority) - 1
	}
	if r < priorityRank[p] {
		return p
	}
	return rankPriority[r]
}

// Complexity is the sizing band of a backlog item. It maps to a fixed
// effort-hours cost consumed during allocation.
type Complexity string

const (
	ComplexityTrivial  Complexity = "trivial"
	ComplexityStandard Complexity = "standard"
	ComplexityComplex  Complexity = "complex"
)

var effortHours = map[Complexity]float64{
	ComplexityTrivial:  1,
	ComplexityStandard: 3,
	ComplexityComplex:  8,
}

// EffortHours returns the capacity cost of resolving an item of this
// complexity.
func (c Complexity) EffortHours() float64 {
	return effortHours[c]
}

// IsValid reports whether c is one of the known complexity bands.
func (c Complexity) IsValid() bool {
	_, ok := effortHours[c]
	return ok
}

// Status is the lifecycle state of a backlog item. Pending is the only
// non-terminal state; every item takes exactly one terminal transition.
type Status string

const (
	StatusPending    Status = "pending"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
	StatusOutsourced Status = "outsourced"
	StatusDecayed    Status = "decayed"
)

// IsTerminal reports whether the status ends an item's lifecycle.
func (s Status) IsTerminal() bool {
	return s != StatusPending
}

// Item is one unit of unresolved work moving through the simulation. The
// engine owns all items for the duration of a run; once an item leaves
// pending it is frozen and excluded from further day processing.
type Item struct {
	ID         string     `json:"id"`
	Priority   Priority   `json:"priority"`
	Complexity Complexity `json:"complexity"`
	Status     Status     `json:"status"`
	CreatedOn  int        `json:"created_on"`
	AgeDays    int        `json:"age_days"`
	DueDay     int        `json:"due_day"`
	Breached   bool       `json:"breached"`
	ResolvedOn *int       `json:"resolved_on,omitempty"`

	// LastEscalationAge re-arms the aging window after each priority bump
	// so an item climbs at most one level per threshold window.
	LastEscalationAge int `json:"-"`
}

// Transition moves the item into a terminal status on the given day.
// Attempting to transition an item that already left pending is an engine
// bug and surfaces as an IllegalTransitionError.
func (it *Item) Transition(to Status, day int) error {
	if it.Status != StatusPending {
		return &IllegalTransitionError{ItemID: it.ID, From: it.Status, To: to}
	}
	if !to.IsTerminal() {
		return &IllegalTransitionError{ItemID: it.ID, From: it.Status, To: to}
	}
	it.Status = to
	if to == StatusResolved || to == StatusOutsourced {
		d := day
		it.ResolvedOn = &d
	}
	return nil
}

func (it *Item) String() string {
	return fmt.Sprintf("%s[%s/%s %s age=%d due=%d]", it.ID, it.Priority, it.Complexity, it.Status, it.AgeDays, it.DueDay)
}

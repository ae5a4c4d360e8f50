package backlog

// DailyCapacity is the resolution capacity available on one simulated day.
// ProductivityModifier is supplied by an external variance estimator; the
// engine treats it as an opaque multiplier and defaults it to 1.0.
type DailyCapacity struct {
	Day                  int     `json:"day"`
	CapacityHours        float64 `json:"capacity_hours"`
	StaffCount           int     `json:"staff_count"`
	MaxItems             *int    `json:"max_items,omitempty"`
	ProductivityModifier float64 `json:"productivity_modifier,omitempty"`
}

// EffectiveModifier returns the productivity modifier with the 1.0 default
// applied.
func (c DailyCapacity) EffectiveModifier() float64 {
	if c.ProductivityModifier == 0 {
		return 1.0
	}
	return c.ProductivityModifier
}

// DemandEntry describes a batch of identical arrivals.
type DemandEntry struct {
	Priority   Priority   `json:"priority"`
	Complexity Complexity `json:"complexity"`
	Count      int        `json:"count"`
}

// DailyDemand lists the new item arrivals for one simulated day.
type DailyDemand struct {
	Day      int           `json:"day"`
	Arrivals []DemandEntry `json:"arrivals"`
}

// DayWindow marks an inclusive range of days, used to flag a recovery
// regime where capacity is boosted by the profile's recovery multiplier.
type DayWindow struct {
	From  int `json:"from"`
	Until int `json:"until"`
}

// Contains reports whether day falls inside the window.
func (w DayWindow) Contains(day int) bool {
	return day >= w.From && day <= w.Until
}

// CapacityPlan indexes daily capacities by day and validates coverage.
type CapacityPlan map[int]DailyCapacity

// NewCapacityPlan builds a plan from the given entries, rejecting duplicate
// and non-positive capacity days.
func NewCapacityPlan(entries []DailyCapacity) (CapacityPlan, error) {
	plan := make(CapacityPlan, len(entries))
	for _, c := range entries {
		if _, dup := plan[c.Day]; dup {
			return nil, NewConfigurationError("capacities", "duplicate capacity entry for day %d", c.Day)
		}
		if c.CapacityHours < 0 {
			return nil, NewConfigurationError("capacities", "day %d capacity_hours must be >= 0, got %v", c.Day, c.CapacityHours)
		}
		if c.ProductivityModifier < 0 {
			return nil, NewConfigurationError("capacities", "day %d productivity_modifier must be >= 0, got %v", c.Day, c.ProductivityModifier)
		}
		if c.MaxItems != nil && *c.MaxItems < 0 {
			return nil, NewConfigurationError("capacities", "day %d max_items must be >= 0, got %d", c.Day, *c.MaxItems)
		}
		plan[c.Day] = c
	}
	return plan, nil
}

// Cover verifies the plan has an entry for every day in [start, end].
// Missing days fail explicitly; a silently zero capacity day is a policy
// decision the caller must spell out.
func (p CapacityPlan) Cover(start, end int) error {
	for day := start; day <= end; day++ {
		if _, ok := p[day]; !ok {
			return NewConfigurationError("capacities", "no capacity entry for day %d", day)
		}
	}
	return nil
}

// DemandPlan indexes daily demands by day and validates coverage. A day
// with no arrivals still needs an explicit (possibly empty) entry.
type DemandPlan map[int]DailyDemand

// NewDemandPlan builds a plan from the given entries, validating enum
// values and counts.
func NewDemandPlan(entries []DailyDemand) (DemandPlan, error) {
	plan := make(DemandPlan, len(entries))
	for _, d := range entries {
		if _, dup := plan[d.Day]; dup {
			return nil, NewConfigurationError("demands", "duplicate demand entry for day %d", d.Day)
		}
		for _, a := range d.Arrivals {
			if !a.Priority.IsValid() {
				return nil, NewConfigurationError("demands", "day %d: unknown priority %q", d.Day, a.Priority)
			}
			if !a.Complexity.IsValid() {
				return nil, NewConfigurationError("demands", "day %d: unknown complexity %q", d.Day, a.Complexity)
			}
			if a.Count < 0 {
				return nil, NewConfigurationError("demands", "day %d: count must be >= 0, got %d", d.Day, a.Count)
			}
		}
		plan[d.Day] = d
	}
	return plan, nil
}

// Cover verifies the plan has an entry for every day in [start, end].
func (p DemandPlan) Cover(start, end int) error {
	for day := start; day <= end; day++ {
		if _, ok := p[day]; !ok {
			return NewConfigurationError("demands", "no demand entry for day %d", day)
		}
	}
	return nil
}

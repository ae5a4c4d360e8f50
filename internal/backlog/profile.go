package backlog

// OverflowStrategy selects the policy applied to excess items when pending
// work exceeds the configured backlog or item caps. Exactly one strategy is
// active per profile.
type OverflowStrategy string

const (
	// OverflowReject drops excess items outright; they never enter
	// allocation.
	OverflowReject OverflowStrategy = "reject"
	// OverflowDefer leaves excess items pending; they compete again the
	// next day. This is the default and safest choice.
	OverflowDefer OverflowStrategy = "defer"
	// OverflowEscalate bumps excess items' priority so they win capacity
	// sooner, without resolving them today.
	OverflowEscalate OverflowStrategy = "escalate"
	// OverflowOutsource resolves excess items through external capacity at
	// an implicit cost, consuming no internal hours.
	OverflowOutsource OverflowStrategy = "outsource"
)

var overflowStrategies = map[OverflowStrategy]bool{
	OverflowReject:    true,
	OverflowDefer:     true,
	OverflowEscalate:  true,
	OverflowOutsource: true,
}

// IsValid reports whether s is one of the four known strategies.
func (s OverflowStrategy) IsValid() bool {
	return overflowStrategies[s]
}

// StrategyInfo is static metadata describing an overflow strategy.
type StrategyInfo struct {
	Name           OverflowStrategy `json:"name"`
	Description    string           `json:"description"`
	RecommendedUse string           `json:"recommended_use"`
}

// OverflowStrategies returns static metadata for every strategy, in a fixed
// order.
func OverflowStrategies() []StrategyInfo {
	return []StrategyInfo{
		{
			Name:           OverflowReject,
			Description:    "Excess items are rejected immediately and never enter allocation.",
			RecommendedUse: "Hard intake limits where declining work is cheaper than queueing it.",
		},
		{
			Name:           OverflowDefer,
			Description:    "Excess items stay pending and compete for capacity again tomorrow.",
			RecommendedUse: "Default choice when backlog growth is acceptable and no work may be lost.",
		},
		{
			Name:           OverflowEscalate,
			Description:    "Excess items get a priority boost to improve their allocation odds on following days.",
			RecommendedUse: "Recovery regimes where aged overflow must not starve behind fresh intake.",
		},
		{
			Name:           OverflowOutsource,
			Description:    "Excess items are resolved by external capacity at an implicit cost, consuming no internal hours.",
			RecommendedUse: "Spiky demand with contractor budget available to absorb peaks.",
		},
	}
}

// Profile is the full configuration of one simulation run. A run is a pure
// function of (profile, initial items, plans, day range, seed).
type Profile struct {
	Name string `json:"name,omitempty"`

	// PropagationRate is reserved for a probabilistic carry-forward mode.
	// The engine always carries unresolved items fully to the next day;
	// the field is validated but otherwise unused.
	PropagationRate float64 `json:"propagation_rate"`

	// DecayRate is the expected fraction of pending items that become moot
	// each day and self-resolve without consuming capacity.
	DecayRate float64 `json:"decay_rate"`

	AgingEnabled       bool `json:"aging_enabled"`
	AgingThresholdDays int  `json:"aging_threshold_days"`

	OverflowStrategy OverflowStrategy `json:"overflow_strategy"`

	// SLABreachThresholdDays sets the due window for every priority unless
	// overridden per priority.
	SLABreachThresholdDays int              `json:"sla_breach_threshold_days"`
	SLAThresholdOverrides  map[Priority]int `json:"sla_threshold_overrides,omitempty"`

	SLAPenaltyPerDay float64 `json:"sla_penalty_per_day"`
	// CustomerSatisfactionImpact accrues once per breached item; it is
	// zero or negative.
	CustomerSatisfactionImpact float64 `json:"customer_satisfaction_impact"`

	RecoveryRateMultiplier float64 `json:"recovery_rate_multiplier"`
	RecoveryPriorityBoost  int     `json:"recovery_priority_boost"`

	// MaxBacklogCapacity triggers overflow handling when the pending count
	// would exceed it. Nil means unbounded.
	MaxBacklogCapacity *int `json:"max_backlog_capacity,omitempty"`
}

// SLAThresholdFor returns the due window in days for the given priority,
// honouring per-priority overrides.
func (p *Profile) SLAThresholdFor(pr Priority) int {
	if d, ok := p.SLAThresholdOverrides[pr]; ok {
		return d
	}
	return p.SLABreachThresholdDays
}

// Validate checks every profile field and returns a ConfigurationError on
// the first violation.
func (p *Profile) Validate() error {
	if p.PropagationRate < 0 || p.PropagationRate > 1 {
		return NewConfigurationError("propagation_rate", "must be in [0,1], got %v", p.PropagationRate)
	}
	if p.DecayRate < 0 || p.DecayRate > 1 {
		return NewConfigurationError("decay_rate", "must be in [0,1], got %v", p.DecayRate)
	}
	if p.AgingThresholdDays <= 0 {
		return NewConfigurationError("aging_threshold_days", "must be > 0, got %d", p.AgingThresholdDays)
	}
	if !p.OverflowStrategy.IsValid() {
		return NewConfigurationError("overflow_strategy", "unknown strategy %q", p.OverflowStrategy)
	}
	if p.SLABreachThresholdDays <= 0 {
		return NewConfigurationError("sla_breach_threshold_days", "must be > 0, got %d", p.SLABreachThresholdDays)
	}
	for pr, d := range p.SLAThresholdOverrides {
		if !pr.IsValid() {
			return NewConfigurationError("sla_threshold_overrides", "unknown priority %q", pr)
		}
		if d <= 0 {
			return NewConfigurationError("sla_threshold_overrides", "threshold for %s must be > 0, got %d", pr, d)
		}
	}
	if p.SLAPenaltyPerDay < 0 {
		return NewConfigurationError("sla_penalty_per_day", "must be >= 0, got %v", p.SLAPenaltyPerDay)
	}
	if p.CustomerSatisfactionImpact > 0 {
		return NewConfigurationError("customer_satisfaction_impact", "must be <= 0, got %v", p.CustomerSatisfactionImpact)
	}
	if p.RecoveryRateMultiplier < 1 {
		return NewConfigurationError("recovery_rate_multiplier", "must be >= 1, got %v", p.RecoveryRateMultiplier)
	}
	if p.RecoveryPriorityBoost < 0 {
		return NewConfigurationError("recovery_priority_boost", "must be >= 0, got %d", p.RecoveryPriorityBoost)
	}
	if p.MaxBacklogCapacity != nil && *p.MaxBacklogCapacity <= 0 {
		return NewConfigurationError("max_backlog_capacity", "must be > 0 when set, got %d", *p.MaxBacklogCapacity)
	}
	return nil
}

// Templates returns the five named preset profiles.
func Templates() []Profile {
	capped := 120
	return []Profile{
		{
			Name:                       "standard",
			DecayRate:                  0.02,
			AgingEnabled:               true,
			AgingThresholdDays:         5,
			OverflowStrategy:           OverflowDefer,
			SLABreachThresholdDays:     10,
			SLAThresholdOverrides:      map[Priority]int{PriorityCritical: 3, PriorityHigh: 5},
			SLAPenaltyPerDay:           25,
			CustomerSatisfactionImpact: -0.5,
			RecoveryRateMultiplier:     1.25,
			RecoveryPriorityBoost:      1,
		},
		{
			Name:                       "high-volume",
			DecayRate:                  0.05,
			AgingEnabled:               true,
			AgingThresholdDays:         7,
			OverflowStrategy:           OverflowOutsource,
			SLABreachThresholdDays:     14,
			SLAThresholdOverrides:      map[Priority]int{PriorityCritical: 5},
			SLAPenaltyPerDay:           10,
			CustomerSatisfactionImpact: -0.25,
			RecoveryRateMultiplier:     1.5,
			RecoveryPriorityBoost:      1,
			MaxBacklogCapacity:         &capped,
		},
		{
			Name:                       "recovery",
			DecayRate:                  0.01,
			AgingEnabled:               true,
			AgingThresholdDays:         3,
			OverflowStrategy:           OverflowEscalate,
			SLABreachThresholdDays:     10,
			SLAPenaltyPerDay:           25,
			CustomerSatisfactionImpact: -0.5,
			RecoveryRateMultiplier:     1.75,
			RecoveryPriorityBoost:      2,
		},
		{
			Name:                       "strict-sla",
			DecayRate:                  0.01,
			AgingEnabled:               true,
			AgingThresholdDays:         2,
			OverflowStrategy:           OverflowReject,
			SLABreachThresholdDays:     5,
			SLAThresholdOverrides:      map[Priority]int{PriorityCritical: 1, PriorityHigh: 3},
			SLAPenaltyPerDay:           100,
			CustomerSatisfactionImpact: -2,
			RecoveryRateMultiplier:     1.25,
			RecoveryPriorityBoost:      1,
		},
		{
			Name:                       "lean-defer",
			DecayRate:                  0,
			AgingEnabled:               false,
			AgingThresholdDays:         30,
			OverflowStrategy:           OverflowDefer,
			SLABreachThresholdDays:     21,
			SLAPenaltyPerDay:           5,
			CustomerSatisfactionImpact: 0,
			RecoveryRateMultiplier:     1,
			RecoveryPriorityBoost:      0,
		},
	}
}

// TemplateByName looks up a preset profile by name.
func TemplateByName(name string) (Profile, bool) {
	for _, t := range Templates() {
		if t.Name == name {
			return t, true
		}
	}
	return Profile{}, false
}

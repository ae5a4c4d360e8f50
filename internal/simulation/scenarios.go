package simulation

import (
	"context"

	"golang.org/x/sync/errgroup"

	"backlog-mcp/internal/backlog"
)

// DefaultHorizonDays is the implicit horizon for quick scenario
// comparisons.
const DefaultHorizonDays = 30

// OrganizationContext sketches the workload a quick comparison should be
// anchored on. Zero values fall back to a plausible mid-size team.
type OrganizationContext struct {
	DailyCapacityHours float64               `json:"daily_capacity_hours,omitempty"`
	StaffCount         int                   `json:"staff_count,omitempty"`
	DailyArrivals      []backlog.DemandEntry `json:"daily_arrivals,omitempty"`
	InitialPending     int                   `json:"initial_pending,omitempty"`
}

func (o *OrganizationContext) applyDefaults() {
	if o.DailyCapacityHours <= 0 {
		o.DailyCapacityHours = 40
	}
	if o.StaffCount <= 0 {
		o.StaffCount = 5
	}
	if len(o.DailyArrivals) == 0 {
		o.DailyArrivals = []backlog.DemandEntry{
			{Priority: backlog.PriorityLow, Complexity: backlog.ComplexityTrivial, Count: 3},
			{Priority: backlog.PriorityMedium, Complexity: backlog.ComplexityStandard, Count: 5},
			{Priority: backlog.PriorityHigh, Complexity: backlog.ComplexityStandard, Count: 2},
			{Priority: backlog.PriorityCritical, Complexity: backlog.ComplexityComplex, Count: 1},
		}
	}
	if o.InitialPending <= 0 {
		o.InitialPending = 20
	}
}

// ScenarioComparison is one row of a side-by-side preset comparison.
type ScenarioComparison struct {
	Name     string                   `json:"name"`
	Strategy backlog.OverflowStrategy `json:"overflow_strategy"`
	Summary  Summary                  `json:"summary"`
}

// QuickScenarioResult holds the outcome of running the four preset
// profiles against the same organization context.
type QuickScenarioResult struct {
	HorizonDays int                  `json:"horizon_days"`
	Seed        int64                `json:"seed"`
	Comparisons []ScenarioComparison `json:"comparisons"`
}

// quickPresets are the preset names compared by QuickScenarios, in report
// order.
var quickPresets = []string{"standard", "high-volume", "recovery", "strict-sla"}

// QuickScenarios runs the engine once per preset profile over the default
// horizon and returns side-by-side summaries. Runs are independent, each
// with its own item set and derived seed, so they execute concurrently.
func QuickScenarios(ctx context.Context, org OrganizationContext, horizonDays int, seed int64) (*QuickScenarioResult, error) {
	org.applyDefaults()
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	result := &QuickScenarioResult{
		HorizonDays: horizonDays,
		Seed:        seed,
		Comparisons: make([]ScenarioComparison, len(quickPresets)),
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range quickPresets {
		profile, ok := backlog.TemplateByName(name)
		if !ok {
			return nil, backlog.NewConfigurationError("scenario", "unknown preset profile %q", name)
		}
		idx := i
		in := scenarioInput(profile, org, horizonDays, seed+int64(idx)*1009)
		g.Go(func() error {
			res, err := NewEngine(in).Run(ctx)
			if err != nil {
				return err
			}
			result.Comparisons[idx] = ScenarioComparison{
				Name:     in.Profile.Name,
				Strategy: in.Profile.OverflowStrategy,
				Summary:  res.Summary,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// scenarioInput materializes a full run input from an organization
// context. The high-volume preset doubles arrivals; the recovery preset
// triples the initial backlog and flags the whole horizon as a recovery
// regime.
func scenarioInput(profile backlog.Profile, org OrganizationContext, horizonDays int, seed int64) Input {
	arrivalScale := 1
	initialPending := org.InitialPending
	var recovery *backlog.DayWindow

	switch profile.Name {
	case "high-volume":
		arrivalScale = 2
	case "recovery":
		initialPending = org.InitialPending * 3
		recovery = &backlog.DayWindow{From: 0, Until: horizonDays - 1}
	}

	capacities := make([]backlog.DailyCapacity, 0, horizonDays)
	demands := make([]backlog.DailyDemand, 0, horizonDays)
	for day := 0; day < horizonDays; day++ {
		capacities = append(capacities, backlog.DailyCapacity{
			Day:           day,
			CapacityHours: org.DailyCapacityHours,
			StaffCount:    org.StaffCount,
		})
		arrivals := make([]backlog.DemandEntry, 0, len(org.DailyArrivals))
		for _, a := range org.DailyArrivals {
			a.Count *= arrivalScale
			arrivals = append(arrivals, a)
		}
		demands = append(demands, backlog.DailyDemand{Day: day, Arrivals: arrivals})
	}

	// Initial backlog: a standard-complexity medium set with staggered ages
	// so aging and SLA policies have something to act on immediately.
	initial := make([]backlog.Item, 0, initialPending)
	for i := 0; i < initialPending; i++ {
		initial = append(initial, backlog.Item{
			Priority:   backlog.PriorityMedium,
			Complexity: backlog.ComplexityStandard,
			AgeDays:    i % 8,
		})
	}

	return Input{
		Profile:        profile,
		InitialItems:   initial,
		Capacities:     capacities,
		Demands:        demands,
		StartDay:       0,
		EndDay:         horizonDays - 1,
		Seed:           seed,
		RecoveryWindow: recovery,
	}
}

package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"backlog-mcp/internal/backlog"
	"backlog-mcp/internal/simulation"
)

// GeneratorConfig controls plan generation.
type GeneratorConfig struct {
	Scenario    string // steady, surge, crunch
	ArrivalMode string // fixed, poisson
	Days        int
	ArrivalRate int
	Capacity    float64
	Seed        int64
}

// Plan is the generated simulation plan in the shape the simulate command
// loads.
type Plan struct {
	ProfileTemplate string `json:"profile_template,omitempty"`
	simulation.Input
}

// arrivalMix splits a day's arrival count into priority/complexity batches.
// Roughly: a third trivial low-priority noise, half standard medium/high
// work, the rest complex and occasionally critical.
func arrivalMix(rng *rand.Rand, count int) []backlog.DemandEntry {
	if count <= 0 {
		return []backlog.DemandEntry{}
	}
	low := count / 3
	std := count / 2
	rest := count - low - std

	entries := []backlog.DemandEntry{}
	if low > 0 {
		entries = append(entries, backlog.DemandEntry{Priority: backlog.PriorityLow, Complexity: backlog.ComplexityTrivial, Count: low})
	}
	if std > 0 {
		high := std / 3
		if high > 0 {
			entries = append(entries, backlog.DemandEntry{Priority: backlog.PriorityHigh, Complexity: backlog.ComplexityStandard, Count: high})
		}
		if std-high > 0 {
			entries = append(entries, backlog.DemandEntry{Priority: backlog.PriorityMedium, Complexity: backlog.ComplexityStandard, Count: std - high})
		}
	}
	if rest > 0 {
		prio := backlog.PriorityMedium
		if rng.Float64() < 0.25 {
			prio = backlog.PriorityCritical
		}
		entries = append(entries, backlog.DemandEntry{Priority: prio, Complexity: backlog.ComplexityComplex, Count: rest})
	}
	return entries
}

func samplePoisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	if lambda > 50 {
		estimate := rng.NormFloat64()*math.Sqrt(lambda) + lambda
		if estimate < 0 {
			return 0
		}
		return int(math.Round(estimate))
	}
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for p > l {
		k++
		p *= rng.Float64()
	}
	return k - 1
}

// Generate builds a full plan for the configured scenario.
func Generate(cfg GeneratorConfig) (Plan, error) {
	if cfg.Days <= 0 {
		return Plan{}, fmt.Errorf("days must be > 0, got %d", cfg.Days)
	}
	if cfg.ArrivalMode != "fixed" && cfg.ArrivalMode != "poisson" {
		return Plan{}, fmt.Errorf("arrival mode must be fixed or poisson, got %q", cfg.ArrivalMode)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	template := "standard"
	var recovery *backlog.DayWindow

	capacities := make([]backlog.DailyCapacity, 0, cfg.Days)
	demands := make([]backlog.DailyDemand, 0, cfg.Days)
	for day := 0; day < cfg.Days; day++ {
		hours := cfg.Capacity
		rate := float64(cfg.ArrivalRate)

		switch cfg.Scenario {
		case "steady":
			// Flat capacity, flat arrivals.
		case "surge":
			// Arrivals triple during the second week.
			template = "high-volume"
			if day >= 7 && day < 14 {
				rate *= 3
			}
		case "crunch":
			// Capacity drops to a third mid-horizon, then a recovery
			// window clears the pile.
			template = "recovery"
			third := cfg.Days / 3
			if day >= third && day < 2*third {
				hours = cfg.Capacity / 3
			}
			recovery = &backlog.DayWindow{From: 2 * cfg.Days / 3, Until: cfg.Days - 1}
		default:
			return Plan{}, fmt.Errorf("unknown scenario %q", cfg.Scenario)
		}

		arrivals := int(rate)
		if cfg.ArrivalMode == "poisson" {
			arrivals = samplePoisson(rng, rate)
		}

		capacities = append(capacities, backlog.DailyCapacity{
			Day:           day,
			CapacityHours: hours,
			StaffCount:    int(math.Ceil(hours / 8)),
		})
		demands = append(demands, backlog.DailyDemand{Day: day, Arrivals: arrivalMix(rng, arrivals)})
	}

	return Plan{
		ProfileTemplate: template,
		Input: simulation.Input{
			Capacities:     capacities,
			Demands:        demands,
			StartDay:       0,
			EndDay:         cfg.Days - 1,
			Seed:           cfg.Seed,
			RecoveryWindow: recovery,
		},
	}, nil
}

// Save writes the plan as indented JSON under outDir.
func Save(outDir string, plan Plan) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(outDir, fmt.Sprintf("plan-%s-%dd.json", plan.ProfileTemplate, plan.EndDay+1))
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write plan: %w", err)
	}
	return path, nil
}

package simulation

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"backlog-mcp/internal/backlog"
	"backlog-mcp/internal/stats"
)

// SweepInput configures a productivity variance sweep: the base run is
// replayed with per-day productivity modifiers perturbed by seeded normal
// noise, modelling uncertainty in the upstream variance estimator.
type SweepInput struct {
	Base       Input   `json:"base"`
	Runs       int     `json:"runs"`
	Volatility float64 `json:"volatility"`
}

// Cone is a percentile band over one output metric.
type Cone struct {
	P50 float64 `json:"p50"`
	P85 float64 `json:"p85"`
	P95 float64 `json:"p95"`
}

// SweepResult aggregates a Monte Carlo sweep into forecast cones.
type SweepResult struct {
	Runs       int     `json:"runs"`
	Volatility float64 `json:"volatility"`
	Seed       int64   `json:"seed"`

	FinalPending  Cone `json:"final_pending"`
	PeakBacklog   Cone `json:"peak_backlog"`
	TotalPenalty  Cone `json:"total_penalty"`
	TotalBreached Cone `json:"total_breached"`

	SLAComplianceMean   float64 `json:"sla_compliance_mean"`
	SLAComplianceStdDev float64 `json:"sla_compliance_std_dev"`
}

// VarianceSweep executes Runs independent simulations concurrently. Each
// run gets a derived seed and its own perturbed copy of the capacity plan,
// so the sweep is deterministic for a fixed base seed.
func VarianceSweep(ctx context.Context, in SweepInput) (*SweepResult, error) {
	if in.Runs <= 0 {
		return nil, backlog.NewConfigurationError("runs", "must be > 0, got %d", in.Runs)
	}
	if in.Volatility < 0 {
		return nil, backlog.NewConfigurationError("volatility", "must be >= 0, got %v", in.Volatility)
	}

	summaries := make([]Summary, in.Runs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for r := 0; r < in.Runs; r++ {
		run := r
		g.Go(func() error {
			runIn := in.Base
			runIn.Seed = in.Base.Seed + int64(run)
			runIn.Capacities = perturbCapacities(in.Base.Capacities, in.Volatility, runIn.Seed)
			res, err := NewEngine(runIn).Run(ctx)
			if err != nil {
				return err
			}
			summaries[run] = res.Summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	finalPending := make([]float64, in.Runs)
	peak := make([]float64, in.Runs)
	penalty := make([]float64, in.Runs)
	breached := make([]float64, in.Runs)
	compliance := make([]float64, in.Runs)
	for i, s := range summaries {
		finalPending[i] = float64(s.FinalPending)
		peak[i] = float64(s.PeakBacklog)
		penalty[i] = s.TotalPenalty
		breached[i] = float64(s.TotalBreached)
		compliance[i] = s.FinalSLACompliancePct
	}

	return &SweepResult{
		Runs:                in.Runs,
		Volatility:          in.Volatility,
		Seed:                in.Base.Seed,
		FinalPending:        coneOf(finalPending),
		PeakBacklog:         coneOf(peak),
		TotalPenalty:        coneOf(penalty),
		TotalBreached:       coneOf(breached),
		SLAComplianceMean:   stats.Round(stats.Mean(compliance), 2),
		SLAComplianceStdDev: stats.Round(stats.StdDev(compliance), 2),
	}, nil
}

func coneOf(values []float64) Cone {
	return Cone{
		P50: stats.Round(stats.Percentile(values, 50), 2),
		P85: stats.Round(stats.Percentile(values, 85), 2),
		P95: stats.Round(stats.Percentile(values, 95), 2),
	}
}

// perturbCapacities copies the capacity plan with each day's productivity
// modifier scaled by a seeded normal deviate. Factors are floored at 0.05
// so a perturbed modifier stays a valid explicit value and a deep trough
// still means a near-dead day rather than an accidental default.
func perturbCapacities(capacities []backlog.DailyCapacity, volatility float64, seed int64) []backlog.DailyCapacity {
	out := make([]backlog.DailyCapacity, len(capacities))
	copy(out, capacities)
	if volatility == 0 {
		return out
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		factor := 1 + volatility*rng.NormFloat64()
		if factor < 0.05 {
			factor = 0.05
		}
		out[i].ProductivityModifier = out[i].EffectiveModifier() * factor
	}
	return out
}

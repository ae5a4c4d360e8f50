package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"backlog-mcp/cmd/plangen/engine"
)

func main() {
	scenario := flag.String("scenario", "steady", "Scenario to generate: steady, surge, crunch")
	arrivalMode := flag.String("arrivals", "fixed", "Arrival sampling: fixed or poisson")
	days := flag.Int("days", 30, "Number of days to cover")
	rate := flag.Int("rate", 8, "Average arrivals per day")
	capacity := flag.Float64("capacity", 40, "Base capacity hours per day")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	outDir := flag.String("out", "./plans", "Output directory for plan files")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario:    *scenario,
		ArrivalMode: *arrivalMode,
		Days:        *days,
		ArrivalRate: *rate,
		Capacity:    *capacity,
		Seed:        *seed,
	}

	fmt.Printf("Generating scenario '%s' (arrivals: %s, %d days, rate %d) to %s...\n",
		cfg.Scenario, cfg.ArrivalMode, cfg.Days, cfg.ArrivalRate, *outDir)

	plan, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Failed to generate plan: %v\n", err)
		os.Exit(1)
	}

	path, err := engine.Save(*outDir, plan)
	if err != nil {
		fmt.Printf("Failed to save plan: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", path)
}

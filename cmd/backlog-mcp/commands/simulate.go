package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"backlog-mcp/internal/backlog"
	"backlog-mcp/internal/results"
	"backlog-mcp/internal/simulation"
)

var (
	planPath     string
	profileName  string
	seed         int64
	outputFormat string
	persistRun   bool
)

// planFile is the on-disk shape of a simulation plan. A profile_template
// name may stand in for a full inline profile.
type planFile struct {
	ProfileTemplate string `json:"profile_template,omitempty"`
	simulation.Input
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a one-shot backlog propagation from a JSON plan file",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(planPath)
		if err != nil {
			return fmt.Errorf("failed to read plan: %w", err)
		}
		var plan planFile
		if err := json.Unmarshal(data, &plan); err != nil {
			return fmt.Errorf("failed to parse plan: %w", err)
		}

		if profileName != "" {
			plan.ProfileTemplate = profileName
		}
		if plan.ProfileTemplate != "" {
			t, ok := backlog.TemplateByName(plan.ProfileTemplate)
			if !ok {
				return backlog.NewConfigurationError("profile_template", "unknown template %q", plan.ProfileTemplate)
			}
			plan.Profile = t
		}
		if cmd.Flags().Changed("seed") {
			plan.Seed = seed
		}

		res, err := simulation.NewEngine(plan.Input).Run(cmd.Context())
		if err != nil {
			return err
		}

		if persistRun {
			store := results.NewStore(cfg.ResultsDir)
			runID := results.NewRunID(time.Now(), plan.Seed)
			path, err := store.Save(runID, res)
			if err != nil {
				return err
			}
			log.Info().Str("path", path).Msg("Run persisted")
		}

		if strings.EqualFold(outputFormat, "json") {
			payload, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(payload))
			return nil
		}

		printSummary(res)
		return nil
	},
}

func printSummary(res *simulation.Result) {
	s := res.Summary
	fmt.Println("Backlog propagation summary")
	fmt.Println("---------------------------")
	fmt.Printf("Horizon: days %d..%d (seed %d)\n", s.StartDay, s.EndDay, s.Seed)
	fmt.Printf("Items: %d created | %d resolved | %d rejected | %d outsourced | %d decayed | %d still pending\n",
		s.TotalCreated, s.TotalResolved, s.TotalRejected, s.TotalOutsourced, s.TotalDecayed, s.FinalPending)
	fmt.Printf("Peak backlog: %d on day %d (median daily pending %.1f)\n", s.PeakBacklog, s.PeakBacklogDay, s.MedianDailyPending)
	fmt.Printf("SLA: %.1f%% compliant | %d breached | penalty %.2f | satisfaction %.2f\n",
		s.FinalSLACompliancePct, s.TotalBreached, s.TotalPenalty, s.TotalSatisfactionImpact)
	if s.TotalOutsourced > 0 {
		fmt.Printf("Outsourced cost: %.1f external hours\n", s.OutsourcedCostHours)
	}
	if s.TotalResolved > 0 {
		fmt.Printf("Average resolution age: %.2f days\n", s.AvgResolutionAgeDays)
	}
	fmt.Println()
	fmt.Println("Daily detail")
	for _, snap := range res.Snapshots {
		fmt.Printf("- day %d | pending %d | intake %d | resolved %d | rejected %d | outsourced %d | decayed %d | breached %d | avg wait %.1f | longest %d\n",
			snap.Day, snap.TotalPending, snap.IntakeToday, snap.ResolvedToday, snap.RejectedToday,
			snap.OutsourcedToday, snap.DecayedToday, snap.BreachedToday, snap.AvgWaitDays, snap.LongestWaitDays)
	}
}

func init() {
	simulateCmd.Flags().StringVar(&planPath, "plan", "", "path to the JSON plan file")
	simulateCmd.Flags().StringVar(&profileName, "profile", "", "preset profile template overriding the plan's profile")
	simulateCmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed overriding the plan's seed")
	simulateCmd.Flags().StringVar(&outputFormat, "format", "text", "output format: text or json")
	simulateCmd.Flags().BoolVar(&persistRun, "persist", false, "store the full result under the data path")
	_ = simulateCmd.MarkFlagRequired("plan")
	rootCmd.AddCommand(simulateCmd)
}

package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"backlog-mcp/internal/backlog"
	"backlog-mcp/internal/results"
	"backlog-mcp/internal/simulation"
)

// PlanArgs is the shared wire shape of a full propagation plan.
type PlanArgs struct {
	ProfileTemplate string                  `json:"profile_template,omitempty"`
	Profile         *backlog.Profile        `json:"profile,omitempty"`
	InitialBacklog  []backlog.Item          `json:"initial_backlog,omitempty"`
	Capacities      []backlog.DailyCapacity `json:"capacities"`
	Demands         []backlog.DailyDemand   `json:"demands"`
	StartDay        int                     `json:"start_day"`
	EndDay          int                     `json:"end_day"`
	Seed            int64                   `json:"seed,omitempty"`
	RecoveryFrom    *int                    `json:"recovery_from,omitempty"`
	RecoveryUntil   *int                    `json:"recovery_until,omitempty"`
}

// toInput resolves the profile reference and assembles an engine input.
func (a *PlanArgs) toInput() (simulation.Input, error) {
	var profile backlog.Profile
	switch {
	case a.Profile != nil && a.ProfileTemplate != "":
		return simulation.Input{}, backlog.NewConfigurationError("profile", "pass either profile or profile_template, not both")
	case a.Profile != nil:
		profile = *a.Profile
	case a.ProfileTemplate != "":
		t, ok := backlog.TemplateByName(a.ProfileTemplate)
		if !ok {
			return simulation.Input{}, backlog.NewConfigurationError("profile_template", "unknown template %q", a.ProfileTemplate)
		}
		profile = t
	default:
		return simulation.Input{}, backlog.NewConfigurationError("profile", "a profile or profile_template is required")
	}

	var recovery *backlog.DayWindow
	if a.RecoveryFrom != nil || a.RecoveryUntil != nil {
		if a.RecoveryFrom == nil || a.RecoveryUntil == nil {
			return simulation.Input{}, backlog.NewConfigurationError("recovery_from", "recovery_from and recovery_until must be set together")
		}
		recovery = &backlog.DayWindow{From: *a.RecoveryFrom, Until: *a.RecoveryUntil}
	}

	return simulation.Input{
		Profile:        profile,
		InitialItems:   a.InitialBacklog,
		Capacities:     a.Capacities,
		Demands:        a.Demands,
		StartDay:       a.StartDay,
		EndDay:         a.EndDay,
		Seed:           a.Seed,
		RecoveryWindow: recovery,
	}, nil
}

// PropagateArgs is the input of the propagate tool.
type PropagateArgs struct {
	PlanArgs
	Persist bool `json:"persist,omitempty"`
}

// PropagateReply wraps a run result with its optional storage location.
type PropagateReply struct {
	RunID  string             `json:"run_id,omitempty"`
	Path   string             `json:"path,omitempty"`
	Result *simulation.Result `json:"result"`
}

func (s *Server) handlePropagate(ctx context.Context, req *mcp.CallToolRequest, args PropagateArgs) (*mcp.CallToolResult, PropagateReply, error) {
	in, err := args.toInput()
	if err != nil {
		return nil, PropagateReply{}, err
	}

	started := time.Now()
	res, err := simulation.NewEngine(in).Run(ctx)
	if err != nil {
		return nil, PropagateReply{}, err
	}
	log.Info().
		Int("days", len(res.Snapshots)).
		Int("items", res.Summary.TotalCreated).
		Dur("took", time.Since(started)).
		Msg("Propagation run complete")

	reply := PropagateReply{Result: res}
	if args.Persist {
		runID := results.NewRunID(time.Now(), in.Seed)
		path, err := s.store.Save(runID, res)
		if err != nil {
			return nil, PropagateReply{}, fmt.Errorf("run succeeded but persisting failed: %w", err)
		}
		reply.RunID = runID
		reply.Path = path
	}
	return nil, reply, nil
}

// QuickScenarioArgs is the input of the quick_scenarios tool.
type QuickScenarioArgs struct {
	simulation.OrganizationContext
	HorizonDays int   `json:"horizon_days,omitempty"`
	Seed        int64 `json:"seed,omitempty"`
}

func (s *Server) handleQuickScenarios(ctx context.Context, req *mcp.CallToolRequest, args QuickScenarioArgs) (*mcp.CallToolResult, *simulation.QuickScenarioResult, error) {
	horizon := args.HorizonDays
	if horizon <= 0 {
		horizon = s.cfg.DefaultHorizonDays
	}
	res, err := simulation.QuickScenarios(ctx, args.OrganizationContext, horizon, args.Seed)
	if err != nil {
		return nil, nil, err
	}
	return nil, res, nil
}

// VarianceSweepArgs is the input of the variance_sweep tool.
type VarianceSweepArgs struct {
	PlanArgs
	Runs       int     `json:"runs,omitempty"`
	Volatility float64 `json:"volatility"`
}

func (s *Server) handleVarianceSweep(ctx context.Context, req *mcp.CallToolRequest, args VarianceSweepArgs) (*mcp.CallToolResult, *simulation.SweepResult, error) {
	in, err := args.toInput()
	if err != nil {
		return nil, nil, err
	}
	runs := args.Runs
	if runs <= 0 {
		runs = s.cfg.DefaultSweepRuns
	}
	res, err := simulation.VarianceSweep(ctx, simulation.SweepInput{
		Base:       in,
		Runs:       runs,
		Volatility: args.Volatility,
	})
	if err != nil {
		return nil, nil, err
	}
	return nil, res, nil
}

// ListRunsReply lists persisted run IDs.
type ListRunsReply struct {
	Runs []string `json:"runs"`
}

func (s *Server) handleListRuns(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, ListRunsReply, error) {
	ids, err := s.store.List()
	if err != nil {
		return nil, ListRunsReply{}, err
	}
	return nil, ListRunsReply{Runs: ids}, nil
}

// LoadRunArgs is the input of the load_run tool.
type LoadRunArgs struct {
	RunID string `json:"run_id"`
}

func (s *Server) handleLoadRun(ctx context.Context, req *mcp.CallToolRequest, args LoadRunArgs) (*mcp.CallToolResult, *simulation.Result, error) {
	if args.RunID == "" {
		return nil, nil, backlog.NewConfigurationError("run_id", "is required")
	}
	res, err := s.store.Load(args.RunID)
	if err != nil {
		return nil, nil, err
	}
	return nil, res, nil
}

// StrategiesReply lists overflow strategy metadata.
type StrategiesReply struct {
	Strategies []backlog.StrategyInfo `json:"strategies"`
}

func (s *Server) handleOverflowStrategies(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, StrategiesReply, error) {
	return nil, StrategiesReply{Strategies: backlog.OverflowStrategies()}, nil
}

// TemplatesReply lists the preset profiles.
type TemplatesReply struct {
	Templates []backlog.Profile `json:"templates"`
}

func (s *Server) handleProfileTemplates(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, TemplatesReply, error) {
	return nil, TemplatesReply{Templates: backlog.Templates()}, nil
}

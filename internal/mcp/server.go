package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"backlog-mcp/internal/config"
	"backlog-mcp/internal/results"
)

// Server exposes the backlog propagation engine over MCP stdio.
type Server struct {
	cfg     *config.AppConfig
	store   *results.Store
	version string
}

// NewServer creates a new MCP server bound to the given configuration.
func NewServer(cfg *config.AppConfig, version string) *Server {
	return &Server{
		cfg:     cfg,
		store:   results.NewStore(cfg.ResultsDir),
		version: version,
	}
}

// Run registers the tool set and serves the stdio transport until the
// context is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	impl := &mcp.Implementation{
		Name:    "backlog-mcp",
		Title:   "Backlog Propagation Engine",
		Version: s.version,
	}
	srv := mcp.NewServer(impl, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "propagate",
		Description: "Run a full backlog propagation simulation over a day range. " +
			"Ages pending items, escalates priority, applies decay, allocates daily capacity, " +
			"detects SLA breaches, and resolves overflow per the profile's strategy. " +
			"Capacity and demand plans must cover every day in the range; missing days fail explicitly.",
		InputSchema: propagateSchema(),
	}, s.handlePropagate)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "quick_scenarios",
		Description: "Compare the four preset profiles (standard, high-volume, recovery, strict-sla) " +
			"side by side against one organization context over a default horizon. " +
			"Use this for a fast policy comparison before running a tailored propagate call.",
		InputSchema: quickScenariosSchema(),
	}, s.handleQuickScenarios)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "variance_sweep",
		Description: "Monte Carlo sweep over productivity variance: replays one propagation plan many times " +
			"with per-day productivity modifiers perturbed by seeded normal noise, and reports " +
			"P50/P85/P95 forecast cones for final pending count, peak backlog, penalty cost, and breaches.",
		InputSchema: varianceSweepSchema(),
	}, s.handleVarianceSweep)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_runs",
		Description: "List persisted propagation run IDs, newest first. Runs are stored by propagate calls made with persist=true.",
		InputSchema: emptySchema(),
	}, s.handleListRuns)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "load_run",
		Description: "Load a previously persisted propagation run by its run ID, returning the full stored result.",
		InputSchema: loadRunSchema(),
	}, s.handleLoadRun)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "overflow_strategies",
		Description: "Static metadata for the four overflow strategies (reject, defer, escalate, outsource): what each does and when to use it. Not a simulation call.",
		InputSchema: emptySchema(),
	}, s.handleOverflowStrategies)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "profile_templates",
		Description: "The five named preset propagation profiles with all fields populated. Use one directly or as a starting point for a custom profile.",
		InputSchema: emptySchema(),
	}, s.handleProfileTemplates)

	log.Info().Str("version", s.version).Msg("MCP server starting stdio loop")
	return srv.Run(ctx, &mcp.StdioTransport{})
}

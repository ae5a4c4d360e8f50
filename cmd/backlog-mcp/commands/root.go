package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"backlog-mcp/internal/config"
	"backlog-mcp/internal/logging"
	"backlog-mcp/internal/mcp"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "backlog-mcp",
	Short: "backlog-mcp is a backlog propagation MCP server",
	Long: `An MCP server that simulates how unresolved work items accumulate, age, and resolve
day by day under finite capacity: priority aging, decay, SLA breach tracking, and
configurable overflow policies, for workforce capacity planning and SLA risk analysis.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("backlog-mcp starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(cfg, Version)
		return server.Run(cmd.Context())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	planmcp "github.com/meltforce/planview/internal/mcp"
	"github.com/meltforce/planview/internal/planview"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve workout plans to MCP clients over stdio",
	Long: `Run an MCP server on stdin/stdout with the tools list_workout_plans
and get_workout_plan and the resource planview://selected. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := newLogger(cmd.ErrOrStderr(), cfg)
		src, closeSrc, err := newSource(cfg, log)
		if err != nil {
			return err
		}
		defer closeSrc()

		store := planview.NewStore(src, log)
		s := planmcp.New(src, store, resolveTrainer(cfg), rootCmd.Version, log)

		log.Info("mcp server starting", "transport", "stdio", "default_trainer", resolveTrainer(cfg))
		return server.ServeStdio(s)
	},
}

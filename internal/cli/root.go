package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	trainerID  string
	jsonOutput bool
)

// rootCmd is the root command for planview. Without a subcommand it opens
// the interactive browser.
var rootCmd = &cobra.Command{
	Use:     "planview",
	Version: "dev",
	Short:   "Browse a trainer's workout plans",
	Long: `planview reads a trainer's workout plans from the plan backend.

Run without a command to browse plans interactively, or use list and show
for scriptable output. The mcp command exposes the same data to MCP clients.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.RunE = runBrowse

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: environment only)")
	rootCmd.PersistentFlags().StringVar(&trainerID, "trainer", "", "trainer id (overrides trainer.id)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the planview version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
		},
	}

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

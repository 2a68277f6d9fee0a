package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/meltforce/planview/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse workout plans interactively",
	Long: `Open the plan table for the trainer. Press enter to open a plan's
exercises grouped by day, t to switch trainer, q to quit.

Logs go to log.file (default planview.log) while the browser owns the terminal.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	log := newLogger(logFile, cfg)
	log.Info("planview starting", "version", rootCmd.Version, "backend", cfg.Backend.BaseURL)

	src, closeSrc, err := newSource(cfg, log)
	if err != nil {
		return err
	}
	defer closeSrc()

	ctx := cmd.Context()
	model := tui.New(ctx, src, resolveTrainer(cfg), log)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

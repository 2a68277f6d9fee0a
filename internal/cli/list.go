package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/meltforce/planview/internal/planview"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a trainer's workout plans",
	Long:  `Print the trainer's workout plans in backend order.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		trainer := resolveTrainer(cfg)
		if trainer == "" {
			return errNoTrainer
		}

		log := newLogger(cmd.ErrOrStderr(), cfg)
		src, closeSrc, err := newSource(cfg, log)
		if err != nil {
			return err
		}
		defer closeSrc()

		store := planview.NewStore(src, log)
		if err := store.SetTrainer(cmd.Context(), trainer); err != nil {
			return fmt.Errorf("listing workout plans: %w", err)
		}
		plans := store.State().Plans

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, plans)
		}

		if len(plans) == 0 {
			_, err := fmt.Fprintf(out, "No workout plans for trainer %s\n", trainer)
			return err
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "NAME", "DESCRIPTION", "START DATE", "END DATE")
		for _, p := range plans {
			t.Row(p.ID.String(), p.Name, p.Description, p.FromDate.String(), p.ToDate.String())
		}
		_, err = fmt.Fprintln(out, t.Render())
		return err
	},
}

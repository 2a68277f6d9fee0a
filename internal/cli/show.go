package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/meltforce/planview/internal/models"
	"github.com/meltforce/planview/internal/planview"
)

var byOrder bool

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	dayColor   = color.New(color.Bold)
)

var showCmd = &cobra.Command{
	Use:   "show <planID>",
	Short: "Show one plan's exercises grouped by day",
	Long: `Fetch a workout plan and print its exercises grouped by day of week.
Days appear in the order they first occur in the plan; within a day,
exercises keep the plan's order unless --by-order is given.`,
	Args: cobra.ExactArgs(1),
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
		if err := store.SelectPlan(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("fetching workout plan %s: %w", args[0], err)
		}
		st := store.State()
		if st.Selected == nil {
			return fmt.Errorf("workout plan %s: empty response", args[0])
		}

		grouped := st.Grouped
		if byOrder {
			grouped = grouped.SortedByOrder()
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, models.NewDetailView(st.Selected.WorkoutSummary, grouped))
		}
		return printDetail(out, st.Selected.WorkoutSummary, grouped)
	},
}

func init() {
	showCmd.Flags().BoolVar(&byOrder, "by-order", false, "sort exercises within each day by exercise order")
}

func printDetail(w io.Writer, s models.WorkoutSummary, g models.GroupedExercises) error {
	titleColor.Fprintln(w, s.Name)
	if s.Description != "" {
		fmt.Fprintln(w, s.Description)
	}
	fmt.Fprintf(w, "From: %s\n", s.FromDate)
	fmt.Fprintf(w, "To: %s\n", s.ToDate)
	fmt.Fprintln(w)
	titleColor.Fprintln(w, "Exercises by Day")

	if g.IsEmpty() {
		_, err := fmt.Fprintln(w, "No exercises")
		return err
	}
	for _, day := range g.Days() {
		fmt.Fprintln(w)
		dayColor.Fprintln(w, day)
		for _, e := range g.Exercises(day) {
			fmt.Fprintf(w, "  • %s\n", e.Label())
		}
	}
	return nil
}

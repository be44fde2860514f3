package cli

import (
	"fmt"

	"github.com/alexanderramin/pacer/internal/cli/formatter"
	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/planner"
	"github.com/spf13/cobra"
)

func newSlotCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Plan one-hour work slots",
	}

	cmd.AddCommand(
		newSlotAddCmd(app),
		newSlotListCmd(app),
		newSlotRemoveCmd(app),
	)

	return cmd
}

func newSlotAddCmd(app *App) *cobra.Command {
	var (
		date  string
		hours hourRange
	)

	cmd := &cobra.Command{
		Use:   "add TASK",
		Short: "Book an hour, or every free hour in a range, for a task",
		Example: `  pacer slot add 3f2a --hours 9
  pacer slot add 3f2a --date 2025-06-20 --hours 14-17`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !hours.set {
				return fmt.Errorf("--hours is required")
			}
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if date == "" {
				date = app.today()
			}

			out := cmd.OutOrStdout()
			if hours.single() {
				s, err := app.Schedule.AddSlot(ctx, app.UserID, taskID, date, hours.from)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Booked %s %s (%s)\n", s.Date, s.StartTime, s.ID)
				return nil
			}

			created, err := app.Schedule.AddRange(ctx, app.UserID, taskID, date, hours.from, hours.to)
			if err != nil {
				return err
			}
			if len(created) == 0 {
				fmt.Fprintln(out, formatter.Dim("Every hour in that range is already taken."))
				return nil
			}
			fmt.Fprintf(out, "Booked %d slot(s) on %s:", len(created), date)
			for _, s := range created {
				fmt.Fprintf(out, " %s", s.StartTime)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	cmd.Flags().Var(&hours, "hours", "Hour or inclusive range, e.g. 9 or 9-12")
	return cmd
}

func newSlotListCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the planner grid for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = app.today()
			}
			snap, err := app.Snapshots.Load(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}

			from, to := planner.DayStartHour, planner.DayEndHour
			titles := make(map[string]string, len(snap.Tasks))
			for _, t := range snap.Tasks {
				titles[t.ID] = t.Title
			}
			for _, s := range snap.Slots {
				if s.Date != date {
					continue
				}
				if h := s.Hour(); h >= 0 {
					from, to = min(from, h), max(to, h)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDayGrid(date, planner.DayGrid(snap, date, from, to), titles))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	return cmd
}

func newSlotRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Free a booked slot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSlotID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Schedule.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Freed slot %s\n", id)
			return nil
		},
	}
}

// slotTask finds the task that owns slotID in the current snapshot.
func slotTask(snap domain.Snapshot, slotID string) (string, bool) {
	s, ok := snap.Slot(slotID)
	if !ok {
		return "", false
	}
	return s.TaskID, true
}

package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/pacer/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTodayCmd(app *App) *cobra.Command {
	var (
		done    string
		watch   bool
		refresh time.Duration
	)

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's slots grouped by task",
		Example: `  pacer today
  pacer today --done 3f2a
  pacer today --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if done != "" {
				id, err := resolveTaskID(ctx, app, done)
				if err != nil {
					return err
				}
				res, err := app.Records.QuickRecord(ctx, app.UserID, id)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatRecordOutcome(res))
				return nil
			}

			if watch {
				if !app.interactive() {
					return fmt.Errorf("--watch needs an interactive terminal")
				}
				p := tea.NewProgram(newTodayModel(ctx, app, refresh), tea.WithContext(ctx), tea.WithOutput(out))
				_, err := p.Run()
				return err
			}

			view, err := app.Dashboard.Today(ctx, app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatToday(view))
			return nil
		},
	}

	cmd.Flags().StringVar(&done, "done", "", "Mark the next open slot of TASK as done")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep the view open and refresh it")
	cmd.Flags().DurationVar(&refresh, "refresh", 30*time.Second, "Refresh interval for --watch")
	return cmd
}

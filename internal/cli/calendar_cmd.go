package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/pacer/internal/cli/formatter"
	"github.com/spf13/cobra"
)

var errCalendarDisabled = errors.New("calendar sync is not configured; set calendar.credentials in the config file")

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Mirror planned slots into Google Calendar",
	}

	cmd.AddCommand(
		newCalendarAuthCmd(app),
		newCalendarPushCmd(app),
	)

	return cmd
}

func newCalendarAuthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize calendar access and store the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.CalendarAuth == nil {
				return errCalendarDisabled
			}
			return app.CalendarAuth(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newCalendarPushCmd(app *App) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Create or update one event per slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if app.Calendar == nil {
				return errCalendarDisabled
			}
			if from == "" {
				from = app.today()
			} else if err := validateOptionalDate(from); err != nil {
				return fmt.Errorf("--from: %w", err)
			}

			pusher, err := app.Calendar(ctx)
			if err != nil {
				return err
			}
			snap, err := app.Snapshots.Load(ctx, app.UserID)
			if err != nil {
				return err
			}
			res, err := pusher.Push(ctx, snap, from)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Calendar: %d created, %d updated, %d unchanged\n", res.Created, res.Updated, res.Unchanged)
			if res.Failed > 0 {
				fmt.Fprintln(out, formatter.StyleRed.Render(fmt.Sprintf("%d slot(s) failed, see the log", res.Failed)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First date to push, YYYY-MM-DD (default today)")
	return cmd
}

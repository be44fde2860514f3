package cli

import (
	"fmt"

	"github.com/alexanderramin/pacer/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show ability, remaining effort and which plans fall short",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Dashboard.Status(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(view, app.now()))
			return nil
		},
	}
}

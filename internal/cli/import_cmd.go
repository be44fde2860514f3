package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load tasks and slots from a JSON plan file",
		Long: `Load tasks and slots from a JSON plan file. The whole file is validated
first and written in one transaction, so a bad file changes nothing.

  {
    "tasks": [{"ref": "thesis", "title": "Thesis", "estimated_hours": 20,
               "deadline": "2025-07-01", "deadline_time": "17:00"}],
    "slots": [{"task_ref": "thesis", "date": "2025-06-16", "hour": 9}]
  }`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Import == nil {
				return fmt.Errorf("import is not available")
			}
			res, err := app.Import.ImportFile(cmd.Context(), app.UserID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d task(s) and %d slot(s)\n", res.TaskCount, res.SlotCount)
			return nil
		},
	}
}

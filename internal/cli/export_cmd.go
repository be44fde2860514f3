package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/pacer/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		format string
		path   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every task with its forecast as CSV or JSON",
		Example: `  pacer export --format csv --out tasks.csv
  pacer export --format json`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			snap, err := app.Snapshots.Load(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if path != "" {
				f, ferr := os.Create(path)
				if ferr != nil {
					return fmt.Errorf("creating export file: %w", ferr)
				}
				defer func() {
					if cerr := f.Close(); err == nil {
						err = cerr
					}
				}()
				w = f
			}

			switch format {
			case "csv":
				err = export.ToCSV(w, snap)
			case "json":
				err = export.ToJSON(w, snap, app.now())
			default:
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}
			if err != nil {
				return err
			}
			if path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) to %s\n", len(snap.Tasks), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv or json")
	cmd.Flags().StringVarP(&path, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}

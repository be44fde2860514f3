package cli

import (
	"fmt"

	"github.com/alexanderramin/pacer/internal/cli/formatter"
	"github.com/alexanderramin/pacer/internal/forecast"
	"github.com/spf13/cobra"
)

func newRecordCmd(app *App) *cobra.Command {
	var (
		taskArg, slotArg string
		hours            float64
		delta            int
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record hours worked and progress made",
		Long: `Record hours worked and progress made on a task. With --slot the slot is
marked as done; the task defaults to the slot's owner.`,
		Example: `  pacer record --slot 9c1e --hours 1 --delta 15
  pacer record --task 3f2a --hours 2.5 --delta 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if taskArg == "" && slotArg == "" {
				return fmt.Errorf("--task or --slot is required")
			}

			var rc forecast.RecordCommand
			rc.ActualHours = hours
			rc.ProgressDelta = delta

			if slotArg != "" {
				id, err := resolveSlotID(ctx, app, slotArg)
				if err != nil {
					return err
				}
				rc.SlotID = id
			}
			if taskArg != "" {
				id, err := resolveTaskID(ctx, app, taskArg)
				if err != nil {
					return err
				}
				rc.TaskID = id
			} else {
				snap, err := app.Snapshots.Load(ctx, app.UserID)
				if err != nil {
					return err
				}
				owner, ok := slotTask(snap, rc.SlotID)
				if !ok {
					return fmt.Errorf("slot %s not found", rc.SlotID)
				}
				rc.TaskID = owner
			}

			out, err := app.Records.Record(ctx, app.UserID, rc)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecordOutcome(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&taskArg, "task", "", "Task ID or prefix")
	cmd.Flags().StringVar(&slotArg, "slot", "", "Slot ID or prefix to mark as done")
	cmd.Flags().Float64Var(&hours, "hours", 1, "Hours actually worked")
	cmd.Flags().IntVar(&delta, "delta", 0, "Progress gained, in percentage points")
	return cmd
}

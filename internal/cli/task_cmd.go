package cli

import (
	"fmt"

	"github.com/alexanderramin/pacer/internal/cli/formatter"
	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/service"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskEditCmd(app),
		newTaskDoneCmd(app),
		newTaskRemoveCmd(app),
		newTaskPhotoCmd(app),
		newTaskPurgeCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var v taskFormValues

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if v.Title == "" && app.interactive() {
				if err := taskForm(&v, app.today()).Run(); err != nil {
					return err
				}
			}

			t, err := app.Tasks.Create(cmd.Context(), service.CreateTaskInput{
				UserID:       app.UserID,
				Title:        v.Title,
				Hours:        v.Hours,
				Deadline:     v.Deadline,
				DeadlineTime: v.DeadlineTime,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s (%s), %s due %s\n",
				formatter.Bold(t.Title), t.ID, formatter.FormatHours(t.EstimatedHours), t.Deadline)
			return nil
		},
	}

	cmd.Flags().StringVar(&v.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&v.Hours, "hours", "", "Estimated hours")
	cmd.Flags().StringVar(&v.Deadline, "deadline", "", "Deadline date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&v.DeadlineTime, "time", "", "Deadline time HH:MM (default end of day)")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks by deadline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tasks, err := app.Tasks.List(ctx, app.UserID, all)
			if err != nil {
				return err
			}
			status, err := app.Dashboard.Status(ctx, app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, status.Summary.Tasks, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks")
	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a task with its forecast and slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.Get(ctx, id)
			if err != nil {
				return err
			}
			status, err := app.Dashboard.Status(ctx, app.UserID)
			if err != nil {
				return err
			}
			all, err := app.Schedule.List(ctx, app.UserID)
			if err != nil {
				return err
			}
			var slots []*domain.ScheduleSlot
			for _, s := range all {
				if s.TaskID == id {
					slots = append(slots, s)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskDetail(t, status.Summary.Tasks[id], slots, app.now()))
			return nil
		},
	}
}

func newTaskEditCmd(app *App) *cobra.Command {
	var (
		title, deadline, deadlineTime string
		hours, spent                  float64
		progress                      int
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change task fields; progress and time spent are set directly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var in service.EditTaskInput
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = &title
			}
			if flags.Changed("hours") {
				in.EstimatedHours = &hours
			}
			if flags.Changed("deadline") {
				in.Deadline = &deadline
			}
			if flags.Changed("time") {
				in.DeadlineTime = &deadlineTime
			}
			if flags.Changed("progress") {
				in.Progress = &progress
			}
			if flags.Changed("spent") {
				in.TimeSpent = &spent
			}

			t, err := app.Tasks.Edit(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s, %s spent\n",
				formatter.Bold(t.Title), formatter.RenderProgress(t.Progress, 10), formatter.FormatHours(t.TimeSpent))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().Float64Var(&hours, "hours", 0, "New estimate in hours")
	cmd.Flags().StringVar(&deadline, "deadline", "", "New deadline YYYY-MM-DD")
	cmd.Flags().StringVar(&deadlineTime, "time", "", "New deadline time HH:MM, empty to clear")
	cmd.Flags().IntVar(&progress, "progress", 0, "Progress percentage 0-100")
	cmd.Flags().Float64Var(&spent, "spent", 0, "Total hours spent")
	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.Complete(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("✔"), t.Title)
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a task and its slots",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", id)
			return nil
		},
	}
}

func newTaskPhotoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "photo ID REF",
		Short: "Attach a photo reference (path or URL) to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.AddPhoto(ctx, id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d photo(s)\n", t.Title, len(t.Photos))
			return nil
		},
	}
}

func newTaskPurgeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete every completed task",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Tasks.PurgeCompleted(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d completed task(s)\n", n)
			return nil
		},
	}
}

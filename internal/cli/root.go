package cli

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/pacer/internal/calendar"
	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/feed"
	"github.com/alexanderramin/pacer/internal/service"
	"github.com/spf13/cobra"
)

// SlotPusher mirrors a snapshot's slots into an external calendar.
type SlotPusher interface {
	Push(ctx context.Context, snap domain.Snapshot, fromDate string) (calendar.PushResult, error)
}

// App holds the services and collaborators used by CLI commands.
type App struct {
	UserID string
	Now    func() time.Time

	Tasks     service.TaskService
	Schedule  service.ScheduleService
	Records   service.RecordService
	Dashboard service.DashboardService
	Notify    service.ConfigService
	Import    service.ImportService
	Snapshots feed.Source

	// IsInteractive reports whether stdin is a terminal; forms and the
	// watch view only run when it is.
	IsInteractive func() bool

	// Optional long-running and external integrations, wired by main.
	Serve        func(ctx context.Context) error
	Calendar     func(ctx context.Context) (SlotPusher, error)
	CalendarAuth func(ctx context.Context, in io.Reader, out io.Writer) error
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) today() string {
	return domain.DateOf(a.now())
}

// NewRootCmd creates the top-level "pacer" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pacer",
		Short:         "Task tracker that forecasts effort and keeps your plan honest",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTaskCmd(app),
		newSlotCmd(app),
		newRecordCmd(app),
		newTodayCmd(app),
		newStatusCmd(app),
		newNotifyCmd(app),
		newServeCmd(app),
		newCalendarCmd(app),
		newExportCmd(app),
		newImportCmd(app),
	)

	return root
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/pacer/internal/calendar"
	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/feed"
	"github.com/alexanderramin/pacer/internal/notify"
	"github.com/alexanderramin/pacer/internal/repository"
	"github.com/alexanderramin/pacer/internal/service"
	"github.com/alexanderramin/pacer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cliNow = time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	tasks := repository.NewSQLiteTaskRepo(database)
	slots := repository.NewSQLiteScheduleRepo(database)
	configs := repository.NewSQLiteNotificationConfigRepo(database)

	clock := func() time.Time { return cliNow }
	opts := []service.Option{service.WithClock(clock)}
	notifySvc := service.NewConfigService(configs, opts...)

	return &App{
		UserID:    testutil.DefaultUserID,
		Now:       clock,
		Tasks:     service.NewTaskService(tasks, opts...),
		Schedule:  service.NewScheduleService(slots, uow, opts...),
		Records:   service.NewRecordService(tasks, slots, uow, &notify.Recorder{}, opts...),
		Dashboard: service.NewDashboardService(tasks, slots, opts...),
		Notify:    notifySvc,
		Import:    service.NewImportService(uow, opts...),
		Snapshots: feed.NewStoreSource(tasks, slots, notifySvc),
		// Calendar and Serve left nil: not configured.
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// seedTask creates a task through the CLI and returns its ID.
func seedTask(t *testing.T, app *App, title string) string {
	t.Helper()
	_, err := executeCmd(t, app, "task", "add", "--title", title, "--hours", "4", "--deadline", "2025-06-20")
	require.NoError(t, err)
	tasks, err := app.Tasks.List(context.Background(), app.UserID, true)
	require.NoError(t, err)
	for _, task := range tasks {
		if task.Title == title {
			return task.ID
		}
	}
	t.Fatalf("task %q not created", title)
	return ""
}

func TestTaskAdd_AndList(t *testing.T) {
	app := testApp(t)
	seedTask(t, app, "Lab report")

	out, err := executeCmd(t, app, "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Lab report")
}

func TestTaskAdd_WithoutTitleFailsWhenNotInteractive(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "task", "add", "--hours", "3")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestTaskEdit_OnlyChangedFields(t *testing.T) {
	app := testApp(t)
	id := seedTask(t, app, "Essay")

	_, err := executeCmd(t, app, "task", "edit", id[:8], "--progress", "40")
	require.NoError(t, err)

	task, err := app.Tasks.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 40, task.Progress)
	assert.Equal(t, "Essay", task.Title)
	assert.Equal(t, 4.0, task.EstimatedHours)
}

func TestTaskRemove_UnknownPrefix(t *testing.T) {
	app := testApp(t)
	seedTask(t, app, "Essay")

	_, err := executeCmd(t, app, "task", "rm", "zzzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no task matches")
}

func TestSlotAdd_RangeAndGrid(t *testing.T) {
	app := testApp(t)
	id := seedTask(t, app, "Thesis")

	out, err := executeCmd(t, app, "slot", "add", id, "--hours", "9-11")
	require.NoError(t, err)
	assert.Contains(t, out, "Booked 3 slot(s) on 2025-06-15")

	out, err = executeCmd(t, app, "slot", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "09:00")
	assert.Contains(t, out, "Thesis")
}

func TestSlotAdd_TakenHour(t *testing.T) {
	app := testApp(t)
	a := seedTask(t, app, "Thesis")
	b := seedTask(t, app, "Essay")

	_, err := executeCmd(t, app, "slot", "add", a, "--hours", "14")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "slot", "add", b, "--hours", "14")
	require.Error(t, err)
}

func TestSlotAdd_RequiresHours(t *testing.T) {
	app := testApp(t)
	id := seedTask(t, app, "Thesis")

	_, err := executeCmd(t, app, "slot", "add", id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--hours")
}

func TestRecord_SlotDerivesTask(t *testing.T) {
	app := testApp(t)
	id := seedTask(t, app, "Thesis")
	ctx := context.Background()

	slot, err := app.Schedule.AddSlot(ctx, app.UserID, id, "2025-06-15", 9)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "record", "--slot", slot.ID[:8], "--hours", "1", "--delta", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded 2025-06-15 09:00")

	task, err := app.Tasks.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 25, task.Progress)
	assert.Equal(t, 1.0, task.TimeSpent)
}

func TestRecord_NeedsTaskOrSlot(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "record", "--hours", "1")
	require.Error(t, err)
}

func TestToday_DoneMarksNextSlot(t *testing.T) {
	app := testApp(t)
	id := seedTask(t, app, "Thesis")
	ctx := context.Background()
	_, err := app.Schedule.AddRange(ctx, app.UserID, id, "2025-06-15", 9, 10)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "today")
	require.NoError(t, err)
	assert.Contains(t, out, "Thesis")

	out, err = executeCmd(t, app, "today", "--done", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded 2025-06-15 09:00")

	view, err := app.Dashboard.Today(ctx, app.UserID)
	require.NoError(t, err)
	require.Len(t, view.Entries, 1)
	assert.False(t, view.Entries[0].AllRecorded)
	assert.True(t, view.Entries[0].Slots[0].Recorded)
}

func TestToday_WatchNeedsTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "today", "--watch")
	require.Error(t, err)
}

func TestStatus(t *testing.T) {
	app := testApp(t)
	seedTask(t, app, "Thesis")

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Thesis")
	assert.Contains(t, out, "need more slots")
}

func TestNotify_ShowAndChange(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "notify", "leads", "24,1")
	require.NoError(t, err)
	assert.Contains(t, out, "1h, 24h")

	out, err = executeCmd(t, app, "notify", "slots", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "off")

	_, err = executeCmd(t, app, "notify", "summary", "7pm")
	require.Error(t, err)

	_, err = executeCmd(t, app, "notify", "slots", "maybe")
	require.Error(t, err)
}

func TestExport_JSONToFile(t *testing.T) {
	app := testApp(t)
	seedTask(t, app, "Thesis")
	path := filepath.Join(t.TempDir(), "tasks.json")

	out, err := executeCmd(t, app, "export", "--format", "json", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 task(s)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
}

func TestExport_CSVToStdout(t *testing.T) {
	app := testApp(t)
	seedTask(t, app, "Thesis")

	out, err := executeCmd(t, app, "export")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Thesis")
}

func TestExport_UnknownFormat(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "export", "--format", "xml")
	require.Error(t, err)
}

type stubPusher struct {
	from string
	snap domain.Snapshot
}

func (p *stubPusher) Push(_ context.Context, snap domain.Snapshot, from string) (calendar.PushResult, error) {
	p.from, p.snap = from, snap
	return calendar.PushResult{Created: len(snap.Slots), Failed: 1}, nil
}

func TestCalendarPush(t *testing.T) {
	app := testApp(t)
	id := seedTask(t, app, "Thesis")
	_, err := app.Schedule.AddSlot(context.Background(), app.UserID, id, "2025-06-16", 9)
	require.NoError(t, err)

	pusher := &stubPusher{}
	app.Calendar = func(context.Context) (SlotPusher, error) { return pusher, nil }

	out, err := executeCmd(t, app, "calendar", "push")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", pusher.from)
	assert.Len(t, pusher.snap.Slots, 1)
	assert.Contains(t, out, "1 created")
	assert.Contains(t, out, "1 slot(s) failed")

	_, err = executeCmd(t, app, "calendar", "push", "--from", "tomorrow")
	require.Error(t, err)
}

func TestCalendar_NotConfigured(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "calendar", "push")
	assert.ErrorIs(t, err, errCalendarDisabled)

	_, err = executeCmd(t, app, "calendar", "auth")
	assert.ErrorIs(t, err, errCalendarDisabled)
}

func TestServe_UsesWiredRunner(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "serve")
	require.Error(t, err)

	boom := errors.New("port in use")
	app.Serve = func(context.Context) error { return boom }
	_, err = executeCmd(t, app, "serve")
	assert.ErrorIs(t, err, boom)
}

func TestImport_FromFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "tasks": [{"ref": "t", "title": "Thesis", "estimated_hours": 8, "deadline": "2025-06-30"}],
  "slots": [{"task_ref": "t", "date": "2025-06-15", "hour": 9}]
}`), 0o600))

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 task(s) and 1 slot(s)")

	out, err = executeCmd(t, app, "today")
	require.NoError(t, err)
	assert.Contains(t, out, "Thesis")
}

func TestImport_ReportsValidationErrors(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tasks": [{"ref": "t", "title": "", "estimated_hours": 1, "deadline": "2025-06-30"}]}`), 0o600))

	_, err := executeCmd(t, app, "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tasks[0].title is required")
}

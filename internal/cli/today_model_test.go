package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/service"
	"github.com/alexanderramin/pacer/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedModel(t *testing.T, app *App, entries ...service.TodayEntry) todayModel {
	t.Helper()
	m := newTodayModel(context.Background(), app, time.Minute)
	next, _ := m.Update(todayLoadedMsg{view: &service.TodayView{Date: "2025-06-15", Entries: entries}})
	return next.(todayModel)
}

func entry(id, title string, allRecorded bool) service.TodayEntry {
	return service.TodayEntry{
		Task:           domain.Task{ID: id, Title: title},
		FirstStartTime: "09:00",
		TargetDelta:    20,
		AllRecorded:    allRecorded,
	}
}

func TestTodayModel_CursorStaysInRange(t *testing.T) {
	m := loadedModel(t, testApp(t), entry("a", "Thesis", false), entry("b", "Essay", false))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(todayModel)
	assert.Equal(t, 0, m.cursor)

	for range 3 {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(todayModel)
	}
	assert.Equal(t, 1, m.cursor)

	// A refresh with fewer entries clamps the cursor.
	next, _ = m.Update(todayLoadedMsg{view: &service.TodayView{Entries: []service.TodayEntry{entry("a", "Thesis", false)}}})
	assert.Equal(t, 0, next.(todayModel).cursor)
}

func TestTodayModel_DoneRecordsSelectedTask(t *testing.T) {
	app := testApp(t)
	id := seedTask(t, app, "Thesis")
	_, err := app.Schedule.AddSlot(context.Background(), app.UserID, id, "2025-06-15", 9)
	require.NoError(t, err)

	m := loadedModel(t, app, entry(id, "Thesis", false))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(todayRecordedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.True(t, msg.outcome.Applied)

	next, reload := m.Update(msg)
	assert.Contains(t, next.(todayModel).status, "Recorded")
	assert.NotNil(t, reload)
}

func TestTodayModel_DoneIgnoredWhenAllRecorded(t *testing.T) {
	m := loadedModel(t, testApp(t), entry("a", "Thesis", true))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	assert.Nil(t, cmd)
}

func TestTodayModel_Quit(t *testing.T) {
	m := loadedModel(t, testApp(t))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTodayModel_View(t *testing.T) {
	m := newTodayModel(context.Background(), testApp(t), 0)
	assert.Contains(t, m.View(), "Loading")
	assert.Equal(t, 30*time.Second, m.interval)

	m = loadedModel(t, testApp(t), entry("a", "Thesis", false))
	view := m.View()
	assert.Contains(t, view, "Thesis")
	assert.Contains(t, view, "next +20%")
}

func TestTodayModel_DrivenSession(t *testing.T) {
	app := testApp(t)
	thesis := seedTask(t, app, "Thesis")
	essay := seedTask(t, app, "Essay")
	ctx := context.Background()
	_, err := app.Schedule.AddRange(ctx, app.UserID, thesis, "2025-06-15", 9, 10)
	require.NoError(t, err)
	_, err = app.Schedule.AddSlot(ctx, app.UserID, essay, "2025-06-15", 13)
	require.NoError(t, err)

	d := teatest.New(t, newTodayModel(ctx, app, time.Hour), teatest.WithSize(100, 30))
	d.DrainInit()
	assert.Contains(t, d.View(), "Thesis")
	assert.Contains(t, d.View(), "Essay")

	d.PressDown()
	d.PressEnter()
	assert.Contains(t, d.View(), "Recorded 2025-06-15 13:00")

	task, err := app.Tasks.Get(ctx, essay)
	require.NoError(t, err)
	assert.Equal(t, 1.0, task.TimeSpent)

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

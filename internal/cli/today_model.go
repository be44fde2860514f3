package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pacer/internal/cli/formatter"
	"github.com/alexanderramin/pacer/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type todayKeyMap struct {
	Up, Down, Done, Refresh, Quit key.Binding
}

var todayKeys = todayKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Done:    key.NewBinding(key.WithKeys("enter", "d"), key.WithHelp("enter", "mark done")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type todayLoadedMsg struct {
	view *service.TodayView
	err  error
}

type todayRecordedMsg struct {
	outcome *service.RecordOutcome
	err     error
}

type todayTickMsg time.Time

// todayModel keeps the today view on screen, refreshing it on a timer and
// letting the user mark the next slot of the selected task as done.
type todayModel struct {
	ctx      context.Context
	app      *App
	interval time.Duration

	view   *service.TodayView
	cursor int
	status string
	err    error
}

func newTodayModel(ctx context.Context, app *App, interval time.Duration) todayModel {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return todayModel{ctx: ctx, app: app, interval: interval}
}

func (m todayModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.tick())
}

func (m todayModel) load() tea.Cmd {
	return func() tea.Msg {
		view, err := m.app.Dashboard.Today(m.ctx, m.app.UserID)
		return todayLoadedMsg{view: view, err: err}
	}
}

func (m todayModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return todayTickMsg(t) })
}

func (m todayModel) record(taskID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.app.Records.QuickRecord(m.ctx, m.app.UserID, taskID)
		return todayRecordedMsg{outcome: out, err: err}
	}
}

func (m todayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case todayLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.view = msg.view
			if n := len(m.view.Entries); m.cursor >= n {
				m.cursor = max(n-1, 0)
			}
		}
		return m, nil

	case todayTickMsg:
		return m, tea.Batch(m.load(), m.tick())

	case todayRecordedMsg:
		switch {
		case msg.err != nil:
			m.status = formatter.StyleRed.Render(msg.err.Error())
		default:
			m.status = strings.TrimRight(formatter.FormatRecordOutcome(msg.outcome), "\n")
		}
		return m, m.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, todayKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, todayKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, todayKeys.Down):
			if m.view != nil && m.cursor < len(m.view.Entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, todayKeys.Refresh):
			return m, m.load()
		case key.Matches(msg, todayKeys.Done):
			if e, ok := m.selected(); ok && !e.AllRecorded {
				return m, m.record(e.Task.ID)
			}
		}
	}
	return m, nil
}

func (m todayModel) selected() (service.TodayEntry, bool) {
	if m.view == nil || m.cursor < 0 || m.cursor >= len(m.view.Entries) {
		return service.TodayEntry{}, false
	}
	return m.view.Entries[m.cursor], true
}

func (m todayModel) View() string {
	var b strings.Builder
	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("error: "+m.err.Error()) + "\n")
	case m.view == nil:
		b.WriteString(formatter.Dim("Loading…") + "\n")
	default:
		b.WriteString(formatter.Header("Today "+m.view.Date) + "\n\n")
		if len(m.view.Entries) == 0 {
			b.WriteString(formatter.Dim("  Nothing planned today.") + "\n")
		}
		for i, e := range m.view.Entries {
			marker := "  "
			if i == m.cursor {
				marker = formatter.StyleBlue.Render("▸ ")
			}
			next := fmt.Sprintf("next +%d%%", e.TargetDelta)
			if e.AllRecorded {
				next = formatter.StyleGreen.Render("done for today")
			}
			b.WriteString(fmt.Sprintf("%s%-24s %s  %s  %s\n",
				marker, e.Task.Title, e.FirstStartTime, formatter.RenderProgress(e.Task.Progress, 12), formatter.Dim(next)))
		}
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + formatter.Dim("↑/↓ select · enter mark done · r refresh · q quit") + "\n")
	return b.String()
}

package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/forecast"
	"github.com/alexanderramin/pacer/internal/planner"
)

// FormatTaskList renders tasks with their forecast, one row each.
func FormatTaskList(tasks []*domain.Task, forecasts map[string]forecast.TaskForecast, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks. Add one with `pacer task add`.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		f := forecasts[t.ID]
		rows = append(rows, []string{
			TruncID(t.ID),
			t.Title,
			RenderProgress(t.Progress, 10),
			FormatHours(f.Remaining),
			strconv.Itoa(f.Slots),
			deadlineCell(*t, now),
			SafeIndicator(f.Safe, t.Completed),
		})
	}
	return RenderTable([]string{"ID", "TASK", "PROGRESS", "LEFT", "SLOTS", "DUE", "PLAN"}, rows)
}

// FormatTaskDetail renders one task with its slots.
func FormatTaskDetail(t *domain.Task, f forecast.TaskForecast, slots []*domain.ScheduleSlot, now time.Time) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim(fmt.Sprintf("%-9s", label)), value))
	}

	b.WriteString(Bold(t.Title) + "\n\n")
	line("ID", TruncID(t.ID))
	line("PLAN", SafeIndicator(f.Safe, t.Completed))
	line("PROGRESS", RenderProgress(t.Progress, 20))
	line("ESTIMATE", FormatHours(t.EstimatedHours))
	line("SPENT", FormatHours(t.TimeSpent))
	line("ABILITY", AbilityStyle(f.Ability).Render(fmt.Sprintf("%.2f", f.Ability)))
	line("LEFT", fmt.Sprintf("%s over %d open slot(s)", FormatHours(f.Remaining), f.Slots))
	line("DUE", deadlineCell(*t, now))
	if len(t.Photos) > 0 {
		line("PHOTOS", strings.Join(t.Photos, ", "))
	}

	if len(slots) > 0 {
		b.WriteString("\n" + Header("Slots") + "\n")
		for _, s := range slots {
			mark := StyleBlue.Render("○")
			if s.Recorded {
				mark = StyleDim.Render("✔")
			}
			b.WriteString(fmt.Sprintf("  %s %s %s  %s\n", mark, s.Date, s.StartTime, TruncID(s.ID)))
		}
	}
	return RenderBox("Task", b.String())
}

// FormatDayGrid renders the planner grid for one day.
func FormatDayGrid(date string, rows []planner.GridRow, titles map[string]string) string {
	var b strings.Builder
	b.WriteString(Header(date) + "\n")
	for _, r := range rows {
		hour := domain.FormatHour(r.Hour)
		if r.Slot == nil {
			b.WriteString(fmt.Sprintf("  %s  %s\n", Dim(hour), Dim("·")))
			continue
		}
		title := titles[r.Slot.TaskID]
		if title == "" {
			title = r.Slot.TaskID
		}
		if r.Slot.Recorded {
			b.WriteString(fmt.Sprintf("  %s  %s %s\n", hour, StyleDim.Render("✔"), StyleDim.Render(title)))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s  %s %s  %s\n", hour, StyleBlue.Render("■"), title, TruncID(r.Slot.ID)))
	}
	return b.String()
}

func deadlineCell(t domain.Task, now time.Time) string {
	due := t.Deadline
	if t.DeadlineTime != "" {
		due += " " + t.DeadlineTime
	}
	if t.Completed {
		return Dim(due)
	}
	at, ok := t.DeadlineAt(now.Location())
	if !ok {
		return due
	}
	return due + " " + DeadlineStyled(at, now)
}

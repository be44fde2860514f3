package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/forecast"
	"github.com/alexanderramin/pacer/internal/planner"
	"github.com/alexanderramin/pacer/internal/service"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func essay() domain.Task {
	return domain.Task{
		ID:             "11111111-2222-3333-4444-555555555555",
		Title:          "Essay",
		EstimatedHours: 10,
		Deadline:       "2025-06-16",
		DeadlineTime:   "17:00",
		Progress:       40,
		TimeSpent:      4,
		Photos:         []string{"draft.jpg"},
	}
}

func TestFormatTaskList(t *testing.T) {
	task := essay()
	out := FormatTaskList([]*domain.Task{&task}, map[string]forecast.TaskForecast{
		task.ID: {TaskID: task.ID, Ability: 1, Remaining: 6, Slots: 2, Safe: false},
	}, now)

	assert.Contains(t, out, "Essay")
	assert.Contains(t, out, "11111111")
	assert.Contains(t, out, "6h")
	assert.Contains(t, out, "2025-06-16 17:00 in 32h")
	assert.Contains(t, out, "SHORT")
}

func TestFormatTaskList_Empty(t *testing.T) {
	assert.Contains(t, FormatTaskList(nil, nil, now), "No tasks")
}

func TestFormatTaskDetail(t *testing.T) {
	task := essay()
	slots := []*domain.ScheduleSlot{
		{ID: "s1", TaskID: task.ID, Date: "2025-06-15", StartTime: "09:00", Recorded: true},
		{ID: "s2", TaskID: task.ID, Date: "2025-06-15", StartTime: "10:00"},
	}
	out := FormatTaskDetail(&task, forecast.TaskForecast{Ability: 1, Remaining: 6, Slots: 1}, slots, now)

	assert.Contains(t, out, "Essay")
	assert.Contains(t, out, "6h over 1 open slot(s)")
	assert.Contains(t, out, "draft.jpg")
	assert.Contains(t, out, "2025-06-15 10:00")
	assert.Contains(t, out, "✔ 2025-06-15 09:00")
}

func TestFormatDayGrid(t *testing.T) {
	rows := []planner.GridRow{
		{Hour: 9, Slot: &domain.ScheduleSlot{ID: "s1", TaskID: "t1", StartTime: "09:00"}},
		{Hour: 10},
		{Hour: 11, Slot: &domain.ScheduleSlot{ID: "s2", TaskID: "t2", StartTime: "11:00", Recorded: true}},
	}
	out := FormatDayGrid("2025-06-15", rows, map[string]string{"t1": "Essay"})

	assert.Contains(t, out, "2025-06-15")
	assert.Contains(t, out, "09:00  ■ Essay")
	assert.Contains(t, out, "10:00  ·")
	assert.Contains(t, out, "t2", "unknown task falls back to its id")
}

func TestFormatToday(t *testing.T) {
	task := essay()
	view := &service.TodayView{Date: "2025-06-15", Entries: []service.TodayEntry{
		{
			Task:        task,
			Slots:       []domain.ScheduleSlot{{StartTime: "09:00", Recorded: true}, {StartTime: "10:00"}},
			TargetDelta: 30,
		},
		{
			Task:        domain.Task{ID: "t2", Title: "Slides", Progress: 100},
			Slots:       []domain.ScheduleSlot{{StartTime: "14:00", Recorded: true}},
			AllRecorded: true,
		},
	}}
	out := FormatToday(view)

	assert.Contains(t, out, "TODAY 2025-06-15")
	assert.Contains(t, out, "+30% per slot")
	assert.Contains(t, out, "09:00✔")
	assert.Contains(t, out, "all slots recorded")
}

func TestFormatToday_Empty(t *testing.T) {
	assert.Contains(t, FormatToday(&service.TodayView{Date: "2025-06-15"}), "Nothing planned today")
}

func TestFormatStatus(t *testing.T) {
	task := essay()
	view := &service.StatusView{
		Summary: forecast.Summary{GlobalAbility: 1.25, TotalRemaining: 6, AchievementPct: 40, UnsafeTaskIDs: []string{task.ID}},
		Tasks:   []service.StatusTask{{Task: task, Forecast: forecast.TaskForecast{Ability: 1.25, Remaining: 4.8, Slots: 1}}},
	}
	out := FormatStatus(view, now)

	assert.Contains(t, out, "1.25")
	assert.Contains(t, out, "6h")
	assert.Contains(t, out, "1 task(s) need more slots")
	assert.Contains(t, out, "4.8h")
}

func TestFormatNotificationConfig(t *testing.T) {
	out := FormatNotificationConfig(domain.NotificationConfig{DeadlineLeadTimes: []int{1, 24}, DailySummaryTime: "08:00"})
	assert.Contains(t, out, "1h, 24h")
	assert.Contains(t, out, "08:00")
	assert.Contains(t, out, "off")

	assert.Contains(t, FormatNotificationConfig(domain.NotificationConfig{EnableSlotReminders: true}), "none")
}

func TestFormatRecordOutcome(t *testing.T) {
	task := essay()
	task.Progress = 100
	task.Completed = true
	out := FormatRecordOutcome(&service.RecordOutcome{
		Applied: true,
		Task:    &task,
		Slot:    &domain.ScheduleSlot{Date: "2025-06-15", StartTime: "09:00"},
		Alert:   &domain.PlanRevisionAlert{Message: "Essay needs 2 more slot(s)", AdditionalSlots: 2, RemainingHours: 3},
	})

	assert.Contains(t, out, "Recorded 2025-06-15 09:00 on Essay")
	assert.Contains(t, out, "Task complete")
	assert.Contains(t, out, "add 2 more")

	assert.Contains(t, FormatRecordOutcome(&service.RecordOutcome{}), "Nothing recorded")
}

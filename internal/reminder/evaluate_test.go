package reminder

import (
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deadlineSnapshot(leads ...int) domain.Snapshot {
	return domain.Snapshot{
		Tasks: []domain.Task{
			{ID: "t1", Title: "Report", Deadline: "2025-06-20", DeadlineTime: "12:00"},
		},
		Config: domain.NotificationConfig{
			Version:           domain.NotificationConfigVersion,
			DeadlineLeadTimes: leads,
			DailySummaryTime:  "08:00",
		},
	}
}

var dueAt = time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

func hoursBefore(h float64) time.Time {
	return dueAt.Add(-time.Duration(h * float64(time.Hour)))
}

func TestEvaluate_DeadlineWindow(t *testing.T) {
	snap := deadlineSnapshot(24)
	fired := NewLedger()

	assert.Empty(t, Evaluate(snap, hoursBefore(24.01), fired), "before the window")

	got := Evaluate(snap, hoursBefore(24.00), fired)
	require.Len(t, got, 1)
	assert.Equal(t, "deadline-t1-24", got[0].Tag)
	assert.Equal(t, fmt.Sprintf("deadline-t1-24-%d", dueAt.Unix()), got[0].Key)
	assert.Contains(t, got[0].Title, "24h")
	fired.Add(got[0].Key)

	assert.Empty(t, Evaluate(snap, hoursBefore(23.99), fired), "next tick must not re-fire")
	assert.Empty(t, Evaluate(snap, hoursBefore(23.97), NewLedger()), "window has passed")
}

func TestEvaluate_RescheduledDeadlineFiresAgain(t *testing.T) {
	snap := deadlineSnapshot(24)
	fired := NewLedger()

	first := Evaluate(snap, hoursBefore(24), fired)
	require.Len(t, first, 1)
	fired.Add(first[0].Key)

	snap.Tasks[0].Deadline = "2025-06-27"
	newDue := time.Date(2025, 6, 27, 12, 0, 0, 0, time.UTC)
	got := Evaluate(snap, newDue.Add(-24*time.Hour), fired)
	require.Len(t, got, 1)
	assert.Equal(t, first[0].Tag, got[0].Tag)
	assert.NotEqual(t, first[0].Key, got[0].Key)
	fired.Add(got[0].Key)

	assert.Empty(t, Evaluate(snap, newDue.Add(-24*time.Hour), fired))
}

func TestEvaluate_EachLeadTimeFiresIndependently(t *testing.T) {
	snap := deadlineSnapshot(1, 24, 24)
	got := Evaluate(snap, hoursBefore(1), nil)
	require.Len(t, got, 1)
	assert.Equal(t, DeadlineTag("t1", 1), got[0].Tag)
}

func TestEvaluate_CompletedTasksAreSilent(t *testing.T) {
	snap := deadlineSnapshot(24)
	snap.Tasks[0].Completed = true
	assert.Empty(t, Evaluate(snap, hoursBefore(24), nil))
}

func TestEvaluate_DailySummary(t *testing.T) {
	snap := domain.Snapshot{
		Tasks: []domain.Task{{ID: "a", Title: "Essay"}, {ID: "b", Title: "Slides"}},
		Slots: []domain.ScheduleSlot{
			{ID: "s1", TaskID: "a", Date: "2025-06-15", StartTime: "10:00"},
			{ID: "s2", TaskID: "b", Date: "2025-06-15", StartTime: "11:00"},
			{ID: "s3", TaskID: "a", Date: "2025-06-15", StartTime: "12:00", Recorded: true},
		},
		Config: domain.NotificationConfig{DailySummaryTime: "08:00"},
	}
	at := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

	got := Evaluate(snap, at, nil)
	require.Len(t, got, 1)
	assert.Equal(t, TagDailySummary, got[0].Tag)
	assert.Equal(t, "daily-summary-2025-06-15", got[0].Key)
	assert.Contains(t, got[0].Body, "2 slot(s)")
	assert.Contains(t, got[0].Body, "Essay")
	assert.Contains(t, got[0].Body, "Slides")

	assert.Empty(t, Evaluate(snap, at.Add(time.Minute), nil), "only at the configured minute")

	snap.Slots = snap.Slots[2:]
	assert.Empty(t, Evaluate(snap, at, nil), "no open slot today, no summary")
}

func TestEvaluate_SlotStart(t *testing.T) {
	snap := domain.Snapshot{
		Tasks: []domain.Task{{ID: "a", Title: "Essay"}},
		Slots: []domain.ScheduleSlot{
			{ID: "s1", TaskID: "a", Date: "2025-06-15", StartTime: "10:00"},
			{ID: "s2", TaskID: "ghost", Date: "2025-06-15", StartTime: "11:00"},
		},
		Config: domain.NotificationConfig{EnableSlotReminders: true},
	}
	at := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	got := Evaluate(snap, at, nil)
	require.Len(t, got, 1)
	assert.Equal(t, TagSlotStart, got[0].Tag)
	assert.Equal(t, "slot-start-s1", got[0].Key)
	assert.Contains(t, got[0].Body, "Essay")

	assert.Empty(t, Evaluate(snap, at.Add(time.Minute), nil), "only on the hour")
	assert.Empty(t, Evaluate(snap, at.Add(time.Hour), nil), "slot for a missing task is skipped")

	snap.Config.EnableSlotReminders = false
	assert.Empty(t, Evaluate(snap, at, nil))
}

func TestEvaluate_RecordedSlotDoesNotRemind(t *testing.T) {
	snap := domain.Snapshot{
		Tasks:  []domain.Task{{ID: "a", Title: "Essay"}},
		Slots:  []domain.ScheduleSlot{{ID: "s1", TaskID: "a", Date: "2025-06-15", StartTime: "10:00", Recorded: true}},
		Config: domain.NotificationConfig{EnableSlotReminders: true},
	}
	assert.Empty(t, Evaluate(snap, time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC), nil))
}

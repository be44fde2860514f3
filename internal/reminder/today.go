// Package reminder groups today's work and evaluates time-based reminders
// against a snapshot and a clock reading. Everything here is pure.
package reminder

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/forecast"
)

// TodayGroup collects one task's slots for today.
type TodayGroup struct {
	TaskID         string
	Slots          []domain.ScheduleSlot
	FirstStartTime string
}

// Unrecorded returns the group's slots that have not been worked yet.
func (g TodayGroup) Unrecorded() []domain.ScheduleSlot {
	var out []domain.ScheduleSlot
	for _, s := range g.Slots {
		if !s.Recorded {
			out = append(out, s)
		}
	}
	return out
}

// GroupToday filters slots to now's date, orders them by start time and groups
// them by task. Groups are ordered by their first slot.
func GroupToday(snap domain.Snapshot, now time.Time) []TodayGroup {
	today := domain.DateOf(now)
	var todays []domain.ScheduleSlot
	for _, s := range snap.Slots {
		if s.Date == today {
			todays = append(todays, s)
		}
	}
	sort.SliceStable(todays, func(i, j int) bool {
		return todays[i].StartTime < todays[j].StartTime
	})

	index := make(map[string]int)
	var groups []TodayGroup
	for _, s := range todays {
		i, ok := index[s.TaskID]
		if !ok {
			i = len(groups)
			index[s.TaskID] = i
			groups = append(groups, TodayGroup{TaskID: s.TaskID, FirstStartTime: s.StartTime})
		}
		groups[i].Slots = append(groups[i].Slots, s)
	}
	return groups
}

// TargetDelta is the progress step suggested for one "mark done" on a slot:
// the task's outstanding percentage spread over all its unrecorded slots, on
// any day. Zero when the task is unknown or has no open slots.
func TargetDelta(snap domain.Snapshot, taskID string) int {
	task, ok := snap.Task(taskID)
	if !ok {
		return 0
	}
	open := forecast.AllocatedSlots(snap.Slots, taskID)
	if open == 0 {
		return 0
	}
	outstanding := 100 - domain.ClampProgress(task.Progress)
	return int(math.Ceil(float64(outstanding) / float64(open)))
}

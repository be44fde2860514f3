package forecast

import "github.com/alexanderramin/pacer/internal/domain"

// Epsilon is the tolerance, in hours, applied when comparing slots to the
// forecast.
const Epsilon = 0.1

// AllocatedSlots counts the task's slots that have not been recorded yet.
func AllocatedSlots(slots []domain.ScheduleSlot, taskID string) int {
	n := 0
	for _, s := range slots {
		if s.TaskID == taskID && !s.Recorded {
			n++
		}
	}
	return n
}

// IsSafe reports whether allocated slots cover the remaining forecast.
func IsSafe(allocated int, remaining float64) bool {
	return float64(allocated) >= remaining-Epsilon
}

// TaskForecast is the derived planning state of one task.
type TaskForecast struct {
	TaskID    string
	Ability   float64
	Remaining float64
	Slots     int
	Safe      bool
}

// Forecast derives the planning state of every task in the snapshot. Nothing
// here is cached; callers recompute on each read.
func Forecast(snap domain.Snapshot) map[string]TaskForecast {
	abilities := EstimateAbility(snap.Tasks)
	out := make(map[string]TaskForecast, len(snap.Tasks))
	for _, t := range snap.Tasks {
		rem := TaskRemaining(t, abilities)
		slots := AllocatedSlots(snap.Slots, t.ID)
		out[t.ID] = TaskForecast{
			TaskID:    t.ID,
			Ability:   abilities.For(t.ID),
			Remaining: rem,
			Slots:     slots,
			Safe:      IsSafe(slots, rem),
		}
	}
	return out
}

package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
)

// RecordCommand reports work done on a task, optionally against one slot.
type RecordCommand struct {
	SlotID        string // empty for ad-hoc logging
	TaskID        string
	ActualHours   float64
	ProgressDelta int
}

// RecordResult is the outcome of Record. When Applied is false the command
// referenced something missing from the snapshot and nothing changed.
type RecordResult struct {
	Applied  bool
	Snapshot domain.Snapshot
	Task     domain.Task
	Slot     *domain.ScheduleSlot
	Alert    *domain.PlanRevisionAlert
}

// Record applies a work recording to snap and decides whether the plan for the
// task just became insufficient. The after-state is derived from the values
// computed here, never from a re-read, so a lagging store cannot flip the
// decision. Negative or non-finite deltas count as zero.
func Record(snap domain.Snapshot, cmd RecordCommand, now time.Time) RecordResult {
	task, ok := snap.Task(cmd.TaskID)
	if !ok {
		return RecordResult{Snapshot: snap}
	}

	var slot *domain.ScheduleSlot
	if cmd.SlotID != "" {
		s, ok := snap.Slot(cmd.SlotID)
		if !ok || s.Recorded || s.TaskID != task.ID {
			return RecordResult{Snapshot: snap}
		}
		slot = &s
	}

	// Before.
	abilities := EstimateAbility(snap.Tasks)
	currentRemaining := TaskRemaining(task, abilities)
	currentSlots := AllocatedSlots(snap.Slots, task.ID)
	wasSafe := IsSafe(currentSlots, currentRemaining)

	// New state.
	hours := domain.SanitizeHours(cmd.ActualHours)
	delta := cmd.ProgressDelta
	if delta < 0 {
		delta = 0
	} else if delta > 100 {
		delta = 100
	}
	newTime := domain.SanitizeHours(task.TimeSpent) + hours
	newProgress := domain.ClampProgress(task.Progress + delta)
	complete := newProgress >= 100

	updated := task.Clone()
	updated.TimeSpent = newTime
	updated.Progress = newProgress
	updated.Completed = complete
	updated.UpdatedAt = now

	next := snap.WithTask(updated)
	if slot != nil {
		slot.Recorded = true
		next = next.WithSlot(*slot)
	}

	// After, from local values only.
	newAbility := LocalAbility(updated.EstimatedHours, newProgress, newTime, abilities.Global)
	newRemaining := RemainingHours(updated.EstimatedHours, newProgress, newAbility)
	newSlots := currentSlots
	if slot != nil {
		newSlots--
	}

	res := RecordResult{Applied: true, Snapshot: next, Task: updated, Slot: slot}
	if !complete && wasSafe && float64(newSlots) < newRemaining-Epsilon {
		need := int(math.Ceil(newRemaining - float64(newSlots)))
		res.Alert = &domain.PlanRevisionAlert{
			TaskID:          task.ID,
			TaskTitle:       task.Title,
			AdditionalSlots: need,
			RemainingHours:  newRemaining,
			Slots:           newSlots,
			Message: fmt.Sprintf("Pace on %q dropped and the plan no longer covers it: add %d more one-hour slot(s).",
				task.Title, need),
		}
	}
	return res
}

package forecast

import (
	"math"

	"github.com/alexanderramin/pacer/internal/domain"
)

// Abilities holds the global efficiency ratio and the per-task ratios derived
// from it. A ratio above 1 means work goes faster than estimated.
type Abilities struct {
	Global float64
	ByTask map[string]float64
}

// For returns the ability for taskID, falling back to Global.
func (a Abilities) For(taskID string) float64 {
	if v, ok := a.ByTask[taskID]; ok {
		return v
	}
	return a.Global
}

// EstimateAbility computes the global ratio of completed estimated scope to
// hours spent across every task with recorded time, and a local ratio per task.
// With no recorded time at all the global ratio is 1.0.
func EstimateAbility(tasks []domain.Task) Abilities {
	var doneScope, spent float64
	for _, t := range tasks {
		ts := domain.SanitizeHours(t.TimeSpent)
		if ts <= 0 {
			continue
		}
		doneScope += completedScope(t.EstimatedHours, t.Progress)
		spent += ts
	}

	global := 1.0
	if spent > 0 {
		global = doneScope / spent
	}
	if math.IsNaN(global) || math.IsInf(global, 0) || global < 0 {
		global = 1.0
	}

	byTask := make(map[string]float64, len(tasks))
	for _, t := range tasks {
		byTask[t.ID] = LocalAbility(t.EstimatedHours, t.Progress, t.TimeSpent, global)
	}
	return Abilities{Global: global, ByTask: byTask}
}

// LocalAbility is a task's own ratio when it has both recorded time and
// progress; otherwise the global ratio.
func LocalAbility(estimatedHours float64, progress int, timeSpent, global float64) float64 {
	ts := domain.SanitizeHours(timeSpent)
	if ts <= 0 || domain.ClampProgress(progress) <= 0 {
		return global
	}
	return completedScope(estimatedHours, progress) / ts
}

func completedScope(estimatedHours float64, progress int) float64 {
	return domain.SanitizeHours(estimatedHours) * float64(domain.ClampProgress(progress)) / 100
}

// Package export writes a user's tasks and their forecast to CSV or JSON.
package export

import (
	"math"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/forecast"
)

// TaskRecord is the flattened, serialisable form of a task and its forecast.
type TaskRecord struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	EstimatedHours float64  `json:"estimated_hours"`
	Deadline       string   `json:"deadline"`
	DeadlineTime   string   `json:"deadline_time,omitempty"`
	Progress       int      `json:"progress"`
	TimeSpent      float64  `json:"time_spent"`
	Completed      bool     `json:"completed"`
	Photos         []string `json:"photos,omitempty"`
	Ability        float64  `json:"ability"`
	RemainingHours float64  `json:"remaining_hours"`
	OpenSlots      int      `json:"open_slots"`
	Safe           bool     `json:"safe"`
	CreatedAt      string   `json:"created_at"`
}

func NewTaskRecord(t domain.Task, f forecast.TaskForecast) TaskRecord {
	return TaskRecord{
		ID:             t.ID,
		Title:          t.Title,
		EstimatedHours: t.EstimatedHours,
		Deadline:       t.Deadline,
		DeadlineTime:   t.DeadlineTime,
		Progress:       t.Progress,
		TimeSpent:      t.TimeSpent,
		Completed:      t.Completed,
		Photos:         t.Photos,
		Ability:        round2(f.Ability),
		RemainingHours: round2(f.Remaining),
		OpenSlots:      f.Slots,
		Safe:           f.Safe,
		CreatedAt:      t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Records builds one record per task in snapshot order.
func Records(snap domain.Snapshot) []TaskRecord {
	summary := forecast.Summarize(snap)
	out := make([]TaskRecord, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		out = append(out, NewTaskRecord(t, summary.Tasks[t.ID]))
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/google/uuid"
)

// Plan holds the domain objects produced from a schema, ready for persistence.
type Plan struct {
	Tasks []*domain.Task
	Slots []*domain.ScheduleSlot
}

// Convert transforms a validated PlanSchema into tasks and slots owned by
// userID. Call ValidatePlanSchema first; Convert assumes the schema is valid.
func Convert(schema *PlanSchema, userID string, now time.Time) (*Plan, error) {
	plan := &Plan{
		Tasks: make([]*domain.Task, 0, len(schema.Tasks)),
		Slots: make([]*domain.ScheduleSlot, 0, len(schema.Slots)),
	}

	refMap := make(map[string]string, len(schema.Tasks)) // ref -> UUID

	for _, ti := range schema.Tasks {
		task := &domain.Task{
			ID:             uuid.New().String(),
			UserID:         userID,
			Title:          strings.TrimSpace(ti.Title),
			EstimatedHours: domain.SanitizeHours(ti.EstimatedHours),
			Deadline:       ti.Deadline,
			DeadlineTime:   ti.DeadlineTime,
			Photos:         append([]string(nil), ti.Photos...),
			CreatedAt:      now,
		}
		task.SetProgress(domain.Deref(0, ti.Progress), domain.Deref(0.0, ti.TimeSpent), now)
		refMap[ti.Ref] = task.ID
		plan.Tasks = append(plan.Tasks, task)
	}

	for _, si := range schema.Slots {
		taskID, ok := refMap[si.TaskRef]
		if !ok {
			return nil, fmt.Errorf("task_ref %q not found for slot %s %02d:00", si.TaskRef, si.Date, si.Hour)
		}
		plan.Slots = append(plan.Slots, &domain.ScheduleSlot{
			ID:        uuid.New().String(),
			UserID:    userID,
			TaskID:    taskID,
			Date:      si.Date,
			StartTime: domain.FormatHour(si.Hour),
			Recorded:  si.Recorded,
			CreatedAt: now,
		})
	}

	return plan, nil
}

package service

import (
	"context"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/forecast"
	"github.com/alexanderramin/pacer/internal/importer"
)

type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, userID string, includeCompleted bool) ([]*domain.Task, error)
	Edit(ctx context.Context, id string, in EditTaskInput) (*domain.Task, error)
	Complete(ctx context.Context, id string) (*domain.Task, error)
	AddPhoto(ctx context.Context, id, ref string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	PurgeCompleted(ctx context.Context, userID string) (int, error)
}

type ScheduleService interface {
	AddSlot(ctx context.Context, userID, taskID, date string, hour int) (*domain.ScheduleSlot, error)
	AddRange(ctx context.Context, userID, taskID, date string, from, to int) ([]*domain.ScheduleSlot, error)
	List(ctx context.Context, userID string) ([]*domain.ScheduleSlot, error)
	ListByDate(ctx context.Context, userID, date string) ([]*domain.ScheduleSlot, error)
	Delete(ctx context.Context, id string) error
}

type RecordService interface {
	Record(ctx context.Context, userID string, cmd forecast.RecordCommand) (*RecordOutcome, error)
	QuickRecord(ctx context.Context, userID, taskID string) (*RecordOutcome, error)
}

type DashboardService interface {
	Today(ctx context.Context, userID string) (*TodayView, error)
	Status(ctx context.Context, userID string) (*StatusView, error)
}

type ConfigService interface {
	Get(ctx context.Context, userID string) (domain.NotificationConfig, error)
	SetLeadTimes(ctx context.Context, userID string, leads []int) (domain.NotificationConfig, error)
	SetDailySummary(ctx context.Context, userID, clock string) (domain.NotificationConfig, error)
	SetSlotReminders(ctx context.Context, userID string, enabled bool) (domain.NotificationConfig, error)
}

// ImportService loads a whole task plan from a JSON file in one transaction.
type ImportService interface {
	ImportFile(ctx context.Context, userID, path string) (*ImportResult, error)
	ImportSchema(ctx context.Context, userID string, schema *importer.PlanSchema) (*ImportResult, error)
}

type ImportResult struct {
	TaskCount int
	SlotCount int
}

// CreateTaskInput carries raw user input; Hours is parsed leniently.
type CreateTaskInput struct {
	UserID       string
	Title        string
	Hours        string
	Deadline     string // defaults to today
	DeadlineTime string
}

// EditTaskInput changes only the non-nil fields.
type EditTaskInput struct {
	Title          *string
	EstimatedHours *float64
	Deadline       *string
	DeadlineTime   *string
	Progress       *int
	TimeSpent      *float64
}

// RecordOutcome reports what a recording changed. Applied is false when the
// referenced task or slot was not available and nothing was written.
type RecordOutcome struct {
	Applied bool
	Task    *domain.Task
	Slot    *domain.ScheduleSlot
	Alert   *domain.PlanRevisionAlert
}

// TodayEntry is one task's block in the today view.
type TodayEntry struct {
	Task           domain.Task
	Slots          []domain.ScheduleSlot
	FirstStartTime string
	TargetDelta    int
	AllRecorded    bool
	NextSlotID     string
}

type TodayView struct {
	Date    string
	Entries []TodayEntry
}

type StatusTask struct {
	Task     domain.Task
	Forecast forecast.TaskForecast
}

type StatusView struct {
	Summary forecast.Summary
	Tasks   []StatusTask
}

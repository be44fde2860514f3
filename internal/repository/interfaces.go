package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
)

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByUser(ctx context.Context, userID string, includeCompleted bool) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	DeleteCompleted(ctx context.Context, userID string) (int, error)
}

type ScheduleRepo interface {
	Create(ctx context.Context, s *domain.ScheduleSlot) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleSlot, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.ScheduleSlot, error)
	ListByDate(ctx context.Context, userID, date string) ([]*domain.ScheduleSlot, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.ScheduleSlot, error)
	// MarkRecorded flips an open slot to recorded. A missing or already
	// recorded slot yields ErrNotFound.
	MarkRecorded(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// NotificationConfigRepo stores the raw, versioned config payload per user.
// Decoding and migration belong to the reminder package.
type NotificationConfigRepo interface {
	Get(ctx context.Context, userID string) ([]byte, error)
	Put(ctx context.Context, userID string, payload []byte) error
}

// FiredReminderRepo is the persistent dedupe ledger for reminders.
type FiredReminderRepo interface {
	ListKeys(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, key string, firedAt time.Time) error
	PruneBefore(ctx context.Context, cutoff time.Time) (int, error)
}

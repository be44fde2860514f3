package testutil

import (
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/google/uuid"
)

// DefaultUserID is the owner given to fixtures unless overridden.
const DefaultUserID = "user-test"

// Task options
type TaskOption func(*domain.Task)

func WithEstimate(hours float64) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedHours = hours
	}
}

func WithProgress(progress int, timeSpent float64) TaskOption {
	return func(t *domain.Task) {
		t.Progress = progress
		t.TimeSpent = timeSpent
		t.Completed = progress >= 100
	}
}

func WithDeadline(date, clock string) TaskOption {
	return func(t *domain.Task) {
		t.Deadline = date
		t.DeadlineTime = clock
	}
}

func WithTaskUser(userID string) TaskOption {
	return func(t *domain.Task) {
		t.UserID = userID
	}
}

func WithPhotos(refs ...string) TaskOption {
	return func(t *domain.Task) {
		t.Photos = refs
	}
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Task{
		ID:             uuid.New().String(),
		UserID:         DefaultUserID,
		Title:          title,
		EstimatedHours: 10,
		Deadline:       now.AddDate(0, 0, 7).Format(domain.DateLayout),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Slot options
type SlotOption func(*domain.ScheduleSlot)

func WithRecorded() SlotOption {
	return func(s *domain.ScheduleSlot) {
		s.Recorded = true
	}
}

func WithSlotUser(userID string) SlotOption {
	return func(s *domain.ScheduleSlot) {
		s.UserID = userID
	}
}

func NewTestSlot(taskID, date string, hour int, opts ...SlotOption) *domain.ScheduleSlot {
	s := &domain.ScheduleSlot{
		ID:        uuid.New().String(),
		UserID:    DefaultUserID,
		TaskID:    taskID,
		Date:      date,
		StartTime: domain.FormatHour(hour),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

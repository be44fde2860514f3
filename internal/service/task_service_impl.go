package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks repository.TaskRepo
	settings
}

func NewTaskService(tasks repository.TaskRepo, opts ...Option) TaskService {
	return &taskService{tasks: tasks, settings: newSettings(opts)}
}

func (s *taskService) Create(ctx context.Context, in CreateTaskInput) (task *domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": in.UserID}
	defer func() { observe(ctx, s.observer, "create-task", startedAt, fields, err) }()

	if in.UserID == "" {
		return nil, invalid(errors.New("user id is required"))
	}
	now := s.clock()
	task = &domain.Task{
		ID:             uuid.New().String(),
		UserID:         in.UserID,
		Title:          strings.TrimSpace(in.Title),
		EstimatedHours: domain.ParseHours(in.Hours),
		Deadline:       domain.Coalesce(strings.TrimSpace(in.Deadline), domain.DateOf(now)),
		DeadlineTime:   strings.TrimSpace(in.DeadlineTime),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err = task.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err = s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	fields["task_id"] = task.ID
	s.changes.Changed(ctx, task.UserID)
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context, userID string, includeCompleted bool) ([]*domain.Task, error) {
	return s.tasks.ListByUser(ctx, userID, includeCompleted)
}

// Edit is the direct-correction path: progress and time spent are set, not
// added, and completion follows the resulting progress.
func (s *taskService) Edit(ctx context.Context, id string, in EditTaskInput) (task *domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"task_id": id}
	defer func() { observe(ctx, s.observer, "edit-task", startedAt, fields, err) }()

	task, err = s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.clock()

	if in.Title != nil {
		task.Title = strings.TrimSpace(*in.Title)
	}
	if in.EstimatedHours != nil {
		task.EstimatedHours = domain.SanitizeHours(*in.EstimatedHours)
	}
	if in.Deadline != nil {
		task.Deadline = strings.TrimSpace(*in.Deadline)
	}
	if in.DeadlineTime != nil {
		task.DeadlineTime = strings.TrimSpace(*in.DeadlineTime)
	}
	if in.Progress != nil || in.TimeSpent != nil {
		task.SetProgress(domain.Deref(task.Progress, in.Progress), domain.Deref(task.TimeSpent, in.TimeSpent), now)
	}
	task.UpdatedAt = now

	if err = task.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err = s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	fields["progress"] = task.Progress
	s.changes.Changed(ctx, task.UserID)
	return task, nil
}

func (s *taskService) Complete(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	task.MarkComplete(s.clock())
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	s.changes.Changed(ctx, task.UserID)
	return task, nil
}

func (s *taskService) AddPhoto(ctx context.Context, id, ref string) (*domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, invalid(errors.New("photo reference is empty"))
	}
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	task.AddPhoto(ref, s.clock())
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	s.changes.Changed(ctx, task.UserID)
	return task, nil
}

// Delete removes a task together with all of its slots.
func (s *taskService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"task_id": id}
	defer func() { observe(ctx, s.observer, "delete-task", startedAt, fields, err) }()

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err = s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	s.changes.Changed(ctx, task.UserID)
	return nil
}

func (s *taskService) PurgeCompleted(ctx context.Context, userID string) (n int, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID}
	defer func() { observe(ctx, s.observer, "purge-completed", startedAt, fields, err) }()

	n, err = s.tasks.DeleteCompleted(ctx, userID)
	if err != nil {
		return 0, err
	}
	fields["deleted"] = n
	if n > 0 {
		s.changes.Changed(ctx, userID)
	}
	return n, nil
}

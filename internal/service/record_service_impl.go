package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pacer/internal/db"
	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/forecast"
	"github.com/alexanderramin/pacer/internal/notify"
	"github.com/alexanderramin/pacer/internal/reminder"
	"github.com/alexanderramin/pacer/internal/repository"
	"go.uber.org/zap"
)

type recordService struct {
	tasks  repository.TaskRepo
	slots  repository.ScheduleRepo
	uow    db.UnitOfWork
	alerts notify.Dispatcher
	settings
}

func NewRecordService(
	tasks repository.TaskRepo,
	slots repository.ScheduleRepo,
	uow db.UnitOfWork,
	alerts notify.Dispatcher,
	opts ...Option,
) RecordService {
	return &recordService{tasks: tasks, slots: slots, uow: uow, alerts: alerts, settings: newSettings(opts)}
}

// Record applies a work recording. The task write and the slot flip are
// separate statements inside one transaction; the alert decision comes from
// the in-memory transaction, not from re-reading the store. Alert delivery
// failures are logged and do not fail the recording.
func (s *recordService) Record(ctx context.Context, userID string, cmd forecast.RecordCommand) (out *RecordOutcome, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID, "task_id": cmd.TaskID, "slot_id": cmd.SlotID}
	defer func() { observe(ctx, s.observer, "record-work", startedAt, fields, err) }()

	now := s.clock()
	var result forecast.RecordResult
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txSlots := repository.NewSQLiteScheduleRepo(tx)

		snap, err := loadSnapshot(ctx, txTasks, txSlots, userID)
		if err != nil {
			return err
		}
		result = forecast.Record(snap, cmd, now)
		if !result.Applied {
			return nil
		}

		task := result.Task
		if err := txTasks.Update(ctx, &task); err != nil {
			return fmt.Errorf("saving task progress: %w", err)
		}
		if result.Slot != nil {
			if err := txSlots.MarkRecorded(ctx, result.Slot.ID); err != nil {
				return fmt.Errorf("marking slot recorded: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["applied"] = result.Applied
	out = &RecordOutcome{Applied: result.Applied}
	if !result.Applied {
		return out, nil
	}
	task := result.Task
	out.Task, out.Slot, out.Alert = &task, result.Slot, result.Alert
	fields["progress"] = task.Progress
	s.changes.Changed(ctx, userID)

	if result.Alert != nil {
		fields["alert_additional_slots"] = result.Alert.AdditionalSlots
		s.dispatchAlert(ctx, userID, *result.Alert)
	}
	return out, nil
}

func (s *recordService) dispatchAlert(ctx context.Context, userID string, alert domain.PlanRevisionAlert) {
	s.logger.Info("plan revision needed",
		zap.String("user_id", userID),
		zap.String("task_id", alert.TaskID),
		zap.Int("additional_slots", alert.AdditionalSlots),
		zap.Float64("remaining_hours", alert.RemainingHours),
	)
	if s.alerts == nil {
		return
	}
	if err := s.alerts.Dispatch(ctx, userID, alert.Notification()); err != nil {
		s.logger.Warn("dispatching plan revision alert", zap.String("task_id", alert.TaskID), zap.Error(err))
	}
}

// QuickRecord logs one hour against the task's earliest open slot today,
// advancing progress by the per-slot target.
func (s *recordService) QuickRecord(ctx context.Context, userID, taskID string) (*RecordOutcome, error) {
	snap, err := loadSnapshot(ctx, s.tasks, s.slots, userID)
	if err != nil {
		return nil, err
	}
	if _, ok := snap.Task(taskID); !ok {
		return nil, fmt.Errorf("task %s: %w", taskID, repository.ErrNotFound)
	}

	for _, g := range reminder.GroupToday(snap, s.clock()) {
		if g.TaskID != taskID {
			continue
		}
		open := g.Unrecorded()
		if len(open) == 0 {
			break
		}
		return s.Record(ctx, userID, forecast.RecordCommand{
			SlotID:        open[0].ID,
			TaskID:        taskID,
			ActualHours:   1,
			ProgressDelta: reminder.TargetDelta(snap, taskID),
		})
	}
	return nil, fmt.Errorf("task %s: %w", taskID, ErrNoOpenSlot)
}

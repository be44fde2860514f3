package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pacer/internal/db"
	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/planner"
	"github.com/alexanderramin/pacer/internal/repository"
	"github.com/google/uuid"
)

type scheduleService struct {
	slots repository.ScheduleRepo
	uow   db.UnitOfWork
	settings
}

func NewScheduleService(slots repository.ScheduleRepo, uow db.UnitOfWork, opts ...Option) ScheduleService {
	return &scheduleService{slots: slots, uow: uow, settings: newSettings(opts)}
}

func (s *scheduleService) AddSlot(ctx context.Context, userID, taskID, date string, hour int) (*domain.ScheduleSlot, error) {
	slots, err := s.place(ctx, userID, taskID, func(snap domain.Snapshot) ([]planner.Placement, error) {
		p, err := planner.PlaceHour(snap, taskID, date, hour)
		if err != nil {
			return nil, err
		}
		return []planner.Placement{p}, nil
	})
	if err != nil {
		return nil, err
	}
	return slots[0], nil
}

// AddRange books every free hour between from and to inclusive. Hours that
// are already taken are skipped; an empty result is not an error.
func (s *scheduleService) AddRange(ctx context.Context, userID, taskID, date string, from, to int) ([]*domain.ScheduleSlot, error) {
	return s.place(ctx, userID, taskID, func(snap domain.Snapshot) ([]planner.Placement, error) {
		return planner.PlaceRange(snap, taskID, date, from, to)
	})
}

func (s *scheduleService) place(
	ctx context.Context,
	userID, taskID string,
	plan func(domain.Snapshot) ([]planner.Placement, error),
) (created []*domain.ScheduleSlot, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID, "task_id": taskID}
	defer func() { observe(ctx, s.observer, "add-slots", startedAt, fields, err) }()

	now := s.clock()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txSlots := repository.NewSQLiteScheduleRepo(tx)

		snap, err := loadSnapshot(ctx, txTasks, txSlots, userID)
		if err != nil {
			return err
		}
		if _, ok := snap.Task(taskID); !ok {
			return fmt.Errorf("task %s: %w", taskID, repository.ErrNotFound)
		}

		placements, err := plan(snap)
		if err != nil {
			if errors.Is(err, planner.ErrSlotTaken) {
				return err
			}
			return invalid(err)
		}
		for _, p := range placements {
			slot := p.Slot(uuid.New().String(), userID, now)
			if err := txSlots.Create(ctx, &slot); err != nil {
				if errors.Is(err, repository.ErrConflict) {
					return fmt.Errorf("%w: %s %s", ErrSlotTaken, slot.Date, slot.StartTime)
				}
				return err
			}
			created = append(created, &slot)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["created"] = len(created)
	if len(created) > 0 {
		s.changes.Changed(ctx, userID)
	}
	return created, nil
}

func (s *scheduleService) List(ctx context.Context, userID string) ([]*domain.ScheduleSlot, error) {
	return s.slots.ListByUser(ctx, userID)
}

func (s *scheduleService) ListByDate(ctx context.Context, userID, date string) ([]*domain.ScheduleSlot, error) {
	return s.slots.ListByDate(ctx, userID, date)
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.slots.Delete(ctx, id); err != nil {
		return err
	}
	s.changes.Changed(ctx, slot.UserID)
	return nil
}

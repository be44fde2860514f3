// Package feed keeps session snapshots current. A Source loads a full
// snapshot; the Poller and NATSWatcher decide when to load it again.
package feed

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/repository"
)

// Source loads one user's complete snapshot. Every load replaces the
// previous snapshot wholesale.
type Source interface {
	Load(ctx context.Context, userID string) (domain.Snapshot, error)
}

// ConfigReader returns a user's decoded notification config.
// service.ConfigService satisfies it.
type ConfigReader interface {
	Get(ctx context.Context, userID string) (domain.NotificationConfig, error)
}

// StoreSource builds snapshots from the sqlite repositories.
type StoreSource struct {
	tasks   repository.TaskRepo
	slots   repository.ScheduleRepo
	configs ConfigReader
}

func NewStoreSource(tasks repository.TaskRepo, slots repository.ScheduleRepo, configs ConfigReader) *StoreSource {
	return &StoreSource{tasks: tasks, slots: slots, configs: configs}
}

func (s *StoreSource) Load(ctx context.Context, userID string) (domain.Snapshot, error) {
	ts, err := s.tasks.ListByUser(ctx, userID, true)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("loading tasks: %w", err)
	}
	ss, err := s.slots.ListByUser(ctx, userID)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("loading slots: %w", err)
	}
	cfg := domain.DefaultNotificationConfig()
	if s.configs != nil {
		if cfg, err = s.configs.Get(ctx, userID); err != nil {
			return domain.Snapshot{}, fmt.Errorf("loading notification config: %w", err)
		}
	}

	snap := domain.Snapshot{
		UserID: userID,
		Tasks:  make([]domain.Task, 0, len(ts)),
		Slots:  make([]domain.ScheduleSlot, 0, len(ss)),
		Config: cfg,
	}
	for _, t := range ts {
		snap.Tasks = append(snap.Tasks, *t)
	}
	for _, sl := range ss {
		snap.Slots = append(snap.Slots, *sl)
	}
	return snap, nil
}

// StaticSource always returns the same snapshot.
type StaticSource domain.Snapshot

func (s StaticSource) Load(context.Context, string) (domain.Snapshot, error) {
	return domain.Snapshot(s), nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/repository"
	"go.uber.org/zap"
)

// Clock returns the current time in the user's time zone.
type Clock func() time.Time

func SystemClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

// ChangeNotifier is told after every successful write for a user so other
// sessions can refresh their snapshot.
type ChangeNotifier interface {
	Changed(ctx context.Context, userID string)
}

type NoopChangeNotifier struct{}

func (NoopChangeNotifier) Changed(context.Context, string) {}

type settings struct {
	clock    Clock
	changes  ChangeNotifier
	logger   *zap.Logger
	observer UseCaseObserver
}

// Option configures the ambient collaborators shared by all services.
type Option func(*settings)

func WithClock(c Clock) Option {
	return func(s *settings) { s.clock = c }
}

func WithChangeNotifier(n ChangeNotifier) Option {
	return func(s *settings) { s.changes = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

func WithObservers(observers ...UseCaseObserver) Option {
	return func(s *settings) { s.observer = useCaseObserverOrNoop(observers) }
}

func newSettings(opts []Option) settings {
	s := settings{
		clock:    SystemClock(time.Local),
		changes:  NoopChangeNotifier{},
		logger:   zap.NewNop(),
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// loadSnapshot assembles a user's tasks and slots. The notification config
// is left at its defaults; callers that need it read it separately.
func loadSnapshot(ctx context.Context, tasks repository.TaskRepo, slots repository.ScheduleRepo, userID string) (domain.Snapshot, error) {
	ts, err := tasks.ListByUser(ctx, userID, true)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("loading tasks: %w", err)
	}
	ss, err := slots.ListByUser(ctx, userID)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("loading slots: %w", err)
	}
	snap := domain.Snapshot{
		UserID: userID,
		Tasks:  make([]domain.Task, 0, len(ts)),
		Slots:  make([]domain.ScheduleSlot, 0, len(ss)),
		Config: domain.DefaultNotificationConfig(),
	}
	for _, t := range ts {
		snap.Tasks = append(snap.Tasks, *t)
	}
	for _, s := range ss {
		snap.Slots = append(snap.Slots, *s)
	}
	return snap, nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

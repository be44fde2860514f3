// Package session runs one signed-in user's reminder loop over an
// in-memory snapshot.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/feed"
	"github.com/alexanderramin/pacer/internal/forecast"
	"github.com/alexanderramin/pacer/internal/notify"
	"github.com/alexanderramin/pacer/internal/reminder"
	"go.uber.org/zap"
)

const (
	DefaultTickInterval = time.Minute
	// ledgerRetention bounds how long fired keys are kept. Every key embeds
	// a date, slot or lead time that cannot recur after this long.
	ledgerRetention = 30 * 24 * time.Hour
)

var ErrAlreadyStarted = errors.New("session already started")

// LedgerStore persists fired reminder keys across restarts.
// repository.FiredReminderRepo satisfies it.
type LedgerStore interface {
	ListKeys(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, key string, firedAt time.Time) error
	PruneBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// Observer receives reminder and forecast events. metrics.Metrics
// satisfies it.
type Observer interface {
	ReminderFired(n domain.Notification)
	DispatchFailed()
	ObserveSummary(userID string, s forecast.Summary)
}

type Option func(*Session)

func WithTickInterval(d time.Duration) Option {
	return func(s *Session) { s.tickInterval = d }
}

// WithPollInterval enables periodic reloads from the source. Zero disables
// polling, leaving refreshes to Replace.
func WithPollInterval(d time.Duration) Option {
	return func(s *Session) { s.pollInterval = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// Session owns the current snapshot for one user. Readers always see a
// complete snapshot; updates swap the whole value.
type Session struct {
	userID     string
	source     feed.Source
	dispatcher notify.Dispatcher
	store      LedgerStore

	tickInterval time.Duration
	pollInterval time.Duration
	now          func() time.Time
	logger       *zap.Logger
	observer     Observer

	snap atomic.Pointer[domain.Snapshot]

	tickMu sync.Mutex
	fired  reminder.Ledger

	runMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(userID string, source feed.Source, dispatcher notify.Dispatcher, store LedgerStore, opts ...Option) *Session {
	s := &Session{
		userID:       userID,
		source:       source,
		dispatcher:   dispatcher,
		store:        store,
		tickInterval: DefaultTickInterval,
		now:          time.Now,
		logger:       zap.NewNop(),
		fired:        reminder.NewLedger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	empty := domain.Snapshot{UserID: userID, Config: domain.DefaultNotificationConfig()}
	s.snap.Store(&empty)
	return s
}

func (s *Session) UserID() string { return s.userID }

// Snapshot returns the snapshot currently in effect.
func (s *Session) Snapshot() domain.Snapshot {
	return *s.snap.Load()
}

// Replace swaps in a new snapshot. Snapshots for other users are ignored.
func (s *Session) Replace(snap domain.Snapshot) {
	if snap.UserID != "" && snap.UserID != s.userID {
		s.logger.Warn("ignoring snapshot for another user",
			zap.String("user_id", s.userID),
			zap.String("snapshot_user_id", snap.UserID),
		)
		return
	}
	snap.UserID = s.userID
	s.snap.Store(&snap)
	if s.observer != nil {
		s.observer.ObserveSummary(s.userID, forecast.Summarize(snap))
	}
}

// Refresh reloads the snapshot from the source.
func (s *Session) Refresh(ctx context.Context) error {
	snap, err := s.source.Load(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("loading snapshot for %s: %w", s.userID, err)
	}
	s.Replace(snap)
	return nil
}

// Start loads the snapshot and ledger, then runs the reminder tick (and the
// poller, when enabled) until Stop or ctx cancellation.
func (s *Session) Start(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.cancel != nil {
		return ErrAlreadyStarted
	}

	if err := s.Refresh(ctx); err != nil {
		return err
	}
	if err := s.loadLedger(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.tickLoop(runCtx)
	}()

	if s.pollInterval > 0 {
		poller := &feed.Poller{
			Source:   s.source,
			UserID:   s.userID,
			Interval: s.pollInterval,
			OnLoad:   s.Replace,
			Logger:   s.logger,
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			_ = poller.Run(runCtx)
		}()
	}

	s.logger.Info("session started",
		zap.String("user_id", s.userID),
		zap.Duration("tick", s.tickInterval),
		zap.Duration("poll", s.pollInterval),
	)
	return nil
}

// Stop halts the loops and waits for them to exit. It is safe to call on a
// session that was never started, and the session may be started again.
func (s *Session) Stop() {
	s.runMu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	s.logger.Info("session stopped", zap.String("user_id", s.userID))
}

func (s *Session) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx, s.now())
		}
	}
}

// Tick evaluates reminders once against the current snapshot and dispatches
// the ones that have not fired before. It returns what was dispatched.
func (s *Session) Tick(ctx context.Context, now time.Time) []domain.Notification {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	due := reminder.Evaluate(s.Snapshot(), now, s.fired)
	for _, n := range due {
		s.fired.Add(n.Key)
		if s.store != nil {
			if err := s.store.Add(ctx, s.userID, n.Key, now); err != nil {
				s.logger.Warn("persisting fired reminder", zap.String("key", n.Key), zap.Error(err))
			}
		}
		if err := s.dispatcher.Dispatch(ctx, s.userID, n); err != nil {
			s.logger.Error("dispatching reminder",
				zap.String("user_id", s.userID),
				zap.String("tag", n.Tag),
				zap.Error(err),
			)
			if s.observer != nil {
				s.observer.DispatchFailed()
			}
			continue
		}
		if s.observer != nil {
			s.observer.ReminderFired(n)
		}
	}
	return due
}

func (s *Session) loadLedger(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if _, err := s.store.PruneBefore(ctx, s.now().Add(-ledgerRetention)); err != nil {
		s.logger.Warn("pruning fired reminders", zap.Error(err))
	}
	keys, err := s.store.ListKeys(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("loading fired reminders: %w", err)
	}
	s.tickMu.Lock()
	s.fired.Add(keys...)
	s.tickMu.Unlock()
	return nil
}

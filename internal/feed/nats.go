package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// ChangedSubject carries a notice whenever a user's data is written.
func ChangedSubject(userID string) string {
	return fmt.Sprintf("pacer.%s.changed", userID)
}

type changeNotice struct {
	UserID    string    `json:"userId"`
	ChangedAt time.Time `json:"changedAt"`
}

// NATSNotifier publishes a change notice after each service write.
type NATSNotifier struct {
	nc     *nats.Conn
	logger *zap.Logger
}

func NewNATSNotifier(nc *nats.Conn, logger *zap.Logger) *NATSNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NATSNotifier{nc: nc, logger: logger}
}

// Changed never fails the caller; a lost notice only delays the next
// refresh until the poller runs.
func (n *NATSNotifier) Changed(_ context.Context, userID string) {
	data, err := json.Marshal(changeNotice{UserID: userID, ChangedAt: time.Now().UTC()})
	if err == nil {
		err = n.nc.Publish(ChangedSubject(userID), data)
	}
	if err != nil {
		n.logger.Warn("publishing change notice", zap.String("user_id", userID), zap.Error(err))
	}
}

// NATSWatcher reloads a snapshot from its Source whenever a change notice
// arrives for the watched user.
type NATSWatcher struct {
	nc     *nats.Conn
	source Source
	logger *zap.Logger
}

func NewNATSWatcher(nc *nats.Conn, source Source, logger *zap.Logger) *NATSWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NATSWatcher{nc: nc, source: source, logger: logger}
}

// Watch subscribes and returns once the server has acknowledged the
// subscription. The caller unsubscribes to stop watching.
func (w *NATSWatcher) Watch(ctx context.Context, userID string, onLoad func(domain.Snapshot)) (*nats.Subscription, error) {
	sub, err := w.nc.Subscribe(ChangedSubject(userID), func(*nats.Msg) {
		snap, err := w.source.Load(ctx, userID)
		if err != nil {
			w.logger.Warn("reloading snapshot after change", zap.String("user_id", userID), zap.Error(err))
			return
		}
		onLoad(snap)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to changes: %w", err)
	}
	if err := w.nc.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("flushing subscription: %w", err)
	}
	return sub, nil
}

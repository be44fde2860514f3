// Package notify delivers reminders and plan-revision alerts to the user.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Dispatcher hands a notification to a delivery channel. Callers log
// failures; a failed delivery never changes task or schedule state.
type Dispatcher interface {
	Dispatch(ctx context.Context, userID string, n domain.Notification) error
}

// LogDispatcher writes notifications to a zap logger.
type LogDispatcher struct {
	logger *zap.Logger
}

func NewLogDispatcher(logger *zap.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Dispatch(_ context.Context, userID string, n domain.Notification) error {
	d.logger.Info("notification",
		zap.String("user_id", userID),
		zap.String("tag", n.Tag),
		zap.String("title", n.Title),
		zap.String("body", n.Body),
	)
	return nil
}

// Message is the wire form published for each notification.
type Message struct {
	UserID string    `json:"userId"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	Tag    string    `json:"tag"`
	SentAt time.Time `json:"sentAt"`
}

// NotificationSubject is the NATS subject carrying a user's notifications.
func NotificationSubject(userID string) string {
	return fmt.Sprintf("pacer.%s.notifications", userID)
}

// NATSDispatcher publishes notifications as JSON on NotificationSubject.
type NATSDispatcher struct {
	nc  *nats.Conn
	now func() time.Time
}

func NewNATSDispatcher(nc *nats.Conn) *NATSDispatcher {
	return &NATSDispatcher{nc: nc, now: time.Now}
}

func (d *NATSDispatcher) Dispatch(_ context.Context, userID string, n domain.Notification) error {
	data, err := json.Marshal(Message{
		UserID: userID,
		Title:  n.Title,
		Body:   n.Body,
		Tag:    n.Tag,
		SentAt: d.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := d.nc.Publish(NotificationSubject(userID), data); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Fanout delivers to every dispatcher and joins their errors.
type Fanout []Dispatcher

func (f Fanout) Dispatch(ctx context.Context, userID string, n domain.Notification) error {
	var errs []error
	for _, d := range f {
		if d == nil {
			continue
		}
		if err := d.Dispatch(ctx, userID, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps every dispatched notification in memory.
type Recorder struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (r *Recorder) Dispatch(_ context.Context, _ string, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

// Sent returns a copy of everything dispatched so far.
func (r *Recorder) Sent() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification(nil), r.sent...)
}

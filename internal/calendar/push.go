package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
)

// PushResult counts what a push changed.
type PushResult struct {
	Created   int
	Updated   int
	Unchanged int
	Failed    int
}

// Pusher creates or patches one calendar event per schedule slot.
type Pusher struct {
	srv        *gcal.Service
	calendarID string
	loc        *time.Location
	logger     *zap.Logger
}

func NewPusher(srv *gcal.Service, calendarID string, loc *time.Location, logger *zap.Logger) *Pusher {
	if calendarID == "" {
		calendarID = "primary"
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pusher{srv: srv, calendarID: calendarID, loc: loc, logger: logger}
}

// Push mirrors every slot dated fromDate or later. Individual event
// failures are logged and counted; the push continues with the next slot.
func (p *Pusher) Push(ctx context.Context, snap domain.Snapshot, fromDate string) (PushResult, error) {
	var res PushResult
	for _, slot := range snap.Slots {
		if slot.Date < fromDate {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		task, ok := snap.Task(slot.TaskID)
		if !ok {
			continue
		}
		want, err := SlotToEvent(slot, task, p.loc)
		if err != nil {
			p.logger.Warn("skipping slot", zap.String("slot_id", slot.ID), zap.Error(err))
			res.Failed++
			continue
		}
		outcome, err := p.sync(ctx, slot.ID, want)
		if err != nil {
			p.logger.Warn("pushing slot", zap.String("slot_id", slot.ID), zap.Error(err))
			res.Failed++
			continue
		}
		switch outcome {
		case created:
			res.Created++
		case updated:
			res.Updated++
		default:
			res.Unchanged++
		}
	}
	p.logger.Info("calendar push finished",
		zap.String("calendar_id", p.calendarID),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("unchanged", res.Unchanged),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}

type syncOutcome int

const (
	unchanged syncOutcome = iota
	created
	updated
)

func (p *Pusher) sync(ctx context.Context, slotID string, want *gcal.Event) (syncOutcome, error) {
	existing, err := p.findBySlot(ctx, slotID)
	if err != nil {
		return unchanged, err
	}
	if existing == nil {
		if _, err := p.srv.Events.Insert(p.calendarID, want).Context(ctx).Do(); err != nil {
			return unchanged, fmt.Errorf("inserting event: %w", err)
		}
		return created, nil
	}
	if !needsUpdate(existing, want) {
		return unchanged, nil
	}
	if _, err := p.srv.Events.Patch(p.calendarID, existing.Id, want).Context(ctx).Do(); err != nil {
		return unchanged, fmt.Errorf("patching event %s: %w", existing.Id, err)
	}
	return updated, nil
}

func (p *Pusher) findBySlot(ctx context.Context, slotID string) (*gcal.Event, error) {
	events, err := p.srv.Events.List(p.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", SlotProperty, slotID)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("searching for slot event: %w", err)
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}

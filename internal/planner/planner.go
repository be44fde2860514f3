// Package planner places one-hour work slots on a snapshot's calendar.
package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
)

// Planner grid bounds shown when no explicit range is requested.
const (
	DayStartHour = 8
	DayEndHour   = 22
)

var (
	ErrSlotTaken   = errors.New("slot already taken")
	ErrInvalidHour = errors.New("hour must be between 0 and 23")
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

// Placement is a free (date, hour) cell where a slot may be created.
type Placement struct {
	TaskID    string
	Date      string
	StartTime string
}

// Slot materialises the placement with the given identity.
func (p Placement) Slot(id, userID string, now time.Time) domain.ScheduleSlot {
	return domain.ScheduleSlot{
		ID:        id,
		UserID:    userID,
		TaskID:    p.TaskID,
		Date:      p.Date,
		StartTime: p.StartTime,
		CreatedAt: now,
	}
}

// PlaceHour validates a single-hour placement against the snapshot.
func PlaceHour(snap domain.Snapshot, taskID, date string, hour int) (Placement, error) {
	if err := validateDate(date); err != nil {
		return Placement{}, err
	}
	if hour < 0 || hour > 23 {
		return Placement{}, fmt.Errorf("%w: got %d", ErrInvalidHour, hour)
	}
	start := domain.FormatHour(hour)
	if existing, taken := snap.SlotAt(date, start); taken {
		return Placement{}, fmt.Errorf("%w: %s %s is held by task %s", ErrSlotTaken, date, start, existing.TaskID)
	}
	return Placement{TaskID: taskID, Date: date, StartTime: start}, nil
}

// PlaceRange covers every free hour between from and to inclusive, in either
// order. Occupied hours are skipped rather than failing the range.
func PlaceRange(snap domain.Snapshot, taskID, date string, from, to int) ([]Placement, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if from > to {
		from, to = to, from
	}
	if from < 0 || to > 23 {
		return nil, fmt.Errorf("%w: range %d-%d", ErrInvalidHour, from, to)
	}
	var out []Placement
	for h := from; h <= to; h++ {
		p, err := PlaceHour(snap, taskID, date, h)
		if errors.Is(err, ErrSlotTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
		// Later hours in the same range must see this one as taken.
		snap = snap.WithSlot(p.Slot("pending-"+p.StartTime, snap.UserID, time.Time{}))
	}
	return out, nil
}

// GridRow is one hour of a day in the planner grid.
type GridRow struct {
	Hour int
	Slot *domain.ScheduleSlot
}

// DayGrid lays out hours from..to of date with any slot occupying each hour.
func DayGrid(snap domain.Snapshot, date string, from, to int) []GridRow {
	rows := make([]GridRow, 0, to-from+1)
	for h := from; h <= to; h++ {
		row := GridRow{Hour: h}
		if s, ok := snap.SlotAt(date, domain.FormatHour(h)); ok {
			row.Slot = &s
		}
		rows = append(rows, row)
	}
	return rows
}

func validateDate(date string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

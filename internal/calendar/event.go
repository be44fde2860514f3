// Package calendar mirrors schedule slots into a Google Calendar.
package calendar

import (
	"fmt"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	gcal "google.golang.org/api/calendar/v3"
)

// SlotProperty is the private extended property linking an event to a slot.
const SlotProperty = "pacer_slot_id"

// recordedColor is the calendar palette's grey, used for slots already done.
const recordedColor = "8"

// SlotToEvent renders a slot as a one-hour event in loc.
func SlotToEvent(slot domain.ScheduleSlot, task domain.Task, loc *time.Location) (*gcal.Event, error) {
	start, err := slot.StartsAt(loc)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", slot.ID, err)
	}
	end := start.Add(time.Hour)

	ev := &gcal.Event{
		Summary:     task.Title,
		Description: describe(task),
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: loc.String()},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: loc.String()},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{SlotProperty: slot.ID},
		},
		Transparency: "opaque",
	}
	if slot.Recorded {
		ev.ColorId = recordedColor
	}
	return ev, nil
}

func describe(t domain.Task) string {
	d := fmt.Sprintf("Progress %d%% · %.1fh of %.1fh spent · due %s", t.Progress, t.TimeSpent, t.EstimatedHours, t.Deadline)
	if t.DeadlineTime != "" {
		d += " " + t.DeadlineTime
	}
	return d
}

// needsUpdate reports whether the fields pacer owns differ between the
// stored event and the freshly rendered one.
func needsUpdate(existing, want *gcal.Event) bool {
	if existing.Summary != want.Summary || existing.Description != want.Description || existing.ColorId != want.ColorId {
		return true
	}
	return !sameTime(existing.Start, want.Start) || !sameTime(existing.End, want.End)
}

func sameTime(a, b *gcal.EventDateTime) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, errA := time.Parse(time.RFC3339, a.DateTime)
	tb, errB := time.Parse(time.RFC3339, b.DateTime)
	if errA != nil || errB != nil {
		return a.DateTime == b.DateTime
	}
	return ta.Equal(tb)
}

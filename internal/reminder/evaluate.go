package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
)

// LeadWindow is the width, in hours, of the window ending at each lead time.
// It spans just over one minute so a per-minute tick lands in it.
const LeadWindow = 0.02

// Tags understood by the delivery layer.
const (
	TagSlotStart    = "slot-start"
	TagDailySummary = "daily-summary"
)

// DeadlineTag identifies a lead-time reminder for one task.
func DeadlineTag(taskID string, leadHours int) string {
	return fmt.Sprintf("deadline-%s-%d", taskID, leadHours)
}

// DeadlineKey is the ledger key for a lead-time reminder. It carries the
// deadline so a rescheduled task is reminded again.
func DeadlineKey(taskID string, leadHours int, deadline time.Time) string {
	return fmt.Sprintf("%s-%d", DeadlineTag(taskID, leadHours), deadline.Unix())
}

// Evaluate returns the reminders due at now. Reminders whose key is already
// in fired are left out; the caller records the keys of what it dispatches.
func Evaluate(snap domain.Snapshot, now time.Time, fired Ledger) []domain.Notification {
	cfg := snap.Config
	today := domain.DateOf(now)

	var openToday []domain.ScheduleSlot
	for _, s := range snap.Slots {
		if s.Date == today && !s.Recorded {
			openToday = append(openToday, s)
		}
	}

	var out []domain.Notification
	emit := func(n domain.Notification) {
		if fired != nil && fired.Has(n.Key) {
			return
		}
		out = append(out, n)
	}

	if h, m, ok := domain.ParseClock(cfg.DailySummaryTime); ok &&
		now.Hour() == h && now.Minute() == m && len(openToday) > 0 {
		emit(dailySummary(snap, openToday, today))
	}

	leads := domain.NormalizeLeadTimes(cfg.DeadlineLeadTimes)
	for _, t := range snap.Tasks {
		if t.Completed {
			continue
		}
		deadline, ok := t.DeadlineAt(now.Location())
		if !ok {
			continue
		}
		left := deadline.Sub(now).Hours()
		for _, l := range leads {
			lead := float64(l)
			if left > lead-LeadWindow && left <= lead {
				emit(domain.Notification{
					Title: fmt.Sprintf("Due in %dh", l),
					Body:  fmt.Sprintf("%q is due %s.", t.Title, deadline.Format("Mon Jan 2 15:04")),
					Tag:   DeadlineTag(t.ID, l),
					Key:   DeadlineKey(t.ID, l, deadline),
				})
			}
		}
	}

	if cfg.EnableSlotReminders && now.Minute() == 0 {
		for _, s := range openToday {
			if s.Hour() != now.Hour() {
				continue
			}
			task, ok := snap.Task(s.TaskID)
			if !ok {
				continue
			}
			emit(domain.Notification{
				Title: "Time to start",
				Body:  fmt.Sprintf("%s: %q", s.StartTime, task.Title),
				Tag:   TagSlotStart,
				Key:   TagSlotStart + "-" + s.ID,
			})
		}
	}
	return out
}

func dailySummary(snap domain.Snapshot, open []domain.ScheduleSlot, today string) domain.Notification {
	seen := make(map[string]bool)
	var titles []string
	for _, s := range open {
		if seen[s.TaskID] {
			continue
		}
		seen[s.TaskID] = true
		if t, ok := snap.Task(s.TaskID); ok {
			titles = append(titles, t.Title)
		}
	}
	return domain.Notification{
		Title: "Today's plan",
		Body:  fmt.Sprintf("%d slot(s) planned today: %s", len(open), strings.Join(titles, ", ")),
		Tag:   TagDailySummary,
		Key:   TagDailySummary + "-" + today,
	}
}

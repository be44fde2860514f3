package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar-date format used for deadlines and slot dates.
	DateLayout = "2006-01-02"
	// ClockLayout is the time-of-day format used for deadline times and summaries.
	ClockLayout = "15:04"
)

type Task struct {
	ID             string
	UserID         string
	Title          string
	EstimatedHours float64
	Deadline       string // YYYY-MM-DD
	DeadlineTime   string // optional HH:MM
	Progress       int
	TimeSpent      float64
	Completed      bool
	Photos         []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the fields a task must carry before it is stored.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if t.EstimatedHours <= 0 {
		return fmt.Errorf("estimated hours must be positive, got %v", t.EstimatedHours)
	}
	if _, err := time.Parse(DateLayout, t.Deadline); err != nil {
		return fmt.Errorf("deadline %q must be YYYY-MM-DD", t.Deadline)
	}
	if t.DeadlineTime != "" {
		if _, _, ok := ParseClock(t.DeadlineTime); !ok {
			return fmt.Errorf("deadline time %q must be HH:MM", t.DeadlineTime)
		}
	}
	return nil
}

// SetProgress writes absolute progress and time values. Inputs are clamped and
// completion is derived from the resulting progress.
func (t *Task) SetProgress(progress int, timeSpent float64, now time.Time) {
	t.Progress = ClampProgress(progress)
	t.TimeSpent = SanitizeHours(timeSpent)
	t.Completed = t.Progress >= 100
	t.UpdatedAt = now
}

// MarkComplete is the explicit completion action.
func (t *Task) MarkComplete(now time.Time) {
	t.Progress = 100
	t.Completed = true
	t.UpdatedAt = now
}

func (t *Task) AddPhoto(ref string, now time.Time) {
	t.Photos = append(append([]string(nil), t.Photos...), ref)
	t.UpdatedAt = now
}

// DeadlineAt resolves the deadline to an instant in loc. A deadline without a
// time of day falls at the end of the deadline date. The second return value is
// false when the task has no parseable deadline.
func (t Task) DeadlineAt(loc *time.Location) (time.Time, bool) {
	if t.Deadline == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(DateLayout, t.Deadline, loc)
	if err != nil {
		return time.Time{}, false
	}
	if t.DeadlineTime == "" {
		return day.AddDate(0, 0, 1), true
	}
	h, m, ok := ParseClock(t.DeadlineTime)
	if !ok {
		return day.AddDate(0, 0, 1), true
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, loc), true
}

// Clone returns a copy that shares no slices with t.
func (t Task) Clone() Task {
	c := t
	if t.Photos != nil {
		c.Photos = append([]string(nil), t.Photos...)
	}
	return c
}

// DateOf formats t as a calendar date in its own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

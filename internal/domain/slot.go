package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ScheduleSlot is one allocated hour of calendar time for a task.
type ScheduleSlot struct {
	ID        string
	UserID    string
	TaskID    string
	Date      string // YYYY-MM-DD
	StartTime string // HH:00
	Recorded  bool
	CreatedAt time.Time
}

// FormatHour renders a whole hour as a slot start time ("09:00").
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// Hour returns the slot's start hour, or -1 when StartTime is malformed.
func (s ScheduleSlot) Hour() int {
	head, _, _ := strings.Cut(s.StartTime, ":")
	h, err := strconv.Atoi(head)
	if err != nil || h < 0 || h > 23 {
		return -1
	}
	return h
}

// StartsAt returns the slot's start instant in loc.
func (s ScheduleSlot) StartsAt(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, s.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing slot date: %w", err)
	}
	h := s.Hour()
	if h < 0 {
		return time.Time{}, fmt.Errorf("invalid slot start time %q", s.StartTime)
	}
	return day.Add(time.Duration(h) * time.Hour), nil
}

package domain

import "sort"

// NotificationConfigVersion is the schema version written by this build.
const NotificationConfigVersion = 2

// NotificationConfig controls the reminders evaluated on every tick.
type NotificationConfig struct {
	Version             int    `json:"version"`
	DeadlineLeadTimes   []int  `json:"deadlineLeadTimes"`
	DailySummaryTime    string `json:"dailySummaryTime"`
	EnableSlotReminders bool   `json:"enableSlotReminders"`
}

func DefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		Version:             NotificationConfigVersion,
		DeadlineLeadTimes:   []int{24},
		DailySummaryTime:    "08:00",
		EnableSlotReminders: true,
	}
}

// NormalizeLeadTimes drops non-positive values and duplicates and sorts the
// remainder ascending.
func NormalizeLeadTimes(leads []int) []int {
	seen := make(map[int]bool, len(leads))
	out := make([]int, 0, len(leads))
	for _, l := range leads {
		if l <= 0 || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

// Notification is a message handed to the dispatch layer. Tag is the
// delivery-side dedupe tag; Key identifies the reminder in the fired ledger.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
	Key   string `json:"-"`
}

// PlanRevisionAlert reports that a recording left a previously safe task
// with fewer slots than its forecast needs.
type PlanRevisionAlert struct {
	TaskID          string  `json:"taskId"`
	TaskTitle       string  `json:"taskTitle"`
	AdditionalSlots int     `json:"additionalSlots"`
	RemainingHours  float64 `json:"remainingHours"`
	Slots           int     `json:"slots"`
	Message         string  `json:"message"`
}

// Notification converts the alert into a dispatchable notification.
func (a PlanRevisionAlert) Notification() Notification {
	return Notification{
		Title: "Plan needs more slots",
		Body:  a.Message,
		Tag:   "plan-revision-" + a.TaskID,
		Key:   "plan-revision-" + a.TaskID,
	}
}

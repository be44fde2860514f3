package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/service"
)

func FormatNotificationConfig(cfg domain.NotificationConfig) string {
	leads := make([]string, 0, len(cfg.DeadlineLeadTimes))
	for _, l := range cfg.DeadlineLeadTimes {
		leads = append(leads, fmt.Sprintf("%dh", l))
	}
	leadText := strings.Join(leads, ", ")
	if leadText == "" {
		leadText = Dim("none")
	}
	slots := StyleDim.Render("off")
	if cfg.EnableSlotReminders {
		slots = StyleGreen.Render("on")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("DEADLINE LEADS"), leadText))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("DAILY SUMMARY "), cfg.DailySummaryTime))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("SLOT REMINDERS"), slots))
	return RenderBox("Notifications", b.String())
}

// FormatRecordOutcome reports a recording and any plan revision it caused.
func FormatRecordOutcome(out *service.RecordOutcome) string {
	if out == nil || !out.Applied {
		return Dim("Nothing recorded: the task or slot is no longer available.") + "\n"
	}
	var b strings.Builder
	t := out.Task
	b.WriteString(fmt.Sprintf("Recorded %s on %s: %s, %s spent\n",
		slotLabel(out.Slot), Bold(t.Title), RenderProgress(t.Progress, 10), FormatHours(t.TimeSpent)))
	if t.Completed {
		b.WriteString(StyleGreen.Render("✔ Task complete") + "\n")
	}
	if out.Alert != nil {
		b.WriteString(FormatAlert(*out.Alert))
	}
	return b.String()
}

func FormatAlert(a domain.PlanRevisionAlert) string {
	return StyleRed.Render("▲ "+a.Message) + "\n" +
		Dim(fmt.Sprintf("  %s left, %d open slot(s); add %d more", FormatHours(a.RemainingHours), a.Slots, a.AdditionalSlots)) + "\n"
}

func slotLabel(s *domain.ScheduleSlot) string {
	if s == nil {
		return "work"
	}
	return s.Date + " " + s.StartTime
}

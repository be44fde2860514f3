package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pacer/internal/service"
)

// FormatStatus renders the global forecast summary followed by every task.
func FormatStatus(view *service.StatusView, now time.Time) string {
	var b strings.Builder
	s := view.Summary

	b.WriteString(Header("Status") + "\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("ABILITY   "), AbilityStyle(s.GlobalAbility).Render(fmt.Sprintf("%.2f", s.GlobalAbility))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("REMAINING "), FormatHours(s.TotalRemaining)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("ACHIEVED  "), RenderProgress(s.AchievementPct, 20)))
	if n := len(s.UnsafeTaskIDs); n > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("SHORT     "), StyleRed.Render(fmt.Sprintf("%d task(s) need more slots", n))))
	}
	b.WriteString("\n")

	if len(view.Tasks) == 0 {
		b.WriteString(Dim("No tasks.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(view.Tasks))
	for _, st := range view.Tasks {
		t, f := st.Task, st.Forecast
		rows = append(rows, []string{
			t.Title,
			RenderProgress(t.Progress, 10),
			AbilityStyle(f.Ability).Render(fmt.Sprintf("%.2f", f.Ability)),
			FormatHours(f.Remaining),
			strconv.Itoa(f.Slots),
			deadlineCell(t, now),
			SafeIndicator(f.Safe, t.Completed),
		})
	}
	b.WriteString(RenderTable([]string{"TASK", "PROGRESS", "ABILITY", "LEFT", "SLOTS", "DUE", "PLAN"}, rows))
	return b.String()
}

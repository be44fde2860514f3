package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pacer/internal/service"
)

// FormatToday renders today's slots grouped by task, with the suggested
// progress step for the next "mark done".
func FormatToday(view *service.TodayView) string {
	var b strings.Builder
	b.WriteString(Header("Today "+view.Date) + "\n")
	if len(view.Entries) == 0 {
		b.WriteString(Dim("  Nothing planned today.") + "\n")
		return b.String()
	}
	for _, e := range view.Entries {
		times := make([]string, 0, len(e.Slots))
		for _, s := range e.Slots {
			if s.Recorded {
				times = append(times, StyleDim.Render(s.StartTime+"✔"))
			} else {
				times = append(times, StyleBlue.Render(s.StartTime))
			}
		}
		b.WriteString(fmt.Sprintf("\n  %s  %s\n", Bold(e.Task.Title), TruncID(e.Task.ID)))
		b.WriteString(fmt.Sprintf("    %s\n", strings.Join(times, "  ")))
		b.WriteString(fmt.Sprintf("    %s\n", RenderProgress(e.Task.Progress, 16)))
		if e.AllRecorded {
			b.WriteString("    " + StyleGreen.Render("all slots recorded") + "\n")
			continue
		}
		b.WriteString(fmt.Sprintf("    %s +%d%% per slot\n", Dim("next:"), e.TargetDelta))
	}
	return b.String()
}

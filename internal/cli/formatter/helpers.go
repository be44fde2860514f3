package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDeadline describes how far t is from now in hours or days.
func RelativeDeadline(t, now time.Time) string {
	diff := t.Sub(now)
	hours := diff.Hours()
	switch {
	case hours < 0 && hours > -24:
		return fmt.Sprintf("%dh overdue", int(math.Ceil(-hours)))
	case hours <= -24:
		return fmt.Sprintf("%dd overdue", int(math.Round(-hours/24)))
	case hours < 1:
		return fmt.Sprintf("in %dm", int(diff.Minutes()))
	case hours < 48:
		return fmt.Sprintf("in %dh", int(hours))
	default:
		return fmt.Sprintf("in %dd", int(math.Round(hours/24)))
	}
}

// DeadlineStyled colors RelativeDeadline by urgency.
func DeadlineStyled(t, now time.Time) string {
	text := RelativeDeadline(t, now)
	hours := t.Sub(now).Hours()
	switch {
	case hours < 24:
		return StyleRed.Render(text)
	case hours < 72:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatHours renders an hour amount with at most one decimal: "2h", "1.5h".
func FormatHours(h float64) string {
	if h <= 0 || math.IsNaN(h) {
		return "0h"
	}
	return strconv.FormatFloat(math.Round(h*10)/10, 'f', -1, 64) + "h"
}

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pacer/internal/cli/formatter"
	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pacerHuhTheme returns a huh theme using the formatter palette.
func pacerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

type taskFormValues struct {
	Title        string
	Hours        string
	Deadline     string
	DeadlineTime string
}

// taskForm collects the fields of a new task.
func taskForm(v *taskFormValues, today string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&v.Title).
				Validate(validateTitle),
			huh.NewInput().
				Title("Estimated hours").
				Placeholder("10").
				Value(&v.Hours).
				Validate(validateHours),
			huh.NewInput().
				Title("Deadline (YYYY-MM-DD)").
				Placeholder(today).
				Value(&v.Deadline).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Due time (HH:MM, blank for end of day)").
				Value(&v.DeadlineTime).
				Validate(validateOptionalClock),
		),
	).WithTheme(pacerHuhTheme()).WithShowHelp(false)
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

func validateHours(s string) error {
	if domain.ParseHours(s) <= 0 {
		return fmt.Errorf("enter a positive number of hours")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func validateOptionalClock(s string) error {
	if s == "" {
		return nil
	}
	if _, _, ok := domain.ParseClock(s); !ok {
		return fmt.Errorf("use HH:MM format")
	}
	return nil
}

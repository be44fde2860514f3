package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeDeadline(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"minutes", now.Add(30 * time.Minute), "in 30m"},
		{"hours", now.Add(5 * time.Hour), "in 5h"},
		{"just under two days", now.Add(47 * time.Hour), "in 47h"},
		{"days", now.Add(5 * 24 * time.Hour), "in 5d"},
		{"hours overdue", now.Add(-3 * time.Hour), "3h overdue"},
		{"days overdue", now.Add(-72 * time.Hour), "3d overdue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDeadline(tt.input, now))
		})
	}
}

func TestDeadlineStyled_KeepsText(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	assert.Contains(t, DeadlineStyled(now.Add(2*time.Hour), now), "in 2h")
	assert.Contains(t, DeadlineStyled(now.Add(100*time.Hour), now), "in 4d")
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0h"},
		{-2, "0h"},
		{2, "2h"},
		{1.5, "1.5h"},
		{1.04, "1h"},
		{3.333, "3.3h"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatHours(tt.input))
		})
	}
}

func TestTruncID(t *testing.T) {
	id := "a1b2c3d4-e5f6-7890-abcd-ef1234567890"
	got := TruncID(id)
	assert.Contains(t, got, "a1b2c3d4")
	assert.NotContains(t, got, "e5f6")

	assert.Contains(t, TruncID("short"), "short")
}

func TestSafeIndicator(t *testing.T) {
	assert.Contains(t, SafeIndicator(true, false), "SAFE")
	assert.Contains(t, SafeIndicator(false, false), "SHORT")
	assert.Contains(t, SafeIndicator(false, true), "DONE")
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("TEST", "content here")
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderBoxWithoutTitle(t *testing.T) {
	result := RenderBox("", "just content")
	assert.Contains(t, result, "just content")
	assert.Contains(t, result, "╭")
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"A", "LONGER"}, [][]string{{"wide cell", "x"}, {"y"}})
	assert.Contains(t, out, "wide cell")
	assert.Contains(t, out, "LONGER")
	assert.Contains(t, out, "─────────")
	assert.Empty(t, RenderTable(nil, nil))
}

package domain

import (
	"math"
	"strconv"
	"strings"
)

// SanitizeHours coerces NaN, infinities and negative values to 0.
func SanitizeHours(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return 0
	}
	return h
}

// ClampProgress bounds a percentage to [0, 100].
func ClampProgress(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// ParseHours reads an hour quantity from collaborator input. Anything that is
// not a finite non-negative number becomes 0.
func ParseHours(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return SanitizeHours(v)
}

// ParsePercent reads a percentage from collaborator input. Fractions are
// truncated; unparseable or negative input becomes 0.
func ParsePercent(s string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

// ParseClock parses "HH:MM" into hour and minute.
func ParseClock(s string) (hour, minute int, ok bool) {
	hs, ms, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, 0, false
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// hourRange is a --hours flag value: a single hour ("9", "09:00") or an
// inclusive range ("9-12", "14:00-11:00"). Ranges may be given backwards.
type hourRange struct {
	from, to int
	set      bool
}

var _ pflag.Value = (*hourRange)(nil)

func (r *hourRange) String() string {
	if !r.set {
		return ""
	}
	if r.from == r.to {
		return strconv.Itoa(r.from)
	}
	return fmt.Sprintf("%d-%d", r.from, r.to)
}

func (r *hourRange) Set(s string) error {
	head, tail, isRange := strings.Cut(strings.TrimSpace(s), "-")
	from, err := parseHour(head)
	if err != nil {
		return err
	}
	to := from
	if isRange {
		if to, err = parseHour(tail); err != nil {
			return err
		}
	}
	r.from, r.to, r.set = from, to, true
	return nil
}

func (r *hourRange) Type() string { return "hours" }

func (r *hourRange) single() bool { return r.from == r.to }

func parseHour(s string) (int, error) {
	s = strings.TrimSpace(s)
	if h, rest, ok := strings.Cut(s, ":"); ok {
		if rest != "00" {
			return 0, fmt.Errorf("slots start on the hour, got %q", s)
		}
		s = h
	}
	h, err := strconv.Atoi(s)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("hour must be 0-23, got %q", s)
	}
	return h, nil
}

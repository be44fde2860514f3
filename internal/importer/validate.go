package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
)

// ValidatePlanSchema checks the whole file before anything is converted.
// Returns a slice of all validation errors found.
func ValidatePlanSchema(schema *PlanSchema) []error {
	var errs []error

	if len(schema.Tasks) == 0 {
		errs = append(errs, fmt.Errorf("tasks: at least one task is required"))
	}

	refs := make(map[string]bool, len(schema.Tasks))
	for i, t := range schema.Tasks {
		errs = append(errs, validateTask(fmt.Sprintf("tasks[%d]", i), t, refs)...)
	}

	booked := make(map[string]bool, len(schema.Slots))
	for i, s := range schema.Slots {
		errs = append(errs, validateSlot(fmt.Sprintf("slots[%d]", i), s, refs, booked)...)
	}

	return errs
}

func validateTask(path string, t TaskImport, refs map[string]bool) []error {
	var errs []error

	switch {
	case t.Ref == "":
		errs = append(errs, fmt.Errorf("%s.ref is required", path))
	case refs[t.Ref]:
		errs = append(errs, fmt.Errorf("%s.ref %q is used twice", path, t.Ref))
	default:
		refs[t.Ref] = true
	}
	if strings.TrimSpace(t.Title) == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", path))
	}
	if t.EstimatedHours <= 0 {
		errs = append(errs, fmt.Errorf("%s.estimated_hours must be positive", path))
	}
	if _, err := time.Parse(domain.DateLayout, t.Deadline); err != nil {
		errs = append(errs, fmt.Errorf("%s.deadline: invalid date format %q (expected YYYY-MM-DD)", path, t.Deadline))
	}
	if t.DeadlineTime != "" {
		if _, _, ok := domain.ParseClock(t.DeadlineTime); !ok {
			errs = append(errs, fmt.Errorf("%s.deadline_time: invalid time %q (expected HH:MM)", path, t.DeadlineTime))
		}
	}
	if t.Progress != nil && (*t.Progress < 0 || *t.Progress > 100) {
		errs = append(errs, fmt.Errorf("%s.progress must be 0-100, got %d", path, *t.Progress))
	}
	if t.TimeSpent != nil && *t.TimeSpent < 0 {
		errs = append(errs, fmt.Errorf("%s.time_spent must not be negative", path))
	}

	return errs
}

func validateSlot(path string, s SlotImport, refs, booked map[string]bool) []error {
	var errs []error

	if !refs[s.TaskRef] {
		errs = append(errs, fmt.Errorf("%s.task_ref %q does not name a task", path, s.TaskRef))
	}
	dateOK := true
	if _, err := time.Parse(domain.DateLayout, s.Date); err != nil {
		errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", path, s.Date))
		dateOK = false
	}
	if s.Hour < 0 || s.Hour > 23 {
		errs = append(errs, fmt.Errorf("%s.hour must be 0-23, got %d", path, s.Hour))
	} else if dateOK {
		key := s.Date + " " + domain.FormatHour(s.Hour)
		if booked[key] {
			errs = append(errs, fmt.Errorf("%s: %s is booked twice", path, key))
		}
		booked[key] = true
	}

	return errs
}

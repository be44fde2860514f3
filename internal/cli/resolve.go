package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveTaskID accepts a full task ID or a unique prefix of one.
func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	tasks, err := app.Tasks.List(ctx, app.UserID, true)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return matchPrefix("task", input, ids)
}

// resolveSlotID accepts a full slot ID or a unique prefix of one.
func resolveSlotID(ctx context.Context, app *App, input string) (string, error) {
	slots, err := app.Schedule.List(ctx, app.UserID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.ID)
	}
	return matchPrefix("slot", input, ids)
}

func matchPrefix(kind, input string, ids []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d %ss, use more characters", input, len(matches), kind)
	}
}

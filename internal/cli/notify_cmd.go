package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pacer/internal/cli/formatter"
	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/spf13/cobra"
)

func newNotifyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Show or change reminder settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Notify.Get(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}
			return printNotificationConfig(cmd, cfg)
		},
	}

	cmd.AddCommand(
		newNotifyLeadsCmd(app),
		newNotifySummaryCmd(app),
		newNotifySlotsCmd(app),
	)

	return cmd
}

func printNotificationConfig(cmd *cobra.Command, cfg domain.NotificationConfig) error {
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNotificationConfig(cfg))
	return nil
}

func newNotifyLeadsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "leads HOURS",
		Short:   "Set deadline reminder lead times, comma separated",
		Example: "  pacer notify leads 24,3,1",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			leads, err := parseLeadTimes(args[0])
			if err != nil {
				return err
			}
			cfg, err := app.Notify.SetLeadTimes(cmd.Context(), app.UserID, leads)
			if err != nil {
				return err
			}
			return printNotificationConfig(cmd, cfg)
		},
	}
}

func newNotifySummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "summary HH:MM",
		Short:   "Set the time of the daily summary",
		Example: "  pacer notify summary 07:30",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Notify.SetDailySummary(cmd.Context(), app.UserID, args[0])
			if err != nil {
				return err
			}
			return printNotificationConfig(cmd, cfg)
		},
	}
}

func newNotifySlotsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "slots on|off",
		Short:     "Turn slot start reminders on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var enabled bool
			switch strings.ToLower(args[0]) {
			case "on", "true", "yes":
				enabled = true
			case "off", "false", "no":
			default:
				return fmt.Errorf("expected on or off, got %q", args[0])
			}
			cfg, err := app.Notify.SetSlotReminders(cmd.Context(), app.UserID, enabled)
			if err != nil {
				return err
			}
			return printNotificationConfig(cmd, cfg)
		},
	}
}

// parseLeadTimes reads "24,1" style input. An empty string clears the list.
func parseLeadTimes(s string) ([]int, error) {
	var leads []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "h"))
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("lead time %q must be a positive number of hours", part)
		}
		leads = append(leads, n)
	}
	return leads, nil
}

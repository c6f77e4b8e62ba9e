package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rinna/internal/api"
)

func newNotifyCommand(ctx *commandContext) *cobra.Command {
	notifyCmd := &cobra.Command{
		Use:   "notify",
		Short: "Read and manage notifications",
	}

	notifyCmd.AddCommand(newNotifyListCommand(ctx))
	notifyCmd.AddCommand(newNotifySummaryCommand(ctx))
	notifyCmd.AddCommand(newNotifyReadCommand(ctx))
	notifyCmd.AddCommand(newNotifyReadAllCommand(ctx))
	notifyCmd.AddCommand(newNotifyPruneCommand(ctx))

	return notifyCmd
}

// notifyUser resolves the user whose log a notify command operates on: an
// explicit --user flag wins over the acting user.
func notifyUser(ctx *commandContext, userFlag string) string {
	if userFlag != "" {
		return userFlag
	}
	return ctx.actor()
}

func newNotifyListCommand(ctx *commandContext) *cobra.Command {
	var userFlag string
	var unreadOnly bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			entries, err := api.ListNotifications(cmd.Context(), cfg, notifyUser(ctx, userFlag), unreadOnly)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No notifications")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, n := range entries {
				read := ""
				if !n.Read {
					read = "*"
				}
				rows = append(rows, []string{
					read,
					n.ID,
					n.Type,
					truncate(n.Message, 50),
					formatTime(n.CreatedAt),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"", "ID", "Type", "Message", "Created"},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "User whose notifications to list (defaults to the actor)")
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only unread notifications")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newNotifySummaryCommand(ctx *commandContext) *cobra.Command {
	var userFlag string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the unread notification digest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			summary, err := api.NotificationSummary(cmd.Context(), cfg, notifyUser(ctx, userFlag))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, summary)
			}
			out := cmd.OutOrStdout()
			if summary.Total == 0 {
				fmt.Fprintf(out, "No unread notifications for %s\n", summary.User)
				return nil
			}
			fmt.Fprintf(out, "%d unread notification(s) for %s\n", summary.Total, summary.User)
			for _, n := range summary.Preview {
				fmt.Fprintf(out, "  [%s] %s\n", n.Type, n.Message)
			}
			if summary.Total > len(summary.Preview) {
				fmt.Fprintf(out, "  ... and %d more\n", summary.Total-len(summary.Preview))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "User to summarize (defaults to the actor)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newNotifyReadCommand(ctx *commandContext) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "read <notification-id>",
		Short: "Mark one notification read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			user := notifyUser(ctx, userFlag)
			found, err := api.MarkNotificationRead(cmd.Context(), cfg, user, args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("notification %s not found for %s", args[0], user)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s read\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "User whose notification to mark (defaults to the actor)")
	return cmd
}

func newNotifyReadAllCommand(ctx *commandContext) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "read-all",
		Short: "Mark all notifications read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			marked, err := api.MarkAllNotificationsRead(cmd.Context(), cfg, notifyUser(ctx, userFlag))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %d notification(s) read\n", marked)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "User whose notifications to mark (defaults to the actor)")
	return cmd
}

func newNotifyPruneCommand(ctx *commandContext) *cobra.Command {
	var userFlag string
	var days int
	var all bool
	var includeUnread bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove old notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if days < 0 {
				return fmt.Errorf("invalid age: %d days", days)
			}
			if days == 0 {
				days = cfg.Notifications.PruneAfterDays
			}
			if days <= 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Pruning is disabled (prune_after_days = 0)")
				return nil
			}
			user := notifyUser(ctx, userFlag)
			if all {
				user = ""
			}
			pruned, err := api.PruneNotifications(cmd.Context(), cfg, user,
				time.Duration(days)*24*time.Hour, !includeUnread)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d notification(s) older than %d day(s)\n", pruned, days)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "User whose log to prune (defaults to the actor)")
	cmd.Flags().IntVar(&days, "days", 0, "Prune entries older than this many days (defaults to configuration)")
	cmd.Flags().BoolVar(&all, "all", false, "Prune every user's log")
	cmd.Flags().BoolVar(&includeUnread, "include-unread", false, "Also prune unread notifications")
	return cmd
}

package cli

import (
	"github.com/spf13/cobra"
)

func newNotificationsCmd() *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notifs"},
		Short:   "List your notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.RequireRole(cmd.Context(), "")
			if err != nil {
				return err
			}

			list, err := client.API.ListNotifications(cmd.Context(), user.ID, unreadOnly)
			if err != nil {
				return apiFailure(err, "Failed to load notifications. Please try again.")
			}

			output(cmd).Print(list)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only unread notifications")

	cmd.AddCommand(newNotificationsReadCmd())
	cmd.AddCommand(newNotificationsReadAllCmd())

	return cmd
}

func newNotificationsReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.RequireRole(cmd.Context(), ""); err != nil {
				return err
			}

			if _, err := client.API.MarkNotificationRead(cmd.Context(), args[0]); err != nil {
				return apiFailure(err, "Failed to update notification. Please try again.")
			}

			output(cmd).PrintMessage("Notification marked as read")
			return nil
		},
	}
}

func newNotificationsReadAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.RequireRole(cmd.Context(), "")
			if err != nil {
				return err
			}

			if _, err := client.API.MarkAllNotificationsRead(cmd.Context(), user.ID); err != nil {
				return apiFailure(err, "Failed to update notifications. Please try again.")
			}

			output(cmd).PrintMessage("All notifications marked as read")
			return nil
		},
	}
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/sportfinder/internal/model"
)

func newGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Game chat commands",
	}

	cmd.AddCommand(newGroupsListCmd())
	cmd.AddCommand(newGroupsMessagesCmd())
	cmd.AddCommand(newGroupsSendCmd())

	return cmd
}

func newGroupsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your chat groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.RequireRole(cmd.Context(), model.RolePlayer)
			if err != nil {
				return err
			}

			list, err := client.API.ListGroups(cmd.Context(), user.ID)
			if err != nil {
				return apiFailure(err, "Failed to load your groups. Please try again.")
			}

			output(cmd).Print(list)
			return nil
		},
	}
}

func newGroupsMessagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages <group-id>",
		Short: "Show a group's messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.RequireRole(cmd.Context(), model.RolePlayer); err != nil {
				return err
			}

			list, err := client.API.ListMessages(cmd.Context(), args[0])
			if err != nil {
				return apiFailure(err, "Failed to load messages. Please try again.")
			}

			output(cmd).Print(list)
			return nil
		},
	}
}

func newGroupsSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <group-id> <message...>",
		Short: "Send a message to a group",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.RequireRole(cmd.Context(), model.RolePlayer)
			if err != nil {
				return err
			}

			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return invalid("Message cannot be empty")
			}

			if _, err := client.API.SendMessage(cmd.Context(), args[0], user.ID, text); err != nil {
				return apiFailure(err, "Failed to send message. Please try again.")
			}

			output(cmd).PrintMessage("Message sent")
			return nil
		},
	}
}

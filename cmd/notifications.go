package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	notificationsMaxID string
	notificationsClear bool
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Read or clear notifications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		notifications := e.notifications()
		if notificationsClear {
			if err := notifications.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Notifications cleared.")
			return nil
		}

		page, err := notifications.Page(cmd.Context(), notificationsMaxID)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, n := range page.Notifications {
			writeNotification(out, n)
		}
		if page.NextMaxID != "" {
			fmt.Fprintln(out, metaStyle.Render("next page: --max-id "+page.NextMaxID))
		}
		return nil
	},
}

func init() {
	notificationsCmd.Flags().StringVar(&notificationsMaxID, "max-id", "", "Page backward from this notification ID")
	notificationsCmd.Flags().BoolVar(&notificationsClear, "clear", false, "Dismiss all notifications")
	rootCmd.AddCommand(notificationsCmd)
}

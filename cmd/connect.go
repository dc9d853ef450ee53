package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect [instance]",
	Short: "Connect a Mastodon account via OAuth",
	Long: `Registers this app with the instance (or reuses a prior registration),
opens the authorization page in your browser, and exchanges the returned
code for an access token. The instance defaults to the configured one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		instance := e.cfg.Instance
		if len(args) == 1 {
			instance = args[0]
		}

		session, err := e.flow().Login(cmd.Context(), instance)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Connected as @%s on %s\n",
			session.Account.Username, session.Account.InstanceURL)
		return nil
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Forget the current session",
	Long: `Removes the access token, instance URL, and cached account. OAuth app
registrations are kept, so reconnecting to the same instance skips
registration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		if err := e.credentials.ClearAuth(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Disconnected.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
}

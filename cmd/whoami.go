package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiLive bool

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the connected account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		if whoamiLive {
			account, err := e.accounts().VerifyCredentials(cmd.Context())
			if err != nil {
				return err
			}
			writeAccount(cmd.OutOrStdout(), account)
			return nil
		}

		cached, err := e.credentials.AccountCache()
		if err != nil {
			return err
		}
		if cached == nil {
			return fmt.Errorf("no cached account; run with --live or connect first")
		}
		writeAccount(cmd.OutOrStdout(), *cached)
		return nil
	},
}

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiLive, "live", false, "Verify credentials against the instance instead of using the cache")
	rootCmd.AddCommand(whoamiCmd)
}

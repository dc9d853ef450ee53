package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profilePostsMaxID string

var profileCmd = &cobra.Command{
	Use:   "profile <account-id>",
	Short: "Show a profile and its recent posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		accounts := e.accounts()
		account, err := accounts.Account(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		writeAccount(out, account)
		fmt.Fprintln(out)

		page, err := accounts.Statuses(cmd.Context(), args[0], profilePostsMaxID)
		if err != nil {
			return err
		}
		writeTimelinePage(out, page)
		return nil
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit-profile",
	Short: "Update display name and bio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		bio, _ := cmd.Flags().GetString("bio")
		if name == "" && bio == "" {
			return fmt.Errorf("nothing to update: pass --name and/or --bio")
		}

		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		account, err := e.accounts().UpdateProfile(cmd.Context(), name, bio)
		if err != nil {
			return err
		}
		writeAccount(cmd.OutOrStdout(), account)
		return nil
	},
}

func followCmd(use, short string, follow bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <account-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			accounts := e.accounts()
			action := accounts.Unfollow
			if follow {
				action = accounts.Follow
			}
			rel, err := action(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "following: %v\n", rel.Following)
			return nil
		},
	}
}

func init() {
	profileCmd.Flags().StringVar(&profilePostsMaxID, "max-id", "", "Page backward from this post ID")
	editProfileCmd.Flags().String("name", "", "New display name")
	editProfileCmd.Flags().String("bio", "", "New bio")
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(editProfileCmd)
	rootCmd.AddCommand(followCmd("follow", "Follow an account", true))
	rootCmd.AddCommand(followCmd("unfollow", "Unfollow an account", false))
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Manage timeline lists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		lists, err := e.lists().All(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(lists) == 0 {
			fmt.Fprintln(out, "No lists.")
			return nil
		}
		for _, l := range lists {
			fmt.Fprintf(out, "%s  %s  %s\n", l.ID, authorStyle.Render(l.Title),
				metaStyle.Render("replies: "+l.RepliesPolicy))
		}
		return nil
	},
}

var listsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		list, err := e.lists().Create(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created list %s (%s)\n", list.Title, list.ID)
		return nil
	},
}

var listsRemoveCmd = &cobra.Command{
	Use:   "rm <list-id>",
	Short: "Delete a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		if err := e.lists().Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
		return nil
	},
}

func init() {
	listsCmd.AddCommand(listsCreateCmd)
	listsCmd.AddCommand(listsRemoveCmd)
	rootCmd.AddCommand(listsCmd)
}

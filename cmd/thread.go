package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var threadCmd = &cobra.Command{
	Use:   "thread <post-id>",
	Short: "Show a post with its ancestors and replies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		statuses := e.statuses()
		post, err := statuses.Status(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		ancestors, descendants, err := statuses.Context(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range ancestors {
			writePost(out, p)
		}
		fmt.Fprintln(out, authorStyle.Render("---"))
		writePost(out, post)
		fmt.Fprintln(out, authorStyle.Render("---"))
		for _, p := range descendants {
			writePost(out, p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(threadCmd)
}

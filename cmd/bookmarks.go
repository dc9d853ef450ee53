package cmd

import (
	"github.com/spf13/cobra"
)

var bookmarksMaxID string

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Read bookmarked posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		page, err := e.accounts().Bookmarks(cmd.Context(), bookmarksMaxID)
		if err != nil {
			return err
		}
		writeTimelinePage(cmd.OutOrStdout(), page)
		return nil
	},
}

func init() {
	bookmarksCmd.Flags().StringVar(&bookmarksMaxID, "max-id", "", "Page backward from this post ID")
	rootCmd.AddCommand(bookmarksCmd)
}

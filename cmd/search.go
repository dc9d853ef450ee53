package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchType string

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search accounts, posts, and hashtags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		results, err := e.searcher().Search(cmd.Context(), args[0], searchType)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results.Accounts) > 0 {
			fmt.Fprintln(out, authorStyle.Render("Accounts"))
			for _, a := range results.Accounts {
				fmt.Fprintf(out, "  %s %s  id:%s\n", a.DisplayName, handleStyle.Render(handle(a)), a.ID)
			}
		}
		if len(results.Hashtags) > 0 {
			fmt.Fprintln(out, authorStyle.Render("Hashtags"))
			for _, t := range results.Hashtags {
				fmt.Fprintf(out, "  #%s\n", t.Name)
			}
		}
		if len(results.Posts) > 0 {
			fmt.Fprintln(out, authorStyle.Render("Posts"))
			for _, p := range results.Posts {
				writePost(out, p)
			}
		}
		if len(results.Accounts)+len(results.Hashtags)+len(results.Posts) == 0 {
			fmt.Fprintln(out, "No results.")
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchType, "type", "", "Narrow results: accounts, statuses, or hashtags")
	rootCmd.AddCommand(searchCmd)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trillsocial/trill/app"
	"github.com/trillsocial/trill/domain"
)

// interactionCmd builds one of the status toggle commands. The server is
// the source of truth for repeated toggles; nothing is enforced here.
func interactionCmd(use, short string, pick func(s app.StatusService, undo bool) func(context.Context, string) (domain.Post, error)) *cobra.Command {
	var undoInteraction bool
	cmd := &cobra.Command{
		Use:   use + " <post-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			action := pick(e.statuses(), undoInteraction)
			post, err := action(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: ♥ %d  ⇄ %d\n", post.FavouritesCount, post.ReblogsCount)
			return nil
		},
	}
	cmd.Flags().BoolVar(&undoInteraction, "undo", false, "Reverse the action")
	return cmd
}

func init() {
	rootCmd.AddCommand(interactionCmd("fav", "Favourite a post",
		func(s app.StatusService, undo bool) func(context.Context, string) (domain.Post, error) {
			if undo {
				return s.Unfavourite
			}
			return s.Favourite
		}))
	rootCmd.AddCommand(interactionCmd("boost", "Boost (reblog) a post",
		func(s app.StatusService, undo bool) func(context.Context, string) (domain.Post, error) {
			if undo {
				return s.Unreblog
			}
			return s.Reblog
		}))
	rootCmd.AddCommand(interactionCmd("bookmark", "Bookmark a post",
		func(s app.StatusService, undo bool) func(context.Context, string) (domain.Post, error) {
			if undo {
				return s.Unbookmark
			}
			return s.Bookmark
		}))
}

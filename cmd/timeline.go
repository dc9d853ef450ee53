package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trillsocial/trill/domain"
)

var (
	timelineMaxID string
	timelineLocal bool
)

var timelineCmd = &cobra.Command{
	Use:   "timeline [home|public|tag <hashtag>|list <list-id>]",
	Short: "Read a timeline",
	Long: `Fetches one page of a feed, newest first. Pass --max-id from the
previous page's footer to page backward through older posts.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		feed := "home"
		if len(args) > 0 {
			feed = args[0]
		}

		timelines := e.timelines()
		var page domain.TimelinePage
		switch feed {
		case "home":
			page, err = timelines.Home(cmd.Context(), timelineMaxID)
		case "public":
			page, err = timelines.Public(cmd.Context(), timelineMaxID, timelineLocal)
		case "tag":
			if len(args) != 2 {
				return fmt.Errorf("usage: trill timeline tag <hashtag>")
			}
			page, err = timelines.Hashtag(cmd.Context(), args[1], timelineMaxID)
		case "list":
			if len(args) != 2 {
				return fmt.Errorf("usage: trill timeline list <list-id>")
			}
			page, err = timelines.List(cmd.Context(), args[1], timelineMaxID)
		default:
			return fmt.Errorf("unknown feed %q", feed)
		}
		if err != nil {
			return err
		}

		writeTimelinePage(cmd.OutOrStdout(), page)
		return nil
	},
}

func init() {
	timelineCmd.Flags().StringVar(&timelineMaxID, "max-id", "", "Page backward from this post ID")
	timelineCmd.Flags().BoolVar(&timelineLocal, "local", false, "Restrict the public timeline to local posts")
	rootCmd.AddCommand(timelineCmd)
}

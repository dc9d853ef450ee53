package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trillsocial/trill/domain"
	"github.com/trillsocial/trill/infra/editor"
)

var (
	postReplyTo    string
	postVisibility string
	postSpoiler    string
	postSensitive  bool
	postMedia      []string
)

var postCmd = &cobra.Command{
	Use:   "post [text]",
	Short: "Publish a post (opens $EDITOR when no text is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		var text string
		if len(args) > 0 {
			text = args[0]
		} else {
			text, err = composeInEditor(postReplyTo)
			if err != nil {
				return err
			}
			if text == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Empty post, cancelled.")
				return nil
			}
		}

		draft := domain.StatusDraft{
			Text:        text,
			InReplyToID: postReplyTo,
			Visibility:  postVisibility,
			Sensitive:   postSensitive,
			SpoilerText: postSpoiler,
		}

		media := e.media()
		for _, path := range postMedia {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening media file: %w", err)
			}
			attachment, err := media.Upload(cmd.Context(), f, filepath.Base(path), "")
			f.Close()
			if err != nil {
				return err
			}
			draft.MediaIDs = append(draft.MediaIDs, attachment.ID)
		}

		created, err := e.statuses().Create(cmd.Context(), draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Posted %s\n", created.ID)
		if created.URL != "" {
			fmt.Fprintln(cmd.OutOrStdout(), created.URL)
		}
		return nil
	},
}

var visibilities = []string{"public", "unlisted", "private", "direct"}

// composeInEditor opens $EDITOR on a temp file and returns the composed
// text, empty when the user cancelled.
func composeInEditor(replyTo string) (string, error) {
	env := editor.NewEnvEditor()
	reply := ""
	if replyTo != "" {
		reply = "post " + replyTo
	}
	editCmd, path, err := env.Cmd("", reply)
	if err != nil {
		return "", err
	}
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("running editor: %w", err)
	}
	return env.ReadContent(path)
}

func init() {
	postCmd.Flags().StringVar(&postReplyTo, "reply-to", "", "Post ID to reply to")
	postCmd.Flags().StringVar(&postVisibility, "visibility", "", "One of "+strings.Join(visibilities, ", "))
	postCmd.Flags().StringVar(&postSpoiler, "cw", "", "Content warning text")
	postCmd.Flags().BoolVar(&postSensitive, "sensitive", false, "Mark media as sensitive")
	postCmd.Flags().StringSliceVar(&postMedia, "media", nil, "Media file(s) to attach")
	rootCmd.AddCommand(postCmd)
}

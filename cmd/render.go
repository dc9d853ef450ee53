package cmd

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"

	"github.com/trillsocial/trill/domain"
)

var (
	authorStyle  = lipgloss.NewStyle().Bold(true)
	handleStyle  = lipgloss.NewStyle().Faint(true)
	metaStyle    = lipgloss.NewStyle().Faint(true)
	boostStyle   = lipgloss.NewStyle().Italic(true).Faint(true)
	spoilerStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	stripPolicy = bluemonday.StrictPolicy()
)

// plainText renders server HTML for the terminal: paragraph and line
// breaks become newlines, remaining tags are stripped, entities decoded.
func plainText(htmlContent string) string {
	s := strings.ReplaceAll(htmlContent, "</p>", "\n")
	s = strings.ReplaceAll(s, "<br>", "\n")
	s = strings.ReplaceAll(s, "<br/>", "\n")
	s = strings.ReplaceAll(s, "<br />", "\n")
	s = stripPolicy.Sanitize(s)
	return strings.TrimSpace(html.UnescapeString(s))
}

// truncate shortens s to at most max runes. Cutting on bytes could split
// a multi-byte rune and emit invalid UTF-8.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

func handle(a domain.Account) string {
	return "@" + a.Username
}

func writePost(w io.Writer, p domain.Post) {
	if p.Reblog != nil {
		fmt.Fprintln(w, boostStyle.Render(fmt.Sprintf("%s boosted", p.Account.DisplayName)))
		writePost(w, *p.Reblog)
		return
	}

	fmt.Fprintf(w, "%s %s\n", authorStyle.Render(p.Account.DisplayName), handleStyle.Render(handle(p.Account)))
	if p.SpoilerText != "" {
		fmt.Fprintln(w, spoilerStyle.Render("CW: "+p.SpoilerText))
	}
	fmt.Fprintln(w, plainText(p.Content))
	for _, m := range p.MediaAttachments {
		fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("[%s] %s", m.Type, m.URL)))
	}
	fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("id:%s  %s  ♥ %d  ⇄ %d  ↩ %d",
		p.ID, p.CreatedAt.Local().Format("2006-01-02 15:04"),
		p.FavouritesCount, p.ReblogsCount, p.RepliesCount)))
	fmt.Fprintln(w)
}

func writeTimelinePage(w io.Writer, page domain.TimelinePage) {
	for _, p := range page.Posts {
		writePost(w, p)
	}
	if page.NextMaxID != "" {
		fmt.Fprintln(w, metaStyle.Render("next page: --max-id "+page.NextMaxID))
	} else {
		fmt.Fprintln(w, metaStyle.Render("no more posts"))
	}
}

func writeAccount(w io.Writer, a domain.Account) {
	fmt.Fprintf(w, "%s %s\n", authorStyle.Render(a.DisplayName), handleStyle.Render(handle(a)))
	fmt.Fprintln(w, metaStyle.Render(a.InstanceURL))
	if a.Note != "" {
		fmt.Fprintln(w, plainText(a.Note))
	}
	fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("posts %d  followers %d  following %d",
		a.StatusesCount, a.FollowersCount, a.FollowingCount)))
}

func writeNotification(w io.Writer, n domain.Notification) {
	fmt.Fprintf(w, "%s %s %s\n",
		authorStyle.Render(n.Account.DisplayName),
		n.Type,
		metaStyle.Render(n.CreatedAt.Local().Format("2006-01-02 15:04")))
	if n.Status != nil {
		fmt.Fprintln(w, "  "+truncate(plainText(n.Status.Content), 120))
	}
}

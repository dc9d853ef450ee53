package domain

import "time"

// Post is a Mastodon status normalized into the app's internal schema.
// Content is the server-rendered HTML; callers decide how to display it.
type Post struct {
	ID               string
	URI              string
	URL              string
	Account          Account
	Content          string
	CreatedAt        time.Time
	MediaAttachments []MediaAttachment
	ReblogsCount     int
	FavouritesCount  int
	RepliesCount     int
	Reblogged        bool
	Favourited       bool
	Bookmarked       bool

	// Reblog holds the boosted original when this post is a boost.
	// Nesting is bounded at mapping time; one level is meaningful.
	Reblog *Post

	InReplyToID        string
	InReplyToAccountID string
	Sensitive          bool
	SpoilerText        string
	Visibility         string
	Language           string
}

// Attachment types as reported by the server.
const (
	AttachmentImage = "image"
	AttachmentVideo = "video"
	AttachmentGifv  = "gifv"
	AttachmentAudio = "audio"
)

// MediaAttachment describes one piece of media on a post. ID is set on
// freshly uploaded attachments and is what status creation references.
type MediaAttachment struct {
	ID          string
	URL         string
	Type        string
	Description string
}

// TimelinePage is one page of a feed, paged backward with max_id.
// NextMaxID is the ID of the last post, or empty when the page was empty.
type TimelinePage struct {
	Posts     []Post
	NextMaxID string
}

// StatusDraft is the client-side input for creating a new status.
type StatusDraft struct {
	Text        string
	InReplyToID string
	MediaIDs    []string
	Visibility  string // public, unlisted, private, direct; server default when empty
	Sensitive   bool
	SpoilerText string
}

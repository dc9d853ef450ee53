package domain

import "time"

// Notification types as reported by the server.
const (
	NotificationMention   = "mention"
	NotificationFollow    = "follow"
	NotificationFavourite = "favourite"
	NotificationReblog    = "reblog"
)

// Notification is a Mastodon notification normalized into the app's
// internal schema. Status is nil for types that carry no status, such
// as follows.
type Notification struct {
	ID        string
	Type      string
	CreatedAt time.Time
	Account   Account
	Status    *Post
}

// NotificationPage is one page of notifications, paged backward with
// max_id. NextMaxID is empty when the page was empty.
type NotificationPage struct {
	Notifications []Notification
	NextMaxID     string
}

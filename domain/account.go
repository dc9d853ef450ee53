package domain

// Account is a Mastodon account normalized into the app's internal schema.
// InstanceURL is attached at mapping time from the session context; it is
// not part of the wire payload. The JSON tags are the internal camelCase
// schema used for the persisted account cache, not the wire format.
type Account struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"` // Falls back to Username when the server sends none.
	Avatar         string `json:"avatar"`
	InstanceURL    string `json:"instanceUrl"`
	Note           string `json:"note,omitempty"`
	Header         string `json:"header,omitempty"`
	FollowersCount int    `json:"followersCount"`
	FollowingCount int    `json:"followingCount"`
	StatusesCount  int    `json:"statusesCount"`
	URL            string `json:"url,omitempty"`
	Locked         bool   `json:"locked,omitempty"`
	Discoverable   bool   `json:"discoverable,omitempty"`
	Bot            bool   `json:"bot,omitempty"`
	Following      bool   `json:"following,omitempty"`
}

// Relationship is the minimal result of a follow/unfollow mutation.
type Relationship struct {
	Following bool
}

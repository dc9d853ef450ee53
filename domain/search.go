package domain

// Tag is a hashtag returned by search.
type Tag struct {
	Name string
	URL  string
}

// SearchResults holds the three result groups of /api/v2/search.
type SearchResults struct {
	Accounts []Account
	Posts    []Post
	Hashtags []Tag
}

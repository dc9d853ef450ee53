package domain

// Replies policies for lists.
const (
	RepliesPolicyFollowed = "followed"
	RepliesPolicyList     = "list"
	RepliesPolicyNone     = "none"
)

// List is a user-curated timeline list. RepliesPolicy defaults to "list"
// when the server omits it.
type List struct {
	ID            string
	Title         string
	RepliesPolicy string
}

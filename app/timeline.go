package app

import (
	"context"

	"github.com/trillsocial/trill/domain"
)

// TimelineService fetches feed pages, newest first, paged backward with
// the max_id cursor carried in TimelinePage.NextMaxID.
type TimelineService interface {
	// Home returns posts from accounts the user follows.
	Home(ctx context.Context, maxID string) (domain.TimelinePage, error)

	// Public returns the federated timeline, or only local posts when
	// local is set.
	Public(ctx context.Context, maxID string, local bool) (domain.TimelinePage, error)

	// Hashtag returns posts carrying the given hashtag (without '#').
	Hashtag(ctx context.Context, hashtag, maxID string) (domain.TimelinePage, error)

	// List returns posts from a user-curated list.
	List(ctx context.Context, listID, maxID string) (domain.TimelinePage, error)
}

package app

import (
	"context"

	"github.com/trillsocial/trill/domain"
)

// StatusService reads, publishes, and interacts with individual posts.
// Interaction mutations return the server's updated post; calling the
// same mutation twice defers to server semantics, no client-side
// idempotency is enforced.
type StatusService interface {
	// Status fetches a single post by ID.
	Status(ctx context.Context, id string) (domain.Post, error)

	// Context fetches a post's thread: ancestors and descendants.
	Context(ctx context.Context, id string) (ancestors, descendants []domain.Post, err error)

	// Create publishes a new post from a draft.
	Create(ctx context.Context, draft domain.StatusDraft) (domain.Post, error)

	// Delete removes the user's own post.
	Delete(ctx context.Context, id string) error

	Favourite(ctx context.Context, id string) (domain.Post, error)
	Unfavourite(ctx context.Context, id string) (domain.Post, error)
	Reblog(ctx context.Context, id string) (domain.Post, error)
	Unreblog(ctx context.Context, id string) (domain.Post, error)
	Bookmark(ctx context.Context, id string) (domain.Post, error)
	Unbookmark(ctx context.Context, id string) (domain.Post, error)
}

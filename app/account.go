package app

import (
	"context"

	"github.com/trillsocial/trill/domain"
)

// AccountService provides account lookups and profile management for the
// authenticated session.
type AccountService interface {
	// VerifyCredentials returns the authenticated user's account.
	VerifyCredentials(ctx context.Context) (domain.Account, error)

	// Account fetches any account by ID.
	Account(ctx context.Context, accountID string) (domain.Account, error)

	// Statuses returns one page of an account's posts.
	Statuses(ctx context.Context, accountID, maxID string) (domain.TimelinePage, error)

	// UpdateProfile updates the user's display name and bio. Empty
	// fields are left unchanged, not cleared.
	UpdateProfile(ctx context.Context, displayName, note string) (domain.Account, error)

	Follow(ctx context.Context, accountID string) (domain.Relationship, error)
	Unfollow(ctx context.Context, accountID string) (domain.Relationship, error)

	// Bookmarks returns one page of the user's bookmarked posts.
	Bookmarks(ctx context.Context, maxID string) (domain.TimelinePage, error)
}

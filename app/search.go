package app

import (
	"context"

	"github.com/trillsocial/trill/domain"
)

// SearchService queries accounts, posts, and hashtags.
type SearchService interface {
	// Search runs a query; resultType narrows to "accounts", "statuses",
	// or "hashtags", empty for all.
	Search(ctx context.Context, query, resultType string) (domain.SearchResults, error)
}

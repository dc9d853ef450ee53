package mastodon

import (
	"context"
	"fmt"
	"strconv"

	"github.com/trillsocial/trill/app"
	"github.com/trillsocial/trill/domain"
)

var _ app.SearchService = (*searchService)(nil)

// searchService implements app.SearchService using the Mastodon API.
type searchService struct {
	client *Client
}

// NewSearchService creates a SearchService backed by Mastodon.
func NewSearchService(client *Client) *searchService {
	return &searchService{client: client}
}

// Search queries /api/v2/search. resultType narrows results to one of
// "accounts", "statuses", or "hashtags"; empty searches everything.
func (s *searchService) Search(ctx context.Context, query, resultType string) (domain.SearchResults, error) {
	var q Query
	q.Add("q", query)
	if resultType != "" {
		q.Add("type", resultType)
	}
	q.Add("limit", strconv.Itoa(pageSize))

	var raw apiSearchResults
	instanceURL, err := s.client.Get(ctx, "/api/v2/search", q, &raw)
	if err != nil {
		return domain.SearchResults{}, fmt.Errorf("searching: %w", err)
	}
	return mapSearchResults(raw, instanceURL), nil
}

package mastodon

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/trillsocial/trill/app"
	"github.com/trillsocial/trill/domain"
)

// pageSize is the fixed page size for every paginated feed endpoint.
const pageSize = 20

var _ app.TimelineService = (*timelineService)(nil)

// timelineService implements app.TimelineService using the Mastodon API.
type timelineService struct {
	client *Client
}

// NewTimelineService creates a TimelineService backed by Mastodon.
func NewTimelineService(client *Client) *timelineService {
	return &timelineService{client: client}
}

// pageQuery builds the standard backward-pagination query. maxID is
// omitted when empty, matching the max_id cursor convention.
func pageQuery(maxID string) Query {
	var q Query
	if maxID != "" {
		q.Add("max_id", maxID)
	}
	q.Add("limit", strconv.Itoa(pageSize))
	return q
}

// statusPage fetches one feed page and computes the next cursor: the ID
// of the last post, or empty when the page came back empty.
func (s *timelineService) statusPage(ctx context.Context, path string, q Query) (domain.TimelinePage, error) {
	var raw []apiStatus
	instanceURL, err := s.client.Get(ctx, path, q, &raw)
	if err != nil {
		return domain.TimelinePage{}, err
	}

	posts := make([]domain.Post, 0, len(raw))
	for _, st := range raw {
		posts = append(posts, mapStatus(st, instanceURL))
	}

	page := domain.TimelinePage{Posts: posts}
	if len(posts) > 0 {
		page.NextMaxID = posts[len(posts)-1].ID
	}
	return page, nil
}

func (s *timelineService) Home(ctx context.Context, maxID string) (domain.TimelinePage, error) {
	page, err := s.statusPage(ctx, "/api/v1/timelines/home", pageQuery(maxID))
	if err != nil {
		return domain.TimelinePage{}, fmt.Errorf("fetching home timeline: %w", err)
	}
	return page, nil
}

func (s *timelineService) Public(ctx context.Context, maxID string, local bool) (domain.TimelinePage, error) {
	var q Query
	if maxID != "" {
		q.Add("max_id", maxID)
	}
	if local {
		q.Add("local", "true")
	}
	q.Add("limit", strconv.Itoa(pageSize))

	page, err := s.statusPage(ctx, "/api/v1/timelines/public", q)
	if err != nil {
		return domain.TimelinePage{}, fmt.Errorf("fetching public timeline: %w", err)
	}
	return page, nil
}

func (s *timelineService) Hashtag(ctx context.Context, hashtag, maxID string) (domain.TimelinePage, error) {
	path := "/api/v1/timelines/tag/" + url.PathEscape(hashtag)
	page, err := s.statusPage(ctx, path, pageQuery(maxID))
	if err != nil {
		return domain.TimelinePage{}, fmt.Errorf("fetching hashtag timeline: %w", err)
	}
	return page, nil
}

func (s *timelineService) List(ctx context.Context, listID, maxID string) (domain.TimelinePage, error) {
	path := "/api/v1/timelines/list/" + url.PathEscape(listID)
	page, err := s.statusPage(ctx, path, pageQuery(maxID))
	if err != nil {
		return domain.TimelinePage{}, fmt.Errorf("fetching list timeline: %w", err)
	}
	return page, nil
}

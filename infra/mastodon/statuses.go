package mastodon

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/trillsocial/trill/app"
	"github.com/trillsocial/trill/domain"
)

var _ app.StatusService = (*statusService)(nil)

// statusService implements app.StatusService using the Mastodon API.
type statusService struct {
	client *Client
}

// NewStatusService creates a StatusService backed by Mastodon.
func NewStatusService(client *Client) *statusService {
	return &statusService{client: client}
}

func statusPath(id string, suffix string) string {
	p := "/api/v1/statuses/" + url.PathEscape(id)
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

func (s *statusService) Status(ctx context.Context, id string) (domain.Post, error) {
	var raw apiStatus
	instanceURL, err := s.client.Get(ctx, statusPath(id, ""), nil, &raw)
	if err != nil {
		return domain.Post{}, fmt.Errorf("fetching status: %w", err)
	}
	return mapStatus(raw, instanceURL), nil
}

func (s *statusService) Context(ctx context.Context, id string) (ancestors, descendants []domain.Post, err error) {
	var raw struct {
		Ancestors   []apiStatus `json:"ancestors"`
		Descendants []apiStatus `json:"descendants"`
	}
	instanceURL, err := s.client.Get(ctx, statusPath(id, "context"), nil, &raw)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching status context: %w", err)
	}
	ancestors = make([]domain.Post, 0, len(raw.Ancestors))
	for _, st := range raw.Ancestors {
		ancestors = append(ancestors, mapStatus(st, instanceURL))
	}
	descendants = make([]domain.Post, 0, len(raw.Descendants))
	for _, st := range raw.Descendants {
		descendants = append(descendants, mapStatus(st, instanceURL))
	}
	return ancestors, descendants, nil
}

func (s *statusService) Create(ctx context.Context, draft domain.StatusDraft) (domain.Post, error) {
	if strings.TrimSpace(draft.Text) == "" && len(draft.MediaIDs) == 0 {
		return domain.Post{}, fmt.Errorf("status cannot be empty")
	}

	body := map[string]any{"status": draft.Text}
	if draft.InReplyToID != "" {
		body["in_reply_to_id"] = draft.InReplyToID
	}
	if len(draft.MediaIDs) > 0 {
		body["media_ids"] = draft.MediaIDs
	}
	if draft.Visibility != "" {
		body["visibility"] = draft.Visibility
	}
	if draft.Sensitive {
		body["sensitive"] = true
	}
	if draft.SpoilerText != "" {
		body["spoiler_text"] = draft.SpoilerText
	}

	var raw apiStatus
	instanceURL, err := s.client.Post(ctx, "/api/v1/statuses", body, &raw)
	if err != nil {
		return domain.Post{}, fmt.Errorf("creating status: %w", err)
	}
	return mapStatus(raw, instanceURL), nil
}

func (s *statusService) Delete(ctx context.Context, id string) error {
	if _, err := s.client.Delete(ctx, statusPath(id, ""), nil); err != nil {
		return fmt.Errorf("deleting status: %w", err)
	}
	return nil
}

// interact performs one of the status interaction mutations. The server
// answers with the updated status, or occasionally 204; both succeed.
func (s *statusService) interact(ctx context.Context, id, action string) (domain.Post, error) {
	var raw apiStatus
	instanceURL, err := s.client.Post(ctx, statusPath(id, action), nil, &raw)
	if err != nil {
		return domain.Post{}, fmt.Errorf("%s status: %w", action, err)
	}
	return mapStatus(raw, instanceURL), nil
}

func (s *statusService) Favourite(ctx context.Context, id string) (domain.Post, error) {
	return s.interact(ctx, id, "favourite")
}

func (s *statusService) Unfavourite(ctx context.Context, id string) (domain.Post, error) {
	return s.interact(ctx, id, "unfavourite")
}

func (s *statusService) Reblog(ctx context.Context, id string) (domain.Post, error) {
	return s.interact(ctx, id, "reblog")
}

func (s *statusService) Unreblog(ctx context.Context, id string) (domain.Post, error) {
	return s.interact(ctx, id, "unreblog")
}

func (s *statusService) Bookmark(ctx context.Context, id string) (domain.Post, error) {
	return s.interact(ctx, id, "bookmark")
}

func (s *statusService) Unbookmark(ctx context.Context, id string) (domain.Post, error) {
	return s.interact(ctx, id, "unbookmark")
}

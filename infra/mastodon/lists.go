package mastodon

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/trillsocial/trill/app"
	"github.com/trillsocial/trill/domain"
)

var _ app.ListService = (*listService)(nil)

// listService implements app.ListService using the Mastodon API.
type listService struct {
	client *Client
}

// NewListService creates a ListService backed by Mastodon.
func NewListService(client *Client) *listService {
	return &listService{client: client}
}

func (s *listService) All(ctx context.Context) ([]domain.List, error) {
	var raw []apiList
	if _, err := s.client.Get(ctx, "/api/v1/lists", nil, &raw); err != nil {
		return nil, fmt.Errorf("fetching lists: %w", err)
	}
	lists := make([]domain.List, 0, len(raw))
	for _, l := range raw {
		lists = append(lists, mapList(l))
	}
	return lists, nil
}

func (s *listService) List(ctx context.Context, listID string) (domain.List, error) {
	if strings.TrimSpace(listID) == "" {
		return domain.List{}, fmt.Errorf("invalid list id")
	}
	var raw apiList
	if _, err := s.client.Get(ctx, "/api/v1/lists/"+url.PathEscape(listID), nil, &raw); err != nil {
		return domain.List{}, fmt.Errorf("fetching list: %w", err)
	}
	return mapList(raw), nil
}

func (s *listService) Create(ctx context.Context, title string) (domain.List, error) {
	if strings.TrimSpace(title) == "" {
		return domain.List{}, fmt.Errorf("list title cannot be empty")
	}
	var raw apiList
	if _, err := s.client.Post(ctx, "/api/v1/lists", map[string]any{"title": title}, &raw); err != nil {
		return domain.List{}, fmt.Errorf("creating list: %w", err)
	}
	return mapList(raw), nil
}

func (s *listService) Delete(ctx context.Context, listID string) error {
	if strings.TrimSpace(listID) == "" {
		return fmt.Errorf("invalid list id")
	}
	if _, err := s.client.Delete(ctx, "/api/v1/lists/"+url.PathEscape(listID), nil); err != nil {
		return fmt.Errorf("deleting list: %w", err)
	}
	return nil
}

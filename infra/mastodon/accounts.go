package mastodon

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/trillsocial/trill/app"
	"github.com/trillsocial/trill/domain"
)

var _ app.AccountService = (*accountService)(nil)

// accountService implements app.AccountService using the Mastodon API.
type accountService struct {
	client *Client
}

// NewAccountService creates an AccountService backed by Mastodon.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client}
}

func accountPath(id string, suffix string) string {
	p := "/api/v1/accounts/" + url.PathEscape(id)
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

// VerifyCredentials fetches the authenticated user's account.
func (s *accountService) VerifyCredentials(ctx context.Context) (domain.Account, error) {
	var raw apiAccount
	instanceURL, err := s.client.Get(ctx, "/api/v1/accounts/verify_credentials", nil, &raw)
	if err != nil {
		return domain.Account{}, fmt.Errorf("verifying credentials: %w", err)
	}
	return mapAccount(raw, instanceURL), nil
}

func (s *accountService) Account(ctx context.Context, accountID string) (domain.Account, error) {
	if strings.TrimSpace(accountID) == "" {
		return domain.Account{}, fmt.Errorf("invalid account id")
	}
	var raw apiAccount
	instanceURL, err := s.client.Get(ctx, accountPath(accountID, ""), nil, &raw)
	if err != nil {
		return domain.Account{}, fmt.Errorf("fetching account: %w", err)
	}
	return mapAccount(raw, instanceURL), nil
}

// Statuses returns one page of an account's posts, newest first.
func (s *accountService) Statuses(ctx context.Context, accountID, maxID string) (domain.TimelinePage, error) {
	if strings.TrimSpace(accountID) == "" {
		return domain.TimelinePage{}, fmt.Errorf("invalid account id")
	}
	var raw []apiStatus
	instanceURL, err := s.client.Get(ctx, accountPath(accountID, "statuses"), pageQuery(maxID), &raw)
	if err != nil {
		return domain.TimelinePage{}, fmt.Errorf("fetching account statuses: %w", err)
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

// UpdateProfile patches the authenticated user's display name and note.
// Empty fields are omitted from the request so the server leaves them
// unchanged; sending them blank would clear them.
func (s *accountService) UpdateProfile(ctx context.Context, displayName, note string) (domain.Account, error) {
	body := map[string]any{}
	if v := strings.TrimSpace(displayName); v != "" {
		body["display_name"] = v
	}
	if v := strings.TrimSpace(note); v != "" {
		body["note"] = v
	}
	if len(body) == 0 {
		return domain.Account{}, fmt.Errorf("no profile fields to update")
	}
	var raw apiAccount
	instanceURL, err := s.client.Patch(ctx, "/api/v1/accounts/update_credentials", body, &raw)
	if err != nil {
		return domain.Account{}, fmt.Errorf("updating profile: %w", err)
	}
	return mapAccount(raw, instanceURL), nil
}

func (s *accountService) Follow(ctx context.Context, accountID string) (domain.Relationship, error) {
	if strings.TrimSpace(accountID) == "" {
		return domain.Relationship{}, fmt.Errorf("invalid account id")
	}
	if _, err := s.client.Post(ctx, accountPath(accountID, "follow"), nil, nil); err != nil {
		return domain.Relationship{}, fmt.Errorf("following account: %w", err)
	}
	return domain.Relationship{Following: true}, nil
}

func (s *accountService) Unfollow(ctx context.Context, accountID string) (domain.Relationship, error) {
	if strings.TrimSpace(accountID) == "" {
		return domain.Relationship{}, fmt.Errorf("invalid account id")
	}
	if _, err := s.client.Post(ctx, accountPath(accountID, "unfollow"), nil, nil); err != nil {
		return domain.Relationship{}, fmt.Errorf("unfollowing account: %w", err)
	}
	return domain.Relationship{Following: false}, nil
}

// Bookmarks returns one page of the user's bookmarked posts.
func (s *accountService) Bookmarks(ctx context.Context, maxID string) (domain.TimelinePage, error) {
	var raw []apiStatus
	instanceURL, err := s.client.Get(ctx, "/api/v1/bookmarks", pageQuery(maxID), &raw)
	if err != nil {
		return domain.TimelinePage{}, fmt.Errorf("fetching bookmarks: %w", err)
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

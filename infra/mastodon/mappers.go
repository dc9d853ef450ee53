package mastodon

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/trillsocial/trill/domain"
)

// Wire entities: the subset of the Mastodon REST schema this client
// consumes, snake_case as the server sends it. Mapping into domain types
// is total over any syntactically valid payload; absent optional fields
// become zero values or the documented default.

type apiAccount struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	Avatar         string `json:"avatar"`
	Note           string `json:"note"`
	Header         string `json:"header"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
	StatusesCount  int    `json:"statuses_count"`
	URL            string `json:"url"`
	Locked         bool   `json:"locked"`
	Discoverable   bool   `json:"discoverable"`
	Bot            bool   `json:"bot"`
	Following      bool   `json:"following"`
}

type apiAttachment struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type apiStatus struct {
	ID               string          `json:"id"`
	URI              string          `json:"uri"`
	URL              string          `json:"url"`
	Account          apiAccount      `json:"account"`
	Content          string          `json:"content"`
	CreatedAt        string          `json:"created_at"`
	MediaAttachments []apiAttachment `json:"media_attachments"`
	ReblogsCount     int             `json:"reblogs_count"`
	FavouritesCount  int             `json:"favourites_count"`
	RepliesCount     int             `json:"replies_count"`
	Reblogged        bool            `json:"reblogged"`
	Favourited       bool            `json:"favourited"`
	Bookmarked       bool            `json:"bookmarked"`
	Reblog           *apiStatus      `json:"reblog"`
	// Some instances send reply IDs as numbers, so these stay loose.
	InReplyToID        any    `json:"in_reply_to_id"`
	InReplyToAccountID any    `json:"in_reply_to_account_id"`
	Sensitive          bool   `json:"sensitive"`
	SpoilerText        string `json:"spoiler_text"`
	Visibility         string `json:"visibility"`
	Language           string `json:"language"`
}

type apiNotification struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	CreatedAt string     `json:"created_at"`
	Account   apiAccount `json:"account"`
	Status    *apiStatus `json:"status"`
}

type apiList struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	RepliesPolicy string `json:"replies_policy"`
}

type apiTag struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type apiSearchResults struct {
	Accounts []apiAccount `json:"accounts"`
	Statuses []apiStatus  `json:"statuses"`
	Hashtags []apiTag     `json:"hashtags"`
}

// maxReblogDepth bounds recursive reblog mapping. Real payloads nest one
// level; anything deeper is dropped rather than trusted.
const maxReblogDepth = 4

func mapAccount(raw apiAccount, instanceURL string) domain.Account {
	displayName := raw.DisplayName
	if displayName == "" {
		displayName = raw.Username
	}
	return domain.Account{
		ID:             raw.ID,
		Username:       raw.Username,
		DisplayName:    displayName,
		Avatar:         raw.Avatar,
		InstanceURL:    instanceURL,
		Note:           raw.Note,
		Header:         raw.Header,
		FollowersCount: raw.FollowersCount,
		FollowingCount: raw.FollowingCount,
		StatusesCount:  raw.StatusesCount,
		URL:            raw.URL,
		Locked:         raw.Locked,
		Discoverable:   raw.Discoverable,
		Bot:            raw.Bot,
		Following:      raw.Following,
	}
}

func mapAttachment(raw apiAttachment) domain.MediaAttachment {
	return domain.MediaAttachment{
		ID:          raw.ID,
		URL:         raw.URL,
		Type:        raw.Type,
		Description: raw.Description,
	}
}

func mapStatus(raw apiStatus, instanceURL string) domain.Post {
	return mapStatusDepth(raw, instanceURL, 0)
}

func mapStatusDepth(raw apiStatus, instanceURL string, depth int) domain.Post {
	createdAt, _ := time.Parse(time.RFC3339, raw.CreatedAt)

	attachments := make([]domain.MediaAttachment, 0, len(raw.MediaAttachments))
	for _, a := range raw.MediaAttachments {
		attachments = append(attachments, mapAttachment(a))
	}

	var reblog *domain.Post
	if raw.Reblog != nil && depth < maxReblogDepth {
		mapped := mapStatusDepth(*raw.Reblog, instanceURL, depth+1)
		reblog = &mapped
	}

	return domain.Post{
		ID:                 raw.ID,
		URI:                raw.URI,
		URL:                raw.URL,
		Account:            mapAccount(raw.Account, instanceURL),
		Content:            raw.Content,
		CreatedAt:          createdAt,
		MediaAttachments:   attachments,
		ReblogsCount:       raw.ReblogsCount,
		FavouritesCount:    raw.FavouritesCount,
		RepliesCount:       raw.RepliesCount,
		Reblogged:          raw.Reblogged,
		Favourited:         raw.Favourited,
		Bookmarked:         raw.Bookmarked,
		Reblog:             reblog,
		InReplyToID:        looseID(raw.InReplyToID),
		InReplyToAccountID: looseID(raw.InReplyToAccountID),
		Sensitive:          raw.Sensitive,
		SpoilerText:        raw.SpoilerText,
		Visibility:         raw.Visibility,
		Language:           raw.Language,
	}
}

func mapNotification(raw apiNotification, instanceURL string) domain.Notification {
	createdAt, _ := time.Parse(time.RFC3339, raw.CreatedAt)
	var status *domain.Post
	if raw.Status != nil {
		mapped := mapStatus(*raw.Status, instanceURL)
		status = &mapped
	}
	return domain.Notification{
		ID:        raw.ID,
		Type:      raw.Type,
		CreatedAt: createdAt,
		Account:   mapAccount(raw.Account, instanceURL),
		Status:    status,
	}
}

func mapList(raw apiList) domain.List {
	policy := raw.RepliesPolicy
	if policy == "" {
		policy = domain.RepliesPolicyList
	}
	return domain.List{ID: raw.ID, Title: raw.Title, RepliesPolicy: policy}
}

func mapSearchResults(raw apiSearchResults, instanceURL string) domain.SearchResults {
	accounts := make([]domain.Account, 0, len(raw.Accounts))
	for _, a := range raw.Accounts {
		accounts = append(accounts, mapAccount(a, instanceURL))
	}
	posts := make([]domain.Post, 0, len(raw.Statuses))
	for _, s := range raw.Statuses {
		posts = append(posts, mapStatus(s, instanceURL))
	}
	hashtags := make([]domain.Tag, 0, len(raw.Hashtags))
	for _, t := range raw.Hashtags {
		hashtags = append(hashtags, domain.Tag{Name: t.Name, URL: t.URL})
	}
	return domain.SearchResults{Accounts: accounts, Posts: posts, Hashtags: hashtags}
}

// looseID renders an ID that may arrive as string, number, or null.
func looseID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", id)
	}
}

// ParseAccount decodes a wire account payload and maps it, attaching the
// given instance URL. Used by the OAuth flow to verify a fresh token
// before any session-bound client exists.
func ParseAccount(data []byte, instanceURL string) (domain.Account, error) {
	var raw apiAccount
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Account{}, fmt.Errorf("parsing account: %w", err)
	}
	return mapAccount(raw, instanceURL), nil
}

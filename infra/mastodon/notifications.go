package mastodon

import (
	"context"
	"fmt"

	"github.com/trillsocial/trill/app"
	"github.com/trillsocial/trill/domain"
)

var _ app.NotificationService = (*notificationService)(nil)

// notificationService implements app.NotificationService using the
// Mastodon API.
type notificationService struct {
	client *Client
}

// NewNotificationService creates a NotificationService backed by Mastodon.
func NewNotificationService(client *Client) *notificationService {
	return &notificationService{client: client}
}

// Page returns one page of notifications, newest first.
func (s *notificationService) Page(ctx context.Context, maxID string) (domain.NotificationPage, error) {
	var raw []apiNotification
	instanceURL, err := s.client.Get(ctx, "/api/v1/notifications", pageQuery(maxID), &raw)
	if err != nil {
		return domain.NotificationPage{}, fmt.Errorf("fetching notifications: %w", err)
	}

	notifications := make([]domain.Notification, 0, len(raw))
	for _, n := range raw {
		notifications = append(notifications, mapNotification(n, instanceURL))
	}
	page := domain.NotificationPage{Notifications: notifications}
	if len(notifications) > 0 {
		page.NextMaxID = notifications[len(notifications)-1].ID
	}
	return page, nil
}

// Clear dismisses all notifications.
func (s *notificationService) Clear(ctx context.Context) error {
	if _, err := s.client.Post(ctx, "/api/v1/notifications/clear", nil, nil); err != nil {
		return fmt.Errorf("clearing notifications: %w", err)
	}
	return nil
}

package app

import (
	"context"

	"github.com/trillsocial/trill/domain"
)

// NotificationService fetches and dismisses notifications.
type NotificationService interface {
	// Page returns one page of notifications, newest first.
	Page(ctx context.Context, maxID string) (domain.NotificationPage, error)

	// Clear dismisses all notifications.
	Clear(ctx context.Context) error
}

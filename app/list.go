package app

import (
	"context"

	"github.com/trillsocial/trill/domain"
)

// ListService manages the user's timeline lists.
type ListService interface {
	All(ctx context.Context) ([]domain.List, error)
	List(ctx context.Context, listID string) (domain.List, error)
	Create(ctx context.Context, title string) (domain.List, error)
	Delete(ctx context.Context, listID string) error
}

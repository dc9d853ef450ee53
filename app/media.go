package app

import (
	"context"
	"io"

	"github.com/trillsocial/trill/domain"
)

// MediaService uploads media for attachment to new posts.
type MediaService interface {
	// Upload sends one file and returns the attachment whose ID a
	// StatusDraft references.
	Upload(ctx context.Context, file io.Reader, filename, description string) (domain.MediaAttachment, error)
}

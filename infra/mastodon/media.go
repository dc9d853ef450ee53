package mastodon

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/trillsocial/trill/app"
	"github.com/trillsocial/trill/domain"
)

var _ app.MediaService = (*mediaService)(nil)

// mediaService implements app.MediaService using the Mastodon API.
type mediaService struct {
	client *Client
}

// NewMediaService creates a MediaService backed by Mastodon.
func NewMediaService(client *Client) *mediaService {
	return &mediaService{client: client}
}

// Upload sends one file to /api/v2/media as multipart form data. The
// returned attachment carries the ID to reference from status creation.
func (s *mediaService) Upload(ctx context.Context, file io.Reader, filename, description string) (domain.MediaAttachment, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return domain.MediaAttachment{}, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return domain.MediaAttachment{}, fmt.Errorf("reading media file: %w", err)
	}
	if description != "" {
		if err := form.WriteField("description", description); err != nil {
			return domain.MediaAttachment{}, fmt.Errorf("building upload form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return domain.MediaAttachment{}, fmt.Errorf("building upload form: %w", err)
	}

	var raw apiAttachment
	if _, err := s.client.Upload(ctx, "/api/v2/media", &body, form.FormDataContentType(), &raw); err != nil {
		return domain.MediaAttachment{}, fmt.Errorf("uploading media: %w", err)
	}
	return mapAttachment(raw), nil
}

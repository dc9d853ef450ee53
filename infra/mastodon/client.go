package mastodon

import (
	"context"
	"io"
	"net/http"

	"github.com/trillsocial/trill/domain"
	"github.com/trillsocial/trill/infra/store"
)

// Client performs authenticated requests for the active session. It is an
// explicit session handle: it resolves the instance URL and access token
// from the credential store per call and injects the bearer credential.
type Client struct {
	store     *store.CredentialStore
	transport *Transport
}

// NewClient creates a session-bound client over a credential store and
// transport.
func NewClient(credentials *store.CredentialStore, transport *Transport) *Client {
	return &Client{store: credentials, transport: transport}
}

type storeRead struct {
	value string
	err   error
}

// session resolves the instance URL and access token. Both slots are
// independent, so they are read concurrently. Either missing fails with
// domain.ErrNotAuthenticated before any network I/O.
func (c *Client) session() (instanceURL, token string, err error) {
	instCh := make(chan storeRead, 1)
	tokCh := make(chan storeRead, 1)
	go func() {
		v, err := c.store.InstanceURL()
		instCh <- storeRead{value: v, err: err}
	}()
	go func() {
		v, err := c.store.AccessToken()
		tokCh <- storeRead{value: v, err: err}
	}()

	inst, tok := <-instCh, <-tokCh
	if inst.err != nil {
		return "", "", inst.err
	}
	if tok.err != nil {
		return "", "", tok.err
	}
	if inst.value == "" || tok.value == "" {
		return "", "", domain.ErrNotAuthenticated
	}
	return inst.value, tok.value, nil
}

// do resolves the session exactly once per request and returns the
// instance URL it resolved to, so callers can attach instance context to
// mapped results without a second store read.
func (c *Client) do(ctx context.Context, path string, opts RequestOptions, out any) (string, error) {
	instanceURL, token, err := c.session()
	if err != nil {
		return "", err
	}
	if opts.Header == nil {
		opts.Header = http.Header{}
	}
	opts.Header.Set("Authorization", "Bearer "+token)
	return instanceURL, c.transport.DoJSON(ctx, instanceURL, path, opts, out)
}

// Get performs an authenticated GET request and decodes JSON into out.
// The session's instance URL is returned alongside.
func (c *Client) Get(ctx context.Context, path string, query Query, out any) (string, error) {
	return c.do(ctx, path, RequestOptions{Method: http.MethodGet, Query: query}, out)
}

// Post performs an authenticated POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, out any) (string, error) {
	return c.do(ctx, path, RequestOptions{Method: http.MethodPost, JSON: body}, out)
}

// Patch performs an authenticated PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any, out any) (string, error) {
	return c.do(ctx, path, RequestOptions{Method: http.MethodPatch, JSON: body}, out)
}

// Delete performs an authenticated DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) (string, error) {
	return c.do(ctx, path, RequestOptions{Method: http.MethodDelete}, out)
}

// Upload performs an authenticated POST with a pre-built body, used for
// multipart media uploads.
func (c *Client) Upload(ctx context.Context, path string, body io.Reader, contentType string, out any) (string, error) {
	return c.do(ctx, path, RequestOptions{Method: http.MethodPost, Body: body, ContentType: contentType}, out)
}

package mastodon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/trillsocial/trill/domain"
)

// Query is an ordered list of URL query parameters. Unlike url.Values it
// encodes in insertion order. Callers simply omit absent parameters.
type Query []queryParam

type queryParam struct {
	key, value string
}

// Add appends a parameter.
func (q *Query) Add(key, value string) {
	*q = append(*q, queryParam{key: key, value: value})
}

// Encode renders the query string without a leading '?'.
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// RequestOptions shapes a single request. JSON, when non-nil, is marshaled
// as the body with Content-Type application/json; Body/ContentType carry
// pre-built payloads such as multipart uploads.
type RequestOptions struct {
	Method      string
	Header      http.Header
	Query       Query
	JSON        any
	Body        io.Reader
	ContentType string
}

// Transport issues HTTP requests against arbitrary instance base URLs and
// normalizes failures into *domain.APIError. It has no knowledge of
// authentication; the OAuth flow uses it before any session exists.
type Transport struct {
	http *http.Client
	log  *log.Logger
}

// NewTransport creates a Transport over the given http.Client. A nil
// client uses http.DefaultClient's behavior; no timeout or retry policy is
// imposed here.
func NewTransport(client *http.Client) *Transport {
	if client == nil {
		client = &http.Client{}
	}
	return &Transport{
		http: client,
		log:  log.WithPrefix("mastodon"),
	}
}

// Do performs one request and returns the raw response body. Non-2xx
// responses are returned as *domain.APIError carrying the body text. A 204
// or empty body yields a nil slice and no error.
func (t *Transport) Do(ctx context.Context, instanceURL, path string, opts RequestOptions) ([]byte, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	target := instanceURL + path
	if qs := opts.Query.Encode(); qs != "" {
		target += "?" + qs
	}

	body := opts.Body
	contentType := opts.ContentType
	if opts.JSON != nil {
		encoded, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, values := range opts.Header {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}

	t.log.Debug("request", "method", method, "path", path)

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.log.Debug("error response", "method", method, "path", path, "status", resp.StatusCode)
		return nil, domain.NewAPIError(resp.StatusCode, string(data))
	}

	if resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// DoJSON performs the request and decodes the JSON response into out. An
// empty response leaves out untouched, so mutating endpoints answering 204
// succeed with a zero result.
func (t *Transport) DoJSON(ctx context.Context, instanceURL, path string, opts RequestOptions, out any) error {
	data, err := t.Do(ctx, instanceURL, path, opts)
	if err != nil {
		return err
	}
	if len(data) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing response from %s: %w", path, err)
	}
	return nil
}

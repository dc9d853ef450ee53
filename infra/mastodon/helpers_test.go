package mastodon

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/trillsocial/trill/infra/store"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func response(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

// countingTransport records how many requests pass through it.
type countingTransport struct {
	calls int
	rt    roundTripFunc
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls++
	return c.rt(req)
}

func testStore(t *testing.T) *store.CredentialStore {
	t.Helper()
	return store.NewCredentialStore(store.NewFileBackend(t.TempDir()))
}

// authedClient builds a Client with a stored session and the given fake
// network behavior.
func authedClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	credentials := testStore(t)
	if err := credentials.SetInstanceURL("https://example.test"); err != nil {
		t.Fatalf("seeding instance URL: %v", err)
	}
	if err := credentials.SetAccessToken("tok"); err != nil {
		t.Fatalf("seeding access token: %v", err)
	}
	transport := NewTransport(&http.Client{Transport: rt})
	return NewClient(credentials, transport)
}

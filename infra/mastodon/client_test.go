package mastodon

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/trillsocial/trill/domain"
	"github.com/trillsocial/trill/infra/store"
)

func TestClient_MissingSessionFailsWithoutNetwork(t *testing.T) {
	tests := []struct {
		name     string
		instance string
		token    string
	}{
		{name: "nothing stored"},
		{name: "token only", token: "tok"},
		{name: "instance only", instance: "https://example.test"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			counting := &countingTransport{rt: func(r *http.Request) (*http.Response, error) {
				return response(r, http.StatusOK, `{}`), nil
			}}
			credentials := testStore(t)
			if tc.instance != "" {
				if err := credentials.SetInstanceURL(tc.instance); err != nil {
					t.Fatalf("seed instance: %v", err)
				}
			}
			if tc.token != "" {
				if err := credentials.SetAccessToken(tc.token); err != nil {
					t.Fatalf("seed token: %v", err)
				}
			}
			client := NewClient(credentials, NewTransport(&http.Client{Transport: counting}))

			var out any
			_, err := client.Get(context.Background(), "/api/v1/timelines/home", nil, &out)
			if !errors.Is(err, domain.ErrNotAuthenticated) {
				t.Fatalf("expected ErrNotAuthenticated, got %v", err)
			}
			if counting.calls != 0 {
				t.Fatalf("expected zero network calls, got %d", counting.calls)
			}
		})
	}
}

func TestClient_InjectsBearerToken(t *testing.T) {
	var gotAuth string
	client := authedClient(t, func(r *http.Request) (*http.Response, error) {
		gotAuth = r.Header.Get("Authorization")
		return response(r, http.StatusOK, `[]`), nil
	})

	var out []apiStatus
	instanceURL, err := client.Get(context.Background(), "/api/v1/timelines/home", nil, &out)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("missing bearer header: %q", gotAuth)
	}
	if instanceURL != "https://example.test" {
		t.Fatalf("unexpected instance URL: %q", instanceURL)
	}
}

// readCountingBackend counts Get calls per slot to observe how often the
// session is resolved.
type readCountingBackend struct {
	inner store.Backend
	gets  map[string]int
}

func (b *readCountingBackend) Get(key string) (string, error) {
	b.gets[key]++
	return b.inner.Get(key)
}
func (b *readCountingBackend) Set(key, value string) error { return b.inner.Set(key, value) }
func (b *readCountingBackend) Delete(key string) error     { return b.inner.Delete(key) }
func (b *readCountingBackend) Close() error                { return b.inner.Close() }

func TestClient_SessionResolvedOncePerRequest(t *testing.T) {
	backend := &readCountingBackend{
		inner: store.NewFileBackend(t.TempDir()),
		gets:  map[string]int{},
	}
	credentials := store.NewCredentialStore(backend)
	if err := credentials.SetInstanceURL("https://example.test"); err != nil {
		t.Fatal(err)
	}
	if err := credentials.SetAccessToken("tok"); err != nil {
		t.Fatal(err)
	}
	client := NewClient(credentials, NewTransport(&http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return response(r, http.StatusOK, statusesJSON("1")), nil
	})}))

	if _, err := NewTimelineService(client).Home(context.Background(), ""); err != nil {
		t.Fatalf("home failed: %v", err)
	}
	if got := backend.gets["instance_url"]; got != 1 {
		t.Fatalf("instance URL read %d times for one request", got)
	}
	if got := backend.gets["access_token"]; got != 1 {
		t.Fatalf("access token read %d times for one request", got)
	}
}

func TestClient_APIErrorPropagatesUnchanged(t *testing.T) {
	client := authedClient(t, func(r *http.Request) (*http.Response, error) {
		return response(r, http.StatusTooManyRequests, "slow down"), nil
	})

	_, err := client.Post(context.Background(), "/api/v1/statuses/1/favourite", nil, nil)
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusTooManyRequests || apiErr.Body != "slow down" {
		t.Fatalf("error mutated: %+v", apiErr)
	}
}

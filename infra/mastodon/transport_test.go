package mastodon

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/trillsocial/trill/domain"
)

func TestQuery_EncodePreservesInsertionOrder(t *testing.T) {
	var q Query
	q.Add("zeta", "1")
	q.Add("alpha", "two words")
	q.Add("max_id", "109")

	got := q.Encode()
	want := "zeta=1&alpha=two+words&max_id=109"
	if got != want {
		t.Fatalf("unexpected encoding: got %q want %q", got, want)
	}
}

func TestTransport_Do_JSONBodyAndURL(t *testing.T) {
	var gotURL, gotContentType, gotBody string
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		return response(r, http.StatusOK, `{"ok":true}`), nil
	})
	tr := NewTransport(&http.Client{Transport: rt})

	var q Query
	q.Add("limit", "20")
	data, err := tr.Do(context.Background(), "https://inst.test", "/api/v1/apps", RequestOptions{
		Method: http.MethodPost,
		Query:  q,
		JSON:   map[string]any{"client_name": "Trill"},
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotURL != "https://inst.test/api/v1/apps?limit=20" {
		t.Fatalf("unexpected URL: %s", gotURL)
	}
	if gotContentType != "application/json" {
		t.Fatalf("unexpected content type: %s", gotContentType)
	}
	if gotBody != `{"client_name":"Trill"}` {
		t.Fatalf("unexpected body: %s", gotBody)
	}
	if string(data) != `{"ok":true}` {
		t.Fatalf("unexpected response data: %s", data)
	}
}

func TestTransport_Do_NonTwoHundredBecomesAPIError(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return response(r, http.StatusUnprocessableEntity, `{"error":"Validation failed"}`), nil
	})
	tr := NewTransport(&http.Client{Transport: rt})

	_, err := tr.Do(context.Background(), "https://inst.test", "/api/v1/statuses", RequestOptions{Method: http.MethodPost})
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", apiErr.Status)
	}
	if apiErr.Body != `{"error":"Validation failed"}` {
		t.Fatalf("body not preserved: %q", apiErr.Body)
	}
	if apiErr.StatusText != "Unprocessable Entity" {
		t.Fatalf("unexpected status text: %q", apiErr.StatusText)
	}
}

func TestTransport_Do_NoContentIsNotAnError(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return response(r, http.StatusNoContent, ""), nil
	})
	tr := NewTransport(&http.Client{Transport: rt})

	data, err := tr.Do(context.Background(), "https://inst.test", "/api/v1/notifications/clear", RequestOptions{Method: http.MethodPost})
	if err != nil {
		t.Fatalf("204 should not error: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty body, got %q", data)
	}
}

func TestTransport_DoJSON_EmptyBodyLeavesOutUntouched(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return response(r, http.StatusOK, ""), nil
	})
	tr := NewTransport(&http.Client{Transport: rt})

	out := map[string]any{"pre": "set"}
	if err := tr.DoJSON(context.Background(), "https://inst.test", "/x", RequestOptions{}, &out); err != nil {
		t.Fatalf("empty body should not error: %v", err)
	}
	if out["pre"] != "set" {
		t.Fatalf("out was modified: %v", out)
	}
}

func TestTransport_Do_ContentTypeOverride(t *testing.T) {
	var gotContentType string
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotContentType = r.Header.Get("Content-Type")
		return response(r, http.StatusOK, `{}`), nil
	})
	tr := NewTransport(&http.Client{Transport: rt})

	_, err := tr.Do(context.Background(), "https://inst.test", "/api/v2/media", RequestOptions{
		Method:      http.MethodPost,
		Body:        nil,
		ContentType: "multipart/form-data; boundary=abc",
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotContentType != "multipart/form-data; boundary=abc" {
		t.Fatalf("content type not honored: %q", gotContentType)
	}
}

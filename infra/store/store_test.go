package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/trillsocial/trill/domain"
)

func fileStore(t *testing.T) *CredentialStore {
	t.Helper()
	return NewCredentialStore(NewFileBackend(t.TempDir()))
}

func TestFileBackend_AbsentKeyIsEmptyNotError(t *testing.T) {
	backend := NewFileBackend(t.TempDir())
	value, err := backend.Get("access_token")
	if err != nil {
		t.Fatalf("absent key should not error: %v", err)
	}
	if value != "" {
		t.Fatalf("expected empty value, got %q", value)
	}
}

func TestFileBackend_SetGetDelete(t *testing.T) {
	dir := t.TempDir()
	backend := NewFileBackend(filepath.Join(dir, "creds"))

	if err := backend.Set("instance_url", "https://example.test"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err := backend.Get("instance_url")
	if err != nil || value != "https://example.test" {
		t.Fatalf("get after set: %q, %v", value, err)
	}
	if err := backend.Delete("instance_url"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if value, _ := backend.Get("instance_url"); value != "" {
		t.Fatalf("value survived delete: %q", value)
	}
	// Deleting again is a no-op.
	if err := backend.Delete("instance_url"); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
}

func TestFileBackend_FilesAreOwnerOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "creds")
	backend := NewFileBackend(dir)
	if err := backend.Set("access_token", "secret"); err != nil {
		t.Fatalf("set: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "access_token"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("token file should be 0600, got %o", perm)
	}
	dirInfo, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat dir: %v", err)
	}
	if perm := dirInfo.Mode().Perm(); perm != 0o700 {
		t.Fatalf("credential dir should be 0700, got %o", perm)
	}
}

func TestCredentialStore_SessionSlots(t *testing.T) {
	credentials := fileStore(t)

	if ok, err := credentials.IsAuthenticated(); err != nil || ok {
		t.Fatalf("fresh store should not be authenticated: %v %v", ok, err)
	}
	if err := credentials.SetAccessToken("tok"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	// Token alone is not a session.
	if ok, _ := credentials.IsAuthenticated(); ok {
		t.Fatal("token without instance should not count as authenticated")
	}
	if err := credentials.SetInstanceURL("https://example.test"); err != nil {
		t.Fatalf("set instance: %v", err)
	}
	if ok, _ := credentials.IsAuthenticated(); !ok {
		t.Fatal("expected authenticated session")
	}

	token, err := credentials.AccessToken()
	if err != nil || token != "tok" {
		t.Fatalf("token round trip: %q, %v", token, err)
	}
}

func TestCredentialStore_AccountCacheRoundTrip(t *testing.T) {
	credentials := fileStore(t)

	if cached, err := credentials.AccountCache(); err != nil || cached != nil {
		t.Fatalf("empty cache should be nil: %v %v", cached, err)
	}

	account := domain.Account{
		ID:          "1",
		Username:    "ada",
		DisplayName: "Ada L",
		InstanceURL: "https://example.test",
	}
	if err := credentials.SetAccountCache(account); err != nil {
		t.Fatalf("set cache: %v", err)
	}
	cached, err := credentials.AccountCache()
	if err != nil {
		t.Fatalf("read cache: %v", err)
	}
	if cached == nil || cached.Username != "ada" || cached.DisplayName != "Ada L" {
		t.Fatalf("cache did not round trip: %+v", cached)
	}
}

func TestCredentialStore_CorruptedCacheDegradesToAbsent(t *testing.T) {
	backend := NewFileBackend(t.TempDir())
	credentials := NewCredentialStore(backend)

	var corrupted []string
	credentials.OnCorrupt(func(slot string) { corrupted = append(corrupted, slot) })

	if err := backend.Set("account_cache", "{not json"); err != nil {
		t.Fatalf("seed corruption: %v", err)
	}
	cached, err := credentials.AccountCache()
	if err != nil {
		t.Fatalf("corruption must not surface as an error: %v", err)
	}
	if cached != nil {
		t.Fatalf("corrupted cache should read as absent: %+v", cached)
	}
	if len(corrupted) != 1 || corrupted[0] != "account_cache" {
		t.Fatalf("corruption observer not called: %v", corrupted)
	}
}

func TestCredentialStore_CorruptedRegistrationsForceReRegistration(t *testing.T) {
	backend := NewFileBackend(t.TempDir())
	credentials := NewCredentialStore(backend)
	credentials.OnCorrupt(func(string) {})

	if err := backend.Set("oauth_apps", "][["); err != nil {
		t.Fatalf("seed corruption: %v", err)
	}
	app, err := credentials.OAuthApp("https://example.test")
	if err != nil {
		t.Fatalf("corruption must not surface as an error: %v", err)
	}
	if app != nil {
		t.Fatalf("expected no registration, got %+v", app)
	}

	// A fresh write replaces the corrupted slot.
	stored := OAuthApp{ClientID: "id", ClientSecret: "sec", RedirectURI: "http://127.0.0.1:4646/callback", CreatedAt: time.Now().UTC()}
	if err := credentials.SetOAuthApp("https://example.test", stored); err != nil {
		t.Fatalf("set after corruption: %v", err)
	}
	app, err = credentials.OAuthApp("https://example.test")
	if err != nil || app == nil || app.ClientID != "id" {
		t.Fatalf("registration not recovered: %+v, %v", app, err)
	}
}

func TestCredentialStore_RegistrationsKeyedByInstance(t *testing.T) {
	credentials := fileStore(t)

	if err := credentials.SetOAuthApp("https://a.test", OAuthApp{ClientID: "a"}); err != nil {
		t.Fatalf("set a: %v", err)
	}
	if err := credentials.SetOAuthApp("https://b.test", OAuthApp{ClientID: "b"}); err != nil {
		t.Fatalf("set b: %v", err)
	}

	a, err := credentials.OAuthApp("https://a.test")
	if err != nil || a == nil || a.ClientID != "a" {
		t.Fatalf("registration for a lost: %+v, %v", a, err)
	}
	b, _ := credentials.OAuthApp("https://b.test")
	if b == nil || b.ClientID != "b" {
		t.Fatalf("registration for b lost: %+v", b)
	}
	if missing, _ := credentials.OAuthApp("https://c.test"); missing != nil {
		t.Fatalf("unknown instance should have no registration: %+v", missing)
	}
}

func TestCredentialStore_ClearAuthKeepsRegistrations(t *testing.T) {
	credentials := fileStore(t)

	if err := credentials.SetAccessToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := credentials.SetInstanceURL("https://example.test"); err != nil {
		t.Fatal(err)
	}
	if err := credentials.SetAccountCache(domain.Account{ID: "1", Username: "u"}); err != nil {
		t.Fatal(err)
	}
	if err := credentials.SetOAuthApp("https://example.test", OAuthApp{ClientID: "kept"}); err != nil {
		t.Fatal(err)
	}

	if err := credentials.ClearAuth(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if ok, _ := credentials.IsAuthenticated(); ok {
		t.Fatal("session survived ClearAuth")
	}
	if cached, _ := credentials.AccountCache(); cached != nil {
		t.Fatalf("account cache survived ClearAuth: %+v", cached)
	}
	app, err := credentials.OAuthApp("https://example.test")
	if err != nil || app == nil || app.ClientID != "kept" {
		t.Fatalf("registration should survive ClearAuth: %+v, %v", app, err)
	}
}

package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/trillsocial/trill/domain"
)

// Storage slots. The registrations map and account cache are JSON-encoded
// inside their slot.
const (
	keyAccessToken  = "access_token"
	keyInstanceURL  = "instance_url"
	keyOAuthApps    = "oauth_apps"
	keyAccountCache = "account_cache"
)

// OAuthApp is one per-instance OAuth client registration. Registrations
// survive disconnects so reconnecting to the same instance skips the
// registration call.
type OAuthApp struct {
	ClientID     string    `json:"clientId"`
	ClientSecret string    `json:"clientSecret"`
	RedirectURI  string    `json:"redirectUri"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CredentialStore exposes the session slots over a Backend. Reads and
// writes are independent; there is no cross-slot transactionality.
type CredentialStore struct {
	backend Backend

	// onCorrupt is invoked with the slot key whenever stored JSON fails
	// to parse and is discarded. Tests override it to observe recovery.
	onCorrupt func(slot string)
}

// NewCredentialStore wraps a Backend. Corrupted slots degrade to absent
// and are reported through a warn log by default.
func NewCredentialStore(backend Backend) *CredentialStore {
	return &CredentialStore{
		backend: backend,
		onCorrupt: func(slot string) {
			log.Warn("discarding corrupted credential slot", "slot", slot)
		},
	}
}

// OnCorrupt replaces the corruption observer.
func (s *CredentialStore) OnCorrupt(fn func(slot string)) {
	if fn != nil {
		s.onCorrupt = fn
	}
}

func (s *CredentialStore) AccessToken() (string, error) {
	return s.backend.Get(keyAccessToken)
}

func (s *CredentialStore) SetAccessToken(token string) error {
	return s.backend.Set(keyAccessToken, token)
}

func (s *CredentialStore) InstanceURL() (string, error) {
	return s.backend.Get(keyInstanceURL)
}

func (s *CredentialStore) SetInstanceURL(url string) error {
	return s.backend.Set(keyInstanceURL, url)
}

// oauthApps decodes the registrations map, treating corrupted content as
// empty so a bad write forces re-registration instead of a crash.
func (s *CredentialStore) oauthApps() (map[string]OAuthApp, error) {
	raw, err := s.backend.Get(keyOAuthApps)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return map[string]OAuthApp{}, nil
	}
	var apps map[string]OAuthApp
	if err := json.Unmarshal([]byte(raw), &apps); err != nil {
		s.onCorrupt(keyOAuthApps)
		return map[string]OAuthApp{}, nil
	}
	if apps == nil {
		apps = map[string]OAuthApp{}
	}
	return apps, nil
}

// OAuthApp returns the registration for the given normalized instance
// URL, or nil when none is stored.
func (s *CredentialStore) OAuthApp(instanceURL string) (*OAuthApp, error) {
	apps, err := s.oauthApps()
	if err != nil {
		return nil, err
	}
	app, ok := apps[instanceURL]
	if !ok {
		return nil, nil
	}
	return &app, nil
}

// SetOAuthApp stores one registration, keyed by normalized instance URL.
// Concurrent writers are last-write-wins; registration is a rare,
// user-initiated action.
func (s *CredentialStore) SetOAuthApp(instanceURL string, app OAuthApp) error {
	apps, err := s.oauthApps()
	if err != nil {
		return err
	}
	apps[instanceURL] = app
	encoded, err := json.Marshal(apps)
	if err != nil {
		return fmt.Errorf("encoding oauth registrations: %w", err)
	}
	return s.backend.Set(keyOAuthApps, string(encoded))
}

// AccountCache returns the cached account snapshot, or nil when absent or
// corrupted.
func (s *CredentialStore) AccountCache() (*domain.Account, error) {
	raw, err := s.backend.Get(keyAccountCache)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var account domain.Account
	if err := json.Unmarshal([]byte(raw), &account); err != nil {
		s.onCorrupt(keyAccountCache)
		return nil, nil
	}
	return &account, nil
}

func (s *CredentialStore) SetAccountCache(account domain.Account) error {
	encoded, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encoding account cache: %w", err)
	}
	return s.backend.Set(keyAccountCache, string(encoded))
}

// ClearAuth removes the access token, instance URL, and account cache.
// OAuth registrations are kept so reconnecting to a known instance does
// not re-register the app.
func (s *CredentialStore) ClearAuth() error {
	for _, key := range []string{keyAccessToken, keyInstanceURL, keyAccountCache} {
		if err := s.backend.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// IsAuthenticated reports whether both the access token and instance URL
// are present.
func (s *CredentialStore) IsAuthenticated() (bool, error) {
	token, err := s.AccessToken()
	if err != nil {
		return false, err
	}
	instance, err := s.InstanceURL()
	if err != nil {
		return false, err
	}
	return token != "" && instance != "", nil
}

// Close closes the underlying backend.
func (s *CredentialStore) Close() error { return s.backend.Close() }

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/trillsocial/trill/domain"
	"github.com/trillsocial/trill/infra/mastodon"
	"github.com/trillsocial/trill/infra/store"
)

// ErrNoRegistration indicates the code-exchange step found no stored app
// registration for the instance. The client secret cannot be recovered;
// the user has to restart the connect flow.
var ErrNoRegistration = errors.New("no OAuth credentials found for this instance, try connecting again")

// App is the OAuth client identity this application registers with each
// instance. RedirectURI is the current runtime's callback URI; a stored
// registration bound to a different one is stale and gets replaced.
type App struct {
	Name        string
	Website     string
	Scopes      string
	RedirectURI string
}

// Session is the result of a completed code exchange.
type Session struct {
	AccessToken string
	Account     domain.Account
}

// Registration is the outcome of the register phase: enough to send the
// user to the instance's authorization page.
type Registration struct {
	InstanceURL string // normalized
	ClientID    string
	AuthURL     string
}

// Flow orchestrates the three-phase authorization-code flow against an
// arbitrary instance. It writes into the credential store; everything
// session-bound reads from there afterwards.
type Flow struct {
	store     *store.CredentialStore
	transport *mastodon.Transport
	app       App
	log       *log.Logger
}

// NewFlow creates a Flow. The transport carries no credentials; both
// registration and exchange run before a session exists.
func NewFlow(credentials *store.CredentialStore, transport *mastodon.Transport, app App) *Flow {
	return &Flow{
		store:     credentials,
		transport: transport,
		app:       app,
		log:       log.WithPrefix("oauth"),
	}
}

// NormalizeInstanceURL canonicalizes user input naming an instance: trim,
// lowercase, strip trailing slashes, default to https when no scheme is
// given. "MASTODON.social///" becomes "https://mastodon.social".
func NormalizeInstanceURL(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.TrimRight(normalized, "/")
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}
	return normalized
}

// RegisterApp ensures an app registration exists for the instance and
// returns the authorization URL. A stored registration is reused only
// when its redirect URI matches the current runtime's; otherwise it is
// replaced, since credentials bound to an obsolete callback would fail
// authorization silently.
func (f *Flow) RegisterApp(ctx context.Context, instanceURL string) (Registration, error) {
	normalized := NormalizeInstanceURL(instanceURL)

	existing, err := f.store.OAuthApp(normalized)
	if err != nil {
		return Registration{}, fmt.Errorf("reading stored registration: %w", err)
	}
	if existing != nil && existing.RedirectURI == f.app.RedirectURI {
		f.log.Debug("reusing app registration", "instance", normalized)
		return Registration{
			InstanceURL: normalized,
			ClientID:    existing.ClientID,
			AuthURL:     f.authorizationURL(normalized, existing.ClientID),
		}, nil
	}
	if existing != nil {
		f.log.Info("redirect URI changed, re-registering app",
			"instance", normalized, "old", existing.RedirectURI, "new", f.app.RedirectURI)
	} else {
		f.log.Info("registering app", "instance", normalized)
	}

	var resp struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	}
	err = f.transport.DoJSON(ctx, normalized, "/api/v1/apps", mastodon.RequestOptions{
		Method: http.MethodPost,
		JSON: map[string]any{
			"client_name":   f.app.Name,
			"redirect_uris": f.app.RedirectURI,
			"scopes":        f.app.Scopes,
			"website":       f.app.Website,
		},
	}, &resp)
	if err != nil {
		return Registration{}, fmt.Errorf("registering oauth app: %w", err)
	}
	if resp.ClientID == "" || resp.ClientSecret == "" {
		return Registration{}, errors.New("app registration returned empty client credentials")
	}

	registration := store.OAuthApp{
		ClientID:     resp.ClientID,
		ClientSecret: resp.ClientSecret,
		RedirectURI:  f.app.RedirectURI,
		CreatedAt:    time.Now().UTC(),
	}
	if err := f.store.SetOAuthApp(normalized, registration); err != nil {
		return Registration{}, fmt.Errorf("storing oauth registration: %w", err)
	}

	return Registration{
		InstanceURL: normalized,
		ClientID:    resp.ClientID,
		AuthURL:     f.authorizationURL(normalized, resp.ClientID),
	}, nil
}

func (f *Flow) authorizationURL(instanceURL, clientID string) string {
	return instanceURL + "/oauth/authorize?" + url.Values{
		"client_id":     {clientID},
		"scope":         {f.app.Scopes},
		"redirect_uri":  {f.app.RedirectURI},
		"response_type": {"code"},
	}.Encode()
}

// ExchangeCode trades an authorization code for an access token, verifies
// the token against the instance, and commits the session. The three
// session writes stay independent, ordered so the access token lands
// last: a partial failure can never leave IsAuthenticated true with
// missing pieces.
func (f *Flow) ExchangeCode(ctx context.Context, instanceURL, code string) (Session, error) {
	normalized := NormalizeInstanceURL(instanceURL)

	registration, err := f.store.OAuthApp(normalized)
	if err != nil {
		return Session{}, fmt.Errorf("reading stored registration: %w", err)
	}
	if registration == nil {
		return Session{}, fmt.Errorf("%w (instance %s)", ErrNoRegistration, normalized)
	}

	f.log.Debug("exchanging code for token", "instance", normalized)

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		Scope       string `json:"scope"`
		CreatedAt   int64  `json:"created_at"`
	}
	err = f.transport.DoJSON(ctx, normalized, "/oauth/token", mastodon.RequestOptions{
		Method: http.MethodPost,
		JSON: map[string]any{
			"client_id":     registration.ClientID,
			"client_secret": registration.ClientSecret,
			"redirect_uri":  registration.RedirectURI,
			"grant_type":    "authorization_code",
			"code":          code,
		},
	}, &tokenResp)
	if err != nil {
		return Session{}, fmt.Errorf("exchanging oauth code: %w", err)
	}
	if strings.TrimSpace(tokenResp.AccessToken) == "" {
		return Session{}, errors.New("token response missing access token")
	}
	accessToken := strings.TrimSpace(tokenResp.AccessToken)

	// Verify the token before persisting anything.
	data, err := f.transport.Do(ctx, normalized, "/api/v1/accounts/verify_credentials", mastodon.RequestOptions{
		Header: http.Header{"Authorization": {"Bearer " + accessToken}},
	})
	if err != nil {
		return Session{}, fmt.Errorf("verifying access token: %w", err)
	}
	account, err := mastodon.ParseAccount(data, normalized)
	if err != nil {
		return Session{}, err
	}

	if err := f.store.SetAccountCache(account); err != nil {
		return Session{}, fmt.Errorf("storing account cache: %w", err)
	}
	if err := f.store.SetInstanceURL(normalized); err != nil {
		return Session{}, fmt.Errorf("storing instance URL: %w", err)
	}
	if err := f.store.SetAccessToken(accessToken); err != nil {
		return Session{}, fmt.Errorf("storing access token: %w", err)
	}

	f.log.Info("authentication complete", "instance", normalized, "username", account.Username)
	return Session{AccessToken: accessToken, Account: account}, nil
}

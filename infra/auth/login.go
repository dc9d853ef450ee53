package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"time"
)

// loginTimeout bounds how long the loopback server waits for the user to
// finish authorizing in the browser.
const loginTimeout = 2 * time.Minute

// Login runs the full interactive flow: register, open the instance's
// authorization page in a browser, capture the code on the loopback
// callback, and exchange it. The flow's redirect URI must be a loopback
// http URL for this to work.
func (f *Flow) Login(ctx context.Context, instanceURL string) (Session, error) {
	registration, err := f.RegisterApp(ctx, instanceURL)
	if err != nil {
		return Session{}, err
	}

	callback, err := url.Parse(f.app.RedirectURI)
	if err != nil || callback.Scheme != "http" || callback.Host == "" {
		return Session{}, fmt.Errorf("redirect URI %q is not a loopback http URL", f.app.RedirectURI)
	}

	state, err := randomState()
	if err != nil {
		return Session{}, fmt.Errorf("generating oauth state: %w", err)
	}

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	srv := &http.Server{Addr: callback.Host}
	srv.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != callback.Path {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("state") != state {
			http.Error(w, "invalid oauth state", http.StatusBadRequest)
			deliver(errCh, errors.New("oauth state mismatch"))
			return
		}
		if e := r.URL.Query().Get("error"); e != "" {
			http.Error(w, "authorization denied", http.StatusBadRequest)
			deliver(errCh, fmt.Errorf("authorization error: %s", e))
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing oauth code", http.StatusBadRequest)
			deliver(errCh, errors.New("callback missing authorization code"))
			return
		}
		_, _ = io.WriteString(w, f.app.Name+" login complete. You can return to the terminal.")
		select {
		case codeCh <- code:
		default:
		}
	})

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			deliver(errCh, fmt.Errorf("oauth callback server: %w", err))
		}
	}()

	authURL := registration.AuthURL + "&state=" + url.QueryEscape(state)
	f.log.Info("waiting for browser authorization", "url", authURL)
	openBrowser(authURL)

	timeout := time.NewTimer(loginTimeout)
	defer timeout.Stop()

	var code string
	select {
	case <-ctx.Done():
		_ = srv.Shutdown(context.Background())
		return Session{}, ctx.Err()
	case err := <-errCh:
		_ = srv.Shutdown(context.Background())
		return Session{}, err
	case code = <-codeCh:
		_ = srv.Shutdown(context.Background())
	case <-timeout.C:
		_ = srv.Shutdown(context.Background())
		return Session{}, errors.New("login timed out waiting for authorization")
	}

	return f.ExchangeCode(ctx, registration.InstanceURL, code)
}

func deliver(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

func randomState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func openBrowser(target string) {
	switch runtime.GOOS {
	case "darwin":
		_ = exec.Command("open", target).Start()
	case "windows":
		_ = exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		_ = exec.Command("xdg-open", target).Start()
	}
}

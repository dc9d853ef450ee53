package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/trillsocial/trill/app"
	"github.com/trillsocial/trill/infra/auth"
	"github.com/trillsocial/trill/infra/config"
	"github.com/trillsocial/trill/infra/mastodon"
	"github.com/trillsocial/trill/infra/store"
)

// OAuth client identity registered with each instance.
const (
	appName    = "Trill"
	appWebsite = "https://github.com/trillsocial/trill"
	appScopes  = "read write follow push"
)

var (
	cfgPath string
	verbose bool

	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "trill",
	Short: "A Mastodon client for the terminal",
	Long: `Trill talks to any Mastodon-compatible instance: connect with OAuth,
read timelines and notifications, post, search, and manage lists.

Credentials are stored locally (file or SQLite backend); OAuth app
registrations are kept per instance so reconnecting never re-registers.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file path (default ~/.config/trill/config.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// env is the composition root built once per command invocation.
type env struct {
	cfg         config.Config
	credentials *store.CredentialStore
	client      *mastodon.Client
	transport   *mastodon.Transport
}

func newEnv() (*env, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if !verbose {
		if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(lvl)
		}
	}

	var backend store.Backend
	switch cfg.Storage {
	case config.StorageSQLite:
		backend, err = store.OpenSQLiteBackend(filepath.Join(cfg.DataDir, "credentials.db"))
		if err != nil {
			return nil, err
		}
	default:
		backend = store.NewFileBackend(filepath.Join(cfg.DataDir, "credentials"))
	}

	credentials := store.NewCredentialStore(backend)
	transport := mastodon.NewTransport(nil)
	return &env{
		cfg:         cfg,
		credentials: credentials,
		client:      mastodon.NewClient(credentials, transport),
		transport:   transport,
	}, nil
}

func (e *env) close() {
	if err := e.credentials.Close(); err != nil {
		log.Warn("closing credential store", "err", err)
	}
}

// Service accessors are typed through the app interfaces; commands never
// see the concrete implementations.

func (e *env) timelines() app.TimelineService { return mastodon.NewTimelineService(e.client) }

func (e *env) statuses() app.StatusService { return mastodon.NewStatusService(e.client) }

func (e *env) accounts() app.AccountService { return mastodon.NewAccountService(e.client) }

func (e *env) notifications() app.NotificationService {
	return mastodon.NewNotificationService(e.client)
}

func (e *env) lists() app.ListService { return mastodon.NewListService(e.client) }

func (e *env) searcher() app.SearchService { return mastodon.NewSearchService(e.client) }

func (e *env) media() app.MediaService { return mastodon.NewMediaService(e.client) }

func (e *env) flow() *auth.Flow {
	return auth.NewFlow(e.credentials, e.transport, auth.App{
		Name:        appName,
		Website:     appWebsite,
		Scopes:      appScopes,
		RedirectURI: e.cfg.RedirectURI(),
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.Instance != "https://mastodon.social" {
		t.Fatalf("unexpected default instance: %q", cfg.Instance)
	}
	if cfg.Storage != StorageFile {
		t.Fatalf("unexpected default storage: %q", cfg.Storage)
	}
	if cfg.CallbackPort != 4646 {
		t.Fatalf("unexpected default port: %d", cfg.CallbackPort)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected default log level: %q", cfg.LogLevel)
	}
	if cfg.DataDir == "" {
		t.Fatal("data dir should default to the config directory")
	}
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `instance: https://hachyderm.io
storage: sqlite
callback_port: 9090
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Instance != "https://hachyderm.io" {
		t.Fatalf("instance not read: %q", cfg.Instance)
	}
	if cfg.Storage != StorageSQLite {
		t.Fatalf("storage not read: %q", cfg.Storage)
	}
	if cfg.CallbackPort != 9090 {
		t.Fatalf("port not read: %d", cfg.CallbackPort)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level not read: %q", cfg.LogLevel)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("instance: https://from-file.test\n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	t.Setenv("TRILL_INSTANCE", "https://from-env.test")
	t.Setenv("TRILL_CALLBACK_PORT", "5555")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Instance != "https://from-env.test" {
		t.Fatalf("env override lost: %q", cfg.Instance)
	}
	if cfg.CallbackPort != 5555 {
		t.Fatalf("env port override lost: %d", cfg.CallbackPort)
	}
}

func TestLoad_RejectsUnknownStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: redis\n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown storage backend")
	}
}

func TestLoad_RejectsBadPort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("callback_port: -1\n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestRedirectURI(t *testing.T) {
	cfg := Config{CallbackPort: 4646}
	if got := cfg.RedirectURI(); got != "http://127.0.0.1:4646/callback" {
		t.Fatalf("unexpected redirect URI: %q", got)
	}
}

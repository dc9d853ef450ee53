package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage backend selection values.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Config holds application-level configuration, read from an optional
// YAML file and overridable per key through TRILL_* environment
// variables.
type Config struct {
	// Instance is the default instance offered by the connect flow.
	Instance string `yaml:"instance"`

	// DataDir is where credentials live (default ~/.config/trill).
	DataDir string `yaml:"data_dir"`

	// Storage selects the credential backend: "file" or "sqlite".
	Storage string `yaml:"storage"`

	// CallbackPort is the loopback port for the OAuth callback server.
	CallbackPort int `yaml:"callback_port"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "trill", "config.yaml"), nil
}

// Load reads configuration: built-in defaults, then the YAML file at path
// (a missing file is fine), then environment overrides. An empty path
// uses DefaultPath.
func Load(path string) (Config, error) {
	cfg := Config{
		Instance:     "https://mastodon.social",
		Storage:      StorageFile,
		CallbackPort: 4646,
		LogLevel:     "info",
	}

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Dir(path)
	}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.Storage != StorageFile && cfg.Storage != StorageSQLite {
		return Config{}, fmt.Errorf("invalid storage backend %q: must be %q or %q", cfg.Storage, StorageFile, StorageSQLite)
	}
	if cfg.CallbackPort <= 0 || cfg.CallbackPort > 65535 {
		return Config{}, fmt.Errorf("invalid callback port %d", cfg.CallbackPort)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TRILL_INSTANCE"); v != "" {
		cfg.Instance = v
	}
	if v := os.Getenv("TRILL_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TRILL_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("TRILL_CALLBACK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.CallbackPort = port
		}
	}
	if v := os.Getenv("TRILL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// RedirectURI is the loopback OAuth callback URI for this runtime. It can
// change across builds and environments, which is why stored registrations
// record the URI they were created with.
func (c Config) RedirectURI() string {
	return fmt.Sprintf("http://127.0.0.1:%d/callback", c.CallbackPort)
}

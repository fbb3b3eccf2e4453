package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultRequestTimeout = 30 * time.Second

type Config struct {
	BaseURL        string
	DataDir        string
	DBPath         string
	TokenPath      string
	PluginsPath    string
	RequestTimeout time.Duration
}

type fileConfig struct {
	API struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"api"`
}

// New resolves configuration for the console. The API base address is never
// compiled in: EDUCTL_API_URL wins, then api.base_url from config.yaml in the
// data dir. Everything else derives from the data dir layout.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		dataDir = os.Getenv("EDUCTL_DATA_DIR")
	}
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".eductl")
	}

	cfg := Config{
		DataDir:        dataDir,
		DBPath:         filepath.Join(dataDir, "cache.db"),
		TokenPath:      filepath.Join(dataDir, "token"),
		PluginsPath:    filepath.Join(dataDir, "plugins"),
		RequestTimeout: defaultRequestTimeout,
	}

	var fc fileConfig
	raw, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config.yaml: %w", err)
		}
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("read config.yaml: %w", err)
	}

	cfg.BaseURL = fc.API.BaseURL
	if env := os.Getenv("EDUCTL_API_URL"); env != "" {
		cfg.BaseURL = env
	}
	if fc.API.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(fc.API.TimeoutSeconds) * time.Second
	}
	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("API base URL is not configured: set EDUCTL_API_URL or api.base_url in %s", filepath.Join(dataDir, "config.yaml"))
	}
	return cfg, nil
}

// Package config reads Brain Builder settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded by Load when it exists in the working directory.
const DefaultEnvFile = ".env"

// Config holds every environment-driven setting. Flags override these in cmd.
type Config struct {
	// DBPath is the local cache database. Empty means the XDG default.
	DBPath string `env:"BRAINBUILDER_DB"`

	// APIURL is the remote state endpoint. Empty keeps everything local.
	APIURL string `env:"BRAINBUILDER_API_URL"`

	// AuthSecret is sent as x-bb-auth by the client and checked by the server.
	AuthSecret string `env:"BRAINBUILDER_AUTH"`

	SyncDebounce time.Duration `env:"BRAINBUILDER_SYNC_DEBOUNCE" envDefault:"500ms"`
	Timeout      time.Duration `env:"BRAINBUILDER_TIMEOUT" envDefault:"10s"`

	// SyncQueue keeps a save that arrives during an in-flight remote write
	// and sends it afterwards, instead of skipping it.
	SyncQueue bool `env:"BRAINBUILDER_SYNC_QUEUE"`

	// ServerAddr and ServerDB configure `brainbuilder serve`.
	ServerAddr string `env:"BRAINBUILDER_ADDR" envDefault:":8888"`
	ServerDB   string `env:"BRAINBUILDER_SERVER_DB"`
}

// Load reads the given env files (DefaultEnvFile when none are named) and
// then parses the environment. Variables already set win over the files, and
// missing files are skipped.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.SyncDebounce < 0 {
		return nil, fmt.Errorf("BRAINBUILDER_SYNC_DEBOUNCE must not be negative")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("BRAINBUILDER_TIMEOUT must be positive")
	}
	return &cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// RemoteEnabled reports whether a remote endpoint is configured.
func (c *Config) RemoteEnabled() bool {
	return c.APIURL != ""
}

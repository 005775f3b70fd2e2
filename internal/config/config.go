package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/reftrack/refadmin/internal/errors"
)

// Config contains client configuration parameters.
//
// The only required external setting is the API base URL; everything else
// has a local-development default.
type Config struct {
	APIBaseURL  string        `env:"API_URL" envDefault:"http://localhost:3001"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"LOG_FORMAT" envDefault:"text"`

	// StateDir overrides where the session file lives. Empty means the
	// platform user config dir.
	StateDir string `env:"STATE_DIR"`
}

// Load reads configuration from REFADMIN_-prefixed environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "REFADMIN_"}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigParse, "failed to parse environment", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "API base URL cannot be empty").
			WithSuggestion("set REFADMIN_API_URL to the backend address")
	}

	return &cfg, nil
}

// SessionDir resolves the directory holding the persisted session.
func (c *Config) SessionDir() (string, error) {
	if c.StateDir != "" {
		return c.StateDir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigInvalid, "cannot resolve user config dir", err).
			WithSuggestion("set REFADMIN_STATE_DIR explicitly")
	}
	return filepath.Join(base, "refadmin"), nil
}

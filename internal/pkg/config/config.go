package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// APIBaseURL selects the backend origin the client talks to.
	APIBaseURL  string        `env:"PSI_API_URL,      default=http://localhost:3001"`
	LogLevel    string        `env:"PSI_LOG_LEVEL,    default=info"`
	LogPretty   bool          `env:"PSI_LOG_PRETTY,   default=true"`
	HTTPTimeout time.Duration `env:"PSI_HTTP_TIMEOUT, default=15s"`
	// SessionFile overrides where the token and expiry are persisted.
	// Defaults to ~/.psim/session.json.
	SessionFile string `env:"PSI_SESSION_FILE"`

	Stub StubConfig
}

type StubConfig struct {
	Addr      string `env:"PSI_STUB_ADDR,       default=:3001"`
	JWTSecret string `env:"PSI_STUB_JWT_SECRET, default=dev-secret"`
	// RedisAddr switches token revocation to Redis when set; empty keeps the
	// in-memory revoker.
	RedisAddr string `env:"PSI_STUB_REDIS_ADDR"`
	RedisDB   int    `env:"PSI_STUB_REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig and
// resolves the session file default under the user's home directory.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if cfg.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.SessionFile = filepath.Join(home, ".psim", "session.json")
	}
	return &cfg, nil
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultSessionSecret is only suitable for local development
const DefaultSessionSecret = "duovocab-dev-secret-change-me"

// Config holds application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Vocab     VocabConfig     `yaml:"vocab"`
	Session   SessionConfig   `yaml:"session"`
	Database  DatabaseConfig  `yaml:"database"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `yaml:"port"             env:"PORT"                    env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	TemplatesPath   string        `yaml:"templates_path"   env:"TEMPLATES_PATH"`
}

// VocabConfig points at the lesson dataset
type VocabConfig struct {
	Path string `yaml:"path" env:"VOCAB_PATH" env-default:"./vocabs.txt"`
}

// SessionConfig controls the anonymous browser session
type SessionConfig struct {
	Secret   string        `yaml:"secret"   env:"SESSION_SECRET"   env-default:"duovocab-dev-secret-change-me"`
	Duration time.Duration `yaml:"duration" env:"SESSION_DURATION" env-default:"720h"`
	Store    string        `yaml:"store"    env:"SESSION_STORE"    env-default:"memory"`
}

// DatabaseConfig is used when the session store is "database"
type DatabaseConfig struct {
	Type string `yaml:"type" env:"DB_TYPE"      env-default:"sqlite"`
	Path string `yaml:"path" env:"DB_PATH"      env-default:"./duovocab.db"`
	URL  string `yaml:"url"  env:"DATABASE_URL"`
}

// CORSConfig holds CORS settings. An empty origin list disables CORS handling.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// RateLimitConfig limits websocket quiz connections per client
type RateLimitConfig struct {
	Requests int           `yaml:"requests" env:"RATE_LIMIT"  env-default:"30"`
	Window   time.Duration `yaml:"window"   env:"RATE_WINDOW" env-default:"1m"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from an optional YAML file and environment variables.
// Priority: ENV > YAML > defaults. The file is CONFIG_PATH, or ./config.yaml if present.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks values that cannot be expressed as struct tags
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("session.secret must not be empty")
	}
	if c.Session.Duration <= 0 {
		return fmt.Errorf("session.duration must be > 0 (got %s)", c.Session.Duration)
	}

	switch strings.ToLower(c.Session.Store) {
	case "memory", "database":
	default:
		return fmt.Errorf("session.store must be memory or database (got %q)", c.Session.Store)
	}

	if c.UsesDatabase() {
		switch strings.ToLower(c.Database.Type) {
		case "sqlite", "sqlite3", "":
		case "postgres", "postgresql", "mysql":
			if c.Database.URL == "" {
				return fmt.Errorf("database.url is required for %s", c.Database.Type)
			}
		default:
			return fmt.Errorf("unsupported database type: %s", c.Database.Type)
		}
	}

	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit requests and window must be > 0")
	}

	return nil
}

// UsesDatabase reports whether completion state is kept in SQL
func (c *Config) UsesDatabase() bool {
	return strings.EqualFold(c.Session.Store, "database")
}

// UsesDefaultSecret reports whether the built-in development secret is in use
func (c *Config) UsesDefaultSecret() bool {
	return c.Session.Secret == DefaultSessionSecret
}

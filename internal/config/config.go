// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor
// principles, after an optional .env file has been merged into the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"3000"`

	// Port overrides AppPort when set, for hosts that inject PORT.
	Port int `env:"PORT"`

	// Database: postgres://... or sqlite://path
	DatabaseURL string `env:"DATABASE_URL" envDefault:"sqlite://hormonya.db"`

	// Cache (Redis). Empty disables the user cache and chat rate limiting.
	RedisURL string `env:"REDIS_URL"`

	// Public URL of the server, used in startup logs and the CLI default.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts. Chat requests wait on the model, hence the write timeout.
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins, or "*" for any origin.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// JSON request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	// Chat upload size limit in bytes (default 10MB)
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`

	// Gemini. An empty key puts chat in demo mode.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash-latest"`

	// Session tokens. An empty secret signs with a per-process random key.
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	UserCacheTTL time.Duration `env:"USER_CACHE_TTL" envDefault:"1h"`

	// Chat rate limiting (requires Redis)
	RateLimitChatEnabled bool    `env:"RATE_LIMIT_CHAT_ENABLED" envDefault:"true"`
	RateLimitChatRPS     float64 `env:"RATE_LIMIT_CHAT_RPS" envDefault:"0.5"`
	RateLimitChatBurst   int     `env:"RATE_LIMIT_CHAT_BURST" envDefault:"5"`
	TrustProxy           bool    `env:"TRUST_PROXY" envDefault:"false"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	// Directory of static front-end files served at /. Empty disables it.
	StaticDir string `env:"STATIC_DIR"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ListenPort returns the port to listen on.
func (c *Config) ListenPort() int {
	if c.Port > 0 {
		return c.Port
	}
	return c.AppPort
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// ChatEnabled reports whether a Gemini key is configured.
func (c *Config) ChatEnabled() bool {
	return c.GeminiAPIKey != ""
}

// Validate checks values that parse but make no sense.
func (c *Config) Validate() error {
	if c.ListenPort() <= 0 || c.ListenPort() > 65535 {
		return fmt.Errorf("invalid port %d", c.ListenPort())
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.MaxRequestBodySize <= 0 || c.MaxUploadSize <= 0 {
		return errors.New("MAX_REQUEST_BODY_SIZE and MAX_UPLOAD_SIZE must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.RateLimitChatEnabled && (c.RateLimitChatRPS <= 0 || c.RateLimitChatBurst < 1) {
		return errors.New("RATE_LIMIT_CHAT_RPS must be positive and RATE_LIMIT_CHAT_BURST at least 1")
	}
	return nil
}

// Load merges the given .env files (default ".env") into the environment,
// then parses and validates the Config. Missing .env files are ignored and
// variables already set in the environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

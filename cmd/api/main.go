// Package main is the entrypoint for the Hormonya API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/hormonya/hormonya/internal/auth"
	"github.com/hormonya/hormonya/internal/cache"
	"github.com/hormonya/hormonya/internal/chat"
	"github.com/hormonya/hormonya/internal/config"
	"github.com/hormonya/hormonya/internal/handler"
	"github.com/hormonya/hormonya/internal/metrics"
	"github.com/hormonya/hormonya/internal/middleware"
	"github.com/hormonya/hormonya/internal/migrations"
	"github.com/hormonya/hormonya/internal/repository"
	"github.com/hormonya/hormonya/internal/repository/sqlite"
	"github.com/hormonya/hormonya/internal/server"
	"github.com/hormonya/hormonya/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Initialize database
	db, err := openStore(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		return fmt.Errorf("database unavailable")
	}
	logger.Info("connected to database", "dialect", string(db.dialect))

	recorder := metrics.NewInMemory()

	routerCfg := handler.RouterConfig{
		Logger:        logger,
		DB:            db.store,
		Recorder:      recorder,
		CORS:          corsConfig(cfg),
		IsDevelopment: cfg.IsDevelopment(),
		TrustProxy:    cfg.TrustProxy,
		MaxBodySize:   cfg.MaxRequestBodySize,
		MaxUploadSize: cfg.MaxUploadSize,
		StaticDir:     cfg.StaticDir,
	}
	if cfg.MetricsEnabled {
		routerCfg.Metrics = recorder
	}

	// Initialize cache
	var userCache service.UserCache
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			db.close()
			return fmt.Errorf("redis unavailable")
		}
		logger.Info("connected to Redis")
		userCache = cache.NewUserCache(cacheClient, cfg.UserCacheTTL)
		routerCfg.Cache = cacheClient
		routerCfg.ChatLimiter = cacheClient
	} else {
		logger.Info("REDIS_URL not set, running without user cache and chat rate limit")
	}

	// Session tokens
	key, err := sessionKey(cfg.SessionSecret, logger)
	if err != nil {
		db.close()
		return err
	}
	routerCfg.Tokens = auth.NewIssuer(key, cfg.SessionTTL)

	// Chat model
	var gen chat.Generator
	if cfg.ChatEnabled() {
		gemini, err := chat.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("failed to initialize Gemini", "error", err)
			db.close()
			return err
		}
		gen = gemini
		logger.Info("chat enabled", "model", gemini.Model())
	} else {
		logger.Warn("GEMINI_API_KEY not set, chat runs in demo mode")
	}

	// Initialize services
	users := service.NewUserService(db.store, userCache, recorder)
	routerCfg.Users = users
	routerCfg.Cycles = service.NewCycleService(users, db.store, recorder)
	routerCfg.Chat = chat.NewService(gen, recorder)
	routerCfg.RateLimit = middleware.RateLimitConfig{
		Enabled: cfg.RateLimitChatEnabled,
		RPS:     cfg.RateLimitChatRPS,
		Burst:   cfg.RateLimitChatBurst,
	}

	// Setup router
	r := handler.NewRouter(routerCfg)

	// Create and run server
	srv := server.New(r, server.Options{
		Port:            cfg.ListenPort(),
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	srv.OnShutdown("database", func(context.Context) error { return db.close() })
	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error { return cacheClient.Close() })
	}

	logger.Info("starting server",
		"port", cfg.ListenPort(),
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
	)

	return srv.Run(ctx)
}

// storeHandle is the opened persistence layer for either dialect.
type storeHandle struct {
	dialect migrations.Dialect
	store   interface {
		service.Store
		Ping(ctx context.Context) error
	}
	close func() error
}

// openStore opens the database named by databaseURL and applies migrations.
// SQLite runs through database/sql; PostgreSQL is migrated through
// database/sql and then served from a pgx pool.
func openStore(ctx context.Context, databaseURL string, logger *slog.Logger) (*storeHandle, error) {
	dialect, dsn, err := migrations.ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case migrations.Postgres:
		sqlDB, _, err := migrations.Open(databaseURL)
		if err != nil {
			return nil, err
		}
		migrateErr := migrations.Run(ctx, sqlDB, dialect, logger)
		sqlDB.Close()
		if migrateErr != nil {
			return nil, fmt.Errorf("migrate: %w", migrateErr)
		}

		repo, err := repository.New(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return &storeHandle{dialect: dialect, store: repo, close: repo.Close}, nil

	default:
		store, err := sqlite.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx, logger); err != nil {
			store.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return &storeHandle{dialect: dialect, store: store, close: store.Close}, nil
	}
}

// sessionKey derives the token signing key. Without a secret every restart
// invalidates issued tokens.
func sessionKey(secret string, logger *slog.Logger) ([]byte, error) {
	if secret != "" {
		return auth.KeyFromSecret(secret)
	}
	logger.Warn("SESSION_SECRET not set, using a random key; sessions end on restart")
	return auth.RandomKey()
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	c := middleware.DefaultCORSConfig()
	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		c.AllowedOrigins = origins
	}
	return c
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}

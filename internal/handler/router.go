package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hormonya/hormonya/internal/auth"
	"github.com/hormonya/hormonya/internal/chat"
	"github.com/hormonya/hormonya/internal/metrics"
	"github.com/hormonya/hormonya/internal/middleware"
	"github.com/hormonya/hormonya/internal/service"
)

// RouterConfig carries everything the HTTP surface depends on.
// Interface fields must be left nil, not set to a nil pointer, when the
// dependency is absent.
type RouterConfig struct {
	Logger *slog.Logger

	Users  *service.UserService
	Cycles *service.CycleService
	Chat   *chat.Service

	// Tokens signs and verifies session tokens. Nil disables sessions.
	Tokens *auth.Issuer

	DB    HealthChecker
	Cache HealthChecker

	// Metrics backs /metrics; nil leaves the route unmounted.
	Metrics  metrics.Snapshotter
	Recorder metrics.Recorder

	ChatLimiter middleware.ChatLimiter
	RateLimit   middleware.RateLimitConfig

	CORS          middleware.CORSConfig
	IsDevelopment bool
	TrustProxy    bool

	MaxBodySize   int64
	MaxUploadSize int64

	// StaticDir is served at / when set.
	StaticDir string
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	r := chi.NewRouter()

	// Global middleware
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: cfg.IsDevelopment,
		ServesUI:      cfg.StaticDir != "",
	}))
	r.Use(middleware.CORS(cfg.CORS))

	var tokens TokenIssuer
	if cfg.Tokens != nil {
		tokens = cfg.Tokens
		r.Use(middleware.Session(cfg.Tokens, logger))
	}

	h := New()
	healthHandler := NewHealthHandler(cfg.DB, cfg.Cache)
	userHandler := NewUserHandler(cfg.Users, tokens, logger)
	cycleHandler := NewCycleHandler(cfg.Cycles, logger)
	chatHandler := NewChatHandler(cfg.Chat, cfg.MaxUploadSize, logger)

	// Health endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	if cfg.Metrics != nil {
		r.Get("/metrics", NewMetricsHandler(cfg.Metrics).Metrics)
	}

	rateLimitCfg := cfg.RateLimit
	rateLimitCfg.Logger = logger
	rateLimitCfg.Limiter = cfg.ChatLimiter
	rateLimitCfg.Metrics = cfg.Recorder
	rateLimitCfg.TrustProxy = cfg.TrustProxy

	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.Index)
		r.Get("/openapi.yaml", h.OpenAPI)

		// JSON endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.MaxBodySize(cfg.MaxBodySize))

			r.Post("/login-by-email", userHandler.Login)
			r.Post("/login-email", userHandler.Login)
			r.Post("/save-profile", userHandler.SaveProfile)

			r.Post("/save-cycle", cycleHandler.SaveCycle)
			r.Get("/get-cycles", cycleHandler.GetCycles)
			r.Get("/get-prediction", cycleHandler.GetPrediction)
			r.Get("/calendar", cycleHandler.Calendar)

			r.With(middleware.RequireSession).Get("/session", userHandler.Session)
		})

		// Chat accepts uploads and calls a paid model.
		r.With(
			middleware.MaxBodySize(cfg.MaxUploadSize),
			middleware.RateLimitChat(rateLimitCfg),
		).Post("/chat", chatHandler.Chat)

		r.NotFound(h.NotFound)
		r.MethodNotAllowed(h.MethodNotAllowed)
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	} else {
		r.Get("/", h.Index)
	}

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

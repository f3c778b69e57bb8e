package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hormonya/hormonya/internal/cache"
	"github.com/hormonya/hormonya/internal/metrics"
)

// ChatLimiter checks the per-client chat budget. *cache.Cache implements it.
type ChatLimiter interface {
	CheckChatRateLimit(ctx context.Context, ip string, ratePerSecond float64, burst int) (*cache.RateLimitResult, error)
}

// RateLimitConfig holds configuration for rate limiting middleware.
type RateLimitConfig struct {
	Logger  *slog.Logger
	Limiter ChatLimiter
	Metrics metrics.Recorder
	Enabled bool
	RPS     float64
	Burst   int
	// TrustProxy uses X-Forwarded-For / X-Real-IP for the client address.
	TrustProxy bool
}

// RateLimitChat returns middleware that limits chat requests per client IP.
// Model calls cost money, so the budget is much tighter than for the rest of the API.
func RateLimitChat(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled || cfg.Limiter == nil {
			return next
		}
		recorder := cfg.Metrics
		if recorder == nil {
			recorder = metrics.NewNoop()
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, cfg.TrustProxy)

			result, err := cfg.Limiter.CheckChatRateLimit(r.Context(), ip, cfg.RPS, cfg.Burst)
			if err != nil {
				cfg.Logger.Error("chat rate limit check failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				// Fail open
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

			if !result.Allowed {
				retry := retryAfterSeconds(result.RetryAfter)
				cfg.Logger.Warn("rate limit exceeded",
					slog.String("type", "chat"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.Int("retry_after_seconds", retry),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncChatRateLimited()

				w.Header().Set("Retry-After", strconv.Itoa(retry))
				writeRateLimitError(w, retry)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func retryAfterSeconds(d time.Duration) int {
	s := int(d.Seconds())
	if s < 1 {
		return 1
	}
	return s
}

// writeRateLimitError writes a 429 in the chat endpoint's error shape.
func writeRateLimitError(w http.ResponseWriter, retryAfter int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": fmt.Sprintf("Too many chat requests. Retry after %d seconds.", retryAfter),
	})
}

// clientIP extracts the client IP from the request. Forwarding headers are
// only honoured behind a trusted proxy.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

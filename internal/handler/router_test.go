package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hormonya/hormonya/internal/auth"
	"github.com/hormonya/hormonya/internal/cache"
	"github.com/hormonya/hormonya/internal/chat"
	"github.com/hormonya/hormonya/internal/handler/dto"
	"github.com/hormonya/hormonya/internal/middleware"
)

type denyLimiter struct{}

func (denyLimiter) CheckChatRateLimit(context.Context, string, float64, int) (*cache.RateLimitResult, error) {
	return &cache.RateLimitResult{Allowed: false, RetryAfter: 3 * time.Second}, nil
}

func newTestRouter(t *testing.T, mutate func(*RouterConfig)) http.Handler {
	t.Helper()
	svcs := newTestServices(t)
	key, err := auth.RandomKey()
	if err != nil {
		t.Fatalf("random key: %v", err)
	}

	cfg := RouterConfig{
		Logger:        discardLogger(),
		Users:         svcs.users,
		Cycles:        svcs.cycles,
		Chat:          chat.NewService(nil, svcs.metrics),
		Tokens:        auth.NewIssuer(key, time.Hour),
		Metrics:       svcs.metrics,
		Recorder:      svcs.metrics,
		RateLimit:     middleware.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1},
		CORS:          middleware.DefaultCORSConfig(),
		IsDevelopment: true,
		MaxBodySize:   1 << 10,
		MaxUploadSize: 1 << 20,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewRouter(cfg)
}

func TestRouter_LoginAliasAndCycleFlow(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, path := range []string{"/api/login-by-email", "/api/login-email"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, jsonRequest(http.MethodPost, path, `{"email":"flow@example.com"}`))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", path, rec.Code)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Errorf("%s: missing X-Request-ID", path)
		}
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/save-cycle", `{"email":"flow@example.com","startDate":"2024-02-10"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("save-cycle: expected status 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/get-prediction?email=flow@example.com", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get-prediction: expected status 200, got %d", rec.Code)
	}
	if got := decodeBody[dto.PredictionResponse](t, rec).PredictedStart.String(); got != "2024-03-09" {
		t.Errorf("predictedStart = %s, want 2024-03-09", got)
	}
}

func TestRouter_SessionEmailFallback(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/login-by-email", `{"email":"tok@example.com"}`))
	token := decodeBody[dto.NewUserLoginResponse](t, rec).Token
	if token == "" {
		t.Fatal("expected a token")
	}

	// No email in the body: the session supplies it.
	req := jsonRequest(http.MethodPost, "/api/save-cycle", `{"startDate":"2026-10-01"}`)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("save-cycle with session: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("session: expected status 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous session: expected status 401, got %d", rec.Code)
	}
}

func TestRouter_BodyLimit(t *testing.T) {
	r := newTestRouter(t, nil)

	body := `{"email":"` + strings.Repeat("a", 2000) + `@example.com"}`
	for _, path := range []string{"/api/login-by-email", "/api/save-profile", "/api/save-cycle"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, jsonRequest(http.MethodPost, path, body))
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("%s: expected status 413, got %d", path, rec.Code)
		}

		// Without a Content-Length the limit trips inside the handler's decode.
		req := jsonRequest(http.MethodPost, path, body)
		req.ContentLength = -1
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("%s (streamed): expected status 413, got %d: %s", path, rec.Code, rec.Body.String())
		}
	}
}

func TestRouter_ChatRateLimited(t *testing.T) {
	r := newTestRouter(t, func(cfg *RouterConfig) {
		cfg.ChatLimiter = denyLimiter{}
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", nil))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "3" {
		t.Errorf("Retry-After = %s, want 3", rec.Header().Get("Retry-After"))
	}
}

func TestRouter_ChatWithoutLimiter(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("demo chat: expected status 200, got %d", rec.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/save-cycle", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if decodeBody[dto.ErrorResponse](t, rec).Message != "Resource not found." {
		t.Error("expected JSON not-found body")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/save-cycle", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestRouter_MetricsAndStatic(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Hormonya</h1>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	r := newTestRouter(t, func(cfg *RouterConfig) { cfg.StaticDir = dir })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Hormonya") {
		t.Errorf("static index: status %d body %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "hormonya_logins_total") {
		t.Errorf("metrics: status %d", rec.Code)
	}

	noMetrics := newTestRouter(t, func(cfg *RouterConfig) { cfg.Metrics = nil })
	rec = httptest.NewRecorder()
	noMetrics.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("metrics disabled: expected status 404, got %d", rec.Code)
	}
}

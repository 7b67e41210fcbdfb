package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/snip/internal/httpserver/deps"
	"github.com/MrSnakeDoc/snip/internal/httpserver/mw"
	"github.com/MrSnakeDoc/snip/internal/logger"
	"github.com/MrSnakeDoc/snip/internal/shortener"
	"github.com/MrSnakeDoc/snip/internal/slug"
	"github.com/MrSnakeDoc/snip/internal/store/memory"
	"github.com/MrSnakeDoc/snip/internal/throttle"
)

func newTestRouter(t *testing.T) (chi.Router, deps.Deps) {
	t.Helper()

	st := memory.NewStore()
	svc := shortener.New(shortener.Options{
		Store:     st,
		Generator: slug.NewGenerator(slug.DefaultLength),
		Throttle:  throttle.New(time.Nanosecond),
		Logger:    logger.Nop(),
		BaseURL:   "http://localhost:8080",
	})

	d := deps.Deps{
		Logger:    logger.Nop(),
		StartTime: time.Now(),
		TimeNow:   time.Now,
		Shortener: svc,
		Store:     st,
		BaseURL:   "http://localhost:8080",
		APIRateLimit: mw.RateLimitConfig{
			Burst:             100,
			RefillPerIPPerMin: 6000,
		},
	}

	r := chi.NewRouter()
	RegisterAll(r, d)
	return r, d
}

func TestShortenThenRedirectThroughRouter(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/shorten", strings.NewReader(`{"url":"https://example.com/path"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/shorten status = %v (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+resp.Slug, nil))
	if rec.Code != http.StatusFound {
		t.Fatalf("GET /%s status = %v, want 302", resp.Slug, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "https://example.com/path" {
		t.Errorf("GET /%s location = %v", resp.Slug, loc)
	}
}

func TestUnknownSlugThroughRouter(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doesnotexist", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /doesnotexist status = %v, want 404", rec.Code)
	}
}

func TestStaticRoutesWinOverSlug(t *testing.T) {
	r, _ := newTestRouter(t)

	// /healthz and /readyz must never be treated as slugs
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz status = %v, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /readyz status = %v, want 200", rec.Code)
	}
}

func TestStatsThroughRouter(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/stats status = %v, want 200", rec.Code)
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/snip/internal/httpserver/deps"
	"github.com/MrSnakeDoc/snip/internal/logger"
	"github.com/MrSnakeDoc/snip/internal/shortener"
	"github.com/MrSnakeDoc/snip/internal/slug"
	"github.com/MrSnakeDoc/snip/internal/store/memory"
	"github.com/MrSnakeDoc/snip/internal/throttle"
)

func newTestDeps(t *testing.T, window time.Duration) (deps.Deps, *memory.Store) {
	t.Helper()

	st := memory.NewStore()
	svc := shortener.New(shortener.Options{
		Store:     st,
		Generator: slug.NewGenerator(slug.DefaultLength),
		Throttle:  throttle.New(window),
		Logger:    logger.Nop(),
		BaseURL:   "http://localhost:8080",
	})

	return deps.Deps{
		Logger:     logger.Nop(),
		StartTime:  time.Now(),
		TimeNow:    time.Now,
		Shortener:  svc,
		Store:      st,
		BaseURL:    "http://localhost:8080",
		TrustProxy: true,
	}, st
}

func postShorten(handler http.HandlerFunc, body, clientIP string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/shorten", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if clientIP != "" {
		req.Header.Set("X-Forwarded-For", clientIP)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestShortenSuccess(t *testing.T) {
	d, _ := newTestDeps(t, time.Nanosecond)
	handler := Shorten(d)

	rec := postShorten(handler, `{"url":"https://example.com/path"}`, "1.2.3.4")
	if rec.Code != http.StatusOK {
		t.Fatalf("Shorten() status = %v, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		ShortURL string `json:"shorturl"`
		Slug     string `json:"slug"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Slug) != 6 {
		t.Errorf("Shorten() slug = %q, want length 6", resp.Slug)
	}
	if resp.ShortURL != "http://localhost:8080/"+resp.Slug {
		t.Errorf("Shorten() shorturl = %v", resp.ShortURL)
	}
}

func TestShortenInvalidURL(t *testing.T) {
	d, _ := newTestDeps(t, time.Nanosecond)
	handler := Shorten(d)

	rec := postShorten(handler, `{"url":"not-a-url"}`, "1.2.3.4")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Shorten() status = %v, want 400", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error == "" {
		t.Error("Shorten() error payload should carry a message")
	}
}

func TestShortenMissingURL(t *testing.T) {
	d, _ := newTestDeps(t, time.Nanosecond)
	handler := Shorten(d)

	if rec := postShorten(handler, `{}`, "1.2.3.4"); rec.Code != http.StatusBadRequest {
		t.Errorf("Shorten() status = %v, want 400", rec.Code)
	}
}

func TestShortenMalformedBody(t *testing.T) {
	d, _ := newTestDeps(t, time.Nanosecond)
	handler := Shorten(d)

	if rec := postShorten(handler, `{"url": `, "1.2.3.4"); rec.Code != http.StatusBadRequest {
		t.Errorf("Shorten() status = %v, want 400", rec.Code)
	}
}

func TestShortenThrottled(t *testing.T) {
	d, _ := newTestDeps(t, 2*time.Second)
	handler := Shorten(d)

	if rec := postShorten(handler, `{"url":"https://example.com/a"}`, "1.2.3.4"); rec.Code != http.StatusOK {
		t.Fatalf("Shorten() first call status = %v, want 200", rec.Code)
	}
	if rec := postShorten(handler, `{"url":"https://example.com/b"}`, "1.2.3.4"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("Shorten() second call status = %v, want 429", rec.Code)
	}
	// A different client is unaffected
	if rec := postShorten(handler, `{"url":"https://example.com/c"}`, "5.6.7.8"); rec.Code != http.StatusOK {
		t.Errorf("Shorten() other client status = %v, want 200", rec.Code)
	}
}

func TestShortenAnonymousClientsShareBucket(t *testing.T) {
	d, _ := newTestDeps(t, 2*time.Second)
	d.TrustProxy = false
	handler := Shorten(d)

	// Without proxy headers and with identical RemoteAddr both requests
	// land in the same bucket.
	req1 := httptest.NewRequest(http.MethodPost, "/api/shorten", strings.NewReader(`{"url":"https://example.com/a"}`))
	rec1 := httptest.NewRecorder()
	handler(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("Shorten() first anonymous call status = %v, want 200", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/api/shorten", strings.NewReader(`{"url":"https://example.com/b"}`))
	rec2 := httptest.NewRecorder()
	handler(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Errorf("Shorten() second anonymous call status = %v, want 429", rec2.Code)
	}
}

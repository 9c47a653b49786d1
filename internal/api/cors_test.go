package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/querydeck/querydeck/internal/config"
)

func newCORSTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg, err := config.Load("querydeck-api", mapLookup(map[string]string{
		"QUERYDECK_HTTP_ALLOWED_ORIGINS": "https://app.example.com",
	}))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}
	return NewHandler(cfg, Dependencies{Cards: newFakeCardRepo()})
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	h := newCORSTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/cards", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestCORSOmitsHeadersForUnknownOrigin(t *testing.T) {
	h := newCORSTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/cards", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want unset", got)
	}
}

func TestCORSAnswersPreflight(t *testing.T) {
	h := newCORSTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatal("expected Access-Control-Allow-Methods header")
	}
}

func TestCORSDoesNotGuardLiveness(t *testing.T) {
	h := newCORSTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

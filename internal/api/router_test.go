package api

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pressroom/blog-api/internal/infrastructure/config"
)

var (
	routerOnce sync.Once
	testRouter *echo.Echo
)

// newTestRouter builds the router once for all tests: echoprometheus
// registers its collectors on the default registry, and registering twice
// panics.
func newTestRouter() *echo.Echo {
	routerOnce.Do(func() {
		cfg := &config.Config{
			Port:      "8080",
			JWTSecret: "secret",
		}
		// nil pool and redis client: these tests never reach a repository.
		testRouter = NewRouter(nil, nil, cfg, zerolog.Nop())
	})
	return testRouter
}

func TestRouter_CORSPreflight(t *testing.T) {
	e := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/posts", nil)
	req.Header.Set(echo.HeaderOrigin, "https://blog.example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderAccessControlAllowOrigin) == "" {
		t.Fatalf("expected Access-Control-Allow-Origin on preflight response")
	}
}

func TestRouter_CORSSimpleRequest(t *testing.T) {
	e := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(echo.HeaderOrigin, "https://blog.example.com")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderAccessControlAllowOrigin) == "" {
		t.Fatalf("expected Access-Control-Allow-Origin on response")
	}
}

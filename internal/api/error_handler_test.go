package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pressroom/blog-api/internal/core/domain"
)

func render(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHTTPErrorHandler(zerolog.Nop())
	h(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"duplicate username", domain.ErrUserExists, http.StatusBadRequest},
		{"unknown user", domain.ErrUserNotFound, http.StatusBadRequest},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"identity mismatch", domain.ErrIdentityMismatch, http.StatusBadRequest},
		{"post missing", domain.ErrPostNotFound, http.StatusNotFound},
		{"not owner", domain.ErrNotPostOwner, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := render(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if body["error"] == "" {
				t.Fatalf("expected error field in body: %+v", body)
			}
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("update post"), domain.ErrPostNotFound)
	rec, _ := render(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped error, got %d", rec.Code)
	}
}

func TestErrorHandler_UnexpectedErrorIsScrubbed(t *testing.T) {
	rec, body := render(t, errors.New("pq: connection refused to 10.0.0.5"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal detail leaked: %+v", body)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, _ := render(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

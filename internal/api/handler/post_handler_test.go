package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pressroom/blog-api/internal/core/domain"
	"github.com/pressroom/blog-api/internal/core/ports"
)

type stubPostService struct {
	listFn       func(ctx context.Context) ([]domain.Post, error)
	listByUserFn func(ctx context.Context, userID int64) ([]domain.Post, error)
	createFn     func(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error)
	updateFn     func(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error)
	deleteFn     func(ctx context.Context, input ports.DeletePostInput) (*domain.Post, error)
}

func (s *stubPostService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.listFn(ctx)
}

func (s *stubPostService) ListPostsByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	return s.listByUserFn(ctx, userID)
}

func (s *stubPostService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	return s.createFn(ctx, input)
}

func (s *stubPostService) UpdatePost(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error) {
	return s.updateFn(ctx, input)
}

func (s *stubPostService) DeletePost(ctx context.Context, input ports.DeletePostInput) (*domain.Post, error) {
	return s.deleteFn(ctx, input)
}

func samplePost() *domain.Post {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Post{
		ID: 7, Author: "alice", Title: "t", Content: "c", Thumbnail: "th",
		UserID: 1, CreatedAt: now, UpdatedAt: now,
	}
}

// authedContext builds a context the way the Auth middleware would leave it.
func authedContext(e *echo.Echo, method, target, body string, callerID int64) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("id", callerID)
	c.Set("username", "alice")
	return c, rec
}

func TestPostHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		listFn: func(ctx context.Context) ([]domain.Post, error) {
			return []domain.Post{*samplePost()}, nil
		},
	}
	handler := NewPostHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var posts []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &posts); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(posts) != 1 || posts[0]["user_id"] != float64(1) {
		t.Fatalf("unexpected payload: %+v", posts)
	}
}

func TestPostHandler_ListByUser(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		listByUserFn: func(ctx context.Context, userID int64) ([]domain.Post, error) {
			if userID != 3 {
				t.Fatalf("expected user id 3, got %d", userID)
			}
			return []domain.Post{}, nil
		},
	}
	handler := NewPostHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/posts/3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/posts/:id")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.ListByUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestPostHandler_ListByUser_BadID(t *testing.T) {
	e := newTestEcho()
	handler := NewPostHandler(&stubPostService{})

	req := httptest.NewRequest(http.MethodGet, "/posts/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/posts/:id")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := handler.ListByUser(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestPostHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		createFn: func(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
			if input.CallerID != 1 || input.UserID != 1 {
				t.Fatalf("unexpected identities: %+v", input)
			}
			if input.Fields.Title != "t" {
				t.Fatalf("unexpected fields: %+v", input.Fields)
			}
			return samplePost(), nil
		},
	}
	handler := NewPostHandler(stub)

	body := `{"author":"alice","title":"t","content":"c","thumbnail":"th","userId":1}`
	c, rec := authedContext(e, http.MethodPost, "/posts", body, 1)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var post map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if post["id"] != float64(7) {
		t.Fatalf("unexpected post: %+v", post)
	}
}

func TestPostHandler_Create_NoIdentity(t *testing.T) {
	e := newTestEcho()
	handler := NewPostHandler(&stubPostService{
		createFn: func(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body := `{"author":"alice","title":"t","content":"c","userId":1}`
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestPostHandler_Create_IdentityMismatch(t *testing.T) {
	e := newTestEcho()
	handler := NewPostHandler(&stubPostService{
		createFn: func(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
			return nil, domain.ErrIdentityMismatch
		},
	})

	body := `{"author":"alice","title":"t","content":"c","userId":2}`
	c, _ := authedContext(e, http.MethodPost, "/posts", body, 1)

	if err := handler.Create(c); !errors.Is(err, domain.ErrIdentityMismatch) {
		t.Fatalf("expected ErrIdentityMismatch, got %v", err)
	}
}

func TestPostHandler_Update_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		updateFn: func(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error) {
			if input.PostID != 7 {
				t.Fatalf("expected post id 7, got %d", input.PostID)
			}
			return samplePost(), nil
		},
	}
	handler := NewPostHandler(stub)

	body := `{"author":"alice","title":"t","content":"c","userId":1}`
	c, rec := authedContext(e, http.MethodPut, "/posts/7", body, 1)
	c.SetPath("/posts/:id")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "success" {
		t.Fatalf("expected success status, got %+v", resp)
	}
	if _, ok := resp["updatedPost"].(map[string]any); !ok {
		t.Fatalf("expected updatedPost in response: %+v", resp)
	}
}

func TestPostHandler_Update_NotFound(t *testing.T) {
	e := newTestEcho()
	handler := NewPostHandler(&stubPostService{
		updateFn: func(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error) {
			return nil, domain.ErrPostNotFound
		},
	})

	body := `{"author":"alice","title":"t","content":"c","userId":1}`
	c, _ := authedContext(e, http.MethodPut, "/posts/999", body, 1)
	c.SetPath("/posts/:id")
	c.SetParamNames("id")
	c.SetParamValues("999")

	if err := handler.Update(c); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		deleteFn: func(ctx context.Context, input ports.DeletePostInput) (*domain.Post, error) {
			if input.PostID != 7 || input.UserID != 1 || input.CallerID != 1 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return samplePost(), nil
		},
	}
	handler := NewPostHandler(stub)

	c, rec := authedContext(e, http.MethodDelete, "/posts/7", `{"userId":1}`, 1)
	c.SetPath("/posts/:id")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	deleted, ok := resp["deletedPost"].(map[string]any)
	if !ok {
		t.Fatalf("expected deletedPost in response: %+v", resp)
	}
	if deleted["id"] != float64(7) {
		t.Fatalf("unexpected snapshot: %+v", deleted)
	}
}

func TestPostHandler_Delete_NotOwner(t *testing.T) {
	e := newTestEcho()
	handler := NewPostHandler(&stubPostService{
		deleteFn: func(ctx context.Context, input ports.DeletePostInput) (*domain.Post, error) {
			return nil, domain.ErrNotPostOwner
		},
	})

	c, _ := authedContext(e, http.MethodDelete, "/posts/7", `{"userId":1}`, 1)
	c.SetPath("/posts/:id")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := handler.Delete(c); !errors.Is(err, domain.ErrNotPostOwner) {
		t.Fatalf("expected ErrNotPostOwner, got %v", err)
	}
}

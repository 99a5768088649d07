package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pressroom/blog-api/internal/api/metrics"
	"github.com/pressroom/blog-api/internal/core/domain"
	"github.com/pressroom/blog-api/internal/core/ports"
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /posts.
//
// @Summary      List all posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}   domain.Post
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// ListByUser handles GET /posts/:id. The path value is a user id, not a post
// id; the route name is part of the published contract and stays as-is.
//
// @Summary      List posts owned by a user
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {array}   domain.Post
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c)
	if err != nil {
		return err
	}

	posts, err := h.service.ListPostsByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Create handles POST /posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postRequest  true  "Post fields"
// @Success      200   {object}  domain.Post
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	callerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	post, err := h.service.CreatePost(c.Request().Context(), ports.CreatePostInput{
		Fields:   toPostFields(req),
		UserID:   req.UserID,
		CallerID: callerID,
	})
	if err != nil {
		metrics.PostMutationsTotal.WithLabelValues("create", mutationResult(err)).Inc()
		return err
	}

	metrics.PostMutationsTotal.WithLabelValues("create", "ok").Inc()
	return c.JSON(http.StatusOK, post)
}

// Update handles PUT /posts/:id.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Post id"
// @Param        body  body      postRequest  true  "Post fields"
// @Success      200   {object}  updatePostResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	callerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	postID, err := pathID(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	post, err := h.service.UpdatePost(c.Request().Context(), ports.UpdatePostInput{
		PostID:   postID,
		Fields:   toPostFields(req),
		UserID:   req.UserID,
		CallerID: callerID,
	})
	if err != nil {
		metrics.PostMutationsTotal.WithLabelValues("update", mutationResult(err)).Inc()
		return err
	}

	metrics.PostMutationsTotal.WithLabelValues("update", "ok").Inc()
	return c.JSON(http.StatusOK, updatePostResponse{
		Status:      "success",
		Message:     "post has been updated",
		UpdatedPost: post,
	})
}

// Delete handles DELETE /posts/:id.
//
// @Summary      Delete a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Post id"
// @Param        body  body      deletePostRequest  true  "Owning user id"
// @Success      200   {object}  deletePostResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	callerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	postID, err := pathID(c)
	if err != nil {
		return err
	}

	var req deletePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	post, err := h.service.DeletePost(c.Request().Context(), ports.DeletePostInput{
		PostID:   postID,
		UserID:   req.UserID,
		CallerID: callerID,
	})
	if err != nil {
		metrics.PostMutationsTotal.WithLabelValues("delete", mutationResult(err)).Inc()
		return err
	}

	metrics.PostMutationsTotal.WithLabelValues("delete", "ok").Inc()
	return c.JSON(http.StatusOK, deletePostResponse{
		Status:      "success",
		Message:     "post deleted successfully",
		DeletedPost: post,
	})
}

func toPostFields(req postRequest) ports.PostFields {
	return ports.PostFields{
		Author:    req.Author,
		Title:     req.Title,
		Content:   req.Content,
		Thumbnail: req.Thumbnail,
	}
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func mutationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrIdentityMismatch),
		errors.Is(err, domain.ErrNotPostOwner),
		errors.Is(err, domain.ErrUserNotFound):
		return "rejected"
	case errors.Is(err, domain.ErrPostNotFound):
		return "not_found"
	default:
		return "error"
	}
}

package handler

import "github.com/pressroom/blog-api/internal/core/domain"

// --- Request / Response types ---

// postRequest is the body for POST /posts and PUT /posts/:id. The user id key
// is camelCase in the published contract, unlike the snake_case responses.
type postRequest struct {
	Author    string `json:"author"    validate:"required"`
	Title     string `json:"title"     validate:"required"`
	Content   string `json:"content"   validate:"required"`
	Thumbnail string `json:"thumbnail"`
	UserID    int64  `json:"userId"    validate:"required"`
}

type deletePostRequest struct {
	UserID int64 `json:"userId" validate:"required"`
}

type updatePostResponse struct {
	Status      string       `json:"status"`
	Message     string       `json:"message"`
	UpdatedPost *domain.Post `json:"updatedPost"`
}

type deletePostResponse struct {
	Status      string       `json:"status"`
	Message     string       `json:"message"`
	DeletedPost *domain.Post `json:"deletedPost"`
}

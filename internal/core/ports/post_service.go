package ports

import (
	"context"

	"github.com/pressroom/blog-api/internal/core/domain"
)

// CreatePostInput carries the request body plus the identity the auth
// middleware verified (CallerID).
type CreatePostInput struct {
	Fields   PostFields
	UserID   int64
	CallerID int64
}

type UpdatePostInput struct {
	PostID   int64
	Fields   PostFields
	UserID   int64
	CallerID int64
}

type DeletePostInput struct {
	PostID   int64
	UserID   int64
	CallerID int64
}

type PostService interface {
	ListPosts(ctx context.Context) ([]domain.Post, error)
	ListPostsByUser(ctx context.Context, userID int64) ([]domain.Post, error)
	CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	UpdatePost(ctx context.Context, input UpdatePostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, input DeletePostInput) (*domain.Post, error)
}

package ports

import (
	"context"

	"github.com/pressroom/blog-api/internal/core/domain"
)

// PostFields are the caller-editable columns of a post.
type PostFields struct {
	Author    string
	Title     string
	Content   string
	Thumbnail string
}

// PostRepository defines the interface for post persistence. Mutations that
// need a check before the write (owner existence, row ownership) run the check
// and the write inside a single transaction.
type PostRepository interface {
	List(ctx context.Context) ([]domain.Post, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Post, error)
	// Create verifies that userID references an existing user, then inserts.
	// Returns domain.ErrUserNotFound when the owner does not exist.
	Create(ctx context.Context, userID int64, fields PostFields) (*domain.Post, error)
	// Update rewrites the editable fields of post id and refreshes updated_at.
	// Returns domain.ErrPostNotFound when no row matches and
	// domain.ErrNotPostOwner when the row is not owned by ownerID.
	Update(ctx context.Context, id, ownerID int64, fields PostFields) (*domain.Post, error)
	// Delete removes post id and returns its pre-deletion snapshot. Error
	// contract matches Update.
	Delete(ctx context.Context, id, ownerID int64) (*domain.Post, error)
}

package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pressroom/blog-api/internal/core/domain"
	"github.com/pressroom/blog-api/internal/core/ports"
)

// PostService implements post CRUD. Every mutation gates on the verified
// caller identity matching the user id supplied in the body, then the
// repository enforces row-level checks inside its transaction.
type PostService struct {
	repo   ports.PostRepository
	logger zerolog.Logger
}

func NewPostService(repo ports.PostRepository, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, logger: logger}
}

func (s *PostService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.repo.List(ctx)
}

func (s *PostService) ListPostsByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *PostService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	if input.CallerID != input.UserID {
		return nil, domain.ErrIdentityMismatch
	}

	post, err := s.repo.Create(ctx, input.UserID, input.Fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("post_id", post.ID).Int64("user_id", post.UserID).Msg("post created")
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error) {
	if input.CallerID != input.UserID {
		return nil, domain.ErrIdentityMismatch
	}

	post, err := s.repo.Update(ctx, input.PostID, input.CallerID, input.Fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("post_id", post.ID).Int64("user_id", post.UserID).Msg("post updated")
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, input ports.DeletePostInput) (*domain.Post, error) {
	if input.CallerID != input.UserID {
		return nil, domain.ErrIdentityMismatch
	}

	post, err := s.repo.Delete(ctx, input.PostID, input.CallerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("post_id", post.ID).Int64("user_id", post.UserID).Msg("post deleted")
	return post, nil
}

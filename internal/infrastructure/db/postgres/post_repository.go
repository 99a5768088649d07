package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pressroom/blog-api/internal/core/domain"
	"github.com/pressroom/blog-api/internal/core/ports"
)

const postColumns = `id, author, title, content, thumbnail, user_id, created_at, updated_at`

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM posts`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

func (r *PostRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM posts WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts by user: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// Create verifies the owning user exists and inserts the post in one
// transaction, so the owner cannot disappear between check and insert.
func (r *PostRepository) Create(ctx context.Context, userID int64, fields ports.PostFields) (*domain.Post, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create post: %w", err)
	}
	defer tx.Rollback(ctx)

	// KEY SHARE holds off a concurrent deletion of the user row until commit.
	var exists int
	err = tx.QueryRow(ctx, `SELECT 1 FROM users WHERE id = $1 FOR KEY SHARE`, userID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("check post owner: %w", err)
	}

	var post domain.Post
	err = tx.QueryRow(ctx, `
		INSERT INTO posts (author, title, content, thumbnail, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING `+postColumns,
		fields.Author, fields.Title, fields.Content, fields.Thumbnail, userID,
	).Scan(&post.ID, &post.Author, &post.Title, &post.Content, &post.Thumbnail,
		&post.UserID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create post: %w", err)
	}
	return &post, nil
}

// Update locks the row, enforces ownership against the stored user_id, then
// rewrites the editable fields and refreshes updated_at.
func (r *PostRepository) Update(ctx context.Context, id, ownerID int64, fields ports.PostFields) (*domain.Post, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update post: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockAndCheckOwner(ctx, tx, id, ownerID); err != nil {
		return nil, err
	}

	var post domain.Post
	err = tx.QueryRow(ctx, `
		UPDATE posts
		SET author = $1, title = $2, content = $3, thumbnail = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING `+postColumns,
		fields.Author, fields.Title, fields.Content, fields.Thumbnail, id,
	).Scan(&post.ID, &post.Author, &post.Title, &post.Content, &post.Thumbnail,
		&post.UserID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update post: %w", err)
	}
	return &post, nil
}

// Delete locks the row, enforces ownership, deletes it, and returns the
// pre-deletion snapshot.
func (r *PostRepository) Delete(ctx context.Context, id, ownerID int64) (*domain.Post, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin delete post: %w", err)
	}
	defer tx.Rollback(ctx)

	var post domain.Post
	err = tx.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1 FOR UPDATE`, id).
		Scan(&post.ID, &post.Author, &post.Title, &post.Content, &post.Thumbnail,
			&post.UserID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post.UserID != ownerID {
		return nil, domain.ErrNotPostOwner
	}

	if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete post: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit delete post: %w", err)
	}
	return &post, nil
}

func lockAndCheckOwner(ctx context.Context, tx pgx.Tx, id, ownerID int64) error {
	var storedOwner int64
	err := tx.QueryRow(ctx, `SELECT user_id FROM posts WHERE id = $1 FOR UPDATE`, id).Scan(&storedOwner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrPostNotFound
		}
		return fmt.Errorf("find post: %w", err)
	}
	if storedOwner != ownerID {
		return domain.ErrNotPostOwner
	}
	return nil
}

func collectPosts(rows pgx.Rows) ([]domain.Post, error) {
	posts := make([]domain.Post, 0)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Author, &p.Title, &p.Content, &p.Thumbnail,
			&p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

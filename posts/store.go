package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/bulletin-go/apperror"
)

// PostStore persists posts. Authorization decisions stay in the service;
// the store only answers NotFound when the row is missing.
type PostStore interface {
	// Insert stores a new post and fills in its id and timestamps.
	Insert(ctx context.Context, post *Post) (*Post, error)

	// FindByID returns the post with the given id, or a NotFound error.
	FindByID(ctx context.Context, postID int64) (*Post, error)

	// Replace writes the post's title, content, and images and refreshes
	// its updated_at timestamp.
	Replace(ctx context.Context, post *Post) (*Post, error)

	// Delete removes the post with the given id.
	Delete(ctx context.Context, postID int64) error

	// Search returns up to limit posts whose title or content contains
	// keyword, newest first.
	Search(ctx context.Context, keyword string, limit int) ([]Post, error)
}

type pgPostStore struct {
	db *pgxpool.Pool
}

// NewPostStore creates a PostStore backed by the given pool.
func NewPostStore(db *pgxpool.Pool) PostStore {
	return &pgPostStore{db: db}
}

func (s *pgPostStore) Insert(ctx context.Context, post *Post) (*Post, error) {
	query := `INSERT INTO posts (author_id, title, content, images)
              VALUES ($1, $2, $3, $4)
              RETURNING id, created_at, updated_at`
	err := s.db.QueryRow(ctx, query, post.AuthorID, post.Title, post.Content, post.Images).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}
	return post, nil
}

func (s *pgPostStore) FindByID(ctx context.Context, postID int64) (*Post, error) {
	var post Post
	query := `SELECT id, author_id, title, content, images, created_at, updated_at
              FROM posts WHERE id = $1`
	err := s.db.QueryRow(ctx, query, postID).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Content,
		&post.Images,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("post %d not found", postID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}
	return &post, nil
}

func (s *pgPostStore) Replace(ctx context.Context, post *Post) (*Post, error) {
	query := `UPDATE posts
              SET title = $2, content = $3, images = $4, updated_at = now()
              WHERE id = $1
              RETURNING updated_at`
	err := s.db.QueryRow(ctx, query, post.ID, post.Title, post.Content, post.Images).
		Scan(&post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("post %d not found", post.ID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to update post", err)
	}
	return post, nil
}

func (s *pgPostStore) Delete(ctx context.Context, postID int64) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID); err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}
	return nil
}

// Search relies on the pg_trgm indexes on title and content to keep the
// ILIKE scan usable on larger tables.
func (s *pgPostStore) Search(ctx context.Context, keyword string, limit int) ([]Post, error) {
	pattern := "%" + keyword + "%"
	query := `SELECT id, author_id, title, content, images, created_at, updated_at
              FROM posts
              WHERE title ILIKE $1 OR content ILIKE $1
              ORDER BY created_at DESC
              LIMIT $2`
	rows, err := s.db.Query(ctx, query, pattern, limit)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to search posts", err)
	}
	defer rows.Close()

	results := []Post{}
	for rows.Next() {
		var post Post
		if err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Title,
			&post.Content,
			&post.Images,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post row", err)
		}
		results = append(results, post)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read post rows", err)
	}
	return results, nil
}

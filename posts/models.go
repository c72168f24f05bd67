// Package posts implements the content surface: creating, editing, deleting,
// fetching, and searching text posts. Reads permit anonymous access; writes
// require an authenticated author and are restricted to that author.
package posts

import "time"

// Post is a text post with optional image references.
type Post struct {
	ID        int64     `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Images    []string  `json:"images,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

// UpdatePostRequest is the payload for editing a post. Title, content, and
// the image list are replaced wholesale.
type UpdatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

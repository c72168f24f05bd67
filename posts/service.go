package posts

import (
	"context"

	"github.com/user/bulletin-go/apperror"
)

// searchLimit caps the number of posts returned by a keyword search.
const searchLimit = 50

// PostService holds the business logic for posts, in particular the
// author-only rule for edits and deletes.
type PostService struct {
	store PostStore
}

// NewPostService creates a PostService on top of the given store.
func NewPostService(store PostStore) *PostService {
	return &PostService{store: store}
}

// CreatePost inserts a new post authored by authorID.
func (s *PostService) CreatePost(ctx context.Context, authorID string, req CreatePostRequest) (*Post, error) {
	post := &Post{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		Images:   normalizeImages(req.Images),
	}
	return s.store.Insert(ctx, post)
}

// GetPost returns the post with the given id.
func (s *PostService) GetPost(ctx context.Context, postID int64) (*Post, error) {
	return s.store.FindByID(ctx, postID)
}

// UpdatePost replaces the title, content, and images of a post. Only the
// post's author may edit it.
func (s *PostService) UpdatePost(ctx context.Context, postID int64, actorID string, req UpdatePostRequest) (*Post, error) {
	post, err := s.store.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, apperror.NewForbiddenError("only the author may edit this post", nil)
	}

	post.Title = req.Title
	post.Content = req.Content
	post.Images = normalizeImages(req.Images)
	return s.store.Replace(ctx, post)
}

// DeletePost removes a post. Only the post's author may delete it.
func (s *PostService) DeletePost(ctx context.Context, postID int64, actorID string) error {
	post, err := s.store.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return apperror.NewForbiddenError("only the author may delete this post", nil)
	}
	return s.store.Delete(ctx, postID)
}

// SearchPosts returns posts whose title or content contains the keyword,
// newest first.
func (s *PostService) SearchPosts(ctx context.Context, keyword string) ([]Post, error) {
	return s.store.Search(ctx, keyword, searchLimit)
}

// normalizeImages keeps the images column non-null: an absent list is
// stored as an empty array.
func normalizeImages(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}

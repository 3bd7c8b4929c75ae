package repository

import (
	"context"
	"sort"
	"time"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/storage"
)

// StoreCommentRepository implements CommentRepository over blog_comments.
type StoreCommentRepository struct {
	c *collection[domain.Comment]
}

// NewCommentRepository creates a new StoreCommentRepository.
func NewCommentRepository(store *storage.Adapter) *StoreCommentRepository {
	return &StoreCommentRepository{
		c: newCollection(store, storage.NamespaceComments,
			func(c *domain.Comment) string { return c.ID },
			func(c *domain.Comment, now time.Time, created bool) {
				if created && c.CreatedAt.IsZero() {
					c.CreatedAt = now
				}
				c.UpdatedAt = now
			}),
	}
}

// List returns all comments, newest first.
func (r *StoreCommentRepository) List(ctx context.Context) []domain.Comment {
	comments := r.c.all(ctx)
	sortByCreatedDesc(comments)
	return comments
}

// ListByPost returns the comments on postID, newest first.
func (r *StoreCommentRepository) ListByPost(ctx context.Context, postID string) []domain.Comment {
	comments := r.c.filter(ctx, func(c *domain.Comment) bool { return c.PostID == postID })
	sortByCreatedDesc(comments)
	return comments
}

func (r *StoreCommentRepository) GetByID(ctx context.Context, id string) (domain.Comment, bool) {
	return r.c.byID(ctx, id)
}

func (r *StoreCommentRepository) Save(ctx context.Context, comment domain.Comment) domain.Comment {
	return r.c.save(ctx, comment)
}

func (r *StoreCommentRepository) Update(ctx context.Context, id string, fn func(*domain.Comment)) (domain.Comment, bool) {
	return r.c.update(ctx, id, func(c *domain.Comment) {
		createdAt := c.CreatedAt
		fn(c)
		c.ID = id
		c.CreatedAt = createdAt
	})
}

func (r *StoreCommentRepository) Delete(ctx context.Context, id string) bool {
	return r.c.remove(ctx, id)
}

// StreamAll calls callback for each stored comment.
func (r *StoreCommentRepository) StreamAll(ctx context.Context, callback func(domain.Comment) error) error {
	return r.c.stream(ctx, callback)
}

func sortByCreatedDesc(comments []domain.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
}

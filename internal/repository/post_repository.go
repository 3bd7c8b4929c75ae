package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/storage"
)

// StorePostRepository implements PostRepository over the blog_posts namespace.
type StorePostRepository struct {
	c *collection[domain.Post]
}

// NewPostRepository creates a new StorePostRepository.
func NewPostRepository(store *storage.Adapter) *StorePostRepository {
	return &StorePostRepository{
		c: newCollection(store, storage.NamespacePosts,
			func(p *domain.Post) string { return p.ID },
			func(p *domain.Post, now time.Time, created bool) {
				if !created || p.UpdatedAt.IsZero() {
					p.UpdatedAt = now
				}
			}),
	}
}

// List returns every post, drafts included, most recently updated first.
func (r *StorePostRepository) List(ctx context.Context) []domain.Post {
	posts := r.c.all(ctx)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].UpdatedAt.After(posts[j].UpdatedAt)
	})
	return posts
}

// ListPublished returns published posts, newest publishedAt first.
func (r *StorePostRepository) ListPublished(ctx context.Context) []domain.Post {
	posts := r.c.filter(ctx, func(p *domain.Post) bool { return p.IsPublished() })
	sortByPublishedDesc(posts)
	return posts
}

func (r *StorePostRepository) GetByID(ctx context.Context, id string) (domain.Post, bool) {
	return r.c.byID(ctx, id)
}

// GetBySlug returns the first post with slug regardless of status.
func (r *StorePostRepository) GetBySlug(ctx context.Context, slug string) (domain.Post, bool) {
	return r.c.find(ctx, func(p *domain.Post) bool { return p.Slug == slug })
}

// Search returns published posts whose title, excerpt, content or any tag
// contains query, ignoring case. Results keep the published ordering.
func (r *StorePostRepository) Search(ctx context.Context, query string) []domain.Post {
	q := strings.ToLower(query)
	published := r.ListPublished(ctx)
	out := make([]domain.Post, 0, len(published))
	for _, p := range published {
		if matchesQuery(&p, q) {
			out = append(out, p)
		}
	}
	return out
}

// ListByCategory returns published posts in the category with categoryID.
func (r *StorePostRepository) ListByCategory(ctx context.Context, categoryID string) []domain.Post {
	posts := r.c.filter(ctx, func(p *domain.Post) bool {
		return p.IsPublished() && p.Category.ID == categoryID
	})
	sortByPublishedDesc(posts)
	return posts
}

// ListByTag returns published posts carrying tag, compared case-insensitively.
func (r *StorePostRepository) ListByTag(ctx context.Context, tag string) []domain.Post {
	posts := r.c.filter(ctx, func(p *domain.Post) bool {
		return p.IsPublished() && p.HasTag(tag)
	})
	sortByPublishedDesc(posts)
	return posts
}

// Save upserts post. Replacing an existing post stamps UpdatedAt.
func (r *StorePostRepository) Save(ctx context.Context, post domain.Post) domain.Post {
	return r.c.save(ctx, post)
}

// Update applies fn to the stored post and stamps UpdatedAt. The id is kept.
func (r *StorePostRepository) Update(ctx context.Context, id string, fn func(*domain.Post)) (domain.Post, bool) {
	return r.c.update(ctx, id, func(p *domain.Post) {
		fn(p)
		p.ID = id
	})
}

func (r *StorePostRepository) Delete(ctx context.Context, id string) bool {
	return r.c.remove(ctx, id)
}

func (r *StorePostRepository) ReplaceAll(ctx context.Context, posts []domain.Post) {
	r.c.replaceAll(ctx, posts)
}

// StreamAll calls callback for each stored post in storage order.
func (r *StorePostRepository) StreamAll(ctx context.Context, callback func(domain.Post) error) error {
	return r.c.stream(ctx, callback)
}

func matchesQuery(p *domain.Post, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Excerpt), q) ||
		strings.Contains(strings.ToLower(p.Content), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func sortByPublishedDesc(posts []domain.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
}

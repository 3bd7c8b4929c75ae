package repository

import (
	"context"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/storage"
)

// StoreCategoryRepository implements CategoryRepository over blog_categories.
type StoreCategoryRepository struct {
	c *collection[domain.Category]
}

// NewCategoryRepository creates a new StoreCategoryRepository.
func NewCategoryRepository(store *storage.Adapter) *StoreCategoryRepository {
	return &StoreCategoryRepository{
		c: newCollection(store, storage.NamespaceCategories,
			func(c *domain.Category) string { return c.ID }, nil),
	}
}

func (r *StoreCategoryRepository) List(ctx context.Context) []domain.Category {
	return r.c.all(ctx)
}

func (r *StoreCategoryRepository) GetByID(ctx context.Context, id string) (domain.Category, bool) {
	return r.c.byID(ctx, id)
}

func (r *StoreCategoryRepository) GetBySlug(ctx context.Context, slug string) (domain.Category, bool) {
	return r.c.find(ctx, func(c *domain.Category) bool { return c.Slug == slug })
}

func (r *StoreCategoryRepository) Save(ctx context.Context, category domain.Category) domain.Category {
	return r.c.save(ctx, category)
}

func (r *StoreCategoryRepository) Delete(ctx context.Context, id string) bool {
	return r.c.remove(ctx, id)
}

func (r *StoreCategoryRepository) StreamAll(ctx context.Context, callback func(domain.Category) error) error {
	return r.c.stream(ctx, callback)
}

package repository

import (
	"context"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/storage"
)

// StoreAuthorRepository implements AuthorRepository over blog_authors.
type StoreAuthorRepository struct {
	c *collection[domain.Author]
}

// NewAuthorRepository creates a new StoreAuthorRepository.
func NewAuthorRepository(store *storage.Adapter) *StoreAuthorRepository {
	return &StoreAuthorRepository{
		c: newCollection(store, storage.NamespaceAuthors,
			func(a *domain.Author) string { return a.ID }, nil),
	}
}

func (r *StoreAuthorRepository) List(ctx context.Context) []domain.Author {
	return r.c.all(ctx)
}

func (r *StoreAuthorRepository) GetByID(ctx context.Context, id string) (domain.Author, bool) {
	return r.c.byID(ctx, id)
}

func (r *StoreAuthorRepository) Save(ctx context.Context, author domain.Author) domain.Author {
	return r.c.save(ctx, author)
}

func (r *StoreAuthorRepository) Delete(ctx context.Context, id string) bool {
	return r.c.remove(ctx, id)
}

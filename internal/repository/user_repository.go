package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/storage"
)

// StoreUserRepository implements UserRepository over blog_users.
type StoreUserRepository struct {
	c *collection[domain.User]
}

// NewUserRepository creates a new StoreUserRepository.
func NewUserRepository(store *storage.Adapter) *StoreUserRepository {
	return &StoreUserRepository{
		c: newCollection(store, storage.NamespaceUsers,
			func(u *domain.User) string { return u.ID },
			func(u *domain.User, now time.Time, created bool) {
				if created && u.CreatedAt.IsZero() {
					u.CreatedAt = now
				}
				u.UpdatedAt = now
			}),
	}
}

func (r *StoreUserRepository) List(ctx context.Context) []domain.User {
	return r.c.all(ctx)
}

func (r *StoreUserRepository) GetByID(ctx context.Context, id string) (domain.User, bool) {
	return r.c.byID(ctx, id)
}

// GetByEmail matches email case-insensitively.
func (r *StoreUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, bool) {
	return r.c.find(ctx, func(u *domain.User) bool { return strings.EqualFold(u.Email, email) })
}

// Save upserts user, stamping CreatedAt on insert and UpdatedAt always.
func (r *StoreUserRepository) Save(ctx context.Context, user domain.User) domain.User {
	return r.c.save(ctx, user)
}

func (r *StoreUserRepository) Update(ctx context.Context, id string, fn func(*domain.User)) (domain.User, bool) {
	return r.c.update(ctx, id, func(u *domain.User) {
		createdAt := u.CreatedAt
		fn(u)
		u.ID = id
		u.CreatedAt = createdAt
	})
}

func (r *StoreUserRepository) Delete(ctx context.Context, id string) bool {
	return r.c.remove(ctx, id)
}

// StreamAll calls callback for each stored user.
func (r *StoreUserRepository) StreamAll(ctx context.Context, callback func(domain.User) error) error {
	return r.c.stream(ctx, callback)
}

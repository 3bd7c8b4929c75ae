package repository

import (
	"context"

	"github.com/Yassen717/ModBlog/internal/domain"
)

// PostRepository defines methods for post data access.
type PostRepository interface {
	List(ctx context.Context) []domain.Post
	ListPublished(ctx context.Context) []domain.Post
	GetByID(ctx context.Context, id string) (domain.Post, bool)
	GetBySlug(ctx context.Context, slug string) (domain.Post, bool)
	Search(ctx context.Context, query string) []domain.Post
	ListByCategory(ctx context.Context, categoryID string) []domain.Post
	ListByTag(ctx context.Context, tag string) []domain.Post
	Save(ctx context.Context, post domain.Post) domain.Post
	Update(ctx context.Context, id string, apply func(*domain.Post)) (domain.Post, bool)
	Delete(ctx context.Context, id string) bool
	ReplaceAll(ctx context.Context, posts []domain.Post)
	StreamAll(ctx context.Context, callback func(domain.Post) error) error
}

// CategoryRepository defines methods for category data access.
type CategoryRepository interface {
	List(ctx context.Context) []domain.Category
	GetByID(ctx context.Context, id string) (domain.Category, bool)
	GetBySlug(ctx context.Context, slug string) (domain.Category, bool)
	Save(ctx context.Context, category domain.Category) domain.Category
	Delete(ctx context.Context, id string) bool
	StreamAll(ctx context.Context, callback func(domain.Category) error) error
}

// AuthorRepository defines methods for author data access.
type AuthorRepository interface {
	List(ctx context.Context) []domain.Author
	GetByID(ctx context.Context, id string) (domain.Author, bool)
	Save(ctx context.Context, author domain.Author) domain.Author
	Delete(ctx context.Context, id string) bool
}

// UserRepository defines methods for user data access.
type UserRepository interface {
	List(ctx context.Context) []domain.User
	GetByID(ctx context.Context, id string) (domain.User, bool)
	GetByEmail(ctx context.Context, email string) (domain.User, bool)
	Save(ctx context.Context, user domain.User) domain.User
	Update(ctx context.Context, id string, apply func(*domain.User)) (domain.User, bool)
	Delete(ctx context.Context, id string) bool
	StreamAll(ctx context.Context, callback func(domain.User) error) error
}

// CommentRepository defines methods for comment data access.
type CommentRepository interface {
	List(ctx context.Context) []domain.Comment
	ListByPost(ctx context.Context, postID string) []domain.Comment
	GetByID(ctx context.Context, id string) (domain.Comment, bool)
	Save(ctx context.Context, comment domain.Comment) domain.Comment
	Update(ctx context.Context, id string, apply func(*domain.Comment)) (domain.Comment, bool)
	Delete(ctx context.Context, id string) bool
	StreamAll(ctx context.Context, callback func(domain.Comment) error) error
}

// SettingsRepository defines methods for the settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.BlogSettings, bool)
	Save(ctx context.Context, settings domain.BlogSettings)
}

// AdminSessionRepository records the most recent administrative login.
type AdminSessionRepository interface {
	Mark(ctx context.Context, session domain.AdminSession)
	Current(ctx context.Context) (domain.AdminSession, bool)
	Clear(ctx context.Context)
}

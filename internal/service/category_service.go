package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/metrics"
	"github.com/Yassen717/ModBlog/internal/repository"
	"github.com/Yassen717/ModBlog/internal/validator"
)

// CategoryInput is the payload for creating a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// CategoryUpdate holds the fields to merge onto a stored category.
type CategoryUpdate struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// CategoryService implements category queries and mutations.
type CategoryService struct {
	categories repository.CategoryRepository
	posts      repository.PostRepository
	validator  *validator.Validator
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories repository.CategoryRepository, posts repository.PostRepository, v *validator.Validator) *CategoryService {
	return &CategoryService{categories: categories, posts: posts, validator: v}
}

// List returns every category in stored order.
func (s *CategoryService) List(ctx context.Context) []domain.Category {
	return s.categories.List(ctx)
}

// ListWithCounts annotates each category with its number of posts. Only
// published posts are counted when publishedOnly is set.
func (s *CategoryService) ListWithCounts(ctx context.Context, publishedOnly bool) []domain.CategoryWithCount {
	var posts []domain.Post
	if publishedOnly {
		posts = s.posts.ListPublished(ctx)
	} else {
		posts = s.posts.List(ctx)
	}
	counts := make(map[string]int, len(posts))
	for _, p := range posts {
		counts[p.Category.ID]++
	}

	categories := s.categories.List(ctx)
	out := make([]domain.CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		out = append(out, domain.CategoryWithCount{Category: c, PostCount: counts[c.ID]})
	}
	return out
}

// Get returns a category by id.
func (s *CategoryService) Get(ctx context.Context, id string) (domain.Category, error) {
	c, ok := s.categories.GetByID(ctx, id)
	if !ok {
		return domain.Category{}, ErrNotFound
	}
	return c, nil
}

// Create applies defaults, validates and stores a new category.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (domain.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return domain.Category{}, missingFields("name")
	}

	c := domain.Category{
		ID:          domain.NewID(),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Color:       input.Color,
	}
	if c.Slug == "" {
		c.Slug = domain.GenerateSlug(c.Name)
	}
	if c.Color == "" {
		c.Color = domain.DefaultCategoryColor
	}
	if err := s.validator.ValidateCategory(&c); err != nil {
		return domain.Category{}, newValidationError(err)
	}

	saved := s.categories.Save(ctx, c)
	metrics.RecordMutation("category", "create")
	logger.InfoContext(ctx, "Category created", slog.String("category_id", saved.ID), slog.String("slug", saved.Slug))
	return saved, nil
}

// Update merges update onto the stored category. Posts keep the category
// snapshot they were written with; reads resolve the live record.
func (s *CategoryService) Update(ctx context.Context, id string, update CategoryUpdate) (domain.Category, error) {
	c, ok := s.categories.GetByID(ctx, id)
	if !ok {
		return domain.Category{}, ErrNotFound
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Slug != nil {
		c.Slug = *update.Slug
	}
	if update.Description != nil {
		c.Description = *update.Description
	}
	if update.Color != nil {
		c.Color = *update.Color
	}
	if err := s.validator.ValidateCategory(&c); err != nil {
		return domain.Category{}, newValidationError(err)
	}

	saved := s.categories.Save(ctx, c)
	metrics.RecordMutation("category", "update")
	logger.InfoContext(ctx, "Category updated", slog.String("category_id", id))
	return saved, nil
}

// Delete removes a category. Posts referencing it are left untouched.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if !s.categories.Delete(ctx, id) {
		return ErrNotFound
	}
	metrics.RecordMutation("category", "delete")
	logger.InfoContext(ctx, "Category deleted", slog.String("category_id", id))
	return nil
}

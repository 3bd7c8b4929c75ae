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

// AuthorService manages post bylines.
type AuthorService struct {
	authors   repository.AuthorRepository
	validator *validator.Validator
}

// NewAuthorService creates a new AuthorService.
func NewAuthorService(authors repository.AuthorRepository, v *validator.Validator) *AuthorService {
	return &AuthorService{authors: authors, validator: v}
}

func (s *AuthorService) List(ctx context.Context) []domain.Author {
	return s.authors.List(ctx)
}

func (s *AuthorService) Get(ctx context.Context, id string) (domain.Author, error) {
	a, ok := s.authors.GetByID(ctx, id)
	if !ok {
		return domain.Author{}, ErrNotFound
	}
	return a, nil
}

// Save upserts an author. An empty id creates a new record.
func (s *AuthorService) Save(ctx context.Context, author domain.Author) (domain.Author, error) {
	if strings.TrimSpace(author.Name) == "" {
		return domain.Author{}, missingFields("name")
	}
	op := "update"
	if author.ID == "" {
		author.ID = domain.NewID()
		op = "create"
	}
	if err := s.validator.ValidateAuthor(&author); err != nil {
		return domain.Author{}, newValidationError(err)
	}

	saved := s.authors.Save(ctx, author)
	metrics.RecordMutation("author", op)
	logger.InfoContext(ctx, "Author saved", slog.String("author_id", saved.ID), slog.String("op", op))
	return saved, nil
}

func (s *AuthorService) Delete(ctx context.Context, id string) error {
	if !s.authors.Delete(ctx, id) {
		return ErrNotFound
	}
	metrics.RecordMutation("author", "delete")
	logger.InfoContext(ctx, "Author deleted", slog.String("author_id", id))
	return nil
}

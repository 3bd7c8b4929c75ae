package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/storage"
)

// backends lists the KV implementations every repository test runs against.
func backends(t *testing.T) map[string]*storage.Adapter {
	t.Helper()

	db, err := storage.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]*storage.Adapter{
		"memory": storage.NewAdapter(storage.NewMemory()),
		"sqlite": storage.NewAdapter(db),
	}
}

func newTestPost(id, title string, status domain.PostStatus, publishedAt time.Time) domain.Post {
	return domain.Post{
		ID:          id,
		Title:       title,
		Slug:        domain.GenerateSlug(title),
		Excerpt:     "Excerpt for " + title,
		Content:     "Body of " + title,
		Author:      domain.Author{ID: "1", Name: "John Doe"},
		Category:    domain.Category{ID: "1", Name: "Web Development", Slug: "web-development"},
		Tags:        []string{},
		PublishedAt: publishedAt,
		UpdatedAt:   publishedAt,
		Status:      status,
		ReadingTime: 1,
	}
}

// Package seed writes the fixture data into an empty store and implements
// the administrative clear and reset operations.
package seed

import (
	"context"
	"log/slog"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/storage"
)

// contentNamespaces are removed by Clear. The admin session marker is kept.
var contentNamespaces = []string{
	storage.NamespacePosts,
	storage.NamespaceAuthors,
	storage.NamespaceCategories,
	storage.NamespaceUsers,
	storage.NamespaceComments,
	storage.NamespaceSettings,
}

// Result lists the namespaces a seeding run wrote.
type Result struct {
	Seeded []string `json:"seeded"`
}

// Seeder populates a store with fixtures.
type Seeder struct {
	store *storage.Adapter
}

// New creates a new Seeder.
func New(store *storage.Adapter) *Seeder {
	return &Seeder{store: store}
}

// Initialize writes fixtures into each seedable namespace that is empty and
// leaves populated namespaces untouched.
func (s *Seeder) Initialize(ctx context.Context) Result {
	data := Data()
	result := Result{Seeded: []string{}}

	seedIfEmpty := func(ns string, write func() bool) {
		defer s.store.Lock(ns)()
		if !s.store.IsEmpty(ctx, ns) {
			return
		}
		if write() {
			result.Seeded = append(result.Seeded, ns)
		}
	}

	seedIfEmpty(storage.NamespacePosts, func() bool {
		return storage.Write(ctx, s.store, storage.NamespacePosts, data.Posts)
	})
	seedIfEmpty(storage.NamespaceAuthors, func() bool {
		return storage.Write(ctx, s.store, storage.NamespaceAuthors, []domain.Author{data.Author})
	})
	seedIfEmpty(storage.NamespaceCategories, func() bool {
		return storage.Write(ctx, s.store, storage.NamespaceCategories, data.Categories)
	})
	seedIfEmpty(storage.NamespaceUsers, func() bool {
		return storage.Write(ctx, s.store, storage.NamespaceUsers, data.Users)
	})

	if len(result.Seeded) > 0 {
		logger.InfoContext(ctx, "Seeded empty namespaces", slog.Any("namespaces", result.Seeded))
	}
	return result
}

// Clear removes every content namespace.
func (s *Seeder) Clear(ctx context.Context) {
	for _, ns := range contentNamespaces {
		unlock := s.store.Lock(ns)
		s.store.Clear(ctx, ns)
		unlock()
	}
	logger.InfoContext(ctx, "Cleared all content namespaces")
}

// FullReset clears every content namespace and seeds fresh fixtures.
func (s *Seeder) FullReset(ctx context.Context) Result {
	s.Clear(ctx)
	return s.Initialize(ctx)
}

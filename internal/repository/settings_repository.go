package repository

import (
	"context"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/storage"
)

// StoreSettingsRepository keeps the settings singleton as a one-element
// array in blog_settings, matching the other collection namespaces.
type StoreSettingsRepository struct {
	store *storage.Adapter
}

// NewSettingsRepository creates a new StoreSettingsRepository.
func NewSettingsRepository(store *storage.Adapter) *StoreSettingsRepository {
	return &StoreSettingsRepository{store: store}
}

// Get returns the stored settings; ok is false when none were saved.
func (r *StoreSettingsRepository) Get(ctx context.Context) (domain.BlogSettings, bool) {
	items := storage.Read[domain.BlogSettings](ctx, r.store, storage.NamespaceSettings)
	if len(items) == 0 {
		return domain.BlogSettings{}, false
	}
	return items[0], true
}

func (r *StoreSettingsRepository) Save(ctx context.Context, settings domain.BlogSettings) {
	defer r.store.Lock(storage.NamespaceSettings)()
	storage.Write(ctx, r.store, storage.NamespaceSettings, []domain.BlogSettings{settings})
}

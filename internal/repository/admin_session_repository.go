package repository

import (
	"context"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/storage"
)

// StoreAdminSessionRepository keeps the admin_authenticated marker.
type StoreAdminSessionRepository struct {
	store *storage.Adapter
}

// NewAdminSessionRepository creates a new StoreAdminSessionRepository.
func NewAdminSessionRepository(store *storage.Adapter) *StoreAdminSessionRepository {
	return &StoreAdminSessionRepository{store: store}
}

func (r *StoreAdminSessionRepository) Mark(ctx context.Context, session domain.AdminSession) {
	storage.WriteValue(ctx, r.store, storage.NamespaceAdminAuth, session)
}

func (r *StoreAdminSessionRepository) Current(ctx context.Context) (domain.AdminSession, bool) {
	var session domain.AdminSession
	if !storage.ReadValue(ctx, r.store, storage.NamespaceAdminAuth, &session) {
		return domain.AdminSession{}, false
	}
	return session, session.Authenticated
}

func (r *StoreAdminSessionRepository) Clear(ctx context.Context) {
	r.store.Clear(ctx, storage.NamespaceAdminAuth)
}

// Package storage persists JSON collections under fixed namespace keys on top
// of a pluggable string key-value backend.
package storage

import (
	"context"
	"errors"
)

// Namespace keys. The values are part of the persisted format.
const (
	NamespacePosts      = "blog_posts"
	NamespaceAuthors    = "blog_authors"
	NamespaceCategories = "blog_categories"
	NamespaceUsers      = "blog_users"
	NamespaceComments   = "blog_comments"
	NamespaceSettings   = "blog_settings"
	NamespaceAdminAuth  = "admin_authenticated"
)

// AllNamespaces lists every namespace the application writes, in seed order.
var AllNamespaces = []string{
	NamespacePosts,
	NamespaceAuthors,
	NamespaceCategories,
	NamespaceUsers,
	NamespaceComments,
	NamespaceSettings,
	NamespaceAdminAuth,
}

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage: backend closed")

// KV is a string key-value store. Get reports whether the key exists.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Pinger is implemented by backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

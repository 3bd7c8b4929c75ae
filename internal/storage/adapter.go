package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/metrics"
)

// Adapter reads and writes whole JSON collections per namespace. It never
// surfaces backend or decoding failures: they are logged, counted and turned
// into empty reads or dropped writes.
type Adapter struct {
	kv KV

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAdapter wraps a backend.
func NewAdapter(kv KV) *Adapter {
	return &Adapter{kv: kv, locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the write lock for ns and returns its release func. Every
// read-modify-write or bulk replacement of a namespace holds it, so
// repository saves, seeding and restores never interleave on one key.
func (a *Adapter) Lock(ns string) (unlock func()) {
	a.mu.Lock()
	l, ok := a.locks[ns]
	if !ok {
		l = &sync.Mutex{}
		a.locks[ns] = l
	}
	a.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Backend returns the wrapped KV.
func (a *Adapter) Backend() KV {
	return a.kv
}

// Ping checks the backend when it supports it.
func (a *Adapter) Ping(ctx context.Context) error {
	if p, ok := a.kv.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// ReadRaw returns the stored string for ns. ok is false when the key is
// absent or the backend failed.
func (a *Adapter) ReadRaw(ctx context.Context, ns string) (string, bool) {
	timer := metrics.NewTimer()
	value, ok, err := a.kv.Get(ctx, ns)
	metrics.ObserveStorageOperation(ns, "read", timer.Seconds(), err != nil)
	if err != nil {
		logger.WithNamespace(ns).ErrorContext(ctx, "Failed to read namespace", slog.String("error", err.Error()))
		return "", false
	}
	return value, ok
}

// WriteRaw stores value under ns, logging on failure.
func (a *Adapter) WriteRaw(ctx context.Context, ns, value string) bool {
	timer := metrics.NewTimer()
	err := a.kv.Set(ctx, ns, value)
	metrics.ObserveStorageOperation(ns, "write", timer.Seconds(), err != nil)
	if err != nil {
		logger.WithNamespace(ns).ErrorContext(ctx, "Failed to write namespace", slog.String("error", err.Error()))
		return false
	}
	return true
}

// Clear removes ns from the backend.
func (a *Adapter) Clear(ctx context.Context, ns string) {
	timer := metrics.NewTimer()
	err := a.kv.Delete(ctx, ns)
	metrics.ObserveStorageOperation(ns, "delete", timer.Seconds(), err != nil)
	if err != nil {
		logger.WithNamespace(ns).ErrorContext(ctx, "Failed to clear namespace", slog.String("error", err.Error()))
	}
}

// IsEmpty reports whether ns holds no records: absent, blank, an empty array
// or undecodable content all count as empty.
func (a *Adapter) IsEmpty(ctx context.Context, ns string) bool {
	raw, ok := a.ReadRaw(ctx, ns)
	if !ok || strings.TrimSpace(raw) == "" {
		return true
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.WithNamespace(ns).WarnContext(ctx, "Namespace holds malformed JSON", slog.String("error", err.Error()))
		return true
	}
	return len(items) == 0
}

// Read decodes the collection stored under ns. It returns an empty, non-nil
// slice when the namespace is absent, unreadable or malformed.
func Read[T any](ctx context.Context, a *Adapter, ns string) []T {
	raw, ok := a.ReadRaw(ctx, ns)
	if !ok || strings.TrimSpace(raw) == "" {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.WithNamespace(ns).WarnContext(ctx, "Namespace holds malformed JSON, treating as empty",
			slog.String("error", err.Error()))
		metrics.StorageErrorsTotal.WithLabelValues(ns, "decode").Inc()
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// Write replaces the collection stored under ns. A nil slice is stored as
// an empty array. It reports whether the backend accepted the write.
func Write[T any](ctx context.Context, a *Adapter, ns string, items []T) bool {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		logger.WithNamespace(ns).ErrorContext(ctx, "Failed to encode namespace", slog.String("error", err.Error()))
		metrics.StorageErrorsTotal.WithLabelValues(ns, "encode").Inc()
		return false
	}
	return a.WriteRaw(ctx, ns, string(data))
}

// ReadValue decodes a single JSON value stored under ns into v. It reports
// false when the key is absent, unreadable or malformed.
func ReadValue(ctx context.Context, a *Adapter, ns string, v any) bool {
	raw, ok := a.ReadRaw(ctx, ns)
	if !ok || strings.TrimSpace(raw) == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logger.WithNamespace(ns).WarnContext(ctx, "Namespace holds malformed JSON", slog.String("error", err.Error()))
		return false
	}
	return true
}

// WriteValue stores v as JSON under ns.
func WriteValue(ctx context.Context, a *Adapter, ns string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		logger.WithNamespace(ns).ErrorContext(ctx, "Failed to encode namespace", slog.String("error", err.Error()))
		return false
	}
	return a.WriteRaw(ctx, ns, string(data))
}

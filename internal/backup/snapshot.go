// Package backup captures every storage namespace into a gzipped JSON
// snapshot and ships it to an S3-compatible bucket.
package backup

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Yassen717/ModBlog/internal/storage"
)

// Snapshot holds the raw stored value of each namespace that existed when
// it was captured.
type Snapshot struct {
	CreatedAt  time.Time                  `json:"createdAt"`
	Namespaces map[string]json.RawMessage `json:"namespaces"`
}

// Capture reads every known namespace from store. Absent namespaces are
// left out.
func Capture(ctx context.Context, store *storage.Adapter, now time.Time) *Snapshot {
	snap := &Snapshot{
		CreatedAt:  now.UTC(),
		Namespaces: make(map[string]json.RawMessage, len(storage.AllNamespaces)),
	}
	for _, ns := range storage.AllNamespaces {
		raw, ok := store.ReadRaw(ctx, ns)
		if !ok || !json.Valid([]byte(raw)) {
			continue
		}
		snap.Namespaces[ns] = json.RawMessage(raw)
	}
	return snap
}

// Encode writes the snapshot as gzipped JSON.
func (s *Snapshot) Encode(w io.Writer) error {
	gz := gzip.NewWriter(w)
	if err := json.NewEncoder(gz).Encode(s); err != nil {
		gz.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}
	return nil
}

// Decode reads a snapshot written by Encode.
func Decode(r io.Reader) (*Snapshot, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer gz.Close()

	var snap Snapshot
	if err := json.NewDecoder(gz).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Namespaces == nil {
		snap.Namespaces = map[string]json.RawMessage{}
	}
	return &snap, nil
}

// Restore replaces the contents of store with the snapshot. Namespaces the
// snapshot does not carry are cleared.
func (s *Snapshot) Restore(ctx context.Context, store *storage.Adapter) error {
	for _, ns := range storage.AllNamespaces {
		if err := s.restoreNamespace(ctx, store, ns); err != nil {
			return err
		}
	}
	return nil
}

func (s *Snapshot) restoreNamespace(ctx context.Context, store *storage.Adapter, ns string) error {
	defer store.Lock(ns)()
	raw, ok := s.Namespaces[ns]
	if !ok {
		store.Clear(ctx, ns)
		return nil
	}
	if !store.WriteRaw(ctx, ns, string(raw)) {
		return fmt.Errorf("restore namespace %s: write rejected", ns)
	}
	return nil
}

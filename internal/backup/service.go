package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/metrics"
	"github.com/Yassen717/ModBlog/internal/storage"
)

// KeyTimeFormat is the timestamp layout embedded in snapshot keys. It sorts
// lexically in time order.
const KeyTimeFormat = "20060102T150405Z"

// ErrNoBackups is returned by Restore when the bucket holds no snapshot.
var ErrNoBackups = errors.New("no backups found")

// Result describes an uploaded snapshot.
type Result struct {
	Key       string    `json:"key"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	Rotated   int       `json:"rotated"`
}

// Service captures, uploads, rotates and restores snapshots.
type Service struct {
	store   *storage.Adapter
	objects ObjectStore
	prefix  string
	keep    int
	now     func() time.Time
}

// NewService keeps the newest keep snapshots under prefix.
func NewService(store *storage.Adapter, objects ObjectStore, prefix string, keep int) *Service {
	if keep < 1 {
		keep = 1
	}
	return &Service{
		store:   store,
		objects: objects,
		prefix:  prefix,
		keep:    keep,
		now:     time.Now,
	}
}

// Run uploads a fresh snapshot and prunes old ones.
func (s *Service) Run(ctx context.Context) (Result, error) {
	timer := metrics.NewTimer()
	log := logger.WithFields(slog.String("component", "backup"))

	snap := Capture(ctx, s.store, s.now())
	var buf bytes.Buffer
	if err := snap.Encode(&buf); err != nil {
		metrics.ObserveBackup(false, timer.Seconds(), 0)
		return Result{}, err
	}

	key := s.prefix + "snapshot-" + snap.CreatedAt.Format(KeyTimeFormat) + ".json.gz"
	if err := s.objects.Put(ctx, key, buf.Bytes()); err != nil {
		metrics.ObserveBackup(false, timer.Seconds(), 0)
		log.ErrorContext(ctx, "Backup upload failed", slog.String("key", key), slog.String("error", err.Error()))
		return Result{}, err
	}

	rotated, err := s.rotate(ctx)
	if err != nil {
		log.WarnContext(ctx, "Backup rotation failed", slog.String("error", err.Error()))
	}

	metrics.ObserveBackup(true, timer.Seconds(), buf.Len())
	log.InfoContext(ctx, "Backup uploaded",
		slog.String("key", key),
		slog.Int("size", buf.Len()),
		slog.Int("namespaces", len(snap.Namespaces)),
		slog.Int("rotated", rotated),
	)
	return Result{Key: key, Size: buf.Len(), CreatedAt: snap.CreatedAt, Rotated: rotated}, nil
}

// List returns the stored snapshots, newest first.
func (s *Service) List(ctx context.Context) ([]Object, error) {
	objects, err := s.objects.List(ctx, s.prefix)
	if err != nil {
		return nil, err
	}
	snapshots := make([]Object, 0, len(objects))
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, ".json.gz") {
			snapshots = append(snapshots, obj)
		}
	}
	sort.Slice(snapshots, func(i, j int) bool {
		if !snapshots[i].LastModified.Equal(snapshots[j].LastModified) {
			return snapshots[i].LastModified.After(snapshots[j].LastModified)
		}
		return snapshots[i].Key > snapshots[j].Key
	})
	return snapshots, nil
}

// Restore loads the snapshot at key into the store, or the newest one when
// key is empty. It returns the key that was restored.
func (s *Service) Restore(ctx context.Context, key string) (string, error) {
	if key == "" {
		objects, err := s.List(ctx)
		if err != nil {
			return "", err
		}
		if len(objects) == 0 {
			return "", ErrNoBackups
		}
		key = objects[0].Key
	}

	data, err := s.objects.Get(ctx, key)
	if err != nil {
		return "", err
	}
	snap, err := Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	if err := snap.Restore(ctx, s.store); err != nil {
		return "", err
	}

	logger.WithFields(slog.String("component", "backup")).InfoContext(ctx, "Backup restored",
		slog.String("key", key),
		slog.Time("created_at", snap.CreatedAt),
	)
	return key, nil
}

// rotate deletes every snapshot past the newest keep. Individual delete
// failures are logged and skipped.
func (s *Service) rotate(ctx context.Context) (int, error) {
	objects, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(objects) <= s.keep {
		return 0, nil
	}

	deleted := 0
	for _, obj := range objects[s.keep:] {
		if err := s.objects.Delete(ctx, obj.Key); err != nil {
			logger.WarnContext(ctx, "Failed to delete old backup", "key", obj.Key, "error", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

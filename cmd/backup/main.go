package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"time"

	"github.com/Yassen717/ModBlog/internal/backup"
	"github.com/Yassen717/ModBlog/internal/config"
	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/storage"
)

func main() {
	restore := flag.Bool("restore", false, "restore a snapshot instead of taking one")
	key := flag.String("key", "", "snapshot key to restore (default: newest)")
	list := flag.Bool("list", false, "list stored snapshots and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}
	logger.Init(cfg.LogLevel)

	if !cfg.BackupConfigured() {
		logger.Fatal("BACKUP_BUCKET is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open storage",
			slog.String("backend", cfg.StorageBackend),
			slog.String("error", err.Error()))
	}
	defer backend.Close()

	objects, err := backup.NewS3Store(ctx, backup.S3Config{
		Bucket:    cfg.BackupBucket,
		Endpoint:  cfg.BackupEndpoint,
		Region:    cfg.BackupRegion,
		AccessKey: cfg.BackupAccessKey,
		SecretKey: cfg.BackupSecretKey,
	})
	if err != nil {
		logger.Fatal("Failed to create backup store",
			slog.String("error", err.Error()))
	}
	svc := backup.NewService(storage.NewAdapter(backend.KV), objects, cfg.BackupPrefix, cfg.BackupKeep)

	switch {
	case *list:
		snapshots, err := svc.List(ctx)
		if err != nil {
			logger.Fatal("Failed to list snapshots",
				slog.String("error", err.Error()))
		}
		for _, obj := range snapshots {
			logger.Info("Snapshot",
				slog.String("key", obj.Key),
				slog.Int64("size", obj.Size),
				slog.Time("last_modified", obj.LastModified))
		}

	case *restore:
		restored, err := svc.Restore(ctx, *key)
		if errors.Is(err, backup.ErrNoBackups) {
			logger.Fatal("No snapshots found",
				slog.String("bucket", cfg.BackupBucket),
				slog.String("prefix", cfg.BackupPrefix))
		}
		if err != nil {
			logger.Fatal("Restore failed",
				slog.String("error", err.Error()))
		}
		logger.Info("Restore completed",
			slog.String("key", restored),
			slog.String("storage", backend.Name))

	default:
		result, err := svc.Run(ctx)
		if err != nil {
			logger.Fatal("Backup failed",
				slog.String("error", err.Error()))
		}
		logger.Info("Backup completed",
			slog.String("bucket", cfg.BackupBucket),
			slog.String("key", result.Key),
			slog.Int("rotated", result.Rotated))
	}
}

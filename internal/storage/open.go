package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Yassen717/ModBlog/internal/config"
	"github.com/Yassen717/ModBlog/internal/infrastructure/database"
	"github.com/Yassen717/ModBlog/internal/logger"
)

// Backend is an opened KV together with the resources behind it.
type Backend struct {
	Name string
	KV   KV
	// Pool is set for the postgres backend only.
	Pool *pgxpool.Pool
}

// Close releases the KV and, for postgres, the pool.
func (b *Backend) Close() error {
	err := b.KV.Close()
	if b.Pool != nil {
		b.Pool.Close()
	}
	return err
}

// Open connects the backend selected by cfg.StorageBackend. For postgres
// the kv_store migration is applied first when DB_AUTO_MIGRATE is set.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		kv, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("Opened sqlite storage", slog.String("path", cfg.SQLitePath))
		return &Backend{Name: cfg.StorageBackend, KV: kv}, nil

	case config.BackendPostgres:
		if cfg.DBAutoMigrate {
			if err := database.Migrate(cfg.DSN(), cfg.MigrationsPath); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Info("Database migrations applied", slog.String("path", cfg.MigrationsPath))
		}
		pool, err := database.NewPostgres(ctx, database.PoolConfig{
			DSN:               cfg.DSN(),
			MaxConns:          cfg.DBMaxConns,
			MinConns:          cfg.DBMinConns,
			MaxConnLifetime:   cfg.DBMaxConnLifetime,
			MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
			HealthCheckPeriod: cfg.DBHealthCheckPeriod,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to postgres storage",
			slog.String("host", cfg.DBHost),
			slog.String("database", cfg.DBName),
		)
		return &Backend{Name: cfg.StorageBackend, KV: NewPostgres(pool), Pool: pool}, nil

	default:
		logger.Warn("Using in-memory storage; data is lost on restart")
		return &Backend{Name: config.BackendMemory, KV: NewMemory()}, nil
	}
}

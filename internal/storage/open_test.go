package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yassen717/ModBlog/internal/config"
	"github.com/Yassen717/ModBlog/internal/storage"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		backend, err := storage.Open(ctx, &config.Config{StorageBackend: config.BackendMemory})
		require.NoError(t, err)
		assert.Equal(t, config.BackendMemory, backend.Name)
		assert.Nil(t, backend.Pool)
		assert.IsType(t, &storage.Memory{}, backend.KV)
		assert.NoError(t, backend.Close())
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "open.db")
		backend, err := storage.Open(ctx, &config.Config{StorageBackend: config.BackendSQLite, SQLitePath: path})
		require.NoError(t, err)
		assert.Equal(t, config.BackendSQLite, backend.Name)
		assert.Nil(t, backend.Pool)

		require.NoError(t, backend.KV.Set(ctx, storage.NamespaceAuthors, `[]`))
		assert.NoError(t, backend.Close())
	})

	t.Run("postgres unreachable", func(t *testing.T) {
		if testing.Short() {
			t.Skip("Skipping network test in short mode")
		}
		_, err := storage.Open(ctx, &config.Config{
			StorageBackend: config.BackendPostgres,
			DBHost:         "127.0.0.1",
			DBPort:         1,
			DBUser:         "nobody",
			DBName:         "none",
			DBSSLMode:      "disable",
			DBMaxConns:     1,
		})
		assert.Error(t, err)
	})
}

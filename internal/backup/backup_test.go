package backup

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/seed"
	"github.com/Yassen717/ModBlog/internal/storage"
)

type mockObjectStore struct {
	mock.Mock
}

func (m *mockObjectStore) Put(ctx context.Context, key string, body []byte) error {
	args := m.Called(ctx, key, body)
	return args.Error(0)
}

func (m *mockObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockObjectStore) List(ctx context.Context, prefix string) ([]Object, error) {
	args := m.Called(ctx, prefix)
	objects, _ := args.Get(0).([]Object)
	return objects, args.Error(1)
}

func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func seededStore(t *testing.T) *storage.Adapter {
	t.Helper()
	store := storage.NewAdapter(storage.NewMemory())
	seed.New(store).Initialize(context.Background())
	return store
}

func TestSnapshot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := seededStore(t)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	snap := Capture(ctx, src, created)
	assert.Contains(t, snap.Namespaces, storage.NamespacePosts)
	assert.Contains(t, snap.Namespaces, storage.NamespaceUsers)
	assert.NotContains(t, snap.Namespaces, storage.NamespaceAdminAuth)

	var buf bytes.Buffer
	require.NoError(t, snap.Encode(&buf))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.True(t, created.Equal(decoded.CreatedAt))

	dst := storage.NewAdapter(storage.NewMemory())
	dst.WriteRaw(ctx, storage.NamespaceAdminAuth, "true")
	require.NoError(t, decoded.Restore(ctx, dst))

	assert.Equal(t,
		storage.Read[domain.Post](ctx, src, storage.NamespacePosts),
		storage.Read[domain.Post](ctx, dst, storage.NamespacePosts))
	assert.Equal(t,
		storage.Read[domain.Comment](ctx, src, storage.NamespaceComments),
		storage.Read[domain.Comment](ctx, dst, storage.NamespaceComments))
	_, ok := dst.ReadRaw(ctx, storage.NamespaceAdminAuth)
	assert.False(t, ok, "namespaces missing from the snapshot are cleared")
}

func TestDecode_RejectsPlainJSON(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte(`{"namespaces":{}}`)))
	assert.Error(t, err)
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()
	objects := new(mockObjectStore)
	svc := NewService(seededStore(t), objects, "modblog/", 2)
	svc.now = func() time.Time { return time.Date(2024, 5, 3, 3, 0, 0, 0, time.UTC) }

	newKey := "modblog/snapshot-20240503T030000Z.json.gz"
	objects.On("Put", ctx, newKey, mock.AnythingOfType("[]uint8")).Return(nil)
	objects.On("List", ctx, "modblog/").Return([]Object{
		{Key: "modblog/snapshot-20240501T030000Z.json.gz", LastModified: time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)},
		{Key: newKey, LastModified: time.Date(2024, 5, 3, 3, 0, 0, 0, time.UTC)},
		{Key: "modblog/snapshot-20240502T030000Z.json.gz", LastModified: time.Date(2024, 5, 2, 3, 0, 0, 0, time.UTC)},
		{Key: "modblog/notes.txt", LastModified: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)
	objects.On("Delete", ctx, "modblog/snapshot-20240501T030000Z.json.gz").Return(nil)

	result, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, newKey, result.Key)
	assert.Greater(t, result.Size, 0)
	assert.Equal(t, 1, result.Rotated)
	objects.AssertExpectations(t)
	objects.AssertNotCalled(t, "Delete", ctx, "modblog/notes.txt")
}

func TestService_Run_UploadFailure(t *testing.T) {
	ctx := context.Background()
	objects := new(mockObjectStore)
	svc := NewService(seededStore(t), objects, "", 3)

	objects.On("Put", ctx, mock.Anything, mock.Anything).Return(errors.New("bucket unreachable"))

	_, err := svc.Run(ctx)
	assert.EqualError(t, err, "bucket unreachable")
	objects.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestService_Restore(t *testing.T) {
	ctx := context.Background()
	src := seededStore(t)

	var buf bytes.Buffer
	require.NoError(t, Capture(ctx, src, time.Now()).Encode(&buf))

	t.Run("newest when key is empty", func(t *testing.T) {
		objects := new(mockObjectStore)
		dst := storage.NewAdapter(storage.NewMemory())
		svc := NewService(dst, objects, "p/", 3)

		objects.On("List", ctx, "p/").Return([]Object{
			{Key: "p/snapshot-20240101T000000Z.json.gz", LastModified: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			{Key: "p/snapshot-20240201T000000Z.json.gz", LastModified: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		}, nil)
		objects.On("Get", ctx, "p/snapshot-20240201T000000Z.json.gz").Return(buf.Bytes(), nil)

		key, err := svc.Restore(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "p/snapshot-20240201T000000Z.json.gz", key)
		assert.Len(t, storage.Read[domain.User](ctx, dst, storage.NamespaceUsers), 4)
		objects.AssertExpectations(t)
	})

	t.Run("no backups", func(t *testing.T) {
		objects := new(mockObjectStore)
		svc := NewService(storage.NewAdapter(storage.NewMemory()), objects, "p/", 3)
		objects.On("List", ctx, "p/").Return([]Object{}, nil)

		_, err := svc.Restore(ctx, "")
		assert.ErrorIs(t, err, ErrNoBackups)
	})

	t.Run("corrupt object", func(t *testing.T) {
		objects := new(mockObjectStore)
		svc := NewService(storage.NewAdapter(storage.NewMemory()), objects, "p/", 3)
		objects.On("Get", ctx, "p/bad.json.gz").Return([]byte("nope"), nil)

		_, err := svc.Restore(ctx, "p/bad.json.gz")
		assert.Error(t, err)
	})
}

func TestNewScheduler(t *testing.T) {
	_, err := NewScheduler("not a schedule", NewService(nil, nil, "", 1))
	assert.Error(t, err)

	s, err := NewScheduler("0 3 * * *", NewService(nil, nil, "", 1))
	require.NoError(t, err)
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestSnapshot_RestoreWaitsForNamespaceLock(t *testing.T) {
	ctx := context.Background()
	snap := Capture(ctx, seededStore(t), time.Now())

	dst := storage.NewAdapter(storage.NewMemory())
	unlock := dst.Lock(storage.NamespaceUsers)

	done := make(chan error, 1)
	go func() { done <- snap.Restore(ctx, dst) }()

	select {
	case <-done:
		t.Fatal("Restore finished while users was locked")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Empty(t, storage.Read[domain.User](ctx, dst, storage.NamespaceUsers))

	unlock()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Restore did not finish after unlock")
	}
	assert.Len(t, storage.Read[domain.User](ctx, dst, storage.NamespaceUsers), 4)
}

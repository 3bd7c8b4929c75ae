package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/seed"
	"github.com/Yassen717/ModBlog/internal/storage"
)

func TestData_Deterministic(t *testing.T) {
	a := seed.Data()
	b := seed.Data()

	assert.Equal(t, a, b)

	a.Posts[0].Tags[0] = "mutated"
	assert.NotEqual(t, "mutated", seed.Data().Posts[0].Tags[0], "Data returns fresh slices")
}

func TestData_Fixtures(t *testing.T) {
	data := seed.Data()

	assert.Equal(t, "1", data.Author.ID)
	assert.Equal(t, "John Doe", data.Author.Name)
	require.Len(t, data.Categories, 5)
	require.Len(t, data.Posts, 5)
	assert.Len(t, data.Users, 4)

	cssFound := false
	for _, c := range data.Categories {
		if c.Slug == "css" {
			cssFound = true
			assert.Equal(t, "#EF4444", c.Color)
		}
	}
	assert.True(t, cssFound)

	for i, p := range data.Posts {
		assert.Equal(t, domain.PostStatusPublished, p.Status)
		assert.Equal(t, domain.GenerateSlug(p.Title), p.Slug)
		assert.Equal(t, domain.CalculateReadingTime(p.Content), p.ReadingTime)
		assert.NotEmpty(t, p.Category.ID, "post %s has a category", p.ID)
		assert.Equal(t, data.Author, p.Author)

		want := seed.BaseTime.Add(-time.Duration(i) * 7 * 24 * time.Hour)
		assert.True(t, p.PublishedAt.Equal(want), "post %s published one week apart", p.ID)
	}

	assert.Equal(t, "4", data.Posts[0].Category.ID)
	assert.Equal(t, "5", data.Posts[2].Category.ID)
}

func TestSeeder_InitializeEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewAdapter(storage.NewMemory())

	result := seed.New(store).Initialize(ctx)

	assert.ElementsMatch(t, []string{
		storage.NamespacePosts, storage.NamespaceAuthors, storage.NamespaceCategories, storage.NamespaceUsers,
	}, result.Seeded)

	data := seed.Data()
	posts := storage.Read[domain.Post](ctx, store, storage.NamespacePosts)
	require.Len(t, posts, len(data.Posts))
	for i := range posts {
		assert.Equal(t, data.Posts[i].ID, posts[i].ID)
		assert.True(t, data.Posts[i].PublishedAt.Equal(posts[i].PublishedAt))
	}
	assert.Equal(t, data.Categories, storage.Read[domain.Category](ctx, store, storage.NamespaceCategories))
	assert.Equal(t, []domain.Author{data.Author}, storage.Read[domain.Author](ctx, store, storage.NamespaceAuthors))
}

func TestSeeder_InitializeIsNoOpWhenPopulated(t *testing.T) {
	ctx := context.Background()
	store := storage.NewAdapter(storage.NewMemory())
	custom := []domain.Category{{ID: "x", Name: "Only", Slug: "only", Color: "#000000"}}
	storage.Write(ctx, store, storage.NamespaceCategories, custom)

	seeder := seed.New(store)
	first := seeder.Initialize(ctx)
	second := seeder.Initialize(ctx)

	assert.NotContains(t, first.Seeded, storage.NamespaceCategories)
	assert.Empty(t, second.Seeded, "second run writes nothing")
	assert.Equal(t, custom, storage.Read[domain.Category](ctx, store, storage.NamespaceCategories))
}

func TestSeeder_InitializeReplacesMalformedNamespace(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, storage.NamespacePosts, "{broken"))
	store := storage.NewAdapter(kv)

	result := seed.New(store).Initialize(ctx)

	assert.Contains(t, result.Seeded, storage.NamespacePosts)
	assert.Len(t, storage.Read[domain.Post](ctx, store, storage.NamespacePosts), 5)
}

func TestSeeder_ClearAndFullReset(t *testing.T) {
	ctx := context.Background()
	store := storage.NewAdapter(storage.NewMemory())
	seeder := seed.New(store)
	seeder.Initialize(ctx)
	storage.Write(ctx, store, storage.NamespaceComments, []domain.Comment{{ID: "c1"}})
	storage.WriteValue(ctx, store, storage.NamespaceAdminAuth, domain.AdminSession{UserID: "1", Authenticated: true})

	seeder.Clear(ctx)
	for _, ns := range []string{storage.NamespacePosts, storage.NamespaceComments, storage.NamespaceUsers} {
		assert.True(t, store.IsEmpty(ctx, ns), "%s cleared", ns)
	}
	var session domain.AdminSession
	assert.True(t, storage.ReadValue(ctx, store, storage.NamespaceAdminAuth, &session), "admin marker survives clear")

	storage.Write(ctx, store, storage.NamespacePosts, []domain.Post{{ID: "custom"}})
	result := seeder.FullReset(ctx)

	assert.Contains(t, result.Seeded, storage.NamespacePosts)
	posts := storage.Read[domain.Post](ctx, store, storage.NamespacePosts)
	require.Len(t, posts, 5)
	assert.Equal(t, "1", posts[0].ID)
	assert.Empty(t, storage.Read[domain.Comment](ctx, store, storage.NamespaceComments))
}

func TestSeeder_WaitsForNamespaceLock(t *testing.T) {
	ctx := context.Background()
	store := storage.NewAdapter(storage.NewMemory())
	seeder := seed.New(store)

	unlock := store.Lock(storage.NamespacePosts)
	done := make(chan seed.Result)
	go func() { done <- seeder.Initialize(ctx) }()

	select {
	case <-done:
		t.Fatal("Initialize wrote posts while the namespace was locked")
	case <-time.After(50 * time.Millisecond):
	}
	assert.True(t, store.IsEmpty(ctx, storage.NamespacePosts))

	unlock()
	select {
	case result := <-done:
		assert.Contains(t, result.Seeded, storage.NamespacePosts)
	case <-time.After(time.Second):
		t.Fatal("Initialize did not finish after unlock")
	}
}

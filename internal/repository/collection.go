package repository

import (
	"context"
	"time"

	"github.com/Yassen717/ModBlog/internal/storage"
)

// collection is the whole-namespace read-modify-write helper shared by the
// record repositories. Writes hold the adapter's namespace lock; reads are
// lock-free because every write replaces the namespace atomically.
type collection[T any] struct {
	store *storage.Adapter
	ns    string
	id    func(*T) string
	// touch stamps timestamps on save; created is true for appended records.
	touch func(item *T, now time.Time, created bool)
	now   func() time.Time
}

func newCollection[T any](store *storage.Adapter, ns string, id func(*T) string, touch func(*T, time.Time, bool)) *collection[T] {
	return &collection[T]{
		store: store,
		ns:    ns,
		id:    id,
		touch: touch,
		now:   time.Now,
	}
}

func (c *collection[T]) all(ctx context.Context) []T {
	return storage.Read[T](ctx, c.store, c.ns)
}

func (c *collection[T]) find(ctx context.Context, match func(*T) bool) (T, bool) {
	items := c.all(ctx)
	for i := range items {
		if match(&items[i]) {
			return items[i], true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) filter(ctx context.Context, match func(*T) bool) []T {
	items := c.all(ctx)
	out := make([]T, 0, len(items))
	for i := range items {
		if match(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

func (c *collection[T]) byID(ctx context.Context, id string) (T, bool) {
	return c.find(ctx, func(item *T) bool { return c.id(item) == id })
}

// save replaces the record with the same id in place or appends it.
func (c *collection[T]) save(ctx context.Context, item T) T {
	defer c.store.Lock(c.ns)()

	items := c.all(ctx)
	id := c.id(&item)
	now := c.now().UTC()
	for i := range items {
		if c.id(&items[i]) == id {
			if c.touch != nil {
				c.touch(&item, now, false)
			}
			items[i] = item
			storage.Write(ctx, c.store, c.ns, items)
			return item
		}
	}

	if c.touch != nil {
		c.touch(&item, now, true)
	}
	items = append(items, item)
	storage.Write(ctx, c.store, c.ns, items)
	return item
}

// update applies fn to the stored record with id and saves the result.
// fn runs under the write lock so concurrent updates do not lose fields.
func (c *collection[T]) update(ctx context.Context, id string, fn func(*T)) (T, bool) {
	defer c.store.Lock(c.ns)()

	items := c.all(ctx)
	for i := range items {
		if c.id(&items[i]) != id {
			continue
		}
		fn(&items[i])
		if c.touch != nil {
			c.touch(&items[i], c.now().UTC(), false)
		}
		storage.Write(ctx, c.store, c.ns, items)
		return items[i], true
	}
	var zero T
	return zero, false
}

// remove filters the record out. It reports false, writing nothing, when
// no record has id.
func (c *collection[T]) remove(ctx context.Context, id string) bool {
	defer c.store.Lock(c.ns)()

	items := c.all(ctx)
	kept := make([]T, 0, len(items))
	for i := range items {
		if c.id(&items[i]) != id {
			kept = append(kept, items[i])
		}
	}
	if len(kept) == len(items) {
		return false
	}
	storage.Write(ctx, c.store, c.ns, kept)
	return true
}

func (c *collection[T]) replaceAll(ctx context.Context, items []T) {
	defer c.store.Lock(c.ns)()
	storage.Write(ctx, c.store, c.ns, items)
}

// stream calls fn for each stored record, stopping at the first error.
func (c *collection[T]) stream(ctx context.Context, fn func(T) error) error {
	for _, item := range c.all(ctx) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}

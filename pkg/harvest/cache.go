package harvest

import (
	"context"
	"errors"
	"iter"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache labels used in metrics and logs.
const (
	cacheItem       = "item"
	cacheCollection = "collection"
)

// FetcherBinder is implemented by stores that rebuild entities from a
// serialized form and must bind them to the owning client before handing
// them out.
type FetcherBinder interface {
	BindFetcher(fetcher Fetcher)
}

// Cache is the read-through cache owned by a client. Item lookups are keyed
// by (kind, id); collections by (kind, scope) and are committed only after
// a full drain. It is safe for concurrent use.
type Cache struct {
	store   Store
	group   singleflight.Group
	logger  Logger
	metrics *MetricsCollector
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithOwner binds entities rebuilt by the store to fetcher.
func WithOwner(fetcher Fetcher) CacheOption {
	return func(c *Cache) {
		if binder, ok := c.store.(FetcherBinder); ok {
			binder.BindFetcher(fetcher)
		}
	}
}

// WithCacheLogger logs store failures.
func WithCacheLogger(logger Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithCacheMetrics records hits and misses.
func WithCacheMetrics(metrics *MetricsCollector) CacheOption {
	return func(c *Cache) {
		c.metrics = metrics
	}
}

// NewCache creates a cache over store. A nil store means an in-memory store.
func NewCache(store Store, opts ...CacheOption) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}

	cache := &Cache{store: store}
	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Store returns the underlying store.
func (c *Cache) Store() Store {
	return c.store
}

// Item returns the entity cached under key, or calls fetch and caches its
// result. With bypass the lookup is skipped and the fetched entity replaces
// the cached one. Concurrent misses for the same key share one fetch, which
// runs detached from any single caller's cancellation; each caller still
// returns as soon as its own ctx is done. Fetch errors are not cached, and
// ErrNotFound drops any entry cached under key.
func (c *Cache) Item(ctx context.Context, key CacheKey, bypass bool, fetch func(context.Context) (*Entity, error)) (*Entity, error) {
	if !bypass {
		if entity, ok := c.lookupItem(ctx, key); ok {
			return entity, nil
		}
	}

	shared := context.WithoutCancel(ctx)

	results := c.group.DoChan(key.String(), func() (interface{}, error) {
		entity, err := fetch(shared)
		if err != nil {
			if IsNotFound(err) {
				c.drop(shared, key)
			}

			return nil, err
		}

		c.put(shared, key, &CacheEntry{Entities: []*Entity{entity}, StoredAt: time.Now()})

		return entity, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return nil, result.Err
		}

		entity, _ := result.Val.(*Entity)

		return entity, nil
	}
}

// Collection wraps produce with the collection cache. A nil key disables
// caching of the collection itself (filtered listings); produced entities
// with an id are still written to the item cache. The collection is stored
// only when the caller drains the sequence and produce ends without error.
func (c *Cache) Collection(ctx context.Context, key *CacheKey, bypass bool, produce iter.Seq2[*Entity, error]) iter.Seq2[*Entity, error] {
	return func(yield func(*Entity, error) bool) {
		if key != nil && !bypass {
			if entry, ok := c.lookup(ctx, *key, cacheCollection); ok {
				for _, entity := range entry.Entities {
					if !yield(entity, nil) {
						return
					}
				}

				return
			}
		}

		var collected []*Entity

		for entity, err := range produce {
			if err != nil {
				yield(nil, err)

				return
			}

			if id, ok := entity.ID(); ok {
				c.put(ctx, ItemKey(entity.Kind(), id), &CacheEntry{Entities: []*Entity{entity}, StoredAt: time.Now()})
			}

			collected = append(collected, entity)

			if !yield(entity, nil) {
				return
			}
		}

		if key != nil {
			c.put(ctx, *key, &CacheEntry{Entities: collected, StoredAt: time.Now()})
		}
	}
}

// Invalidate drops the cached entity of kind with id.
func (c *Cache) Invalidate(ctx context.Context, kind string, id any) error {
	return c.store.Delete(ctx, ItemKey(kind, id))
}

// InvalidateCollection drops the cached collection of kind in scope.
func (c *Cache) InvalidateCollection(ctx context.Context, kind, scope string) error {
	return c.store.Delete(ctx, CollectionKey(kind, scope))
}

// Clear drops every cached entry.
func (c *Cache) Clear(ctx context.Context) error {
	return c.store.Clear(ctx)
}

func (c *Cache) lookupItem(ctx context.Context, key CacheKey) (*Entity, bool) {
	entry, ok := c.lookup(ctx, key, cacheItem)
	if !ok || len(entry.Entities) != 1 {
		return nil, false
	}

	return entry.Entities[0], true
}

func (c *Cache) lookup(ctx context.Context, key CacheKey, cache string) (*CacheEntry, bool) {
	entry, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) && c.logger != nil {
			c.logger.Warn("Cache lookup failed", map[string]interface{}{
				"key":   key.String(),
				"error": err.Error(),
			})
		}

		c.metrics.RecordCacheMiss(cache, key.Kind)

		return nil, false
	}

	c.metrics.RecordCacheHit(cache, key.Kind)

	return entry, true
}

func (c *Cache) drop(ctx context.Context, key CacheKey) {
	err := c.store.Delete(ctx, key)
	if err != nil && c.logger != nil {
		c.logger.Warn("Cache delete failed", map[string]interface{}{
			"key":   key.String(),
			"error": err.Error(),
		})
	}
}

func (c *Cache) put(ctx context.Context, key CacheKey, entry *CacheEntry) {
	err := c.store.Set(ctx, key, entry)
	if err != nil && c.logger != nil {
		c.logger.Warn("Cache store failed", map[string]interface{}{
			"key":   key.String(),
			"error": err.Error(),
		})
	}
}

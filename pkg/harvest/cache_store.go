package harvest

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/fivetwenty-io/harvest/internal/constants"
)

// Cache key namespaces. Items and collections of the same kind never share a
// key.
const (
	NamespaceItem       = "item"
	NamespaceCollection = "coll"
)

// CacheKey identifies a cached item or collection.
type CacheKey struct {
	Namespace string
	Kind      string
	// Scope is the entity id for items, and "all" or "<parentKind>:<parentId>"
	// for collections.
	Scope string
}

// ItemKey is the key of a single entity.
func ItemKey(kind string, id any) CacheKey {
	return CacheKey{Namespace: NamespaceItem, Kind: kind, Scope: QueryValue(id)}
}

// CollectionKey is the key of an unfiltered collection.
func CollectionKey(kind, scope string) CacheKey {
	return CacheKey{Namespace: NamespaceCollection, Kind: kind, Scope: scope}
}

// ParentScope is the collection scope of a kind nested under a parent entity.
func ParentScope(parentKind string, parentID any) string {
	return parentKind + ":" + QueryValue(parentID)
}

// String renders the key for logs and singleflight grouping.
func (k CacheKey) String() string {
	return k.Namespace + "/" + k.Kind + "/" + k.Scope
}

// CacheEntry is a cached item (one entity) or collection.
type CacheEntry struct {
	Entities []*Entity
	StoredAt time.Time
}

// Store is a cache backend. Get returns ErrCacheMiss for absent keys.
type Store interface {
	Get(ctx context.Context, key CacheKey) (*CacheEntry, error)
	Set(ctx context.Context, key CacheKey, entry *CacheEntry) error
	Delete(ctx context.Context, key CacheKey) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key CacheKey) bool
}

// MemoryStore keeps entries in process memory. It returns the stored
// *Entity pointers, so repeated lookups yield the same instances. Locks are
// sharded by kind.
type MemoryStore struct {
	shards []*memoryShard
}

type memoryShard struct {
	mu      sync.RWMutex
	entries map[CacheKey]*CacheEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	shards := make([]*memoryShard, constants.DefaultCacheShards)
	for i := range shards {
		shards[i] = &memoryShard{entries: make(map[CacheKey]*CacheEntry)}
	}

	return &MemoryStore{shards: shards}
}

func (s *MemoryStore) shard(kind string) *memoryShard {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(kind))

	return s.shards[hash.Sum32()%uint32(len(s.shards))]
}

// Get returns the entry stored under key.
func (s *MemoryStore) Get(_ context.Context, key CacheKey) (*CacheEntry, error) {
	shard := s.shard(key.Kind)

	shard.mu.RLock()
	defer shard.mu.RUnlock()

	entry, ok := shard.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}

	return entry, nil
}

// Set stores entry under key, replacing any previous entry.
func (s *MemoryStore) Set(_ context.Context, key CacheKey, entry *CacheEntry) error {
	shard := s.shard(key.Kind)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	shard.entries[key] = entry

	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(_ context.Context, key CacheKey) error {
	shard := s.shard(key.Kind)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	delete(shard.entries, key)

	return nil
}

// Clear removes every entry.
func (s *MemoryStore) Clear(_ context.Context) error {
	for _, shard := range s.shards {
		shard.mu.Lock()
		shard.entries = make(map[CacheKey]*CacheEntry)
		shard.mu.Unlock()
	}

	return nil
}

// Has reports whether key is stored.
func (s *MemoryStore) Has(_ context.Context, key CacheKey) bool {
	shard := s.shard(key.Kind)

	shard.mu.RLock()
	defer shard.mu.RUnlock()

	_, ok := shard.entries[key]

	return ok
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	total := 0

	for _, shard := range s.shards {
		shard.mu.RLock()
		total += len(shard.entries)
		shard.mu.RUnlock()
	}

	return total
}

// NoOpStore caches nothing; every lookup misses.
type NoOpStore struct{}

// NewNoOpStore creates a new no-op store.
func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

// Get always misses.
func (s *NoOpStore) Get(_ context.Context, key CacheKey) (*CacheEntry, error) {
	return nil, fmt.Errorf("%w: %s", ErrCacheMiss, key)
}

// Set does nothing.
func (s *NoOpStore) Set(context.Context, CacheKey, *CacheEntry) error {
	return nil
}

// Delete does nothing.
func (s *NoOpStore) Delete(context.Context, CacheKey) error {
	return nil
}

// Clear does nothing.
func (s *NoOpStore) Clear(context.Context) error {
	return nil
}

// Has always returns false.
func (s *NoOpStore) Has(context.Context, CacheKey) bool {
	return false
}

package harvest

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// CacheType represents the type of cache backend.
type CacheType string

const (
	// CacheTypeMemory represents the in-memory store.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS represents an in-memory store backed by a NATS KV bucket.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone represents no caching.
	CacheTypeNone CacheType = "none"
)

// CacheConfig configures the cache backend.
type CacheConfig struct {
	// Type is the cache backend type
	Type CacheType

	// NATS KV configuration, required for CacheTypeNATS
	NATS *NATSKVConfig
}

// DefaultCacheConfig returns the default cache configuration.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{Type: CacheTypeMemory}
}

// NewStoreFromConfig creates a cache store from configuration. A NATS
// configuration yields a CacheChain with an in-memory first level, so
// entities keep their identity once loaded.
func NewStoreFromConfig(ctx context.Context, config *CacheConfig) (Store, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory, "":
		return NewMemoryStore(), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigMissing
		}

		remote, err := NewNATSKVStore(ctx, config.NATS)
		if err != nil {
			return nil, err
		}

		return NewCacheChain(NewMemoryStore(), remote), nil

	case CacheTypeNone:
		return NewNoOpStore(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCache, config.Type)
	}
}

// CacheBuilder helps build cache configurations.
type CacheBuilder struct {
	config *CacheConfig
}

// NewCacheBuilder creates a new cache builder.
func NewCacheBuilder() *CacheBuilder {
	return &CacheBuilder{config: DefaultCacheConfig()}
}

// WithType sets the cache type.
func (b *CacheBuilder) WithType(cacheType CacheType) *CacheBuilder {
	b.config.Type = cacheType

	return b
}

// WithNATSConfig sets the NATS KV configuration.
func (b *CacheBuilder) WithNATSConfig(config *NATSKVConfig) *CacheBuilder {
	b.config.NATS = config

	return b
}

// Config returns the assembled configuration.
func (b *CacheBuilder) Config() *CacheConfig {
	return b.config
}

// Build creates the store from the configuration.
func (b *CacheBuilder) Build(ctx context.Context) (Store, error) {
	return NewStoreFromConfig(ctx, b.config)
}

// CacheChain implements a chain of stores (L1, L2, etc.).
type CacheChain struct {
	stores []Store
}

// NewCacheChain creates a new cache chain.
func NewCacheChain(stores ...Store) *CacheChain {
	return &CacheChain{stores: stores}
}

// Get retrieves an entry from the first store that has it and copies it
// into the earlier stores.
func (c *CacheChain) Get(ctx context.Context, key CacheKey) (*CacheEntry, error) {
	for i, store := range c.stores {
		entry, err := store.Get(ctx, key)
		if err == nil {
			for j := range i {
				_ = c.stores[j].Set(ctx, key, entry)
			}

			return entry, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrCacheMiss, key)
}

// Set stores an entry in all stores.
func (c *CacheChain) Set(ctx context.Context, key CacheKey, entry *CacheEntry) error {
	var errs []error

	for _, store := range c.stores {
		err := store.Set(ctx, key, entry)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Delete removes an entry from all stores.
func (c *CacheChain) Delete(ctx context.Context, key CacheKey) error {
	var errs []error

	for _, store := range c.stores {
		err := store.Delete(ctx, key)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Clear removes all entries from all stores.
func (c *CacheChain) Clear(ctx context.Context) error {
	var errs []error

	for _, store := range c.stores {
		err := store.Clear(ctx)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Has checks if a key exists in any store.
func (c *CacheChain) Has(ctx context.Context, key CacheKey) bool {
	for _, store := range c.stores {
		if store.Has(ctx, key) {
			return true
		}
	}

	return false
}

// BindFetcher forwards the owning client to every store that rebuilds
// entities.
func (c *CacheChain) BindFetcher(fetcher Fetcher) {
	for _, store := range c.stores {
		if binder, ok := store.(FetcherBinder); ok {
			binder.BindFetcher(fetcher)
		}
	}
}

// Close closes every store that holds resources.
func (c *CacheChain) Close() error {
	var errs []error

	for _, store := range c.stores {
		if closer, ok := store.(io.Closer); ok {
			err := closer.Close()
			if err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}

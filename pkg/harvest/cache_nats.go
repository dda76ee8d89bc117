package harvest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/fivetwenty-io/harvest/internal/constants"
)

// NATSKVConfig configures a NATS JetStream key-value store.
type NATSKVConfig struct {
	// URL of the NATS server. Defaults to nats.DefaultURL.
	URL string
	// Bucket name. Defaults to "harvest_cache".
	Bucket string
	// TTL expires entries server-side. Zero keeps them until invalidated.
	TTL time.Duration
	// Conn reuses an existing connection instead of dialing URL. The store
	// does not close a connection it did not open.
	Conn *nats.Conn
}

// KVBucket is the subset of a key-value bucket used by NATSKVStore. Get
// returns ErrCacheMiss for absent keys.
type KVBucket interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// NATSKVStore stores entity snapshots in a NATS KV bucket. Entities are
// rebuilt on every load, so it is meant to sit behind a MemoryStore in a
// CacheChain.
type NATSKVStore struct {
	bucket KVBucket
	conn   *nats.Conn

	mu      sync.RWMutex
	fetcher Fetcher
}

type natsEntry struct {
	StoredAt time.Time  `json:"stored_at"`
	Entities []Snapshot `json:"entities"`
}

// NewNATSKVStore connects to NATS and opens (or creates) the bucket.
func NewNATSKVStore(ctx context.Context, config *NATSKVConfig) (*NATSKVStore, error) {
	if config == nil {
		return nil, ErrNATSConfigMissing
	}

	conn := config.Conn
	owned := false

	if conn == nil {
		url := config.URL
		if url == "" {
			url = nats.DefaultURL
		}

		var err error

		conn, err = nats.Connect(url,
			nats.Name(constants.DefaultUserAgent),
			nats.Timeout(constants.ShortHTTPTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}

		owned = true
	}

	bucket, err := openJetStreamBucket(ctx, conn, config)
	if err != nil {
		if owned {
			conn.Close()
		}

		return nil, err
	}

	store := NewNATSKVStoreWithBucket(bucket)
	if owned {
		store.conn = conn
	}

	return store, nil
}

// NewNATSKVStoreWithBucket creates a store over an already opened bucket.
func NewNATSKVStoreWithBucket(bucket KVBucket) *NATSKVStore {
	return &NATSKVStore{bucket: bucket}
}

// BindFetcher sets the client that rebuilt entities are bound to.
func (s *NATSKVStore) BindFetcher(fetcher Fetcher) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetcher = fetcher
}

// Get loads and rebuilds the entry stored under key.
func (s *NATSKVStore) Get(ctx context.Context, key CacheKey) (*CacheEntry, error) {
	data, err := s.bucket.Get(ctx, natsKey(key))
	if err != nil {
		return nil, err
	}

	var stored natsEntry

	err = json.Unmarshal(data, &stored)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}

	s.mu.RLock()
	fetcher := s.fetcher
	s.mu.RUnlock()

	entities := make([]*Entity, 0, len(stored.Entities))
	for _, snapshot := range stored.Entities {
		entities = append(entities, snapshot.Entity().Bind(fetcher))
	}

	return &CacheEntry{Entities: entities, StoredAt: stored.StoredAt}, nil
}

// Set stores entry under key.
func (s *NATSKVStore) Set(ctx context.Context, key CacheKey, entry *CacheEntry) error {
	stored := natsEntry{
		StoredAt: entry.StoredAt,
		Entities: make([]Snapshot, 0, len(entry.Entities)),
	}

	for _, entity := range entry.Entities {
		stored.Entities = append(stored.Entities, entity.Snapshot())
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}

	return s.bucket.Put(ctx, natsKey(key), data)
}

// Delete removes key.
func (s *NATSKVStore) Delete(ctx context.Context, key CacheKey) error {
	return s.bucket.Delete(ctx, natsKey(key))
}

// Clear removes every key in the bucket.
func (s *NATSKVStore) Clear(ctx context.Context) error {
	keys, err := s.bucket.Keys(ctx)
	if err != nil {
		return err
	}

	var errs []error

	for _, key := range keys {
		err := s.bucket.Delete(ctx, key)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Has reports whether key is stored.
func (s *NATSKVStore) Has(ctx context.Context, key CacheKey) bool {
	_, err := s.bucket.Get(ctx, natsKey(key))

	return err == nil
}

// Close closes the connection if the store opened it.
func (s *NATSKVStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}

	return nil
}

// natsKey maps a cache key onto the KV key alphabet: "<namespace>.<kind>.<scope>"
// with the scope base64url encoded.
func natsKey(key CacheKey) string {
	scope := base64.RawURLEncoding.EncodeToString([]byte(key.Scope))
	if scope == "" {
		scope = "-"
	}

	return strings.Join([]string{key.Namespace, key.Kind, scope}, ".")
}

type jetStreamBucket struct {
	kv jetstream.KeyValue
}

func openJetStreamBucket(ctx context.Context, conn *nats.Conn, config *NATSKVConfig) (*jetStreamBucket, error) {
	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	name := config.Bucket
	if name == "" {
		name = constants.DefaultNATSBucket
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "harvest entity cache",
		TTL:         config.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open KV bucket %s: %w", name, err)
	}

	return &jetStreamBucket{kv: kv}, nil
}

func (b *jetStreamBucket) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := b.kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}

	if err != nil {
		return nil, err
	}

	return entry.Value(), nil
}

func (b *jetStreamBucket) Put(ctx context.Context, key string, value []byte) error {
	_, err := b.kv.Put(ctx, key, value)

	return err
}

func (b *jetStreamBucket) Delete(ctx context.Context, key string) error {
	err := b.kv.Delete(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil
	}

	return err
}

func (b *jetStreamBucket) Keys(ctx context.Context) ([]string, error) {
	keys, err := b.kv.Keys(ctx)
	if errors.Is(err, jetstream.ErrNoKeysFound) {
		return nil, nil
	}

	return keys, err
}

package harvest_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

func TestNewStoreFromConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name     string
		config   *harvest.CacheConfig
		expected harvest.Store
		err      error
	}{
		{"nil config", nil, &harvest.MemoryStore{}, nil},
		{"empty type", &harvest.CacheConfig{}, &harvest.MemoryStore{}, nil},
		{"memory", &harvest.CacheConfig{Type: harvest.CacheTypeMemory}, &harvest.MemoryStore{}, nil},
		{"none", &harvest.CacheConfig{Type: harvest.CacheTypeNone}, &harvest.NoOpStore{}, nil},
		{"nats without config", &harvest.CacheConfig{Type: harvest.CacheTypeNATS}, nil, harvest.ErrNATSConfigMissing},
		{"unsupported", &harvest.CacheConfig{Type: "redis"}, nil, harvest.ErrUnsupportedCache},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			store, err := harvest.NewStoreFromConfig(ctx, testCase.config)
			if testCase.err != nil {
				require.ErrorIs(t, err, testCase.err)
				assert.Nil(t, store)

				return
			}

			require.NoError(t, err)
			assert.IsType(t, testCase.expected, store)
		})
	}
}

func TestCacheBuilder(t *testing.T) {
	t.Parallel()

	nats := &harvest.NATSKVConfig{URL: "nats://cache:4222", Bucket: "harvest", TTL: time.Minute}
	builder := harvest.NewCacheBuilder().WithType(harvest.CacheTypeNATS).WithNATSConfig(nats)

	config := builder.Config()
	assert.Equal(t, harvest.CacheTypeNATS, config.Type)
	assert.Same(t, nats, config.NATS)

	store, err := harvest.NewCacheBuilder().WithType(harvest.CacheTypeNone).Build(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &harvest.NoOpStore{}, store)

	assert.Equal(t, harvest.CacheTypeMemory, harvest.DefaultCacheConfig().Type)
}

func TestCacheChain(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	key := harvest.ItemKey(harvest.KindProject, 1)
	entry := &harvest.CacheEntry{Entities: []*harvest.Entity{project(1, "Website")}, StoredAt: time.Now()}

	t.Run("promotes hits into earlier stores", func(t *testing.T) {
		t.Parallel()

		l1 := harvest.NewMemoryStore()
		l2 := harvest.NewMemoryStore()
		chain := harvest.NewCacheChain(l1, l2)

		require.NoError(t, l2.Set(ctx, key, entry))
		assert.False(t, l1.Has(ctx, key))
		assert.True(t, chain.Has(ctx, key))

		got, err := chain.Get(ctx, key)
		require.NoError(t, err)
		assert.Same(t, entry, got)
		assert.True(t, l1.Has(ctx, key))
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()

		chain := harvest.NewCacheChain(harvest.NewMemoryStore(), harvest.NewNoOpStore())

		_, err := chain.Get(ctx, key)
		require.ErrorIs(t, err, harvest.ErrCacheMiss)
	})

	t.Run("writes and deletes reach every store", func(t *testing.T) {
		t.Parallel()

		l1 := harvest.NewMemoryStore()
		l2 := harvest.NewMemoryStore()
		chain := harvest.NewCacheChain(l1, l2)

		require.NoError(t, chain.Set(ctx, key, entry))
		assert.True(t, l1.Has(ctx, key))
		assert.True(t, l2.Has(ctx, key))

		require.NoError(t, chain.Delete(ctx, key))
		assert.False(t, chain.Has(ctx, key))

		require.NoError(t, chain.Set(ctx, key, entry))
		require.NoError(t, chain.Clear(ctx))
		assert.Equal(t, 0, l1.Len())
		assert.Equal(t, 0, l2.Len())
	})

	t.Run("binds fetcher to rebuilding stores", func(t *testing.T) {
		t.Parallel()

		bucket := newFakeBucket()
		remote := harvest.NewNATSKVStoreWithBucket(bucket)
		chain := harvest.NewCacheChain(harvest.NewMemoryStore(), remote)
		fetcher := &stubFetcher{}

		harvest.NewCache(chain, harvest.WithOwner(fetcher))

		require.NoError(t, remote.Set(ctx, key, entry))

		got, err := chain.Get(ctx, key)
		require.NoError(t, err)
		require.Len(t, got.Entities, 1)
		assert.Same(t, fetcher, got.Entities[0].Fetcher())
		assert.NoError(t, chain.Close())
	})
}

package segment

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*CatalogCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCatalogCache(client, ttl), mr
}

func TestCatalogCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	cols := []domain.FilterableColumn{
		{Name: "saldo", Kind: domain.FilterNumeric, DistinctCount: 900},
		{Name: "regiao", Kind: domain.FilterCategorical, Values: []string{"norte", "sul"}},
	}
	cache.Put(ctx, "clientes_sp", cols)

	got, ok := cache.Get(ctx, "clientes_sp")
	require.True(t, ok)
	assert.Equal(t, cols, got)

	// Other tables don't share entries
	_, ok = cache.Get(ctx, "clientes_rj")
	assert.False(t, ok)
}

func TestCatalogCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	cache.Put(ctx, "clientes_sp", []domain.FilterableColumn{{Name: "saldo"}})
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "clientes_sp")
	assert.False(t, ok)
}

func TestCatalogCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	cache.Put(ctx, "clientes_sp", []domain.FilterableColumn{{Name: "saldo"}})
	cache.Invalidate(ctx, "clientes_sp")

	_, ok := cache.Get(ctx, "clientes_sp")
	assert.False(t, ok)
}

func TestCatalogUsesCache(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	store := &memCatalogStore{
		columns:  []ColumnInfo{{Name: "regiao", DataType: "text"}},
		distinct: map[string]int{"regiao": 2},
		values:   map[string][]string{"regiao": {"norte", "sul"}},
	}
	catalog := NewCatalog(store, cache)

	first, err := catalog.ListFilterableColumns(ctx, "clientes_sp")
	require.NoError(t, err)

	// A second call must come from the cache, not the store.
	store.columns = nil
	second, err := catalog.ListFilterableColumns(ctx, "clientes_sp")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

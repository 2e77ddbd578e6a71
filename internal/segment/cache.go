package segment

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/pkg/logger"
)

// DefaultCatalogTTL bounds how stale a cached catalog may get. Column
// cardinality moves slowly; five minutes keeps the builder UI snappy without
// hiding new categorical values for long.
const DefaultCatalogTTL = 5 * time.Minute

// CatalogCache is a read-through Redis cache for per-table filter catalogs.
// All failures are soft: a broken or absent Redis only costs the caller a
// direct introspection round trip.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a cache with the given TTL (0 means DefaultCatalogTTL).
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

func (c *CatalogCache) key(table string) string { return "catalog:" + table }

// Get returns the cached catalog for a table, if present and decodable.
func (c *CatalogCache) Get(ctx context.Context, table string) ([]domain.FilterableColumn, bool) {
	data, err := c.client.Get(ctx, c.key(table)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Debug("catalog cache read failed", "table", table, "error", err.Error())
		}
		return nil, false
	}
	var cols []domain.FilterableColumn
	if err := json.Unmarshal(data, &cols); err != nil {
		return nil, false
	}
	return cols, true
}

// Put stores the catalog for a table.
func (c *CatalogCache) Put(ctx context.Context, table string, cols []domain.FilterableColumn) {
	data, err := json.Marshal(cols)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(table), data, c.ttl).Err(); err != nil {
		logger.Debug("catalog cache write failed", "table", table, "error", err.Error())
	}
}

// Invalidate drops the cached catalog for a table.
func (c *CatalogCache) Invalidate(ctx context.Context, table string) {
	c.client.Del(ctx, c.key(table))
}

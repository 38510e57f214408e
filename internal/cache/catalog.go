// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// catalog.go provides a Valkey-backed cache for public catalog responses.
// Serialized product and category lists are stored so repeat storefront
// requests skip the database entirely. Any admin mutation of the catalog
// invalidates the whole namespace — the data set is small enough that
// fine-grained invalidation isn't worth the bookkeeping.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// catalogKeyPrefix is the Valkey key prefix for cached catalog payloads.
	catalogKeyPrefix = "catalog:"

	// DefaultCatalogTTL is how long a cached catalog response stays fresh.
	DefaultCatalogTTL = 5 * time.Minute
)

// CatalogCache manages cached public catalog responses in Valkey.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a catalog cache backed by the given Valkey client.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl == 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// Get retrieves a cached payload. Returns (nil, false) on miss; cache
// errors degrade to misses so a Valkey hiccup never breaks the storefront.
func (cc *CatalogCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := cc.client.Get(ctx, catalogKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("catalog cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores a serialized payload with the configured TTL.
func (cc *CatalogCache) Set(ctx context.Context, key string, payload []byte) {
	if err := cc.client.Set(ctx, catalogKeyPrefix+key, payload, cc.ttl).Err(); err != nil {
		slog.Warn("catalog cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached catalog payload by scanning for the
// prefix. Called after any admin mutation of products or categories.
func (cc *CatalogCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := cc.client.Scan(ctx, cursor, catalogKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("catalog cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := cc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("catalog cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("catalog cache cleared", "deleted", deleted)
	}
}

// ProductsKey is the cache key for the published product list.
func ProductsKey() string { return "products" }

// CategoriesKey is the cache key for the public category list.
func CategoriesKey() string { return "categories" }

// ProductSlugKey is the cache key for a single product page payload.
func ProductSlugKey(slug string) string { return "product:" + slug }

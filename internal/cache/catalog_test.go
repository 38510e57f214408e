package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkeyClient returns a Redis client for cache tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "catalog:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func TestCatalogCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewCatalogCache(client, time.Minute)
	ctx := context.Background()

	payload := []byte(`[{"id":1}]`)
	cc.Set(ctx, ProductsKey(), payload)

	got, ok := cc.Get(ctx, ProductsKey())
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(got) != string(payload) {
		t.Errorf("payload: got %q, want %q", got, payload)
	}
}

func TestCatalogCacheMiss(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewCatalogCache(client, time.Minute)

	if _, ok := cc.Get(context.Background(), "absent"); ok {
		t.Error("expected cache miss")
	}
}

func TestCatalogCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewCatalogCache(client, time.Minute)
	ctx := context.Background()

	cc.Set(ctx, ProductsKey(), []byte("a"))
	cc.Set(ctx, CategoriesKey(), []byte("b"))
	cc.Set(ctx, ProductSlugKey("oak-table"), []byte("c"))

	cc.InvalidateAll(ctx)

	for _, key := range []string{ProductsKey(), CategoriesKey(), ProductSlugKey("oak-table")} {
		if _, ok := cc.Get(ctx, key); ok {
			t.Errorf("key %q survived invalidation", key)
		}
	}
}

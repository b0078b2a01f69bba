//go:build integration

// Package testutil provides test helpers that need a live backing service
// (currently: Redis for kvstore.RedisStore) and so only build under the
// integration tag.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisAddr returns the address of the test Redis instance. It checks
// ACCESSNODE_TEST_REDIS_ADDR first, falling back to the conventional local
// default.
func RedisAddr() string {
	if addr := os.Getenv("ACCESSNODE_TEST_REDIS_ADDR"); addr != "" {
		return addr
	}
	return "127.0.0.1:6379"
}

// SkipIfNoRedis skips the test if the test Redis instance is unreachable.
func SkipIfNoRedis(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: RedisAddr()})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("test Redis not reachable at %s: %v", RedisAddr(), err)
	}
}

// FlushTestDB removes every key under the given hash prefix so board-config
// tests start from a clean slate. Scoped to a prefix rather than FLUSHDB
// since a shared test Redis instance may back other suites too.
func FlushTestDB(t *testing.T, prefix string) {
	t.Helper()

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: RedisAddr()})
	defer client.Close()

	keys, err := client.Keys(ctx, prefix+"*").Result()
	if err != nil {
		t.Fatalf("listing keys under %s: %v", prefix, err)
	}
	if len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		t.Fatalf("deleting keys under %s: %v", prefix, err)
	}
}

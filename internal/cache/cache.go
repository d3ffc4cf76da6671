// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache.go implements the read-through JSON cache and the short-lived
// mutual-exclusion primitive. The cache is strictly an accelerator: every
// failure — connection error, timeout, stale payload that no longer
// unmarshals — degrades to a miss and is logged, never returned. A nil
// client turns every operation into a no-op so the application runs
// without Valkey.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"log/slog"

	"github.com/redis/go-redis/v9"
)

// TTLs carries one time-to-live per cached entity class. Each class is
// independently tunable from configuration.
type TTLs struct {
	Category time.Duration
	Product  time.Duration
	Shop     time.Duration
	Listing  time.Duration
	Session  time.Duration
}

// Cache wraps a Valkey client with JSON marshalling and per-class TTLs.
type Cache struct {
	client *redis.Client
	ttls   TTLs
}

// New returns a Cache backed by client. client may be nil, in which case
// every read misses and every write is a no-op.
func New(client *redis.Client, ttls TTLs) *Cache {
	return &Cache{client: client, ttls: ttls}
}

// Available reports whether a cache tier is actually connected. Callers
// that fall back to lock-free behavior when Valkey is absent check this
// before interpreting a failed TryLock.
func (c *Cache) Available() bool {
	return c != nil && c.client != nil
}

// TTL returns the configured duration for a key's entity class, derived
// from the key's leading segment.
func (c *Cache) TTL(key string) time.Duration {
	switch prefixOf(key) {
	case "category":
		return c.ttls.Category
	case "product":
		if isListingKey(key) {
			return c.ttls.Listing
		}
		return c.ttls.Product
	case "shop":
		return c.ttls.Shop
	case "session", "blacklist":
		return c.ttls.Session
	default:
		return c.ttls.Listing
	}
}

// GetJSON reads key and unmarshals it into dst. It reports a hit; every
// error path (missing key, connection failure, payload that does not
// unmarshal into dst) reports a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Warn("cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// A payload shape from an older build; treat as miss and drop it.
		slog.Warn("cache payload mismatch", "key", key, "error", err)
		c.client.Del(ctx, key)
		return false
	}
	slog.Debug("cache hit", "key", key)
	return true
}

// SetJSON stores v under key with the key's class TTL. Errors are logged
// and swallowed.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("cache marshal error", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.TTL(key)).Err(); err != nil {
		slog.Warn("cache set error", "key", key, "error", err)
	}
}

// Delete removes the given keys. Errors are logged and swallowed.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("cache delete error", "keys", keys, "error", err)
	}
}

// Exists reports whether key is present. Errors report false.
func (c *Cache) Exists(ctx context.Context, key string) bool {
	if c == nil || c.client == nil {
		return false
	}
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		slog.Warn("cache exists error", "key", key, "error", err)
		return false
	}
	return n > 0
}

// DeleteByPattern removes all keys matching the glob pattern using
// SCAN+DEL batches so the server is never blocked by KEYS.
func (c *Cache) DeleteByPattern(ctx context.Context, pattern string) {
	if c == nil || c.client == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("cache scan error", "pattern", pattern, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("cache bulk delete error", "pattern", pattern, "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("cache invalidated", "pattern", pattern, "deleted", deleted)
	}
}

// TryLock attempts to acquire a mutual-exclusion key: SET-if-absent with
// the given expiry. It returns false both when the lock is held elsewhere
// and when the cache tier is unreachable — callers decide policy, nothing
// is ever escalated.
func (c *Cache) TryLock(ctx context.Context, key string, ttl time.Duration) bool {
	if c == nil || c.client == nil {
		return false
	}
	ok, err := c.client.SetNX(ctx, key, "LOCKED", ttl).Result()
	if err != nil {
		slog.Warn("cache lock error", "key", key, "error", err)
		return false
	}
	return ok
}

// Unlock releases a lock acquired with TryLock.
func (c *Cache) Unlock(ctx context.Context, key string) {
	c.Delete(ctx, key)
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Valkey client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"category:*", "product:*", "lock:*", "test:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testTTLs() TTLs {
	return TTLs{
		Category: time.Minute,
		Product:  time.Minute,
		Shop:     time.Minute,
		Listing:  time.Minute,
		Session:  time.Minute,
	}
}

func TestGetSetJSONRoundTrip(t *testing.T) {
	c := New(testValkeyClient(t), testTTLs())
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	in := payload{Name: "electronics", Count: 7}
	c.SetJSON(ctx, KeyCategoryAll, in)

	var out payload
	if !c.GetJSON(ctx, KeyCategoryAll, &out) {
		t.Fatal("expected cache hit after SetJSON")
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestGetJSONMissOnAbsentKey(t *testing.T) {
	c := New(testValkeyClient(t), testTTLs())

	var out string
	if c.GetJSON(context.Background(), "category:id:never-written", &out) {
		t.Error("absent key should be a miss")
	}
}

func TestGetJSONMismatchIsMissNotError(t *testing.T) {
	client := testValkeyClient(t)
	c := New(client, testTTLs())
	ctx := context.Background()

	// Poison the key with a payload that cannot unmarshal into a struct.
	client.Set(ctx, "category:tree", "not json at all", time.Minute)

	var out struct{ Name string }
	if c.GetJSON(ctx, "category:tree", &out) {
		t.Error("undecodable payload should be a miss")
	}

	// The poisoned entry must have been dropped so the next write wins.
	if c.Exists(ctx, "category:tree") {
		t.Error("undecodable payload should be evicted")
	}
}

func TestDeleteByPattern(t *testing.T) {
	c := New(testValkeyClient(t), testTTLs())
	ctx := context.Background()

	c.SetJSON(ctx, KeySearch("kw=phone", 0), "page0")
	c.SetJSON(ctx, KeySearch("kw=phone", 1), "page1")
	c.SetJSON(ctx, KeyProductSlug("demo-phone"), "detail")

	c.DeleteByPattern(ctx, PatternListings)

	var out string
	if c.GetJSON(ctx, KeySearch("kw=phone", 0), &out) {
		t.Error("listing page 0 should be gone")
	}
	if c.GetJSON(ctx, KeySearch("kw=phone", 1), &out) {
		t.Error("listing page 1 should be gone")
	}
	if !c.GetJSON(ctx, KeyProductSlug("demo-phone"), &out) {
		t.Error("detail entry should survive a listing purge")
	}
}

func TestTryLock(t *testing.T) {
	c := New(testValkeyClient(t), testTTLs())
	ctx := context.Background()

	key := "lock:stock:test-variant"
	if !c.TryLock(ctx, key, 2*time.Second) {
		t.Fatal("first acquisition should succeed")
	}
	if c.TryLock(ctx, key, 2*time.Second) {
		t.Error("second acquisition while held should fail")
	}

	c.Unlock(ctx, key)
	if !c.TryLock(ctx, key, 2*time.Second) {
		t.Error("acquisition after release should succeed")
	}
	c.Unlock(ctx, key)
}

func TestLockExpires(t *testing.T) {
	c := New(testValkeyClient(t), testTTLs())
	ctx := context.Background()

	key := "lock:stock:expiring-variant"
	if !c.TryLock(ctx, key, 500*time.Millisecond) {
		t.Fatal("acquisition should succeed")
	}
	time.Sleep(700 * time.Millisecond)
	if !c.TryLock(ctx, key, time.Second) {
		t.Error("lock should be acquirable after its expiry")
	}
	c.Unlock(ctx, key)
}

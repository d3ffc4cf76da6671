package cache

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestKeyDeterminism(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	if got := KeyCategoryID(id); got != "category:id:11111111-2222-3333-4444-555555555555" {
		t.Errorf("KeyCategoryID = %q", got)
	}
	if got := KeySearch("category=abc|kw=phone", 3); got != "product:search:category=abc|kw=phone:page:3" {
		t.Errorf("KeySearch = %q", got)
	}
	if KeySearch("a", 0) == KeySearch("a", 1) {
		t.Error("page number must be part of the key")
	}
	if KeyTokenBlacklist("tok-a") == KeyTokenBlacklist("tok-b") {
		t.Error("distinct tokens must map to distinct blacklist keys")
	}
	if KeyTokenBlacklist("tok-a") != KeyTokenBlacklist("tok-a") {
		t.Error("blacklist key must be deterministic")
	}
}

func TestTTLPerClass(t *testing.T) {
	ttls := TTLs{
		Category: 2 * time.Hour,
		Product:  time.Hour,
		Shop:     30 * time.Minute,
		Listing:  5 * time.Minute,
		Session:  24 * time.Hour,
	}
	c := New(nil, ttls)
	id := uuid.New()

	tests := []struct {
		key  string
		want time.Duration
	}{
		{KeyCategoryTree, ttls.Category},
		{KeyCategoryID(id), ttls.Category},
		{KeyProductDetail(id), ttls.Product},
		{KeyProductSlug("demo-phone"), ttls.Product},
		{KeySearch("kw=x", 0), ttls.Listing},
		{KeyBestSellers(2), ttls.Listing},
		{KeyNewArrivals(0), ttls.Listing},
		{KeyTopRated(1), ttls.Listing},
		{KeyShopDetail(id), ttls.Shop},
		{KeyUserSession(id), ttls.Session},
		{KeyTokenBlacklist("tok"), ttls.Session},
	}
	for _, tt := range tests {
		if got := c.TTL(tt.key); got != tt.want {
			t.Errorf("TTL(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestNilClientIsSafe(t *testing.T) {
	c := New(nil, TTLs{})
	ctx := t.Context()

	var out string
	if c.GetJSON(ctx, "category:all", &out) {
		t.Error("nil client should always miss")
	}
	c.SetJSON(ctx, "category:all", "value")
	c.Delete(ctx, "category:all")
	c.DeleteByPattern(ctx, "category:*")
	if c.Exists(ctx, "category:all") {
		t.Error("nil client Exists should be false")
	}
	if c.TryLock(ctx, "lock:stock:x", time.Second) {
		t.Error("nil client TryLock should fail acquisition")
	}
	c.Unlock(ctx, "lock:stock:x")

	var nilCache *Cache
	if nilCache.GetJSON(ctx, "k", &out) {
		t.Error("nil *Cache should always miss")
	}
}

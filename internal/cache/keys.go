// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// keys.go defines the deterministic cache key scheme. Keys are
// colon-separated, leading with the entity class so per-class TTLs and
// pattern invalidation stay mechanical:
//
//	category:all  category:tree  category:tree:active
//	category:id:<uuid>  category:slug:<slug>
//	product:detail:<uuid>  product:slug:<slug>
//	product:search:<canonical-filter>:page:<n>
//	product:best:<n>  product:new:<n>  product:top:<n>
//	shop:detail:<uuid>  shop:slug:<slug>
//	session:user:<uuid>  blacklist:token:<sha256>
//	lock:stock:<uuid>
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category keys. Every category mutation invalidates PatternCategories
// and PatternListings wholesale; a single reparent can change the correct
// contents of every tree and listing view.
const (
	KeyCategoryAll        = "category:all"
	KeyCategoryTree       = "category:tree"
	KeyCategoryActiveTree = "category:tree:active"

	PatternCategories = "category:*"
	PatternListings   = "product:search:*"
)

// ListingPatterns covers every paginated product view: searches plus the
// canned best-seller, new-arrival and top-rated pages. Product and
// category mutations purge all of them.
var ListingPatterns = []string{
	PatternListings,
	"product:best:*",
	"product:new:*",
	"product:top:*",
}

func KeyCategoryID(id uuid.UUID) string { return "category:id:" + id.String() }
func KeyCategorySlug(slug string) string { return "category:slug:" + slug }
func KeyCategoryChildren(id uuid.UUID) string { return "category:children:" + id.String() }
func KeyProductDetail(id uuid.UUID) string { return "product:detail:" + id.String() }
func KeyProductSlug(slug string) string { return "product:slug:" + slug }
func KeyShopDetail(id uuid.UUID) string { return "shop:detail:" + id.String() }
func KeyShopSlug(slug string) string { return "shop:slug:" + slug }
func KeyUserSession(id uuid.UUID) string { return "session:user:" + id.String() }
func KeyStockLock(variantID uuid.UUID) string { return "lock:stock:" + variantID.String() }

// KeyTokenBlacklist hashes the raw token so revoked JWTs don't sit in the
// cache tier verbatim.
func KeyTokenBlacklist(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "blacklist:token:" + hex.EncodeToString(sum[:])
}

// KeySearch builds the key for one page of a product search. canonical
// must be a stable encoding of the filter (see catalog.SearchFilter.Canonical)
// so that equal queries share an entry and page numbers stay distinct.
func KeySearch(canonical string, page int) string {
	return fmt.Sprintf("product:search:%s:page:%d", canonical, page)
}

// Canned listing keys, one entry per page.
func KeyBestSellers(page int) string { return fmt.Sprintf("product:best:%d", page) }
func KeyNewArrivals(page int) string { return fmt.Sprintf("product:new:%d", page) }
func KeyTopRated(page int) string { return fmt.Sprintf("product:top:%d", page) }

// prefixOf returns the entity class segment of a key.
func prefixOf(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

// isListingKey reports whether a product key holds a paginated listing
// (short TTL) rather than a single detail view.
func isListingKey(key string) bool {
	switch {
	case strings.HasPrefix(key, "product:search:"),
		strings.HasPrefix(key, "product:best:"),
		strings.HasPrefix(key, "product:new:"),
		strings.HasPrefix(key, "product:top:"):
		return true
	}
	return false
}

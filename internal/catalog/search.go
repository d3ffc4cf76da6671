// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vendora/internal/apperr"
	"vendora/internal/cache"
	"vendora/internal/models"
	"vendora/internal/store"
)

const (
	relatedLimit       = 10
	recentReviewsLimit = 5
	topRatedFloor      = 4.0
)

// ProductStore is the persistence surface the search engine reads from.
type ProductStore interface {
	Search(q store.ProductQuery) ([]models.Product, int64, error)
	FindByID(id uuid.UUID) (*models.Product, error)
	FindBySlug(s string) (*models.Product, error)
	Related(categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error)
}

// VariantStore supplies the per-product price and stock aggregates.
type VariantStore interface {
	ListActiveByProducts(ids []uuid.UUID) (map[uuid.UUID][]models.ProductVariant, error)
	PriceStatsByProducts(ids []uuid.UUID) (map[uuid.UUID]store.PriceStats, error)
}

// ImageStore supplies product galleries and thumbnails.
type ImageStore interface {
	ListByProducts(ids []uuid.UUID) (map[uuid.UUID][]models.ProductImage, error)
}

// ReviewStore supplies rating aggregates and recent reviews.
type ReviewStore interface {
	RatingStatsByProducts(ids []uuid.UUID) (map[uuid.UUID]store.RatingStats, error)
	RecentApproved(productID uuid.UUID, limit int) ([]models.Review, error)
}

// Search is the product query engine: filtered, sorted, paginated reads
// over the catalog with per-page enrichment from variants, images and
// reviews. Only active products are ever returned from listings.
type Search struct {
	products  ProductStore
	variants  VariantStore
	images    ImageStore
	reviews   ReviewStore
	hierarchy *Hierarchy
	cache     *cache.Cache
}

// NewSearch wires a Search over its collaborating stores.
func NewSearch(p ProductStore, v VariantStore, i ImageStore, r ReviewStore, h *Hierarchy, c *cache.Cache) *Search {
	return &Search{products: p, variants: v, images: i, reviews: r, hierarchy: h, cache: c}
}

// SearchFilter is the public query surface. A CategoryID matches the
// category and its whole subtree.
type SearchFilter struct {
	Keyword    string
	CategoryID *uuid.UUID
	ShopID     *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	MinRating  *float64
	SortBy     string
	Desc       bool
	Page       int
	Size       int
}

// Canonical renders the filter as a stable string so that equal queries
// share one cache entry. Field order is fixed and empty fields are
// skipped; the page number is appended separately by the key builder.
func (f SearchFilter) Canonical() string {
	var parts []string
	add := func(k, v string) { parts = append(parts, k+"="+v) }
	if f.Keyword != "" {
		add("kw", strings.ToLower(f.Keyword))
	}
	if f.CategoryID != nil {
		add("cat", f.CategoryID.String())
	}
	if f.ShopID != nil {
		add("shop", f.ShopID.String())
	}
	if f.MinPrice != nil {
		add("min", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		add("max", f.MaxPrice.String())
	}
	if f.MinRating != nil {
		add("rating", fmt.Sprintf("%.1f", *f.MinRating))
	}
	if f.SortBy != "" {
		add("sort", f.SortBy)
	}
	if f.Desc {
		add("desc", "1")
	}
	if f.Size > 0 {
		add("size", fmt.Sprint(f.Size))
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, "&")
}

// List runs a product search and returns one enriched page.
func (s *Search) List(ctx context.Context, f SearchFilter) (*models.Page[models.Product], error) {
	key := cache.KeySearch(f.Canonical(), f.Page)
	var cached models.Page[models.Product]
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	q := store.ProductQuery{
		Keyword:   f.Keyword,
		ShopID:    f.ShopID,
		MinPrice:  f.MinPrice,
		MaxPrice:  f.MaxPrice,
		MinRating: f.MinRating,
		Status:    models.ProductStatusActive,
		SortBy:    f.SortBy,
		Desc:      f.Desc,
		Page:      f.Page,
		Size:      f.Size,
	}
	if f.CategoryID != nil {
		ids, err := s.hierarchy.DescendantIDs(ctx, *f.CategoryID)
		if err != nil {
			return nil, err
		}
		q.CategoryIDs = ids
	}

	items, total, err := s.products.Search(q)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(items, false); err != nil {
		return nil, err
	}

	page := models.NewPage(items, f.Page, f.Size, total)
	s.cache.SetJSON(ctx, key, &page)
	return &page, nil
}

// BestSellers returns the canned listing ordered by units sold.
func (s *Search) BestSellers(ctx context.Context, page, size int) (*models.Page[models.Product], error) {
	return s.canned(ctx, cache.KeyBestSellers(page), store.ProductQuery{
		Status: models.ProductStatusActive,
		SortBy: store.SortSold,
		Desc:   true,
		Page:   page,
		Size:   size,
	})
}

// NewArrivals returns the canned listing ordered by listing date.
func (s *Search) NewArrivals(ctx context.Context, page, size int) (*models.Page[models.Product], error) {
	return s.canned(ctx, cache.KeyNewArrivals(page), store.ProductQuery{
		Status: models.ProductStatusActive,
		SortBy: store.SortCreatedAt,
		Desc:   true,
		Page:   page,
		Size:   size,
	})
}

// TopRated returns the canned listing of well-reviewed products ordered
// by rating.
func (s *Search) TopRated(ctx context.Context, page, size int) (*models.Page[models.Product], error) {
	floor := topRatedFloor
	return s.canned(ctx, cache.KeyTopRated(page), store.ProductQuery{
		MinRating: &floor,
		Status:    models.ProductStatusActive,
		SortBy:    store.SortRating,
		Desc:      true,
		Page:      page,
		Size:      size,
	})
}

func (s *Search) canned(ctx context.Context, key string, q store.ProductQuery) (*models.Page[models.Product], error) {
	var cached models.Page[models.Product]
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	items, total, err := s.products.Search(q)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(items, false); err != nil {
		return nil, err
	}

	page := models.NewPage(items, q.Page, q.Size, total)
	s.cache.SetJSON(ctx, key, &page)
	return &page, nil
}

// ByCategory lists the active products of a category subtree.
func (s *Search) ByCategory(ctx context.Context, categoryID uuid.UUID, f SearchFilter) (*models.Page[models.Product], error) {
	f.CategoryID = &categoryID
	return s.List(ctx, f)
}

// ByShop lists the active products of a shop.
func (s *Search) ByShop(ctx context.Context, shopID uuid.UUID, f SearchFilter) (*models.Page[models.Product], error) {
	f.ShopID = &shopID
	return s.List(ctx, f)
}

// ByID returns the full detail view of a buyer-visible product: variants,
// gallery, review aggregates, related products and recent reviews.
// Inactive and banned products are reported as absent.
func (s *Search) ByID(ctx context.Context, id uuid.UUID) (*models.ProductDetail, error) {
	key := cache.KeyProductDetail(id)
	var cached models.ProductDetail
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	p, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}
	detail, err := s.buildDetail(p, "id", id)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, detail)
	return detail, nil
}

// BySlug returns the detail view resolved by slug.
func (s *Search) BySlug(ctx context.Context, slugVal string) (*models.ProductDetail, error) {
	key := cache.KeyProductSlug(slugVal)
	var cached models.ProductDetail
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	p, err := s.products.FindBySlug(slugVal)
	if err != nil {
		return nil, err
	}
	detail, err := s.buildDetail(p, "slug", slugVal)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, detail)
	return detail, nil
}

// visible reports whether buyers may see a product's detail page. Any
// status other than active reads as absent, so an inactive or banned
// product is indistinguishable from one that never existed.
func visible(p *models.Product) bool {
	return p.Status == models.ProductStatusActive
}

func (s *Search) buildDetail(p *models.Product, field string, value any) (*models.ProductDetail, error) {
	if p == nil || !visible(p) {
		return nil, apperr.NotFoundf("product", field, value)
	}

	one := []models.Product{*p}
	if err := s.enrich(one, true); err != nil {
		return nil, err
	}

	related, err := s.products.Related(p.CategoryID, p.ID, relatedLimit)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(related, false); err != nil {
		return nil, err
	}

	reviews, err := s.reviews.RecentApproved(p.ID, recentReviewsLimit)
	if err != nil {
		return nil, err
	}

	return &models.ProductDetail{
		Product:         one[0],
		RelatedProducts: related,
		RecentReviews:   reviews,
	}, nil
}

// enrich attaches the derived fields to a batch of products with one
// query per collaborator, never one per row. full additionally attaches
// the variant list and gallery used on detail views.
func (s *Search) enrich(items []models.Product, full bool) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}

	prices, err := s.variants.PriceStatsByProducts(ids)
	if err != nil {
		return err
	}
	ratings, err := s.reviews.RatingStatsByProducts(ids)
	if err != nil {
		return err
	}
	images, err := s.images.ListByProducts(ids)
	if err != nil {
		return err
	}
	var variants map[uuid.UUID][]models.ProductVariant
	if full {
		variants, err = s.variants.ListActiveByProducts(ids)
		if err != nil {
			return err
		}
	}

	for i := range items {
		p := &items[i]
		if st, ok := prices[p.ID]; ok {
			minP, maxP := st.MinPrice, st.MaxPrice
			p.MinPrice = &minP
			p.MaxPrice = &maxP
			p.TotalStock = int(st.TotalStock)
		}
		if st, ok := ratings[p.ID]; ok {
			p.AverageRating = st.Average
			p.ReviewCount = st.Count
		}
		if imgs := images[p.ID]; len(imgs) > 0 {
			// The gallery stays in display order; the thumbnail is the
			// primary image when one is flagged, else the first.
			thumb := imgs[0]
			for _, im := range imgs {
				if im.IsPrimary {
					thumb = im
					break
				}
			}
			p.ThumbnailURL = thumb.ImageURL
			if full {
				p.Images = imgs
			}
		}
		if full {
			p.Variants = variants[p.ID]
		}
	}
	return nil
}

// InvalidateProduct drops every cached view that can contain the product:
// its detail entries and all paginated listings.
func (s *Search) InvalidateProduct(ctx context.Context, p *models.Product) {
	s.cache.Delete(ctx, cache.KeyProductDetail(p.ID), cache.KeyProductSlug(p.Slug))
	for _, pattern := range cache.ListingPatterns {
		s.cache.DeleteByPattern(ctx, pattern)
	}
}

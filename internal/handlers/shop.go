// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendora/internal/apperr"
	"vendora/internal/cache"
	"vendora/internal/middleware"
	"vendora/internal/models"
	"vendora/internal/slug"
	"vendora/internal/store"
)

// Shops groups the shop HTTP handlers: public browsing plus the seller's
// own storefront management.
type Shops struct {
	shops    *store.ShopStore
	products *store.ProductStore
	cache    *cache.Cache
}

// NewShops creates a Shops handler group.
func NewShops(shops *store.ShopStore, products *store.ProductStore, c *cache.Cache) *Shops {
	return &Shops{shops: shops, products: products, cache: c}
}

// List returns one page of active shops, optionally filtered by keyword
// and minimum rating.
func (h *Shops) List(w http.ResponseWriter, r *http.Request) {
	minRating, err := queryFloat(r, "min_rating")
	if err != nil {
		writeError(w, err)
		return
	}
	page, size := pageParams(r)
	items, total, err := h.shops.Search(store.ShopQuery{
		Keyword:   r.URL.Query().Get("keyword"),
		MinRating: minRating,
		Status:    models.ShopStatusActive,
		Page:      page,
		Size:      size,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewPage(items, page, size, total))
}

// Get returns one shop by ID with its product count.
func (h *Shops) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var cached models.Shop
	if h.cache.GetJSON(r.Context(), cache.KeyShopDetail(id), &cached) {
		writeJSON(w, http.StatusOK, &cached)
		return
	}

	shop, err := h.shops.FindByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if shop == nil || shop.Status != models.ShopStatusActive {
		writeError(w, apperr.NotFoundf("shop", "id", id))
		return
	}
	if err := h.decorate(shop); err != nil {
		writeError(w, err)
		return
	}

	h.cache.SetJSON(r.Context(), cache.KeyShopDetail(id), shop)
	writeJSON(w, http.StatusOK, shop)
}

// GetBySlug returns one shop by slug.
func (h *Shops) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slugVal := chi.URLParam(r, "slug")

	var cached models.Shop
	if h.cache.GetJSON(r.Context(), cache.KeyShopSlug(slugVal), &cached) {
		writeJSON(w, http.StatusOK, &cached)
		return
	}

	shop, err := h.shops.FindBySlug(slugVal)
	if err != nil {
		writeError(w, err)
		return
	}
	if shop == nil || shop.Status != models.ShopStatusActive {
		writeError(w, apperr.NotFoundf("shop", "slug", slugVal))
		return
	}
	if err := h.decorate(shop); err != nil {
		writeError(w, err)
		return
	}

	h.cache.SetJSON(r.Context(), cache.KeyShopSlug(slugVal), shop)
	writeJSON(w, http.StatusOK, shop)
}

func (h *Shops) decorate(shop *models.Shop) error {
	n, err := h.products.CountByShop(shop.ID)
	if err != nil {
		return err
	}
	shop.ProductCount = n
	return nil
}

type shopInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}

// Mine returns the authenticated seller's own shop in any status.
func (h *Shops) Mine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	shop, err := h.shops.FindByOwner(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if shop == nil {
		writeError(w, apperr.NotFound("shop"))
		return
	}
	if err := h.decorate(shop); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shop)
}

// Create opens a shop for the authenticated seller. One shop per seller.
func (h *Shops) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	existing, err := h.shops.FindByOwner(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if existing != nil {
		writeError(w, apperr.Duplicate("seller already has a shop"))
		return
	}

	var in shopInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if in.Name == "" {
		writeError(w, apperr.Invalid("shop name is required"))
		return
	}

	s, err := slug.MakeUnique(in.Name, h.shops.SlugTaken)
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := h.shops.Create(&models.Shop{
		OwnerID:     claims.UserID,
		Name:        in.Name,
		Slug:        s,
		Description: in.Description,
		LogoURL:     in.LogoURL,
		Status:      models.ShopStatusActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update modifies the authenticated seller's shop.
func (h *Shops) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	shop, err := h.shops.FindByOwner(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if shop == nil {
		writeError(w, apperr.NotFound("shop"))
		return
	}
	if shop.Status != models.ShopStatusActive {
		writeError(w, apperr.Forbidden("shop is " + string(shop.Status)))
		return
	}

	var in shopInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	oldSlug := shop.Slug
	if in.Name != "" && in.Name != shop.Name {
		shop.Name = in.Name
		shop.Slug, err = slug.MakeUnique(in.Name, h.shops.SlugTaken)
		if err != nil {
			writeError(w, err)
			return
		}
	}
	shop.Description = in.Description
	shop.LogoURL = in.LogoURL

	if err := h.shops.Update(shop); err != nil {
		writeError(w, err)
		return
	}

	h.invalidate(r.Context(), shop, oldSlug)
	writeJSON(w, http.StatusOK, shop)
}

func (h *Shops) invalidate(ctx context.Context, shop *models.Shop, oldSlug string) {
	keys := []string{cache.KeyShopDetail(shop.ID), cache.KeyShopSlug(shop.Slug)}
	if oldSlug != "" && oldSlug != shop.Slug {
		keys = append(keys, cache.KeyShopSlug(oldSlug))
	}
	h.cache.Delete(ctx, keys...)
}

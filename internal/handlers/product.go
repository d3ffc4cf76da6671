// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendora/internal/catalog"
	"vendora/internal/models"
	"vendora/internal/store"
)

// Products groups the public product HTTP handlers: search, canned
// listings, detail views and review pages.
type Products struct {
	search  *catalog.Search
	reviews *store.ReviewStore
}

// NewProducts creates a Products handler group.
func NewProducts(search *catalog.Search, reviews *store.ReviewStore) *Products {
	return &Products{search: search, reviews: reviews}
}

// searchFilter assembles a catalog filter from the query string.
func searchFilter(r *http.Request) (catalog.SearchFilter, error) {
	var f catalog.SearchFilter
	var err error

	q := r.URL.Query()
	f.Keyword = q.Get("keyword")
	if f.CategoryID, err = queryUUID(r, "category_id"); err != nil {
		return f, err
	}
	if f.ShopID, err = queryUUID(r, "shop_id"); err != nil {
		return f, err
	}
	if f.MinPrice, err = queryDecimal(r, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryDecimal(r, "max_price"); err != nil {
		return f, err
	}
	if f.MinRating, err = queryFloat(r, "min_rating"); err != nil {
		return f, err
	}
	f.SortBy = q.Get("sort")
	f.Desc = q.Get("order") == "desc"
	f.Page, f.Size = pageParams(r)
	return f, nil
}

// Search runs a filtered, sorted, paginated product search.
func (h *Products) Search(w http.ResponseWriter, r *http.Request) {
	f, err := searchFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.search.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// ByCategory lists the products of a category subtree.
func (h *Products) ByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	f, err := searchFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.search.ByCategory(r.Context(), id, f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// ByShop lists the products of a shop.
func (h *Products) ByShop(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	f, err := searchFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.search.ByShop(r.Context(), id, f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Get returns the product detail view by ID.
func (h *Products) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	detail, err := h.search.ByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// GetBySlug returns the product detail view by slug.
func (h *Products) GetBySlug(w http.ResponseWriter, r *http.Request) {
	detail, err := h.search.BySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// BestSellers returns the canned best-seller listing.
func (h *Products) BestSellers(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	result, err := h.search.BestSellers(r.Context(), page, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// NewArrivals returns the canned new-arrivals listing.
func (h *Products) NewArrivals(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	result, err := h.search.NewArrivals(r.Context(), page, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// TopRated returns the canned top-rated listing.
func (h *Products) TopRated(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	result, err := h.search.TopRated(r.Context(), page, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Reviews returns one page of a product's approved reviews.
func (h *Products) Reviews(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	page, size := pageParams(r)
	items, total, err := h.reviews.ListApproved(id, page, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewPage(items, page, size, total))
}

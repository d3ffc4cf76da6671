// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vendora/internal/apperr"
	"vendora/internal/cache"
	"vendora/internal/catalog"
	"vendora/internal/middleware"
	"vendora/internal/models"
	"vendora/internal/slug"
	"vendora/internal/storage"
	"vendora/internal/store"
)

// stockLockTTL bounds how long a stock mutation may hold its variant lock.
const stockLockTTL = 10 * time.Second

// maxUploadBytes caps product image uploads.
const maxUploadBytes = 10 << 20

// Seller groups the product management handlers available to shop owners.
// Every operation resolves the caller's shop and rejects writes against
// products the shop does not own.
type Seller struct {
	products *store.ProductStore
	variants *store.VariantStore
	images   *store.ImageStore
	shops    *store.ShopStore
	search   *catalog.Search
	cache    *cache.Cache
	storage  *storage.Client
}

// NewSeller creates a Seller handler group. storage may be nil if S3 is
// not configured; image uploads then fail with a clear error.
func NewSeller(products *store.ProductStore, variants *store.VariantStore, images *store.ImageStore, shops *store.ShopStore, search *catalog.Search, c *cache.Cache, st *storage.Client) *Seller {
	return &Seller{
		products: products,
		variants: variants,
		images:   images,
		shops:    shops,
		search:   search,
		cache:    c,
		storage:  st,
	}
}

// ownShop resolves the authenticated seller's shop.
func (h *Seller) ownShop(r *http.Request) (*models.Shop, error) {
	claims := middleware.ClaimsFrom(r.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("authentication required")
	}
	shop, err := h.shops.FindByOwner(claims.UserID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperr.NotFound("shop")
	}
	return shop, nil
}

// ownProduct resolves a product and verifies the caller's shop owns it.
func (h *Seller) ownProduct(r *http.Request, id uuid.UUID) (*models.Product, *models.Shop, error) {
	shop, err := h.ownShop(r)
	if err != nil {
		return nil, nil, err
	}
	p, err := h.products.FindByID(id)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, apperr.NotFoundf("product", "id", id)
	}
	if p.ShopID != shop.ID {
		return nil, nil, apperr.Forbidden("product belongs to another shop")
	}
	return p, shop, nil
}

type productInput struct {
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

// sellerStatus validates a seller-supplied product status. Sellers move
// listings between active and inactive; banning is an admin decision.
func sellerStatus(raw string) (models.ProductStatus, error) {
	switch raw {
	case string(models.ProductStatusActive), string(models.ProductStatusInactive):
		return models.ProductStatus(raw), nil
	default:
		return "", apperr.Invalid("status must be active or inactive")
	}
}

// ListProducts returns the seller's own products in every status.
func (h *Seller) ListProducts(w http.ResponseWriter, r *http.Request) {
	shop, err := h.ownShop(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, size := pageParams(r)
	items, total, err := h.products.Search(store.ProductQuery{
		ShopID: &shop.ID,
		SortBy: store.SortCreatedAt,
		Desc:   true,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewPage(items, page, size, total))
}

// CreateProduct lists a new product under the seller's shop.
func (h *Seller) CreateProduct(w http.ResponseWriter, r *http.Request) {
	shop, err := h.ownShop(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in productInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if in.Name == "" {
		writeError(w, apperr.Invalid("product name is required"))
		return
	}
	if in.CategoryID == uuid.Nil {
		writeError(w, apperr.Invalid("category_id is required"))
		return
	}

	s, err := slug.MakeUnique(in.Name, h.products.SlugTaken)
	if err != nil {
		writeError(w, err)
		return
	}
	status := models.ProductStatusActive
	if in.Status != "" {
		if status, err = sellerStatus(in.Status); err != nil {
			writeError(w, err)
			return
		}
	}

	created, err := h.products.Create(&models.Product{
		ShopID:      shop.ID,
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Slug:        s,
		Description: in.Description,
		Status:      status,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.search.InvalidateProduct(r.Context(), created)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateProduct modifies one of the seller's products.
func (h *Seller) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, _, err := h.ownProduct(r, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if p.Status == models.ProductStatusBanned {
		writeError(w, apperr.Forbidden("banned products cannot be edited"))
		return
	}
	var in productInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	oldSlug := p.Slug
	if in.Name != "" && in.Name != p.Name {
		p.Name = in.Name
		p.Slug, err = slug.MakeUnique(in.Name, h.products.SlugTaken)
		if err != nil {
			writeError(w, err)
			return
		}
	}
	if in.CategoryID != uuid.Nil {
		p.CategoryID = in.CategoryID
	}
	p.Description = in.Description
	if in.Status != "" {
		st, err := sellerStatus(in.Status)
		if err != nil {
			writeError(w, err)
			return
		}
		p.Status = st
	}

	if err := h.products.Update(p); err != nil {
		writeError(w, err)
		return
	}

	h.search.InvalidateProduct(r.Context(), p)
	if oldSlug != p.Slug {
		h.cache.Delete(r.Context(), cache.KeyProductSlug(oldSlug))
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProduct removes one of the seller's products together with its
// variants, images and reviews.
func (h *Seller) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, _, err := h.ownProduct(r, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.products.Delete(p.ID); err != nil {
		writeError(w, err)
		return
	}
	h.search.InvalidateProduct(r.Context(), p)
	writeJSON(w, http.StatusNoContent, nil)
}

type variantInput struct {
	SKU      string          `json:"sku"`
	Size     string          `json:"size"`
	Color    string          `json:"color"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	ImageURL string          `json:"image_url"`
	IsActive *bool           `json:"is_active"`
}

// ListVariants returns every variant of one of the seller's products.
func (h *Seller) ListVariants(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, _, err := h.ownProduct(r, id)
	if err != nil {
		writeError(w, err)
		return
	}
	items, err := h.variants.ListByProduct(p.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateVariant adds a variant to one of the seller's products.
func (h *Seller) CreateVariant(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, _, err := h.ownProduct(r, id)
	if err != nil {
		writeError(w, err)
		return
	}
	var in variantInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if in.SKU == "" {
		writeError(w, apperr.Invalid("sku is required"))
		return
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		writeError(w, apperr.Invalid("price must be positive"))
		return
	}
	if in.Stock < 0 {
		writeError(w, apperr.Invalid("stock cannot be negative"))
		return
	}
	taken, err := h.variants.SKUTaken(in.SKU)
	if err != nil {
		writeError(w, err)
		return
	}
	if taken {
		writeError(w, apperr.Duplicate("sku already exists: "+in.SKU))
		return
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	created, err := h.variants.Create(&models.ProductVariant{
		ProductID: p.ID,
		SKU:       in.SKU,
		Size:      in.Size,
		Color:     in.Color,
		Price:     in.Price,
		Stock:     in.Stock,
		ImageURL:  in.ImageURL,
		IsActive:  active,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.search.InvalidateProduct(r.Context(), p)
	writeJSON(w, http.StatusCreated, created)
}

// resolveVariant loads a variant and checks it belongs to one of the
// caller's products.
func (h *Seller) resolveVariant(r *http.Request) (*models.ProductVariant, *models.Product, error) {
	variantID, err := uuidParam(r, "variantID")
	if err != nil {
		return nil, nil, err
	}
	v, err := h.variants.FindByID(variantID)
	if err != nil {
		return nil, nil, err
	}
	if v == nil {
		return nil, nil, apperr.NotFoundf("variant", "id", variantID)
	}
	p, _, err := h.ownProduct(r, v.ProductID)
	if err != nil {
		return nil, nil, err
	}
	return v, p, nil
}

// UpdateVariant modifies a variant's attributes.
func (h *Seller) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	v, p, err := h.resolveVariant(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in variantInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	if in.SKU != "" && in.SKU != v.SKU {
		taken, err := h.variants.SKUTaken(in.SKU)
		if err != nil {
			writeError(w, err)
			return
		}
		if taken {
			writeError(w, apperr.Duplicate("sku already exists: "+in.SKU))
			return
		}
		v.SKU = in.SKU
	}
	if !in.Price.IsZero() {
		if in.Price.IsNegative() {
			writeError(w, apperr.Invalid("price must be positive"))
			return
		}
		v.Price = in.Price
	}
	v.Size = in.Size
	v.Color = in.Color
	v.ImageURL = in.ImageURL
	if in.IsActive != nil {
		v.IsActive = *in.IsActive
	}

	if err := h.variants.Update(v); err != nil {
		writeError(w, err)
		return
	}

	h.search.InvalidateProduct(r.Context(), p)
	writeJSON(w, http.StatusOK, v)
}

type stockInput struct {
	Stock int `json:"stock"`
}

// UpdateStock sets a variant's stock level under the per-variant lock, so
// a concurrent order deduction and a seller restock never interleave.
func (h *Seller) UpdateStock(w http.ResponseWriter, r *http.Request) {
	v, p, err := h.resolveVariant(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in stockInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if in.Stock < 0 {
		writeError(w, apperr.Invalid("stock cannot be negative"))
		return
	}

	lockKey := cache.KeyStockLock(v.ID)
	if h.cache.Available() {
		if !h.cache.TryLock(r.Context(), lockKey, stockLockTTL) {
			writeError(w, apperr.Duplicate("another stock update is in progress"))
			return
		}
		defer h.cache.Unlock(r.Context(), lockKey)
	}

	if err := h.variants.UpdateStock(v.ID, in.Stock); err != nil {
		writeError(w, err)
		return
	}
	v.Stock = in.Stock

	h.search.InvalidateProduct(r.Context(), p)
	writeJSON(w, http.StatusOK, v)
}

// DeleteVariant removes a variant.
func (h *Seller) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	v, p, err := h.resolveVariant(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.variants.Delete(v.ID); err != nil {
		writeError(w, err)
		return
	}
	h.search.InvalidateProduct(r.Context(), p)
	writeJSON(w, http.StatusNoContent, nil)
}

// UploadImage stores a product image in object storage and records it.
func (h *Seller) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, _, err := h.ownProduct(r, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.storage == nil {
		writeError(w, apperr.Invalid("object storage is not configured"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, apperr.Invalid("invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, apperr.Invalid("image file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		writeError(w, apperr.Invalid("unsupported image type: "+contentType))
		return
	}

	url, err := h.storage.UploadProductImage(r.Context(), p.ID, header.Filename, contentType, file, header.Size)
	if err != nil {
		writeError(w, err)
		return
	}

	existing, err := h.images.ListByProducts([]uuid.UUID{p.ID})
	if err != nil {
		writeError(w, err)
		return
	}
	img, err := h.images.Create(&models.ProductImage{
		ProductID:    p.ID,
		ImageURL:     url,
		DisplayOrder: len(existing[p.ID]),
		IsPrimary:    len(existing[p.ID]) == 0,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.search.InvalidateProduct(r.Context(), p)
	writeJSON(w, http.StatusCreated, img)
}

// DeleteImage removes a product image record and its stored object.
func (h *Seller) DeleteImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := uuidParam(r, "imageID")
	if err != nil {
		writeError(w, err)
		return
	}
	img, err := h.images.FindByID(imageID)
	if err != nil {
		writeError(w, err)
		return
	}
	if img == nil {
		writeError(w, apperr.NotFoundf("image", "id", imageID))
		return
	}
	p, _, err := h.ownProduct(r, img.ProductID)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.images.Delete(img.ID); err != nil {
		writeError(w, err)
		return
	}
	if h.storage != nil {
		if err := h.storage.Delete(r.Context(), img.ImageURL); err != nil {
			// The row is gone; an orphaned object is a cleanup problem, not
			// a request failure.
			slog.Warn("delete stored image", "url", img.ImageURL, "error", err)
		}
	}

	h.search.InvalidateProduct(r.Context(), p)
	writeJSON(w, http.StatusNoContent, nil)
}

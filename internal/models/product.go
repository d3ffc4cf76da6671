// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus enumerates the lifecycle states of a product listing.
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusInactive   ProductStatus = "inactive"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
	ProductStatusBanned     ProductStatus = "banned"
)

// Product belongs to exactly one shop and exactly one category.
//
// TotalSold and Rating are denormalized counters written by collaborators
// (order completion, review approval) and consumed as-is for sorting and
// filtering. Price range, stock, review count and average rating are never
// stored on the row; they are derived from variants and reviews per
// response (see the virtual fields below).
type Product struct {
	ID          uuid.UUID     `json:"id"`
	ShopID      uuid.UUID     `json:"shop_id"`
	CategoryID  uuid.UUID     `json:"category_id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Status      ProductStatus `json:"status"`
	TotalSold   int           `json:"total_sold"`
	Rating      float64       `json:"rating"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Virtual fields populated by the catalog search engine.
	MinPrice      *decimal.Decimal `json:"min_price"`
	MaxPrice      *decimal.Decimal `json:"max_price"`
	TotalStock    int              `json:"total_stock"`
	AverageRating float64          `json:"average_rating"`
	ReviewCount   int64            `json:"review_count"`
	ThumbnailURL  string           `json:"thumbnail_url,omitempty"`
	Variants      []ProductVariant `json:"variants,omitempty"`
	Images        []ProductImage   `json:"images,omitempty"`
}

// ProductDetail is a Product plus the extras attached to detail views.
type ProductDetail struct {
	Product
	RelatedProducts []Product `json:"related_products"`
	RecentReviews   []Review  `json:"recent_reviews"`
}

// ProductVariant is a purchasable variation of a product. A variant is in
// stock iff it is active and Stock > 0.
type ProductVariant struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	ImageURL  string          `json:"image_url"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductImage is one gallery image of a product. The thumbnail of a
// product is its primary image, or the first image by display order when
// none is flagged primary.
type ProductImage struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	ImageURL     string    `json:"image_url"`
	DisplayOrder int       `json:"display_order"`
	IsPrimary    bool      `json:"is_primary"`
	CreatedAt    time.Time `json:"created_at"`
}

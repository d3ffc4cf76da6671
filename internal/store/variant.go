// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vendora/internal/models"
)

// PriceStats aggregates the active variants of one product.
type PriceStats struct {
	MinPrice   decimal.Decimal
	MaxPrice   decimal.Decimal
	TotalStock int64
}

// VariantStore handles product variant database operations.
type VariantStore struct {
	db *sql.DB
}

// NewVariantStore creates a new VariantStore with the given database connection.
func NewVariantStore(db *sql.DB) *VariantStore {
	return &VariantStore{db: db}
}

const variantColumns = `id, product_id, sku, size, color, price, stock, image_url, is_active, created_at, updated_at`

func scanVariant(scanner interface{ Scan(...any) error }) (*models.ProductVariant, error) {
	var v models.ProductVariant
	err := scanner.Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Size, &v.Color,
		&v.Price, &v.Stock, &v.ImageURL, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListActiveByProducts returns the active variants for a batch of
// products, keyed by product ID. Intended for page-level enrichment so a
// listing costs one query instead of one per row.
func (s *VariantStore) ListActiveByProducts(ids []uuid.UUID) (map[uuid.UUID][]models.ProductVariant, error) {
	out := make(map[uuid.UUID][]models.ProductVariant)
	if len(ids) == 0 {
		return out, nil
	}
	clause, args := inClause(1, ids)
	rows, err := s.db.Query(`
		SELECT `+variantColumns+` FROM product_variants
		WHERE product_id IN `+clause+` AND is_active
		ORDER BY price ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		out[v.ProductID] = append(out[v.ProductID], *v)
	}
	return out, rows.Err()
}

// ListByProduct returns every variant of a product, active or not.
// Sellers manage inactive variants through this path.
func (s *VariantStore) ListByProduct(productID uuid.UUID) ([]models.ProductVariant, error) {
	rows, err := s.db.Query(`
		SELECT `+variantColumns+` FROM product_variants
		WHERE product_id = $1
		ORDER BY created_at ASC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product variants: %w", err)
	}
	defer rows.Close()

	var items []models.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		items = append(items, *v)
	}
	return items, rows.Err()
}

// PriceStatsByProducts computes min/max active-variant price and total
// active stock per product. Products with no active variants are absent
// from the result map.
func (s *VariantStore) PriceStatsByProducts(ids []uuid.UUID) (map[uuid.UUID]PriceStats, error) {
	out := make(map[uuid.UUID]PriceStats)
	if len(ids) == 0 {
		return out, nil
	}
	clause, args := inClause(1, ids)
	rows, err := s.db.Query(`
		SELECT product_id, MIN(price), MAX(price), COALESCE(SUM(stock), 0)
		FROM product_variants
		WHERE product_id IN `+clause+` AND is_active
		GROUP BY product_id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("variant price stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var st PriceStats
		if err := rows.Scan(&id, &st.MinPrice, &st.MaxPrice, &st.TotalStock); err != nil {
			return nil, fmt.Errorf("scan price stats: %w", err)
		}
		out[id] = st
	}
	return out, rows.Err()
}

// FindByID retrieves a variant by ID. Returns nil if not found.
func (s *VariantStore) FindByID(id uuid.UUID) (*models.ProductVariant, error) {
	row := s.db.QueryRow(`SELECT `+variantColumns+` FROM product_variants WHERE id = $1`, id)
	v, err := scanVariant(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find variant by id: %w", err)
	}
	return v, nil
}

// SKUTaken reports whether a SKU is already in use.
func (s *VariantStore) SKUTaken(sku string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM product_variants WHERE sku = $1)`, sku).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("sku taken: %w", err)
	}
	return exists, nil
}

// Create inserts a new variant and returns it.
func (s *VariantStore) Create(v *models.ProductVariant) (*models.ProductVariant, error) {
	row := s.db.QueryRow(`
		INSERT INTO product_variants (product_id, sku, size, color, price, stock, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+variantColumns,
		v.ProductID, v.SKU, v.Size, v.Color, v.Price, v.Stock, v.ImageURL, v.IsActive,
	)
	result, err := scanVariant(row)
	if err != nil {
		return nil, fmt.Errorf("create variant: %w", err)
	}
	return result, nil
}

// Update modifies an existing variant.
func (s *VariantStore) Update(v *models.ProductVariant) error {
	_, err := s.db.Exec(`
		UPDATE product_variants SET
			sku = $1, size = $2, color = $3, price = $4, stock = $5, image_url = $6, is_active = $7,
			updated_at = NOW()
		WHERE id = $8
	`, v.SKU, v.Size, v.Color, v.Price, v.Stock, v.ImageURL, v.IsActive, v.ID)
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	return nil
}

// UpdateStock sets the stock level for a variant. The non-negative CHECK
// constraint on the column is the final guard against oversell.
func (s *VariantStore) UpdateStock(id uuid.UUID, stock int) error {
	_, err := s.db.Exec(`UPDATE product_variants SET stock = $1, updated_at = NOW() WHERE id = $2`, stock, id)
	if err != nil {
		return fmt.Errorf("update variant stock: %w", err)
	}
	return nil
}

// Delete removes a variant.
func (s *VariantStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM product_variants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	return nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vendora/internal/models"
)

// Sort keys accepted by ProductQuery. Price is special-cased: it is not a
// product column, so ordering uses the correlated minimum active-variant
// price per product.
const (
	SortCreatedAt = "created_at"
	SortPrice     = "price"
	SortSold      = "sold"
	SortRating    = "rating"
)

// sortColumns maps non-price sort keys onto product columns.
var sortColumns = map[string]string{
	SortCreatedAt: "p.created_at",
	SortSold:      "p.total_sold",
	SortRating:    "p.rating",
}

// ProductQuery is the fully expanded predicate set for a product search.
// CategoryIDs must already include every descendant of the requested
// category; the store performs no tree traversal.
type ProductQuery struct {
	Keyword     string
	CategoryIDs []uuid.UUID
	ShopID      *uuid.UUID
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinRating   *float64
	Status      models.ProductStatus
	SortBy      string
	Desc        bool
	Page        int
	Size        int
}

// ProductStore handles all product-related database operations.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, shop_id, category_id, name, slug, description, status, total_sold, rating, created_at, updated_at`

const productColumnsP = `p.id, p.shop_id, p.category_id, p.name, p.slug, p.description, p.status, p.total_sold, p.rating, p.created_at, p.updated_at`

func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := scanner.Scan(
		&p.ID, &p.ShopID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
		&p.Status, &p.TotalSold, &p.Rating, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// buildWhere assembles the WHERE clause and argument list for a query.
func buildWhere(q ProductQuery) (string, []any) {
	where := []string{"TRUE"}
	var args []any

	if q.Status != "" {
		args = append(args, q.Status)
		where = append(where, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if q.Keyword != "" {
		args = append(args, "%"+q.Keyword+"%")
		where = append(where, fmt.Sprintf("p.name ILIKE $%d", len(args)))
	}
	if len(q.CategoryIDs) > 0 {
		clause, idArgs := inClause(len(args)+1, q.CategoryIDs)
		args = append(args, idArgs...)
		where = append(where, "p.category_id IN "+clause)
	}
	if q.ShopID != nil {
		args = append(args, *q.ShopID)
		where = append(where, fmt.Sprintf("p.shop_id = $%d", len(args)))
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		// A product matches when a single active variant satisfies both
		// bounds, mirroring the per-variant range semantics of the search
		// contract.
		conds := []string{"v.product_id = p.id", "v.is_active"}
		if q.MinPrice != nil {
			args = append(args, *q.MinPrice)
			conds = append(conds, fmt.Sprintf("v.price >= $%d", len(args)))
		}
		if q.MaxPrice != nil {
			args = append(args, *q.MaxPrice)
			conds = append(conds, fmt.Sprintf("v.price <= $%d", len(args)))
		}
		where = append(where, "EXISTS (SELECT 1 FROM product_variants v WHERE "+strings.Join(conds, " AND ")+")")
	}
	if q.MinRating != nil {
		args = append(args, *q.MinRating)
		where = append(where, fmt.Sprintf("p.rating >= $%d", len(args)))
	}

	return strings.Join(where, " AND "), args
}

// orderBy renders the ORDER BY clause for a query. Price ordering uses the
// minimum active-variant price; products without any active variant have
// no price and sort last in either direction rather than failing.
func orderBy(q ProductQuery) string {
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	if q.SortBy == SortPrice {
		return fmt.Sprintf(
			"ORDER BY (SELECT MIN(v.price) FROM product_variants v WHERE v.product_id = p.id AND v.is_active) %s NULLS LAST, p.id",
			dir,
		)
	}
	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = "p.created_at"
	}
	return fmt.Sprintf("ORDER BY %s %s, p.id", col, dir)
}

// Search returns one page of products matching q plus the total match
// count. Pagination is standard offset/limit over a deterministic order.
func (s *ProductStore) Search(q ProductQuery) ([]models.Product, int64, error) {
	if q.Size <= 0 {
		q.Size = 20
	}
	if q.Page < 0 {
		q.Page = 0
	}

	where, args := buildWhere(q)

	var total int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM products p WHERE `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM products p WHERE %s %s LIMIT $%d OFFSET $%d`,
		productColumnsP, where, orderBy(q), len(args)+1, len(args)+2,
	)
	args = append(args, q.Size, q.Page*q.Size)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, total, rows.Err()
}

// FindByID retrieves a product by ID regardless of status. Returns nil if
// not found; visibility policy belongs to the catalog engine.
func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a product by slug regardless of status. Returns nil
// if not found.
func (s *ProductStore) FindBySlug(slug string) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}
	return p, nil
}

// SlugTaken reports whether a product slug is already in use.
func (s *ProductStore) SlugTaken(slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product slug taken: %w", err)
	}
	return exists, nil
}

// Create inserts a new product and returns it.
func (s *ProductStore) Create(p *models.Product) (*models.Product, error) {
	row := s.db.QueryRow(`
		INSERT INTO products (shop_id, category_id, name, slug, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+productColumns,
		p.ShopID, p.CategoryID, p.Name, p.Slug, p.Description, p.Status,
	)
	result, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return result, nil
}

// Update modifies an existing product. The denormalized counters are
// deliberately not writable here; collaborators own them.
func (s *ProductStore) Update(p *models.Product) error {
	_, err := s.db.Exec(`
		UPDATE products SET
			category_id = $1, name = $2, slug = $3, description = $4, status = $5,
			updated_at = NOW()
		WHERE id = $6
	`, p.CategoryID, p.Name, p.Slug, p.Description, p.Status, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes a product; variants, images and reviews cascade.
func (s *ProductStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// Related returns up to limit active products sharing a category,
// excluding the product itself.
func (s *ProductStore) Related(categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT `+productColumns+` FROM products
		WHERE category_id = $1 AND id <> $2 AND status = $3
		ORDER BY total_sold DESC, created_at DESC
		LIMIT $4
	`, categoryID, excludeID, models.ProductStatusActive, limit)
	if err != nil {
		return nil, fmt.Errorf("related products: %w", err)
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan related product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// CountByShop returns how many products a shop has listed.
func (s *ProductStore) CountByShop(shopID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM products WHERE shop_id = $1`, shopID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count shop products: %w", err)
	}
	return n, nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vendora/internal/models"
)

// CategoryStore manages categories in the database. Traversal logic lives
// in the catalog hierarchy manager; this store only reads and writes rows.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, parent_id, level, image_url, display_order, is_active, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID,
		&c.Level, &c.ImageURL, &c.DisplayOrder, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListAll returns every category in one scan, ordered by display order then
// name. The hierarchy manager builds its in-memory forest from this list so
// traversal never issues per-node queries.
func (s *CategoryStore) ListAll() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT ` + categoryColumns + ` FROM categories ORDER BY display_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// ExistsByName reports whether a category with the given name exists.
func (s *CategoryStore) ExistsByName(name string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category name exists: %w", err)
	}
	return exists, nil
}

// SlugTaken reports whether a slug is already in use.
func (s *CategoryStore) SlugTaken(slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category slug taken: %w", err)
	}
	return exists, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO categories (name, slug, description, parent_id, level, image_url, display_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.ParentID, c.Level, c.ImageURL, c.DisplayOrder, c.IsActive,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// execer abstracts *sql.DB and *sql.Tx for statements shared between the
// plain and transactional write paths.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Update modifies an existing category.
func (s *CategoryStore) Update(c *models.Category) error {
	return updateCategory(s.db, c)
}

func updateCategory(e execer, c *models.Category) error {
	_, err := e.Exec(`
		UPDATE categories SET
			name = $1, slug = $2, description = $3, parent_id = $4, level = $5,
			image_url = $6, display_order = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9
	`, c.Name, c.Slug, c.Description, c.ParentID, c.Level, c.ImageURL, c.DisplayOrder, c.IsActive, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID. Guard checks (no children, no products)
// belong to the hierarchy manager.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Move rewrites a reparented category and shifts the levels of its
// descendants by delta, in one transaction so a failure never leaves the
// subtree's levels inconsistent with the new parent.
func (s *CategoryStore) Move(c *models.Category, descendants []uuid.UUID, delta int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("move category: %w", err)
	}
	defer tx.Rollback()

	if err := updateCategory(tx, c); err != nil {
		return err
	}
	if delta != 0 && len(descendants) > 0 {
		clause, args := inClause(2, descendants)
		args = append([]any{delta}, args...)
		_, err := tx.Exec(`UPDATE categories SET level = level + $1, updated_at = NOW() WHERE id IN `+clause, args...)
		if err != nil {
			return fmt.Errorf("shift category levels: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("move category: %w", err)
	}
	return nil
}

// HasChildren reports whether any category names id as its parent.
func (s *CategoryStore) HasChildren(id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM categories WHERE parent_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category has children: %w", err)
	}
	return exists, nil
}

// CountProducts returns how many products are assigned directly to the
// category (descendants not included).
func (s *CategoryStore) CountProducts(id uuid.UUID) (int64, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM products WHERE category_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count category products: %w", err)
	}
	return n, nil
}

// ProductCounts returns the direct product count for every category that
// has at least one product, in a single grouped query. Products of every
// status are counted, matching CountProducts and the delete guard.
func (s *CategoryStore) ProductCounts() (map[uuid.UUID]int64, error) {
	rows, err := s.db.Query(`SELECT category_id, COUNT(*) FROM products GROUP BY category_id`)
	if err != nil {
		return nil, fmt.Errorf("category product counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var id uuid.UUID
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan product count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

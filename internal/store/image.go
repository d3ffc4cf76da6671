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

// ImageStore handles product image database operations.
type ImageStore struct {
	db *sql.DB
}

// NewImageStore creates a new ImageStore with the given database connection.
func NewImageStore(db *sql.DB) *ImageStore {
	return &ImageStore{db: db}
}

const imageColumns = `id, product_id, image_url, display_order, is_primary, created_at`

func scanImage(scanner interface{ Scan(...any) error }) (*models.ProductImage, error) {
	var img models.ProductImage
	err := scanner.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.DisplayOrder, &img.IsPrimary, &img.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// ListByProducts returns images for a batch of products keyed by product
// ID, ordered by display order within each gallery.
func (s *ImageStore) ListByProducts(ids []uuid.UUID) (map[uuid.UUID][]models.ProductImage, error) {
	out := make(map[uuid.UUID][]models.ProductImage)
	if len(ids) == 0 {
		return out, nil
	}
	clause, args := inClause(1, ids)
	rows, err := s.db.Query(`
		SELECT `+imageColumns+` FROM product_images
		WHERE product_id IN `+clause+`
		ORDER BY display_order ASC, created_at ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		out[img.ProductID] = append(out[img.ProductID], *img)
	}
	return out, rows.Err()
}

// FindByID retrieves an image by ID. Returns nil if not found.
func (s *ImageStore) FindByID(id uuid.UUID) (*models.ProductImage, error) {
	row := s.db.QueryRow(`SELECT `+imageColumns+` FROM product_images WHERE id = $1`, id)
	img, err := scanImage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find image by id: %w", err)
	}
	return img, nil
}

// Create inserts a new product image and returns it.
func (s *ImageStore) Create(img *models.ProductImage) (*models.ProductImage, error) {
	row := s.db.QueryRow(`
		INSERT INTO product_images (product_id, image_url, display_order, is_primary)
		VALUES ($1, $2, $3, $4)
		RETURNING `+imageColumns,
		img.ProductID, img.ImageURL, img.DisplayOrder, img.IsPrimary,
	)
	result, err := scanImage(row)
	if err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	return result, nil
}

// Delete removes an image record. The object in storage is the caller's
// problem.
func (s *ImageStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM product_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"vendora/internal/models"
)

// ShopQuery carries the predicates for a shop search.
type ShopQuery struct {
	Keyword   string
	MinRating *float64
	Status    models.ShopStatus
	Page      int
	Size      int
}

// ShopStore handles shop database operations.
type ShopStore struct {
	db *sql.DB
}

// NewShopStore creates a new ShopStore with the given database connection.
func NewShopStore(db *sql.DB) *ShopStore {
	return &ShopStore{db: db}
}

const shopColumns = `id, owner_id, name, slug, description, logo_url, status, rating, created_at, updated_at`

func scanShop(scanner interface{ Scan(...any) error }) (*models.Shop, error) {
	var sh models.Shop
	err := scanner.Scan(
		&sh.ID, &sh.OwnerID, &sh.Name, &sh.Slug, &sh.Description,
		&sh.LogoURL, &sh.Status, &sh.Rating, &sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// Search returns one page of shops matching q plus the total match count.
func (s *ShopStore) Search(q ShopQuery) ([]models.Shop, int64, error) {
	if q.Size <= 0 {
		q.Size = 20
	}
	if q.Page < 0 {
		q.Page = 0
	}

	where := []string{"TRUE"}
	var args []any
	if q.Status != "" {
		args = append(args, q.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.Keyword != "" {
		args = append(args, "%"+q.Keyword+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if q.MinRating != nil {
		args = append(args, *q.MinRating)
		where = append(where, fmt.Sprintf("rating >= $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM shops WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count shops: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM shops WHERE %s ORDER BY rating DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		shopColumns, cond, len(args)+1, len(args)+2,
	)
	args = append(args, q.Size, q.Page*q.Size)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search shops: %w", err)
	}
	defer rows.Close()

	var items []models.Shop
	for rows.Next() {
		sh, err := scanShop(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan shop: %w", err)
		}
		items = append(items, *sh)
	}
	return items, total, rows.Err()
}

// FindByID retrieves a shop by ID. Returns nil if not found.
func (s *ShopStore) FindByID(id uuid.UUID) (*models.Shop, error) {
	row := s.db.QueryRow(`SELECT `+shopColumns+` FROM shops WHERE id = $1`, id)
	sh, err := scanShop(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find shop by id: %w", err)
	}
	return sh, nil
}

// FindBySlug retrieves a shop by slug. Returns nil if not found.
func (s *ShopStore) FindBySlug(slug string) (*models.Shop, error) {
	row := s.db.QueryRow(`SELECT `+shopColumns+` FROM shops WHERE slug = $1`, slug)
	sh, err := scanShop(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find shop by slug: %w", err)
	}
	return sh, nil
}

// FindByOwner retrieves the shop owned by a user. Returns nil if the user
// has no shop.
func (s *ShopStore) FindByOwner(ownerID uuid.UUID) (*models.Shop, error) {
	row := s.db.QueryRow(`SELECT `+shopColumns+` FROM shops WHERE owner_id = $1`, ownerID)
	sh, err := scanShop(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find shop by owner: %w", err)
	}
	return sh, nil
}

// SlugTaken reports whether a shop slug is already in use.
func (s *ShopStore) SlugTaken(slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM shops WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("shop slug taken: %w", err)
	}
	return exists, nil
}

// Create inserts a new shop and returns it.
func (s *ShopStore) Create(sh *models.Shop) (*models.Shop, error) {
	row := s.db.QueryRow(`
		INSERT INTO shops (owner_id, name, slug, description, logo_url, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+shopColumns,
		sh.OwnerID, sh.Name, sh.Slug, sh.Description, sh.LogoURL, sh.Status,
	)
	result, err := scanShop(row)
	if err != nil {
		return nil, fmt.Errorf("create shop: %w", err)
	}
	return result, nil
}

// Update modifies an existing shop.
func (s *ShopStore) Update(sh *models.Shop) error {
	_, err := s.db.Exec(`
		UPDATE shops SET
			name = $1, slug = $2, description = $3, logo_url = $4, status = $5,
			updated_at = NOW()
		WHERE id = $6
	`, sh.Name, sh.Slug, sh.Description, sh.LogoURL, sh.Status, sh.ID)
	if err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	return nil
}

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

// RatingStats aggregates the approved reviews of one product.
type RatingStats struct {
	Average float64
	Count   int64
}

// ReviewStore handles review database operations.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore creates a new ReviewStore with the given database connection.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

const reviewColumns = `r.id, r.product_id, r.user_id, r.rating, r.comment, r.status, r.created_at`

func scanReviewWithUser(scanner interface{ Scan(...any) error }) (*models.Review, error) {
	var r models.Review
	err := scanner.Scan(
		&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Comment, &r.Status, &r.CreatedAt,
		&r.UserName, &r.UserAvatar,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RatingStatsByProducts computes average rating and review count over
// approved reviews for a batch of products. Products with no approved
// reviews are absent from the result map.
func (s *ReviewStore) RatingStatsByProducts(ids []uuid.UUID) (map[uuid.UUID]RatingStats, error) {
	out := make(map[uuid.UUID]RatingStats)
	if len(ids) == 0 {
		return out, nil
	}
	clause, args := inClause(1, ids)
	args = append(args, models.ReviewStatusApproved)
	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT product_id, AVG(rating), COUNT(*)
		FROM reviews
		WHERE product_id IN %s AND status = $%d
		GROUP BY product_id
	`, clause, len(args)), args...)
	if err != nil {
		return nil, fmt.Errorf("rating stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var st RatingStats
		if err := rows.Scan(&id, &st.Average, &st.Count); err != nil {
			return nil, fmt.Errorf("scan rating stats: %w", err)
		}
		out[id] = st
	}
	return out, rows.Err()
}

// RecentApproved returns the latest approved reviews for a product with
// the reviewer's display fields joined in.
func (s *ReviewStore) RecentApproved(productID uuid.UUID, limit int) ([]models.Review, error) {
	rows, err := s.db.Query(`
		SELECT `+reviewColumns+`, u.full_name, u.avatar_url
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1 AND r.status = $2
		ORDER BY r.created_at DESC
		LIMIT $3
	`, productID, models.ReviewStatusApproved, limit)
	if err != nil {
		return nil, fmt.Errorf("recent reviews: %w", err)
	}
	defer rows.Close()

	var items []models.Review
	for rows.Next() {
		r, err := scanReviewWithUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// ListApproved returns one page of approved reviews for a product plus
// the total count.
func (s *ReviewStore) ListApproved(productID uuid.UUID, page, size int) ([]models.Review, int64, error) {
	if size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}

	var total int64
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM reviews WHERE product_id = $1 AND status = $2`,
		productID, models.ReviewStatusApproved,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT `+reviewColumns+`, u.full_name, u.avatar_url
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1 AND r.status = $2
		ORDER BY r.created_at DESC
		LIMIT $3 OFFSET $4
	`, productID, models.ReviewStatusApproved, size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var items []models.Review
	for rows.Next() {
		r, err := scanReviewWithUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan review: %w", err)
		}
		items = append(items, *r)
	}
	return items, total, rows.Err()
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the catalog category forest. Level is 0 for roots
// and parent.Level+1 otherwise; the parent relation never forms a cycle.
type Category struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description"`
	ParentID     *uuid.UUID `json:"parent_id"`
	Level        int        `json:"level"`
	ImageURL     string     `json:"image_url"`
	DisplayOrder int        `json:"display_order"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Virtual fields populated by the hierarchy manager.
	Children     []Category `json:"children,omitempty"`
	ParentName   string     `json:"parent_name,omitempty"`
	ProductCount int64      `json:"product_count"`
}

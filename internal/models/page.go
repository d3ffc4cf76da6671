// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Page is the pagination envelope returned by every listing operation.
// PageNumber is 0-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"page_number"`
	PageSize      int   `json:"page_size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage builds a Page from a slice of results and the total match count.
// A non-positive size is treated as the default size of 20.
func NewPage[T any](content []T, page, size int, total int64) Page[T] {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		PageNumber:    page,
		PageSize:      size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendora/internal/catalog"
)

// Categories groups the category HTTP handlers. Reads are public; the
// mutating handlers sit behind the admin role gate in the router.
type Categories struct {
	hierarchy *catalog.Hierarchy
}

// NewCategories creates a Categories handler group.
func NewCategories(h *catalog.Hierarchy) *Categories {
	return &Categories{hierarchy: h}
}

// Tree returns the nested category forest visible to shoppers.
func (h *Categories) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.hierarchy.ActiveTree(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// AdminTree returns the full nested forest including inactive nodes.
func (h *Categories) AdminTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.hierarchy.Tree(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// List returns every category as a flat list for admin tables.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.hierarchy.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// Get returns one category by ID.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := h.hierarchy.ByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Children returns a category's direct children in display order.
func (h *Categories) Children(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	kids, err := h.hierarchy.Children(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kids)
}

// GetBySlug returns one category by its slug.
func (h *Categories) GetBySlug(w http.ResponseWriter, r *http.Request) {
	c, err := h.hierarchy.BySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Create adds a new category.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var in catalog.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	created, err := h.hierarchy.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update modifies a category, including renames and reparenting.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var in catalog.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.hierarchy.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ToggleActive flips a category's storefront visibility.
func (h *Categories) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	toggled, err := h.hierarchy.ToggleActive(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggled)
}

// Delete removes an empty leaf category.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.hierarchy.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

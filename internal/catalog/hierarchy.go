// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog holds the two read-side engines of the marketplace: the
// category hierarchy manager and the product search engine. Both sit
// between the HTTP handlers and the stores, and both treat the cache tier
// as a best-effort accelerator.
package catalog

import (
	"context"

	"github.com/google/uuid"

	"vendora/internal/apperr"
	"vendora/internal/cache"
	"vendora/internal/models"
	"vendora/internal/slug"
)

// CategoryStore is the persistence surface the hierarchy manager needs.
type CategoryStore interface {
	ListAll() ([]models.Category, error)
	FindByID(id uuid.UUID) (*models.Category, error)
	FindBySlug(s string) (*models.Category, error)
	ExistsByName(name string) (bool, error)
	SlugTaken(s string) (bool, error)
	Create(c *models.Category) (*models.Category, error)
	Update(c *models.Category) error
	Delete(id uuid.UUID) error
	Move(c *models.Category, descendants []uuid.UUID, delta int) error
	HasChildren(id uuid.UUID) (bool, error)
	CountProducts(id uuid.UUID) (int64, error)
	ProductCounts() (map[uuid.UUID]int64, error)
}

// Hierarchy manages the category forest: tree assembly, subtree
// collection, slug allocation and the structural guards on mutation.
type Hierarchy struct {
	store CategoryStore
	cache *cache.Cache
}

// NewHierarchy returns a Hierarchy over the given store and cache.
func NewHierarchy(store CategoryStore, c *cache.Cache) *Hierarchy {
	return &Hierarchy{store: store, cache: c}
}

// CategoryInput carries the writable fields of a category. A nil
// DisplayOrder means "append after the last sibling" on create and "keep
// the current order" on update.
type CategoryInput struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	ParentID     *uuid.UUID `json:"parent_id"`
	ImageURL     string     `json:"image_url"`
	DisplayOrder *int       `json:"display_order"`
}

// loadForest does one full scan and indexes it.
func (h *Hierarchy) loadForest() (*forest, error) {
	cats, err := h.store.ListAll()
	if err != nil {
		return nil, err
	}
	return newForest(cats), nil
}

// All returns every category as a flat list with parent names and product
// counts attached, cached under a single key.
func (h *Hierarchy) All(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if h.cache.GetJSON(ctx, cache.KeyCategoryAll, &cached) {
		return cached, nil
	}

	cats, err := h.store.ListAll()
	if err != nil {
		return nil, err
	}
	counts, err := h.store.ProductCounts()
	if err != nil {
		return nil, err
	}
	f := newForest(cats)
	out := make([]models.Category, len(cats))
	for i := range cats {
		out[i] = cats[i]
		out[i].ParentName = f.parentName(&cats[i])
		out[i].ProductCount = counts[cats[i].ID]
	}

	h.cache.SetJSON(ctx, cache.KeyCategoryAll, out)
	return out, nil
}

// Tree returns the full nested forest including inactive nodes, for admin
// views.
func (h *Hierarchy) Tree(ctx context.Context) ([]models.Category, error) {
	return h.tree(ctx, cache.KeyCategoryTree, false)
}

// ActiveTree returns the nested forest with inactive subtrees pruned, for
// storefront navigation.
func (h *Hierarchy) ActiveTree(ctx context.Context) ([]models.Category, error) {
	return h.tree(ctx, cache.KeyCategoryActiveTree, true)
}

func (h *Hierarchy) tree(ctx context.Context, key string, activeOnly bool) ([]models.Category, error) {
	var cached []models.Category
	if h.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	f, err := h.loadForest()
	if err != nil {
		return nil, err
	}
	counts, err := h.store.ProductCounts()
	if err != nil {
		return nil, err
	}
	out := f.tree(activeOnly, counts)

	h.cache.SetJSON(ctx, key, out)
	return out, nil
}

// ByID returns one category with parent name and product count attached.
func (h *Hierarchy) ByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var cached models.Category
	if h.cache.GetJSON(ctx, cache.KeyCategoryID(id), &cached) {
		return &cached, nil
	}

	c, err := h.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFoundf("category", "id", id)
	}
	if err := h.decorate(c); err != nil {
		return nil, err
	}

	h.cache.SetJSON(ctx, cache.KeyCategoryID(id), c)
	return c, nil
}

// BySlug returns one category by its slug.
func (h *Hierarchy) BySlug(ctx context.Context, s string) (*models.Category, error) {
	var cached models.Category
	if h.cache.GetJSON(ctx, cache.KeyCategorySlug(s), &cached) {
		return &cached, nil
	}

	c, err := h.store.FindBySlug(s)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFoundf("category", "slug", s)
	}
	if err := h.decorate(c); err != nil {
		return nil, err
	}

	h.cache.SetJSON(ctx, cache.KeyCategorySlug(s), c)
	return c, nil
}

func (h *Hierarchy) decorate(c *models.Category) error {
	if c.ParentID != nil {
		parent, err := h.store.FindByID(*c.ParentID)
		if err != nil {
			return err
		}
		if parent != nil {
			c.ParentName = parent.Name
		}
	}
	n, err := h.store.CountProducts(c.ID)
	if err != nil {
		return err
	}
	c.ProductCount = n
	return nil
}

// Children returns the direct children of a category in display order.
func (h *Hierarchy) Children(ctx context.Context, id uuid.UUID) ([]models.Category, error) {
	var cached []models.Category
	if h.cache.GetJSON(ctx, cache.KeyCategoryChildren(id), &cached) {
		return cached, nil
	}

	f, err := h.loadForest()
	if err != nil {
		return nil, err
	}
	if _, ok := f.byID[id]; !ok {
		return nil, apperr.NotFoundf("category", "id", id)
	}
	kids := f.children[id]
	out := make([]models.Category, len(kids))
	for i, k := range kids {
		out[i] = *k
	}

	h.cache.SetJSON(ctx, cache.KeyCategoryChildren(id), out)
	return out, nil
}

// DescendantIDs returns id plus every category below it. This is the
// subtree expansion the search engine feeds into its category filter.
func (h *Hierarchy) DescendantIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	f, err := h.loadForest()
	if err != nil {
		return nil, err
	}
	ids := f.descendantIDs(id)
	if ids == nil {
		return nil, apperr.NotFoundf("category", "id", id)
	}
	return ids, nil
}

// Create validates and inserts a new category. The name must be unique
// across the whole forest; the slug is derived from the name with a
// numeric suffix on collision; the level is derived from the parent.
func (h *Hierarchy) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, apperr.Invalid("category name is required")
	}
	taken, err := h.store.ExistsByName(in.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Duplicate("category name already exists: " + in.Name)
	}

	level := 0
	if in.ParentID != nil {
		parent, err := h.store.FindByID(*in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperr.NotFoundf("parent category", "id", *in.ParentID)
		}
		level = parent.Level + 1
	}

	s, err := slug.MakeUnique(in.Name, h.store.SlugTaken)
	if err != nil {
		return nil, err
	}

	order := 0
	if in.DisplayOrder != nil {
		order = *in.DisplayOrder
	} else {
		f, err := h.loadForest()
		if err != nil {
			return nil, err
		}
		order = f.nextOrder(in.ParentID)
	}

	created, err := h.store.Create(&models.Category{
		Name:         in.Name,
		Slug:         s,
		Description:  in.Description,
		ParentID:     in.ParentID,
		Level:        level,
		ImageURL:     in.ImageURL,
		DisplayOrder: order,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	h.invalidate(ctx)
	return created, nil
}

// Update modifies a category. Renames re-check name uniqueness and
// re-derive the slug. Reparenting is cycle-checked against the current
// forest, and the level shift is applied to the whole subtree.
func (h *Hierarchy) Update(ctx context.Context, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	c, err := h.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFoundf("category", "id", id)
	}

	if in.Name != "" && in.Name != c.Name {
		taken, err := h.store.ExistsByName(in.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Duplicate("category name already exists: " + in.Name)
		}
		c.Name = in.Name
		c.Slug, err = slug.MakeUnique(in.Name, h.store.SlugTaken)
		if err != nil {
			return nil, err
		}
	}
	c.Description = in.Description
	c.ImageURL = in.ImageURL
	if in.DisplayOrder != nil {
		c.DisplayOrder = *in.DisplayOrder
	}

	oldLevel := c.Level
	var subtree []uuid.UUID
	if !sameParent(c.ParentID, in.ParentID) {
		newLevel, ids, err := h.checkReparent(c, in.ParentID)
		if err != nil {
			return nil, err
		}
		c.ParentID = in.ParentID
		c.Level = newLevel
		subtree = ids
	}

	if subtree != nil {
		// The row rewrite and the descendant level shift commit together.
		if err := h.store.Move(c, subtree[1:], c.Level-oldLevel); err != nil {
			return nil, err
		}
	} else if err := h.store.Update(c); err != nil {
		return nil, err
	}

	h.invalidate(ctx)
	return c, nil
}

// checkReparent validates a parent change and returns the node's new
// level plus its current subtree (self first).
func (h *Hierarchy) checkReparent(c *models.Category, newParent *uuid.UUID) (int, []uuid.UUID, error) {
	f, err := h.loadForest()
	if err != nil {
		return 0, nil, err
	}
	subtree := f.descendantIDs(c.ID)

	if newParent == nil {
		return 0, subtree, nil
	}
	if *newParent == c.ID {
		return 0, nil, apperr.Invalid("category cannot be its own parent")
	}
	parent, ok := f.byID[*newParent]
	if !ok {
		return 0, nil, apperr.NotFoundf("parent category", "id", *newParent)
	}
	if f.wouldCycle(c.ID, *newParent) {
		return 0, nil, apperr.Invalid("cannot move a category under its own descendant")
	}
	return parent.Level + 1, subtree, nil
}

// ToggleActive flips a category's visibility. Deactivating a node hides
// its whole subtree from the storefront tree without touching child rows.
func (h *Hierarchy) ToggleActive(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := h.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFoundf("category", "id", id)
	}

	c.IsActive = !c.IsActive
	if err := h.store.Update(c); err != nil {
		return nil, err
	}

	h.invalidate(ctx)
	return c, nil
}

// Delete removes a leaf category with no products. Anything else is
// rejected so the forest never loses structure implicitly.
func (h *Hierarchy) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := h.store.FindByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return apperr.NotFoundf("category", "id", id)
	}

	hasKids, err := h.store.HasChildren(id)
	if err != nil {
		return err
	}
	if hasKids {
		return apperr.Invalid("category has child categories")
	}
	n, err := h.store.CountProducts(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Invalid("category has products")
	}

	if err := h.store.Delete(id); err != nil {
		return err
	}

	h.invalidate(ctx)
	return nil
}

// invalidate purges every cached view a category mutation can affect: all
// category entries plus every paginated product listing, since listings
// bake in the subtree expansion.
func (h *Hierarchy) invalidate(ctx context.Context) {
	h.cache.DeleteByPattern(ctx, cache.PatternCategories)
	for _, p := range cache.ListingPatterns {
		h.cache.DeleteByPattern(ctx, p)
	}
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

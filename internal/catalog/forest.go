// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"github.com/google/uuid"

	"vendora/internal/models"
)

// forest is an in-memory index over one full category scan. All traversal
// runs against it, so building a tree or collecting a subtree never issues
// per-node queries. A forest is immutable once built; mutations rebuild
// from a fresh scan.
type forest struct {
	byID     map[uuid.UUID]*models.Category
	children map[uuid.UUID][]*models.Category
	rootList []*models.Category
}

// newForest indexes the given categories. Input order (display order, then
// name) is preserved within each sibling group.
func newForest(cats []models.Category) *forest {
	f := &forest{
		byID:     make(map[uuid.UUID]*models.Category, len(cats)),
		children: make(map[uuid.UUID][]*models.Category),
	}
	for i := range cats {
		f.byID[cats[i].ID] = &cats[i]
	}
	for i := range cats {
		c := &cats[i]
		if c.ParentID == nil {
			f.rootList = append(f.rootList, c)
			continue
		}
		if _, ok := f.byID[*c.ParentID]; !ok {
			// Orphan row; surface it as a root rather than dropping it.
			f.rootList = append(f.rootList, c)
			continue
		}
		f.children[*c.ParentID] = append(f.children[*c.ParentID], c)
	}
	return f
}

// descendantIDs returns id plus every category below it, breadth-first.
// Returns nil when id is not in the forest.
func (f *forest) descendantIDs(id uuid.UUID) []uuid.UUID {
	if _, ok := f.byID[id]; !ok {
		return nil
	}
	ids := []uuid.UUID{id}
	queue := []uuid.UUID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range f.children[cur] {
			ids = append(ids, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return ids
}

// nextOrder returns a display order placing a new node after the current
// last sibling under parent. A nil parent means the root level.
func (f *forest) nextOrder(parent *uuid.UUID) int {
	siblings := f.rootList
	if parent != nil {
		siblings = f.children[*parent]
	}
	max := -1
	for _, s := range siblings {
		if s.DisplayOrder > max {
			max = s.DisplayOrder
		}
	}
	return max + 1
}

// wouldCycle reports whether setting newParent as the parent of id would
// close a cycle, by walking the ancestor chain upward from newParent. The
// visited set caps the walk if the stored data is already malformed.
func (f *forest) wouldCycle(id, newParent uuid.UUID) bool {
	visited := make(map[uuid.UUID]bool)
	cur := newParent
	for {
		if cur == id {
			return true
		}
		if visited[cur] {
			return true
		}
		visited[cur] = true
		node, ok := f.byID[cur]
		if !ok || node.ParentID == nil {
			return false
		}
		cur = *node.ParentID
	}
}

// parentName returns the display name of a category's parent, or "".
func (f *forest) parentName(c *models.Category) string {
	if c.ParentID == nil {
		return ""
	}
	if p, ok := f.byID[*c.ParentID]; ok {
		return p.Name
	}
	return ""
}

// tree assembles the nested representation. With activeOnly set, inactive
// nodes are skipped together with their entire subtrees. counts supplies
// the per-category product count attached to each node; nil means zeroes.
func (f *forest) tree(activeOnly bool, counts map[uuid.UUID]int64) []models.Category {
	var build func(nodes []*models.Category) []models.Category
	build = func(nodes []*models.Category) []models.Category {
		out := make([]models.Category, 0, len(nodes))
		for _, n := range nodes {
			if activeOnly && !n.IsActive {
				continue
			}
			node := *n
			node.ParentName = f.parentName(n)
			node.ProductCount = counts[n.ID]
			node.Children = build(f.children[n.ID])
			out = append(out, node)
		}
		return out
	}
	return build(f.rootList)
}

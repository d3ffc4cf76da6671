package catalog

import (
	"testing"

	"github.com/google/uuid"

	"vendora/internal/apperr"
	"vendora/internal/cache"
	"vendora/internal/models"
)

// fakeCategoryStore is an in-memory CategoryStore for engine tests.
type fakeCategoryStore struct {
	cats     map[uuid.UUID]*models.Category
	products map[uuid.UUID]int64
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{
		cats:     make(map[uuid.UUID]*models.Category),
		products: make(map[uuid.UUID]int64),
	}
}

func (s *fakeCategoryStore) add(c models.Category) *models.Category {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.cats[c.ID] = &c
	return &c
}

func (s *fakeCategoryStore) ListAll() ([]models.Category, error) {
	out := make([]models.Category, 0, len(s.cats))
	for _, c := range s.cats {
		out = append(out, *c)
	}
	return out, nil
}

func (s *fakeCategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	if c, ok := s.cats[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeCategoryStore) FindBySlug(slug string) (*models.Category, error) {
	for _, c := range s.cats {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeCategoryStore) ExistsByName(name string) (bool, error) {
	for _, c := range s.cats {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeCategoryStore) SlugTaken(slug string) (bool, error) {
	c, _ := s.FindBySlug(slug)
	return c != nil, nil
}

func (s *fakeCategoryStore) Create(c *models.Category) (*models.Category, error) {
	return s.add(*c), nil
}

func (s *fakeCategoryStore) Update(c *models.Category) error {
	cp := *c
	s.cats[c.ID] = &cp
	return nil
}

func (s *fakeCategoryStore) Delete(id uuid.UUID) error {
	delete(s.cats, id)
	return nil
}

func (s *fakeCategoryStore) Move(c *models.Category, descendants []uuid.UUID, delta int) error {
	if err := s.Update(c); err != nil {
		return err
	}
	for _, id := range descendants {
		if d, ok := s.cats[id]; ok {
			d.Level += delta
		}
	}
	return nil
}

func (s *fakeCategoryStore) HasChildren(id uuid.UUID) (bool, error) {
	for _, c := range s.cats {
		if c.ParentID != nil && *c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeCategoryStore) CountProducts(id uuid.UUID) (int64, error) {
	return s.products[id], nil
}

func (s *fakeCategoryStore) ProductCounts() (map[uuid.UUID]int64, error) {
	return s.products, nil
}

func noCache() *cache.Cache { return cache.New(nil, cache.TTLs{}) }

func TestHierarchyCreate(t *testing.T) {
	fake := newFakeCategoryStore()
	h := NewHierarchy(fake, noCache())
	ctx := t.Context()

	root, err := h.Create(ctx, CategoryInput{Name: "Electronics"})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if root.Level != 0 || root.Slug != "electronics" || !root.IsActive {
		t.Errorf("root: got %+v", root)
	}

	child, err := h.Create(ctx, CategoryInput{Name: "Phones", ParentID: &root.ID})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if child.Level != 1 {
		t.Errorf("child level = %d, want 1", child.Level)
	}

	if _, err := h.Create(ctx, CategoryInput{Name: "Electronics"}); !apperr.IsDuplicate(err) {
		t.Errorf("duplicate name: got %v, want duplicate error", err)
	}
	if _, err := h.Create(ctx, CategoryInput{Name: ""}); !apperr.IsInvalid(err) {
		t.Errorf("empty name: got %v, want invalid error", err)
	}
	ghost := uuid.New()
	if _, err := h.Create(ctx, CategoryInput{Name: "Lost", ParentID: &ghost}); !apperr.IsNotFound(err) {
		t.Errorf("unknown parent: got %v, want not found", err)
	}
}

func TestHierarchyCreateSlugCollision(t *testing.T) {
	fake := newFakeCategoryStore()
	fake.add(models.Category{Name: "Occupied", Slug: "home-decor", IsActive: true})
	h := NewHierarchy(fake, noCache())

	c, err := h.Create(t.Context(), CategoryInput{Name: "Home Decor"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Slug != "home-decor-2" {
		t.Errorf("slug = %q, want home-decor-2", c.Slug)
	}
}

func TestHierarchyReparent(t *testing.T) {
	fake := newFakeCategoryStore()
	h := NewHierarchy(fake, noCache())
	ctx := t.Context()

	root, _ := h.Create(ctx, CategoryInput{Name: "A"})
	child, _ := h.Create(ctx, CategoryInput{Name: "B", ParentID: &root.ID})
	grandkid, _ := h.Create(ctx, CategoryInput{Name: "C", ParentID: &child.ID})
	other, _ := h.Create(ctx, CategoryInput{Name: "D"})

	// Moving a node under its own descendant must be rejected.
	if _, err := h.Update(ctx, root.ID, CategoryInput{Name: "A", ParentID: &grandkid.ID}); !apperr.IsInvalid(err) {
		t.Errorf("reparent under descendant: got %v, want invalid", err)
	}
	if _, err := h.Update(ctx, child.ID, CategoryInput{Name: "B", ParentID: &child.ID}); !apperr.IsInvalid(err) {
		t.Errorf("self parent: got %v, want invalid", err)
	}

	// Legal move: B (with subtree) from under A to under D.
	moved, err := h.Update(ctx, child.ID, CategoryInput{Name: "B", ParentID: &other.ID})
	if err != nil {
		t.Fatalf("reparent: %v", err)
	}
	if moved.ParentID == nil || *moved.ParentID != other.ID {
		t.Errorf("parent not updated: %+v", moved)
	}
	if moved.Level != 1 {
		t.Errorf("moved level = %d, want 1", moved.Level)
	}
	// The grandchild keeps its relative depth.
	gk, _ := fake.FindByID(grandkid.ID)
	if gk.Level != 2 {
		t.Errorf("descendant level = %d, want 2", gk.Level)
	}

	// Promote B to root; subtree shifts up with it.
	promoted, err := h.Update(ctx, child.ID, CategoryInput{Name: "B"})
	if err != nil {
		t.Fatalf("promote to root: %v", err)
	}
	if promoted.ParentID != nil || promoted.Level != 0 {
		t.Errorf("promoted: %+v", promoted)
	}
	gk, _ = fake.FindByID(grandkid.ID)
	if gk.Level != 1 {
		t.Errorf("descendant level after promote = %d, want 1", gk.Level)
	}
}

func TestHierarchyCreateDisplayOrder(t *testing.T) {
	fake := newFakeCategoryStore()
	h := NewHierarchy(fake, noCache())
	ctx := t.Context()

	root, _ := h.Create(ctx, CategoryInput{Name: "Root"})
	first, _ := h.Create(ctx, CategoryInput{Name: "First", ParentID: &root.ID})
	if first.DisplayOrder != 0 {
		t.Errorf("first sibling order = %d, want 0", first.DisplayOrder)
	}

	// Without an explicit order the node lands after the last sibling.
	second, _ := h.Create(ctx, CategoryInput{Name: "Second", ParentID: &root.ID})
	if second.DisplayOrder != 1 {
		t.Errorf("appended order = %d, want 1", second.DisplayOrder)
	}

	five := 5
	pinned, _ := h.Create(ctx, CategoryInput{Name: "Pinned", ParentID: &root.ID, DisplayOrder: &five})
	if pinned.DisplayOrder != 5 {
		t.Errorf("explicit order = %d, want 5", pinned.DisplayOrder)
	}
	after, _ := h.Create(ctx, CategoryInput{Name: "After", ParentID: &root.ID})
	if after.DisplayOrder != 6 {
		t.Errorf("order after pinned sibling = %d, want 6", after.DisplayOrder)
	}
}

func TestHierarchyChildren(t *testing.T) {
	fake := newFakeCategoryStore()
	h := NewHierarchy(fake, noCache())
	ctx := t.Context()

	root, _ := h.Create(ctx, CategoryInput{Name: "Root"})
	h.Create(ctx, CategoryInput{Name: "One", ParentID: &root.ID})
	h.Create(ctx, CategoryInput{Name: "Two", ParentID: &root.ID})

	kids, err := h.Children(ctx, root.ID)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if len(kids) != 2 {
		t.Errorf("got %d children, want 2", len(kids))
	}
	for _, k := range kids {
		if k.ParentID == nil || *k.ParentID != root.ID {
			t.Errorf("child %q has parent %v", k.Name, k.ParentID)
		}
	}

	if _, err := h.Children(ctx, uuid.New()); !apperr.IsNotFound(err) {
		t.Errorf("unknown id: got %v, want not found", err)
	}
}

func TestHierarchyDeleteGuards(t *testing.T) {
	fake := newFakeCategoryStore()
	h := NewHierarchy(fake, noCache())
	ctx := t.Context()

	root, _ := h.Create(ctx, CategoryInput{Name: "Root"})
	leaf, _ := h.Create(ctx, CategoryInput{Name: "Leaf", ParentID: &root.ID})

	if err := h.Delete(ctx, root.ID); !apperr.IsInvalid(err) {
		t.Errorf("delete with children: got %v, want invalid", err)
	}

	fake.products[leaf.ID] = 3
	if err := h.Delete(ctx, leaf.ID); !apperr.IsInvalid(err) {
		t.Errorf("delete with products: got %v, want invalid", err)
	}

	fake.products[leaf.ID] = 0
	if err := h.Delete(ctx, leaf.ID); err != nil {
		t.Errorf("delete empty leaf: %v", err)
	}
	if err := h.Delete(ctx, leaf.ID); !apperr.IsNotFound(err) {
		t.Errorf("delete absent: got %v, want not found", err)
	}
}

func TestHierarchyToggleActive(t *testing.T) {
	fake := newFakeCategoryStore()
	h := NewHierarchy(fake, noCache())
	ctx := t.Context()

	c, _ := h.Create(ctx, CategoryInput{Name: "Seasonal"})
	toggled, err := h.ToggleActive(ctx, c.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.IsActive {
		t.Error("expected inactive after toggle")
	}

	// Deactivated subtrees disappear from the storefront tree.
	tree, err := h.ActiveTree(ctx)
	if err != nil {
		t.Fatalf("active tree: %v", err)
	}
	for _, node := range tree {
		if node.ID == c.ID {
			t.Error("inactive category visible in active tree")
		}
	}
}

func TestHierarchyDescendantIDs(t *testing.T) {
	fake := newFakeCategoryStore()
	h := NewHierarchy(fake, noCache())
	ctx := t.Context()

	root, _ := h.Create(ctx, CategoryInput{Name: "Root"})
	child, _ := h.Create(ctx, CategoryInput{Name: "Child", ParentID: &root.ID})
	h.Create(ctx, CategoryInput{Name: "Grandkid", ParentID: &child.ID})

	ids, err := h.DescendantIDs(ctx, root.ID)
	if err != nil {
		t.Fatalf("DescendantIDs: %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("got %d ids, want 3", len(ids))
	}

	if _, err := h.DescendantIDs(ctx, uuid.New()); !apperr.IsNotFound(err) {
		t.Errorf("unknown id: got %v, want not found", err)
	}
}

package catalog

import (
	"testing"

	"github.com/google/uuid"

	"vendora/internal/models"
)

func mkCategory(name string, parent *models.Category, active bool) models.Category {
	c := models.Category{ID: uuid.New(), Name: name, Slug: name, IsActive: active}
	if parent != nil {
		c.ParentID = &parent.ID
		c.Level = parent.Level + 1
	}
	return c
}

// electronics ── phones ── smartphones
//            └── laptops (inactive)
// fashion
func testCategories() []models.Category {
	electronics := mkCategory("electronics", nil, true)
	phones := mkCategory("phones", &electronics, true)
	smartphones := mkCategory("smartphones", &phones, true)
	laptops := mkCategory("laptops", &electronics, false)
	fashion := mkCategory("fashion", nil, true)
	return []models.Category{electronics, phones, smartphones, laptops, fashion}
}

func TestForestDescendantIDs(t *testing.T) {
	cats := testCategories()
	f := newForest(cats)

	ids := f.descendantIDs(cats[0].ID) // electronics
	if len(ids) != 4 {
		t.Fatalf("descendants of root: got %d ids, want 4", len(ids))
	}
	if ids[0] != cats[0].ID {
		t.Error("subtree must start with the node itself")
	}

	leaf := f.descendantIDs(cats[2].ID) // smartphones
	if len(leaf) != 1 || leaf[0] != cats[2].ID {
		t.Errorf("leaf subtree: got %v", leaf)
	}

	if got := f.descendantIDs(uuid.New()); got != nil {
		t.Errorf("unknown id: got %v, want nil", got)
	}
}

func TestForestWouldCycle(t *testing.T) {
	cats := testCategories()
	f := newForest(cats)
	electronics, phones, smartphones, fashion := cats[0], cats[1], cats[2], cats[4]

	tests := []struct {
		name      string
		node      uuid.UUID
		newParent uuid.UUID
		want      bool
	}{
		{"to own child", electronics.ID, phones.ID, true},
		{"to own grandchild", electronics.ID, smartphones.ID, true},
		{"to itself", phones.ID, phones.ID, true},
		{"to sibling root", electronics.ID, fashion.ID, false},
		{"leaf to other root", smartphones.ID, fashion.ID, false},
		{"child up to root", smartphones.ID, electronics.ID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.wouldCycle(tt.node, tt.newParent); got != tt.want {
				t.Errorf("wouldCycle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForestWouldCycleMalformedData(t *testing.T) {
	// Two nodes already pointing at each other must not hang the walk.
	a := models.Category{ID: uuid.New(), Name: "a", IsActive: true}
	b := models.Category{ID: uuid.New(), Name: "b", IsActive: true}
	a.ParentID = &b.ID
	b.ParentID = &a.ID
	f := newForest([]models.Category{a, b})

	if !f.wouldCycle(uuid.New(), a.ID) {
		t.Error("walk over pre-existing cycle should report a cycle")
	}
}

func TestForestTree(t *testing.T) {
	cats := testCategories()
	counts := map[uuid.UUID]int64{cats[2].ID: 7}
	f := newForest(cats)

	full := f.tree(false, counts)
	if len(full) != 2 {
		t.Fatalf("full tree roots: got %d, want 2", len(full))
	}
	electronics := full[0]
	if len(electronics.Children) != 2 {
		t.Fatalf("electronics children: got %d, want 2", len(electronics.Children))
	}
	phones := electronics.Children[0]
	if len(phones.Children) != 1 || phones.Children[0].ProductCount != 7 {
		t.Errorf("smartphones node wrong: %+v", phones.Children)
	}
	if phones.ParentName != "electronics" {
		t.Errorf("parent name = %q, want electronics", phones.ParentName)
	}

	// Active tree prunes the inactive laptops subtree.
	active := f.tree(true, nil)
	if len(active[0].Children) != 1 {
		t.Errorf("active tree should hide inactive child, got %d children", len(active[0].Children))
	}
}

func TestForestOrphanBecomesRoot(t *testing.T) {
	ghost := uuid.New()
	orphan := models.Category{ID: uuid.New(), Name: "orphan", ParentID: &ghost, IsActive: true}
	f := newForest([]models.Category{orphan})

	tree := f.tree(false, nil)
	if len(tree) != 1 || tree[0].ID != orphan.ID {
		t.Errorf("orphan should surface as root, got %+v", tree)
	}
}

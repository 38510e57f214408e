package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"mobilia/internal/catalog"
	"mobilia/internal/models"
)

// makeCategory inserts a category with a unique slug and registers cleanup.
func makeCategory(t *testing.T, s *CategoryStore, name string, order int) *models.Category {
	t.Helper()
	slug := "test-cat-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategory(t, s.db, slug) })

	created, err := s.Create(&models.Category{Name: name, Slug: slug, DisplayOrder: order})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return created
}

func TestCategoryStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	created := makeCategory(t, s, "Armchairs", 0)
	if created.ID == 0 {
		t.Error("expected non-zero id")
	}
	if created.Name != "Armchairs" {
		t.Errorf("name: got %q, want %q", created.Name, "Armchairs")
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected category, got nil")
	}
	if found.Slug != created.Slug {
		t.Errorf("slug: got %q, want %q", found.Slug, created.Slug)
	}

	bySlug, err := s.FindBySlug(created.Slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if bySlug == nil || bySlug.ID != created.ID {
		t.Errorf("FindBySlug returned %+v", bySlug)
	}
}

func TestCategoryStoreFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	found, err := s.FindByID(-1)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for missing category, got %+v", found)
	}
}

func TestCategoryStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	created := makeCategory(t, s, "Sofas", 0)
	created.Name = "Sofas & Couches"
	created.DisplayOrder = 4

	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Name != "Sofas & Couches" {
		t.Errorf("name: got %q", found.Name)
	}
	if found.DisplayOrder != 4 {
		t.Errorf("display_order: got %d, want 4", found.DisplayOrder)
	}
}

func TestCategoryStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	created := makeCategory(t, s, "Temporary", 0)
	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("expected category to be gone")
	}
}

func TestCategoryStoreDeleteBlockedByRelations(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	products := NewProductStore(db)

	cat := makeCategory(t, categories, "Occupied", 0)
	draft := makeProductDraft(t, products, "Linked Stool")
	saved, err := products.Save(draft, []int64{cat.ID})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	err = categories.Delete(cat.ID)
	if !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("Delete: got %v, want ErrCategoryInUse", err)
	}

	found, err := categories.FindByID(cat.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("category vanished despite blocked delete")
	}

	// Clearing the assignment unblocks the delete.
	if _, err := products.Save(saved, nil); err != nil {
		t.Fatalf("Save clear: %v", err)
	}
	if err := categories.Delete(cat.ID); err != nil {
		t.Fatalf("Delete after clearing relations: %v", err)
	}
}

func TestCategoryStoreReorderPersistsAndReverts(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	a := makeCategory(t, s, "First", 100)
	b := makeCategory(t, s, "Second", 101)
	c := makeCategory(t, s, "Third", 102)

	// Move c in front of a and b.
	pairs := []catalog.OrderPair{
		{ID: c.ID, DisplayOrder: 100},
		{ID: a.ID, DisplayOrder: 101},
		{ID: b.ID, DisplayOrder: 102},
	}
	if err := s.Reorder(pairs); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	for _, want := range pairs {
		found, err := s.FindByID(want.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if found.DisplayOrder != want.DisplayOrder {
			t.Errorf("category %d: display_order = %d, want %d", want.ID, found.DisplayOrder, want.DisplayOrder)
		}
	}
}

func TestCategoryStoreReorderAtomic(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	a := makeCategory(t, s, "Stable", 200)

	// A batch containing an invalid display_order must leave every row
	// untouched, including the valid assignments before it.
	pairs := []catalog.OrderPair{
		{ID: a.ID, DisplayOrder: 300},
		{ID: a.ID, DisplayOrder: -5}, // violates the CHECK constraint
	}
	if err := s.Reorder(pairs); err == nil {
		t.Fatal("expected reorder to fail on negative display_order")
	}

	found, err := s.FindByID(a.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.DisplayOrder != 200 {
		t.Errorf("display_order mutated to %d despite failed batch", found.DisplayOrder)
	}
}

func TestCategoryStoreNextDisplayOrder(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	before, err := s.NextDisplayOrder(nil)
	if err != nil {
		t.Fatalf("NextDisplayOrder: %v", err)
	}

	makeCategory(t, s, "Tail", before)

	after, err := s.NextDisplayOrder(nil)
	if err != nil {
		t.Fatalf("NextDisplayOrder: %v", err)
	}
	if after != before+1 {
		t.Errorf("next order: got %d, want %d", after, before+1)
	}
}

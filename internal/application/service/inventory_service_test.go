package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/mrfandu1/Inventory-Stocks/internal/infrastructure/repository/memory"
)

func newInventoryFixture() (*InventoryService, *memory.Store, Session) {
	store := memory.NewStore()
	svc := NewInventoryService(store.Inventory())
	sess := Session{UserID: uuid.New(), Email: "owner@example.com"}
	return svc, store, sess
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestCreateItemRequiresName(t *testing.T) {
	svc, _, sess := newInventoryFixture()

	_, err := svc.CreateItem(context.Background(), sess, &ItemInput{
		Name:     "   ",
		Quantity: 5,
	})
	if err == nil {
		t.Fatalf("expected create to fail for blank name")
	}
	if err.Error() != "Please enter an item name" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestCreateItemRejectsNegativePrice(t *testing.T) {
	svc, _, sess := newInventoryFixture()

	_, err := svc.CreateItem(context.Background(), sess, &ItemInput{
		Name:      "Widget",
		Quantity:  5,
		UnitPrice: floatPtr(-1),
	})
	if err == nil {
		t.Fatalf("expected create to fail for negative price")
	}
	if err.Error() != "Please enter a valid unit price" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestCreateItemRequiresPositiveTotalQuantity(t *testing.T) {
	svc, _, sess := newInventoryFixture()

	_, err := svc.CreateItem(context.Background(), sess, &ItemInput{
		Name:     "Widget",
		Quantity: 0,
	})
	if err == nil {
		t.Fatalf("expected create to fail for zero quantity")
	}
	if err.Error() != "Total quantity must be greater than 0" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestCreateMultiCategoryItemRequiresSubtypes(t *testing.T) {
	svc, _, sess := newInventoryFixture()

	_, err := svc.CreateItem(context.Background(), sess, &ItemInput{
		Name:            "Shirt",
		IsMultiCategory: true,
	})
	if err == nil {
		t.Fatalf("expected create to fail without subtypes")
	}
	if err.Error() != "Please add at least one subtype for multi-category items" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestCreateMultiCategoryItemRejectsZeroSubtypeQuantity(t *testing.T) {
	svc, _, sess := newInventoryFixture()

	_, err := svc.CreateItem(context.Background(), sess, &ItemInput{
		Name:              "Shirt",
		IsMultiCategory:   true,
		Subtypes:          []string{"Small", "Medium"},
		SubtypeQuantities: map[string]int{"Small": 5, "Medium": 0},
	})
	if err == nil {
		t.Fatalf("expected create to fail for zero subtype quantity")
	}
	if err.Error() != "Please enter valid quantities for all subtypes" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestCreateSimpleItemStoresPriceInCents(t *testing.T) {
	svc, _, sess := newInventoryFixture()

	item, err := svc.CreateItem(context.Background(), sess, &ItemInput{
		Name:      "Widget",
		Quantity:  10,
		UnitPrice: floatPtr(2.50),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if item.Quantity != 10 {
		t.Fatalf("expected quantity 10, got %d", item.Quantity)
	}
	if item.UnitPrice == nil || *item.UnitPrice != 250 {
		t.Fatalf("expected unit price 250 cents, got %v", item.UnitPrice)
	}
}

func TestCreateMultiCategoryItemTotalsSubtypeQuantities(t *testing.T) {
	svc, _, sess := newInventoryFixture()

	item, err := svc.CreateItem(context.Background(), sess, &ItemInput{
		Name:              "Shirt",
		IsMultiCategory:   true,
		Subtypes:          []string{"Small", "Medium"},
		SubtypeQuantities: map[string]int{"Small": 5, "Medium": 3},
		SubtypePrices:     map[string]float64{"Small": 4, "Medium": 4.50},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if item.Quantity != 8 {
		t.Fatalf("expected total quantity 8, got %d", item.Quantity)
	}
	if item.SubtypePrices["Medium"] != 450 {
		t.Fatalf("expected Medium price 450 cents, got %d", item.SubtypePrices["Medium"])
	}
}

func TestUpdateItemToSimpleClearsSubtypeState(t *testing.T) {
	svc, _, sess := newInventoryFixture()
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, sess, &ItemInput{
		Name:              "Shirt",
		IsMultiCategory:   true,
		Subtypes:          []string{"Small"},
		SubtypeQuantities: map[string]int{"Small": 5},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.UpdateItem(ctx, sess, item.ID, &ItemInput{
		Name:     "Shirt",
		Quantity: 7,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.IsMultiCategory {
		t.Fatalf("expected item to become simple")
	}
	if updated.Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", updated.Quantity)
	}
	if len(updated.Subtypes) != 0 || len(updated.SubtypeQuantities) != 0 {
		t.Fatalf("expected subtype state to be cleared")
	}
}

func TestGetItemScopedToOwner(t *testing.T) {
	svc, _, sess := newInventoryFixture()
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, sess, &ItemInput{Name: "Widget", Quantity: 5})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	other := Session{UserID: uuid.New()}
	if _, err := svc.GetItem(ctx, other, item.ID); err == nil {
		t.Fatalf("expected not found for another user's item")
	}
}

func TestDeleteMissingItemIsNoop(t *testing.T) {
	svc, _, sess := newInventoryFixture()

	if err := svc.DeleteItem(context.Background(), sess, uuid.New()); err != nil {
		t.Fatalf("expected delete of missing item to succeed, got %v", err)
	}
}

func TestListItemsFiltersLowStock(t *testing.T) {
	svc, _, sess := newInventoryFixture()
	ctx := context.Background()

	if _, err := svc.CreateItem(ctx, sess, &ItemInput{Name: "Plenty", Quantity: 50, ReorderLevel: 5}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.CreateItem(ctx, sess, &ItemInput{Name: "Scarce", Quantity: 2, ReorderLevel: 5}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	low, err := svc.GetLowStock(ctx, sess)
	if err != nil {
		t.Fatalf("low stock query failed: %v", err)
	}
	if len(low) != 1 || low[0].Name != "Scarce" {
		t.Fatalf("expected only the scarce item, got %d items", len(low))
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/mrfandu1/Inventory-Stocks/internal/domain/entity"
	"github.com/mrfandu1/Inventory-Stocks/internal/domain/repository"
	"github.com/mrfandu1/Inventory-Stocks/internal/infrastructure/repository/memory"
	"github.com/mrfandu1/Inventory-Stocks/pkg/pagination"
)

func newSaleFixture() (*SaleService, *InventoryService, Session) {
	store := memory.NewStore()
	return NewSaleService(store.Sales(), store.Inventory()),
		NewInventoryService(store.Inventory()),
		Session{UserID: uuid.New(), Email: "owner@example.com"}
}

func TestRecordSaleDecrementsSimpleStock(t *testing.T) {
	saleSvc, invSvc, sess := newSaleFixture()
	ctx := context.Background()

	item, err := invSvc.CreateItem(ctx, sess, &ItemInput{
		Name:      "Widget",
		Quantity:  10,
		UnitPrice: floatPtr(2.50),
	})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	sale, err := saleSvc.RecordSale(ctx, sess, &RecordSaleInput{
		ItemID:    item.ID,
		Quantity:  3,
		UnitPrice: 2.50,
	})
	if err != nil {
		t.Fatalf("record sale failed: %v", err)
	}
	if sale.TotalAmount != 750 {
		t.Fatalf("expected total 750 cents, got %d", sale.TotalAmount)
	}
	if len(sale.Items) != 1 || sale.Items[0].Quantity != 3 {
		t.Fatalf("expected one line item with quantity 3")
	}

	after, err := invSvc.GetItem(ctx, sess, item.ID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if after.Quantity != 7 {
		t.Fatalf("expected stock 7 after sale, got %d", after.Quantity)
	}
}

func TestRecordSaleDecrementsSelectedSubtype(t *testing.T) {
	saleSvc, invSvc, sess := newSaleFixture()
	ctx := context.Background()

	item, err := invSvc.CreateItem(ctx, sess, &ItemInput{
		Name:              "Shirt",
		IsMultiCategory:   true,
		Subtypes:          []string{"Small", "Medium"},
		SubtypeQuantities: map[string]int{"Small": 5, "Medium": 5},
		SubtypePrices:     map[string]float64{"Small": 4, "Medium": 4},
	})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	sale, err := saleSvc.RecordSale(ctx, sess, &RecordSaleInput{
		ItemID:    item.ID,
		Quantity:  2,
		UnitPrice: 4,
		Subtype:   "Medium",
	})
	if err != nil {
		t.Fatalf("record sale failed: %v", err)
	}
	if sale.TotalAmount != 800 {
		t.Fatalf("expected total 800 cents, got %d", sale.TotalAmount)
	}
	if sale.Items[0].Subtype == nil || *sale.Items[0].Subtype != "Medium" {
		t.Fatalf("expected line item to carry the sold subtype")
	}

	after, err := invSvc.GetItem(ctx, sess, item.ID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if after.SubtypeQuantities["Medium"] != 3 || after.SubtypeQuantities["Small"] != 5 {
		t.Fatalf("expected Medium 3 and Small 5, got %v", after.SubtypeQuantities)
	}
	if after.Quantity != 8 {
		t.Fatalf("expected total quantity 8, got %d", after.Quantity)
	}
}

func TestRecordSaleInsufficientStockLeavesStockUnchanged(t *testing.T) {
	saleSvc, invSvc, sess := newSaleFixture()
	ctx := context.Background()

	item, err := invSvc.CreateItem(ctx, sess, &ItemInput{
		Name:     "Widget",
		Quantity: 2,
	})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	_, err = saleSvc.RecordSale(ctx, sess, &RecordSaleInput{
		ItemID:    item.ID,
		Quantity:  5,
		UnitPrice: 1,
	})
	if err == nil {
		t.Fatalf("expected insufficient stock error")
	}
	if err.Error() != "Not enough stock available. Available: 2" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}

	after, err := invSvc.GetItem(ctx, sess, item.ID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if after.Quantity != 2 {
		t.Fatalf("expected stock unchanged at 2, got %d", after.Quantity)
	}
}

func TestRecordSaleRequiresSubtypeForMultiCategory(t *testing.T) {
	saleSvc, invSvc, sess := newSaleFixture()
	ctx := context.Background()

	item, err := invSvc.CreateItem(ctx, sess, &ItemInput{
		Name:              "Shirt",
		IsMultiCategory:   true,
		Subtypes:          []string{"Small"},
		SubtypeQuantities: map[string]int{"Small": 5},
	})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	_, err = saleSvc.RecordSale(ctx, sess, &RecordSaleInput{
		ItemID:    item.ID,
		Quantity:  1,
		UnitPrice: 1,
	})
	if err == nil {
		t.Fatalf("expected subtype requirement error")
	}
	if err.Error() != "Please select a subtype" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}

	_, err = saleSvc.RecordSale(ctx, sess, &RecordSaleInput{
		ItemID:    item.ID,
		Quantity:  1,
		UnitPrice: 1,
		Subtype:   "Large",
	})
	if err == nil {
		t.Fatalf("expected unknown subtype error")
	}
}

func TestRecordSaleRejectsNonPositiveQuantity(t *testing.T) {
	saleSvc, _, sess := newSaleFixture()

	_, err := saleSvc.RecordSale(context.Background(), sess, &RecordSaleInput{
		ItemID:    uuid.New(),
		Quantity:  0,
		UnitPrice: 1,
	})
	if err == nil {
		t.Fatalf("expected quantity validation error")
	}
	if err.Error() != "Please enter a valid quantity" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestGetSaleReturnsLineItems(t *testing.T) {
	saleSvc, invSvc, sess := newSaleFixture()
	ctx := context.Background()

	item, err := invSvc.CreateItem(ctx, sess, &ItemInput{Name: "Widget", Quantity: 5})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	recorded, err := saleSvc.RecordSale(ctx, sess, &RecordSaleInput{
		ItemID:    item.ID,
		Quantity:  1,
		UnitPrice: 3,
	})
	if err != nil {
		t.Fatalf("record sale failed: %v", err)
	}

	fetched, err := saleSvc.GetSale(ctx, sess, recorded.ID)
	if err != nil {
		t.Fatalf("get sale failed: %v", err)
	}
	if len(fetched.Items) != 1 {
		t.Fatalf("expected one line item, got %d", len(fetched.Items))
	}
	if fetched.Items[0].InventoryItemID != item.ID {
		t.Fatalf("line item references wrong inventory item")
	}
}

func TestListSalesNewestFirst(t *testing.T) {
	saleSvc, invSvc, sess := newSaleFixture()
	ctx := context.Background()

	item, err := invSvc.CreateItem(ctx, sess, &ItemInput{Name: "Widget", Quantity: 10})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := saleSvc.RecordSale(ctx, sess, &RecordSaleInput{
			ItemID:    item.ID,
			Quantity:  1,
			UnitPrice: 1,
		}); err != nil {
			t.Fatalf("record sale failed: %v", err)
		}
	}

	result, err := saleSvc.ListSales(ctx, sess, &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 2},
	})
	if err != nil {
		t.Fatalf("list sales failed: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 sales on first page, got %d", len(result.Items))
	}
	if result.Pagination.Total != 3 {
		t.Fatalf("expected total 3, got %d", result.Pagination.Total)
	}
}

func TestClearAllDataRemovesSalesAndInventory(t *testing.T) {
	saleSvc, invSvc, sess := newSaleFixture()
	ctx := context.Background()

	item, err := invSvc.CreateItem(ctx, sess, &ItemInput{Name: "Widget", Quantity: 5})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	if _, err := saleSvc.RecordSale(ctx, sess, &RecordSaleInput{
		ItemID:    item.ID,
		Quantity:  1,
		UnitPrice: 1,
	}); err != nil {
		t.Fatalf("record sale failed: %v", err)
	}

	if err := saleSvc.ClearAllData(ctx, sess); err != nil {
		t.Fatalf("clear data failed: %v", err)
	}

	result, err := saleSvc.ListSales(ctx, sess, &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
	})
	if err != nil {
		t.Fatalf("list sales failed: %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatalf("expected no sales after clear, got %d", len(result.Items))
	}
	if _, err := invSvc.GetItem(ctx, sess, item.ID); err == nil {
		t.Fatalf("expected inventory to be cleared")
	}
}

func TestLineTotal(t *testing.T) {
	if got := entity.LineTotal(3, 250); got != 750 {
		t.Fatalf("expected 750, got %d", got)
	}
	if got := entity.LineTotal(0, 250); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestStockWriteGuardRejectsOversell(t *testing.T) {
	store := memory.NewStore()
	sess := Session{UserID: uuid.New()}
	ctx := context.Background()

	invSvc := NewInventoryService(store.Inventory())
	item, err := invSvc.CreateItem(ctx, sess, &ItemInput{Name: "Widget", Quantity: 1, UnitPrice: floatPtr(2)})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	// Two writers that both read 1 unit of stock before either committed
	record := func() error {
		sale := &entity.Sale{UserID: sess.UserID, TotalAmount: 200}
		items := []entity.SaleItem{{InventoryItemID: item.ID, Quantity: 1, UnitPrice: 200, TotalPrice: 200}}
		return store.Sales().CreateWithItems(ctx, sale, items, &repository.StockUpdate{ItemID: item.ID, Sold: 1})
	}

	if err := record(); err != nil {
		t.Fatalf("first sale failed: %v", err)
	}
	if err := record(); !errors.Is(err, repository.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	got, err := invSvc.GetItem(ctx, sess, item.ID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if got.Quantity != 0 {
		t.Fatalf("expected quantity 0 after the single successful sale, got %d", got.Quantity)
	}

	sales, err := store.Sales().ListAll(ctx, sess.UserID)
	if err != nil {
		t.Fatalf("list sales failed: %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("expected the rejected sale to leave no record, got %d sales", len(sales))
	}
}

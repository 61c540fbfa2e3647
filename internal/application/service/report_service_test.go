package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mrfandu1/Inventory-Stocks/internal/domain/entity"
	"github.com/mrfandu1/Inventory-Stocks/internal/infrastructure/cache"
	"github.com/mrfandu1/Inventory-Stocks/internal/infrastructure/repository/memory"
)

func saleAt(createdAt time.Time, totalCents int64) entity.Sale {
	return entity.Sale{
		ID:          uuid.New(),
		TotalAmount: totalCents,
		CreatedAt:   createdAt,
	}
}

func TestBuildReportEmptySnapshot(t *testing.T) {
	report := BuildReport(nil, nil, nil, TimeRangeDay, time.Now())

	if report.TotalRevenue != 0 || report.TotalSales != 0 || report.AvgOrderValue != 0 {
		t.Fatalf("expected zeroed totals, got %+v", report)
	}
	if len(report.TopItems) != 0 {
		t.Fatalf("expected empty top items")
	}
	if len(report.SalesByTime.Data) != 30 || len(report.SalesByTime.Labels) != 30 {
		t.Fatalf("expected 30 daily buckets, got %d", len(report.SalesByTime.Data))
	}
	if report.SalesGrowth != 0 {
		t.Fatalf("expected zero growth, got %f", report.SalesGrowth)
	}
}

func TestBuildReportBucketLengths(t *testing.T) {
	now := time.Now()
	cases := []struct {
		rng  TimeRange
		want int
	}{
		{TimeRangeHour, 24},
		{TimeRangeDay, 30},
		{TimeRangeMonth, 12},
	}
	for _, tc := range cases {
		report := BuildReport(nil, nil, nil, tc.rng, now)
		if len(report.RevenueByTime.Data) != tc.want {
			t.Fatalf("range %s: expected %d buckets, got %d", tc.rng, tc.want, len(report.RevenueByTime.Data))
		}
	}
}

func TestBuildReportTotalsAndAverage(t *testing.T) {
	now := time.Now()
	sales := []entity.Sale{
		saleAt(now, 1000),
		saleAt(now, 500),
	}

	report := BuildReport(sales, nil, nil, TimeRangeDay, now)

	if report.TotalRevenue != 15 {
		t.Fatalf("expected total revenue 15.00, got %f", report.TotalRevenue)
	}
	if report.TotalSales != 2 {
		t.Fatalf("expected 2 sales, got %d", report.TotalSales)
	}
	if report.AvgOrderValue != 7.5 {
		t.Fatalf("expected avg order value 7.50, got %f", report.AvgOrderValue)
	}

	last := len(report.RevenueByTime.Data) - 1
	if report.RevenueByTime.Data[last] != 15 {
		t.Fatalf("expected today's bucket to hold 15.00, got %f", report.RevenueByTime.Data[last])
	}
	if report.SalesByTime.Data[last] != 2 {
		t.Fatalf("expected today's bucket to hold 2 sales, got %f", report.SalesByTime.Data[last])
	}
}

func TestTopItemsOrderedByRevenueWithUnknownFallback(t *testing.T) {
	itemA := entity.InventoryItem{ID: uuid.New(), Name: "Alpha"}
	itemB := entity.InventoryItem{ID: uuid.New(), Name: "Beta"}
	missing := uuid.New()

	saleItems := []entity.SaleItem{
		{InventoryItemID: itemA.ID, Quantity: 4, TotalPrice: 2000},
		{InventoryItemID: itemB.ID, Quantity: 1, TotalPrice: 5000},
		{InventoryItemID: itemA.ID, Quantity: 2, TotalPrice: 1000},
		{InventoryItemID: missing, Quantity: 1, TotalPrice: 100},
	}

	report := BuildReport(nil, saleItems, []entity.InventoryItem{itemA, itemB}, TimeRangeDay, time.Now())

	if len(report.TopItems) != 3 {
		t.Fatalf("expected 3 grouped items, got %d", len(report.TopItems))
	}
	if report.TopItems[0].Name != "Beta" || report.TopItems[0].Revenue != 50 {
		t.Fatalf("expected Beta first with revenue 50, got %+v", report.TopItems[0])
	}
	if report.TopItems[1].Name != "Alpha" || report.TopItems[1].Quantity != 6 || report.TopItems[1].Revenue != 30 {
		t.Fatalf("expected Alpha second with quantity 6 and revenue 30, got %+v", report.TopItems[1])
	}
	if report.TopItems[2].Name != "Unknown Item" {
		t.Fatalf("expected placeholder for deleted item, got %q", report.TopItems[2].Name)
	}
}

func TestTopItemsCappedAtFive(t *testing.T) {
	saleItems := make([]entity.SaleItem, 0, 7)
	for i := 0; i < 7; i++ {
		saleItems = append(saleItems, entity.SaleItem{
			InventoryItemID: uuid.New(),
			Quantity:        1,
			TotalPrice:      int64(100 * (i + 1)),
		})
	}

	report := BuildReport(nil, saleItems, nil, TimeRangeDay, time.Now())

	if len(report.TopItems) != 5 {
		t.Fatalf("expected top items capped at 5, got %d", len(report.TopItems))
	}
}

func TestSalesGrowthComparesRecentWeeks(t *testing.T) {
	now := time.Now()
	sales := []entity.Sale{
		// Previous seven buckets
		saleAt(now.AddDate(0, 0, -10), 1000),
		// Most recent seven buckets
		saleAt(now.AddDate(0, 0, -2), 1500),
	}

	report := BuildReport(sales, nil, nil, TimeRangeDay, now)

	if report.SalesGrowth != 50 {
		t.Fatalf("expected 50%% growth, got %f", report.SalesGrowth)
	}
}

func TestSalesGrowthZeroWhenPreviousPeriodEmpty(t *testing.T) {
	now := time.Now()
	sales := []entity.Sale{
		saleAt(now.AddDate(0, 0, -1), 2000),
	}

	report := BuildReport(sales, nil, nil, TimeRangeDay, now)

	if report.SalesGrowth != 0 {
		t.Fatalf("expected zero growth without prior revenue, got %f", report.SalesGrowth)
	}
}

func TestGetReportUsesLiveSnapshot(t *testing.T) {
	store := memory.NewStore()
	sess := Session{UserID: uuid.New()}
	ctx := context.Background()

	invSvc := NewInventoryService(store.Inventory())
	saleSvc := NewSaleService(store.Sales(), store.Inventory())
	reportSvc := NewReportService(store.Sales(), store.Inventory(), cache.NoopReportCache{}, 0)

	item, err := invSvc.CreateItem(ctx, sess, &ItemInput{Name: "Widget", Quantity: 10})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	if _, err := saleSvc.RecordSale(ctx, sess, &RecordSaleInput{
		ItemID:    item.ID,
		Quantity:  2,
		UnitPrice: 3,
	}); err != nil {
		t.Fatalf("record sale failed: %v", err)
	}

	report, err := reportSvc.GetReport(ctx, sess, TimeRangeDay)
	if err != nil {
		t.Fatalf("get report failed: %v", err)
	}
	if report.TotalSales != 1 || report.TotalRevenue != 6 {
		t.Fatalf("expected 1 sale totaling 6.00, got %d / %f", report.TotalSales, report.TotalRevenue)
	}
	if len(report.TopItems) != 1 || report.TopItems[0].Name != "Widget" {
		t.Fatalf("expected Widget as top item, got %+v", report.TopItems)
	}
}

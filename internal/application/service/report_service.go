package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mrfandu1/Inventory-Stocks/internal/domain/entity"
	"github.com/mrfandu1/Inventory-Stocks/internal/domain/repository"
	"github.com/mrfandu1/Inventory-Stocks/internal/infrastructure/cache"
)

// TimeRange selects the report bucketing granularity
type TimeRange string

const (
	TimeRangeHour  TimeRange = "hour"
	TimeRangeDay   TimeRange = "day"
	TimeRangeMonth TimeRange = "month"
)

// IsValid reports whether the range is a known granularity
func (r TimeRange) IsValid() bool {
	return r == TimeRangeHour || r == TimeRangeDay || r == TimeRangeMonth
}

// bucketCount returns the fixed series length for the granularity:
// 24 hourly, 30 daily or 12 monthly buckets.
func (r TimeRange) bucketCount() int {
	switch r {
	case TimeRangeHour:
		return 24
	case TimeRangeMonth:
		return 12
	default:
		return 30
	}
}

// TopItem is one entry of the top-selling items list
type TopItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// TimeSeries is a fixed-length labeled series with zero-filled gaps
type TimeSeries struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// Report is the analytics payload for one user and granularity
type Report struct {
	TotalRevenue  float64    `json:"total_revenue"`
	TotalSales    int        `json:"total_sales"`
	AvgOrderValue float64    `json:"avg_order_value"`
	TopItems      []TopItem  `json:"top_items"`
	SalesByTime   TimeSeries `json:"sales_by_time"`
	RevenueByTime TimeSeries `json:"revenue_by_time"`
	SalesGrowth   float64    `json:"sales_growth"`
}

// ReportService derives analytics from the sales and inventory snapshot
type ReportService struct {
	saleRepo      repository.SaleRepository
	inventoryRepo repository.InventoryRepository
	cache         cache.ReportCache
	cacheTTL      time.Duration
}

// NewReportService creates a new report service
func NewReportService(
	saleRepo repository.SaleRepository,
	inventoryRepo repository.InventoryRepository,
	reportCache cache.ReportCache,
	cacheTTL time.Duration,
) *ReportService {
	return &ReportService{
		saleRepo:      saleRepo,
		inventoryRepo: inventoryRepo,
		cache:         reportCache,
		cacheTTL:      cacheTTL,
	}
}

// GetReport returns the analytics report for the session user, served from
// cache when a fresh copy exists.
func (s *ReportService) GetReport(ctx context.Context, sess Session, rng TimeRange) (*Report, error) {
	key := reportCacheKey(sess.UserID, rng)

	if payload, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var report Report
		if err := json.Unmarshal(payload, &report); err == nil {
			return &report, nil
		}
	}

	sales, err := s.saleRepo.ListAll(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	saleItems, err := s.saleRepo.ListAllItems(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	items, err := s.inventoryRepo.ListAll(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	report := BuildReport(sales, saleItems, items, rng, time.Now())

	if payload, err := json.Marshal(report); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.cacheTTL)
	}

	return report, nil
}

func reportCacheKey(userID uuid.UUID, rng TimeRange) string {
	return fmt.Sprintf("reports:%s:%s", userID, rng)
}

// BuildReport is a pure function over the full data snapshot. Sales are
// bucketed by creation time into a fixed-length series ending at now, missing
// buckets are zero-filled, and growth compares the revenue of the most recent
// seven buckets against the preceding seven.
func BuildReport(sales []entity.Sale, saleItems []entity.SaleItem, items []entity.InventoryItem, rng TimeRange, now time.Time) *Report {
	report := &Report{
		TopItems: []TopItem{},
	}

	var totalRevenueCents int64
	for i := range sales {
		totalRevenueCents += sales[i].TotalAmount
	}
	report.TotalRevenue = float64(totalRevenueCents) / 100
	report.TotalSales = len(sales)
	if report.TotalSales > 0 {
		report.AvgOrderValue = report.TotalRevenue / float64(report.TotalSales)
	}

	report.TopItems = topSellingItems(saleItems, items)

	salesSeries, revenueSeries := bucketSales(sales, rng, now)
	report.SalesByTime = salesSeries
	report.RevenueByTime = revenueSeries

	report.SalesGrowth = revenueGrowth(revenueSeries.Data)

	return report
}

// topSellingItems groups sale items by inventory item, resolves display names
// against the current item list and returns the five largest by revenue.
// Items that no longer exist degrade to a placeholder name rather than an
// error.
func topSellingItems(saleItems []entity.SaleItem, items []entity.InventoryItem) []TopItem {
	names := make(map[uuid.UUID]string, len(items))
	for i := range items {
		names[items[i].ID] = items[i].Name
	}

	type group struct {
		name         string
		quantity     int
		revenueCents int64
	}
	groups := make(map[uuid.UUID]*group)
	order := make([]uuid.UUID, 0)

	for i := range saleItems {
		itemID := saleItems[i].InventoryItemID
		g, exists := groups[itemID]
		if !exists {
			name, ok := names[itemID]
			if !ok {
				name = "Unknown Item"
			}
			g = &group{name: name}
			groups[itemID] = g
			order = append(order, itemID)
		}
		g.quantity += saleItems[i].Quantity
		g.revenueCents += saleItems[i].TotalPrice
	}

	top := make([]TopItem, 0, len(order))
	for _, id := range order {
		g := groups[id]
		top = append(top, TopItem{
			Name:     g.name,
			Quantity: g.quantity,
			Revenue:  float64(g.revenueCents) / 100,
		})
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Revenue > top[j].Revenue
	})

	if len(top) > 5 {
		top = top[:5]
	}
	return top
}

// bucketSales accumulates sale count and revenue per time bucket, then emits
// the most recent N buckets oldest-first with display labels.
func bucketSales(sales []entity.Sale, rng TimeRange, now time.Time) (TimeSeries, TimeSeries) {
	type bucket struct {
		count        int
		revenueCents int64
	}
	byKey := make(map[string]*bucket)

	for i := range sales {
		key := bucketKey(sales[i].CreatedAt, rng)
		b, exists := byKey[key]
		if !exists {
			b = &bucket{}
			byKey[key] = b
		}
		b.count++
		b.revenueCents += sales[i].TotalAmount
	}

	n := rng.bucketCount()
	labels := make([]string, 0, n)
	salesData := make([]float64, 0, n)
	revenueData := make([]float64, 0, n)

	for i := n - 1; i >= 0; i-- {
		var key, label string
		switch rng {
		case TimeRangeHour:
			t := now.Add(-time.Duration(i) * time.Hour)
			key = fmt.Sprintf("%02d:00", t.Hour())
			label = key
		case TimeRangeMonth:
			t := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
			key = t.Format("2006-01")
			label = t.Format("Jan")
		default:
			t := now.AddDate(0, 0, -i)
			key = t.Format("2006-01-02")
			label = fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
		}

		labels = append(labels, label)
		if b, exists := byKey[key]; exists {
			salesData = append(salesData, float64(b.count))
			revenueData = append(revenueData, float64(b.revenueCents)/100)
		} else {
			salesData = append(salesData, 0)
			revenueData = append(revenueData, 0)
		}
	}

	return TimeSeries{Labels: labels, Data: salesData},
		TimeSeries{Labels: labels, Data: revenueData}
}

func bucketKey(t time.Time, rng TimeRange) string {
	switch rng {
	case TimeRangeHour:
		return fmt.Sprintf("%02d:00", t.Hour())
	case TimeRangeMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// revenueGrowth compares the most recent seven buckets against the preceding
// seven. A zero previous period yields 0, never NaN or infinity, so "no prior
// data" and "no prior revenue" are indistinguishable here.
func revenueGrowth(revenue []float64) float64 {
	current := sumTail(revenue, 7, 0)
	previous := sumTail(revenue, 7, 7)
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// sumTail sums up to n values ending skip positions before the end
func sumTail(values []float64, n, skip int) float64 {
	end := len(values) - skip
	if end <= 0 {
		return 0
	}
	start := end - n
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, v := range values[start:end] {
		sum += v
	}
	return sum
}

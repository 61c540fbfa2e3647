package service

import (
	"context"

	"github.com/mrfandu1/Inventory-Stocks/internal/domain/entity"
	"github.com/mrfandu1/Inventory-Stocks/internal/domain/repository"
)

// DashboardService provides the home screen statistics
type DashboardService struct {
	inventoryRepo repository.InventoryRepository
	saleRepo      repository.SaleRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(inventoryRepo repository.InventoryRepository, saleRepo repository.SaleRepository) *DashboardService {
	return &DashboardService{
		inventoryRepo: inventoryRepo,
		saleRepo:      saleRepo,
	}
}

// DashboardStats represents the dashboard summary
type DashboardStats struct {
	TotalItems          int                    `json:"total_items"`
	TotalInventoryValue float64                `json:"total_inventory_value"`
	LowStockCount       int                    `json:"low_stock_count"`
	LowStockItems       []entity.InventoryItem `json:"low_stock_items"`
	TotalSales          int                    `json:"total_sales"`
	TotalRevenue        float64                `json:"total_revenue"`
	RecentSales         []entity.Sale          `json:"recent_sales"`
}

// GetStats returns dashboard statistics for the session user
func (s *DashboardService) GetStats(ctx context.Context, sess Session) (*DashboardStats, error) {
	items, err := s.inventoryRepo.ListAll(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.ListAll(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalSales:    len(sales),
		LowStockItems: []entity.InventoryItem{},
		RecentSales:   []entity.Sale{},
	}

	// TotalItems counts units in stock, not item rows
	var totalValueCents int64
	for i := range items {
		stats.TotalItems += items[i].Quantity
		if items[i].UnitPrice != nil {
			totalValueCents += *items[i].UnitPrice * int64(items[i].Quantity)
		}
		if items[i].IsLowStock() {
			stats.LowStockCount++
			if len(stats.LowStockItems) < 3 {
				stats.LowStockItems = append(stats.LowStockItems, items[i])
			}
		}
	}
	stats.TotalInventoryValue = float64(totalValueCents) / 100

	var totalRevenueCents int64
	for i := range sales {
		totalRevenueCents += sales[i].TotalAmount
	}
	stats.TotalRevenue = float64(totalRevenueCents) / 100

	// Sales come back newest first
	recent := sales
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.RecentSales = recent

	return stats, nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mrfandu1/Inventory-Stocks/internal/domain/entity"
	"github.com/mrfandu1/Inventory-Stocks/internal/domain/enum"
	"github.com/mrfandu1/Inventory-Stocks/pkg/pagination"
)

// ErrInsufficientStock is returned when a sale's stock decrement would drive
// the quantity below zero. The whole sale rolls back.
var ErrInsufficientStock = errors.New("insufficient stock")

// StockUpdate carries the inventory write performed alongside a sale. Items
// without per-subtype tracking leave SubtypeQuantities nil and decrement by
// Sold, guarded against concurrent sales draining the same stock. Items with
// per-subtype tracking write the recomputed map and total absolutely.
type StockUpdate struct {
	ItemID            uuid.UUID
	Sold              int
	Quantity          int
	SubtypeQuantities entity.QuantityMap
}

// SaleRepository defines the interface for sale data operations.
// Every query is scoped to the owning user.
type SaleRepository interface {
	// CreateWithItems persists the sale, its line items and the inventory
	// stock update in a single database transaction. A failure in any step
	// rolls back the whole sequence.
	CreateWithItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem, stock *StockUpdate) error
	// GetWithItems returns the sale with its line items loaded.
	GetWithItems(ctx context.Context, userID, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, userID uuid.UUID, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListAll returns the full sale collection for a user, newest first,
	// for dashboard and report snapshots.
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Sale, error)
	// ListAllItems returns every sale line item belonging to the user's
	// sales, newest first.
	ListAllItems(ctx context.Context, userID uuid.UUID) ([]entity.SaleItem, error)
	// DeleteAllByUser removes the user's sale items and sales, in that order.
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.SaleStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

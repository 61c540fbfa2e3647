package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mrfandu1/Inventory-Stocks/internal/domain/entity"
	"github.com/mrfandu1/Inventory-Stocks/pkg/pagination"
)

// InventoryRepository defines the interface for inventory item data operations.
// Every query is scoped to the owning user.
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *InventoryFilterParams) ([]entity.InventoryItem, int64, error)
	// ListAll returns the full item collection for a user, newest first,
	// for dashboard and report snapshots.
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.InventoryItem, error)
	GetLowStock(ctx context.Context, userID uuid.UUID) ([]entity.InventoryItem, error)
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}

// InventoryFilterParams contains filtering parameters for inventory queries
type InventoryFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	LowStock   bool
	SortBy     string
	SortOrder  string
}

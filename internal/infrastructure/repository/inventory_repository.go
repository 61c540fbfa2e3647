package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrfandu1/Inventory-Stocks/internal/domain/entity"
	domainRepo "github.com/mrfandu1/Inventory-Stocks/internal/domain/repository"
)

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) domainRepo.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).
		First(&item, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *inventoryRepository) Update(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	// Deleting a missing id is a no-op, matching the gateway contract
	return r.db.WithContext(ctx).
		Delete(&entity.InventoryItem{}, "id = ? AND user_id = ?", id, userID).Error
}

func (r *inventoryRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.InventoryFilterParams) ([]entity.InventoryItem, int64, error) {
	var items []entity.InventoryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.InventoryItem{}).
		Where("user_id = ?", userID)

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR sku ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.LowStock {
		query = query.Where("quantity < COALESCE(NULLIF(reorder_level, 0), ?)", entity.DefaultReorderLevel)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting, restricted to known columns
	sortBy := "created_at"
	switch params.SortBy {
	case "name", "quantity", "created_at", "updated_at":
		sortBy = params.SortBy
	}
	sortOrder := "DESC"
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&items).Error

	return items, total, err
}

func (r *inventoryRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *inventoryRepository) GetLowStock(ctx context.Context, userID uuid.UUID) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quantity < COALESCE(NULLIF(reorder_level, 0), ?)", userID, entity.DefaultReorderLevel).
		Order("quantity ASC").
		Find(&items).Error
	return items, err
}

func (r *inventoryRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&entity.InventoryItem{}, "user_id = ?", userID).Error
}

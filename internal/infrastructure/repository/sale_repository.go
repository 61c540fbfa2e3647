package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrfandu1/Inventory-Stocks/internal/domain/entity"
	domainRepo "github.com/mrfandu1/Inventory-Stocks/internal/domain/repository"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// CreateWithItems persists the sale, its line items and the stock update in a
// single transaction so a failed step never leaves a sale without the matching
// inventory decrement.
func (r *saleRepository) CreateWithItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem, stock *domainRepo.StockUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].SaleID = sale.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		if stock != nil {
			if stock.SubtypeQuantities != nil {
				result := tx.Model(&entity.InventoryItem{}).
					Where("id = ? AND user_id = ?", stock.ItemID, sale.UserID).
					Updates(map[string]interface{}{
						"quantity":           stock.Quantity,
						"subtype_quantities": stock.SubtypeQuantities,
					})
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return gorm.ErrRecordNotFound
				}
			} else {
				// Guarded decrement so two concurrent sales cannot both
				// drain the same stock
				result := tx.Model(&entity.InventoryItem{}).
					Where("id = ? AND user_id = ? AND quantity >= ?", stock.ItemID, sale.UserID, stock.Sold).
					Update("quantity", gorm.Expr("quantity - ?", stock.Sold))
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return domainRepo.ErrInsufficientStock
				}
			}
		}

		return nil
	})
}

func (r *saleRepository) GetWithItems(ctx context.Context, userID, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("user_id = ?", userID)

	if params.Search != "" {
		query = query.Where("customer_name ILIKE ? OR customer_email ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

// ListAllItems joins through sales to apply the owner filter, since sale
// items do not carry user_id themselves.
func (r *saleRepository) ListAllItems(ctx context.Context, userID uuid.UUID) ([]entity.SaleItem, error) {
	var items []entity.SaleItem
	err := r.db.WithContext(ctx).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.user_id = ?", userID).
		Order("sale_items.created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *saleRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Sale items reference sales, so they go first
		if err := tx.
			Where("sale_id IN (?)", tx.Model(&entity.Sale{}).Select("id").Where("user_id = ?", userID)).
			Delete(&entity.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Sale{}, "user_id = ?", userID).Error
	})
}

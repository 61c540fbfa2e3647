package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mrfandu1/Inventory-Stocks/internal/domain/entity"
	"github.com/mrfandu1/Inventory-Stocks/internal/domain/repository"
	"github.com/mrfandu1/Inventory-Stocks/pkg/apperror"
	"github.com/mrfandu1/Inventory-Stocks/pkg/pagination"
)

// InventoryService handles inventory item operations
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(inventoryRepo repository.InventoryRepository) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo}
}

// ItemInput represents the fields for creating or updating an inventory item.
// For multi-category items the per-subtype fields drive the stored total;
// for simple items only Quantity is used.
type ItemInput struct {
	Name              string
	Description       *string
	SKU               *string
	UnitPrice         *float64
	ReorderLevel      int
	IsMultiCategory   bool
	Quantity          int
	Subtypes          []string
	SubtypeQuantities map[string]int
	SubtypePrices     map[string]float64
	ImageURL          *string
}

// validateItemInput enforces the item preconditions and returns the computed
// total quantity. No mutation is attempted when validation fails.
func validateItemInput(input *ItemInput) (int, error) {
	if strings.TrimSpace(input.Name) == "" {
		return 0, apperror.NewValidationError("Please enter an item name")
	}

	if input.UnitPrice != nil && *input.UnitPrice < 0 {
		return 0, apperror.NewValidationError("Please enter a valid unit price")
	}

	var totalQuantity int
	if input.IsMultiCategory {
		if len(input.Subtypes) == 0 {
			return 0, apperror.NewValidationError("Please add at least one subtype for multi-category items")
		}
		for _, subtype := range input.Subtypes {
			if input.SubtypeQuantities[subtype] <= 0 {
				return 0, apperror.NewValidationError("Please enter valid quantities for all subtypes")
			}
			if input.SubtypePrices[subtype] < 0 {
				return 0, apperror.NewValidationError("Please enter valid prices for all subtypes")
			}
		}
		totalQuantity = entity.QuantityMap(input.SubtypeQuantities).Total()
	} else {
		totalQuantity = input.Quantity
	}

	if totalQuantity <= 0 {
		return 0, apperror.NewValidationError("Total quantity must be greater than 0")
	}

	return totalQuantity, nil
}

// applyItemInput writes the validated input onto the entity, centralizing the
// derived-quantity computation shared by the create and update paths.
func applyItemInput(item *entity.InventoryItem, input *ItemInput, totalQuantity int) {
	item.Name = strings.TrimSpace(input.Name)
	item.Description = input.Description
	item.SKU = input.SKU
	item.ReorderLevel = input.ReorderLevel
	item.IsMultiCategory = input.IsMultiCategory
	item.Quantity = totalQuantity
	item.ImageURL = input.ImageURL

	item.UnitPrice = nil
	if input.UnitPrice != nil {
		item.SetUnitPriceFromDecimal(*input.UnitPrice)
	}

	if input.IsMultiCategory {
		// Duplicate labels are stored as given; merging them is an open
		// product question.
		item.Subtypes = entity.StringList(input.Subtypes)
		item.SubtypeQuantities = entity.QuantityMap(input.SubtypeQuantities)
		prices := make(entity.PriceMap, len(input.SubtypePrices))
		for label, price := range input.SubtypePrices {
			prices[label] = int64(price * 100)
		}
		item.SubtypePrices = prices
	} else {
		item.Subtypes = entity.StringList{}
		item.SubtypeQuantities = entity.QuantityMap{}
		item.SubtypePrices = entity.PriceMap{}
	}
}

// CreateItem validates and persists a new inventory item
func (s *InventoryService) CreateItem(ctx context.Context, sess Session, input *ItemInput) (*entity.InventoryItem, error) {
	totalQuantity, err := validateItemInput(input)
	if err != nil {
		return nil, err
	}

	item := &entity.InventoryItem{UserID: sess.UserID}
	applyItemInput(item, input, totalQuantity)

	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateItem validates and applies changes to an existing item
func (s *InventoryService) UpdateItem(ctx context.Context, sess Session, itemID uuid.UUID, input *ItemInput) (*entity.InventoryItem, error) {
	totalQuantity, err := validateItemInput(input)
	if err != nil {
		return nil, err
	}

	item, err := s.inventoryRepo.GetByID(ctx, sess.UserID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Inventory item")
	}

	applyItemInput(item, input, totalQuantity)

	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteItem removes an item by identity. Deleting an id that no longer
// exists is a silent no-op.
func (s *InventoryService) DeleteItem(ctx context.Context, sess Session, itemID uuid.UUID) error {
	return s.inventoryRepo.Delete(ctx, sess.UserID, itemID)
}

// GetItem retrieves a single item owned by the session user
func (s *InventoryService) GetItem(ctx context.Context, sess Session, itemID uuid.UUID) (*entity.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, sess.UserID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Inventory item")
	}
	return item, nil
}

// ListItems lists inventory items with filtering
func (s *InventoryService) ListItems(ctx context.Context, sess Session, params *repository.InventoryFilterParams) (*pagination.PaginatedResult[entity.InventoryItem], error) {
	items, total, err := s.inventoryRepo.List(ctx, sess.UserID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// GetLowStock returns items below their reorder level, applying the default
// level for items that never set one
func (s *InventoryService) GetLowStock(ctx context.Context, sess Session) ([]entity.InventoryItem, error) {
	return s.inventoryRepo.GetLowStock(ctx, sess.UserID)
}

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mrfandu1/Inventory-Stocks/internal/domain/entity"
	"github.com/mrfandu1/Inventory-Stocks/internal/domain/enum"
	"github.com/mrfandu1/Inventory-Stocks/internal/domain/repository"
	"github.com/mrfandu1/Inventory-Stocks/pkg/apperror"
	"github.com/mrfandu1/Inventory-Stocks/pkg/pagination"
)

// SaleService handles sale recording and history
type SaleService struct {
	saleRepo      repository.SaleRepository
	inventoryRepo repository.InventoryRepository
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository, inventoryRepo repository.InventoryRepository) *SaleService {
	return &SaleService{
		saleRepo:      saleRepo,
		inventoryRepo: inventoryRepo,
	}
}

// RecordSaleInput represents a sale recording request for one inventory item
type RecordSaleInput struct {
	ItemID        uuid.UUID
	Quantity      int
	UnitPrice     float64
	Subtype       string
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
}

// RecordSale checks stock and persists the sale, its line item and the
// inventory decrement as one atomic sequence. Multi-category items are
// decremented at the selected subtype and their aggregate quantity is
// recomputed as the sum across all subtypes.
func (s *SaleService) RecordSale(ctx context.Context, sess Session, input *RecordSaleInput) (*entity.Sale, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewValidationError("Please enter a valid quantity")
	}
	if input.UnitPrice < 0 {
		return nil, apperror.NewValidationError("Please enter a valid price")
	}

	item, err := s.inventoryRepo.GetByID(ctx, sess.UserID, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Inventory item")
	}

	multiPath := item.HasSubtypes()
	if multiPath {
		if input.Subtype == "" {
			return nil, apperror.NewValidationError("Please select a subtype")
		}
		if !item.HasSubtype(input.Subtype) {
			return nil, apperror.NewValidationError("Unknown subtype for this item")
		}
	}

	available := item.AvailableStock(input.Subtype)
	if input.Quantity > available {
		return nil, apperror.NewInsufficientStockError(available)
	}

	unitPriceCents := int64(input.UnitPrice * 100)
	totalCents := entity.LineTotal(input.Quantity, unitPriceCents)

	sale := &entity.Sale{
		UserID:        sess.UserID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		TotalAmount:   totalCents,
		PaymentMethod: "cash",
		Status:        enum.SaleStatusCompleted,
	}

	saleItem := entity.SaleItem{
		InventoryItemID: item.ID,
		Quantity:        input.Quantity,
		UnitPrice:       unitPriceCents,
		TotalPrice:      totalCents,
	}
	if multiPath {
		subtype := input.Subtype
		saleItem.Subtype = &subtype
	}

	stock := &repository.StockUpdate{ItemID: item.ID, Sold: input.Quantity}
	if multiPath {
		updated := make(entity.QuantityMap, len(item.SubtypeQuantities))
		for label, qty := range item.SubtypeQuantities {
			updated[label] = qty
		}
		updated[input.Subtype] -= input.Quantity
		stock.SubtypeQuantities = updated
		stock.Quantity = updated.Total()
	}

	if err := s.saleRepo.CreateWithItems(ctx, sale, []entity.SaleItem{saleItem}, stock); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			// A concurrent sale drained the stock between the read above
			// and the write
			return nil, apperror.NewInsufficientStockError(available)
		}
		return nil, err
	}

	sale.Items = []entity.SaleItem{saleItem}
	return sale, nil
}

// GetSale retrieves a sale with its line items
func (s *SaleService) GetSale(ctx context.Context, sess Session, saleID uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, sess.UserID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists the sale history with filtering, newest first
func (s *SaleService) ListSales(ctx context.Context, sess Session, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, sess.UserID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ClearAllData removes every sale, sale item and inventory item belonging to
// the session user. Sales go first since sale items reference them.
func (s *SaleService) ClearAllData(ctx context.Context, sess Session) error {
	if err := s.saleRepo.DeleteAllByUser(ctx, sess.UserID); err != nil {
		return err
	}
	return s.inventoryRepo.DeleteAllByUser(ctx, sess.UserID)
}

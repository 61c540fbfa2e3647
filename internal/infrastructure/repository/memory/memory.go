// Package memory provides map-backed repository implementations used by
// service tests. All operations are guarded by a single mutex so a sale and
// its stock update stay atomic, mirroring the database transaction.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrfandu1/Inventory-Stocks/internal/domain/entity"
	"github.com/mrfandu1/Inventory-Stocks/internal/domain/repository"
)

var ErrItemNotFound = errors.New("inventory item not found")

// Store holds the in-memory state shared by the repository views
type Store struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	items     map[uuid.UUID]*entity.InventoryItem
	sales     []*entity.Sale
	saleItems []*entity.SaleItem
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		users: make(map[uuid.UUID]*entity.User),
		items: make(map[uuid.UUID]*entity.InventoryItem),
	}
}

// Inventory returns the store's inventory repository view
func (s *Store) Inventory() repository.InventoryRepository {
	return &inventoryRepo{store: s}
}

// Sales returns the store's sale repository view
func (s *Store) Sales() repository.SaleRepository {
	return &saleRepo{store: s}
}

// Users returns the store's user repository view
func (s *Store) Users() repository.UserRepository {
	return &userRepo{store: s}
}

type inventoryRepo struct {
	store *Store
}

func (r *inventoryRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	clone := *item
	r.store.items[item.ID] = &clone
	return nil
}

func (r *inventoryRepo) GetByID(_ context.Context, userID, id uuid.UUID) (*entity.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, exists := r.store.items[id]
	if !exists || item.UserID != userID {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

func (r *inventoryRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.items[item.ID]; !exists {
		return ErrItemNotFound
	}
	item.UpdatedAt = time.Now()
	clone := *item
	r.store.items[item.ID] = &clone
	return nil
}

func (r *inventoryRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, exists := r.store.items[id]
	if exists && item.UserID == userID {
		delete(r.store.items, id)
	}
	return nil
}

func (r *inventoryRepo) List(_ context.Context, userID uuid.UUID, params *repository.InventoryFilterParams) ([]entity.InventoryItem, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	matched := r.collect(userID, func(item *entity.InventoryItem) bool {
		if params.LowStock && !item.IsLowStock() {
			return false
		}
		if params.Search != "" {
			search := strings.ToLower(params.Search)
			name := strings.ToLower(item.Name)
			sku := ""
			if item.SKU != nil {
				sku = strings.ToLower(*item.SKU)
			}
			if !strings.Contains(name, search) && !strings.Contains(sku, search) {
				return false
			}
		}
		return true
	})

	total := int64(len(matched))

	params.Pagination.Validate()
	offset := params.Pagination.Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}

	return matched[offset:end], total, nil
}

func (r *inventoryRepo) ListAll(_ context.Context, userID uuid.UUID) ([]entity.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.collect(userID, func(*entity.InventoryItem) bool { return true }), nil
}

func (r *inventoryRepo) GetLowStock(_ context.Context, userID uuid.UUID) ([]entity.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.collect(userID, func(item *entity.InventoryItem) bool {
		return item.IsLowStock()
	}), nil
}

func (r *inventoryRepo) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, item := range r.store.items {
		if item.UserID == userID {
			delete(r.store.items, id)
		}
	}
	return nil
}

// collect returns copies of matching items, newest first. Caller must hold
// the store lock.
func (r *inventoryRepo) collect(userID uuid.UUID, match func(*entity.InventoryItem) bool) []entity.InventoryItem {
	items := make([]entity.InventoryItem, 0)
	for _, item := range r.store.items {
		if item.UserID == userID && match(item) {
			items = append(items, *item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

type saleRepo struct {
	store *Store
}

func (r *saleRepo) CreateWithItems(_ context.Context, sale *entity.Sale, items []entity.SaleItem, stock *repository.StockUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, exists := r.store.items[stock.ItemID]
	if !exists || item.UserID != sale.UserID {
		return ErrItemNotFound
	}
	if stock.SubtypeQuantities == nil && item.Quantity < stock.Sold {
		return repository.ErrInsufficientStock
	}

	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	now := time.Now()
	sale.CreatedAt = now
	sale.UpdatedAt = now

	saleClone := *sale
	r.store.sales = append(r.store.sales, &saleClone)

	for i := range items {
		items[i].SaleID = sale.ID
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].CreatedAt = now
		itemClone := items[i]
		r.store.saleItems = append(r.store.saleItems, &itemClone)
	}

	if stock.SubtypeQuantities != nil {
		item.SubtypeQuantities = stock.SubtypeQuantities
		item.Quantity = stock.Quantity
	} else {
		item.Quantity -= stock.Sold
	}
	item.UpdatedAt = now

	return nil
}

func (r *saleRepo) GetWithItems(_ context.Context, userID, id uuid.UUID) (*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, sale := range r.store.sales {
		if sale.ID == id && sale.UserID == userID {
			clone := *sale
			clone.Items = r.itemsForSale(id)
			return &clone, nil
		}
	}
	return nil, nil
}

// itemsForSale returns copies of the sale's line items. Caller must hold the
// store lock.
func (r *saleRepo) itemsForSale(saleID uuid.UUID) []entity.SaleItem {
	items := make([]entity.SaleItem, 0)
	for _, item := range r.store.saleItems {
		if item.SaleID == saleID {
			items = append(items, *item)
		}
	}
	return items
}

func (r *saleRepo) List(_ context.Context, userID uuid.UUID, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	matched := make([]entity.Sale, 0)
	for i := len(r.store.sales) - 1; i >= 0; i-- {
		sale := r.store.sales[i]
		if sale.UserID != userID {
			continue
		}
		if params.Status != nil && sale.Status != *params.Status {
			continue
		}
		if params.StartDate != nil && sale.CreatedAt.Before(*params.StartDate) {
			continue
		}
		if params.EndDate != nil && sale.CreatedAt.After(*params.EndDate) {
			continue
		}
		if params.Search != "" {
			search := strings.ToLower(params.Search)
			name := ""
			if sale.CustomerName != nil {
				name = strings.ToLower(*sale.CustomerName)
			}
			if !strings.Contains(name, search) {
				continue
			}
		}
		matched = append(matched, *sale)
	}

	total := int64(len(matched))

	params.Pagination.Validate()
	offset := params.Pagination.Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}

	return matched[offset:end], total, nil
}

func (r *saleRepo) ListAll(_ context.Context, userID uuid.UUID) ([]entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	sales := make([]entity.Sale, 0)
	for i := len(r.store.sales) - 1; i >= 0; i-- {
		if r.store.sales[i].UserID == userID {
			sales = append(sales, *r.store.sales[i])
		}
	}
	return sales, nil
}

func (r *saleRepo) ListAllItems(_ context.Context, userID uuid.UUID) ([]entity.SaleItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	owned := make(map[uuid.UUID]bool)
	for _, sale := range r.store.sales {
		if sale.UserID == userID {
			owned[sale.ID] = true
		}
	}

	items := make([]entity.SaleItem, 0)
	for i := len(r.store.saleItems) - 1; i >= 0; i-- {
		if owned[r.store.saleItems[i].SaleID] {
			items = append(items, *r.store.saleItems[i])
		}
	}
	return items, nil
}

func (r *saleRepo) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	owned := make(map[uuid.UUID]bool)
	remaining := r.store.sales[:0]
	for _, sale := range r.store.sales {
		if sale.UserID == userID {
			owned[sale.ID] = true
		} else {
			remaining = append(remaining, sale)
		}
	}
	r.store.sales = remaining

	remainingItems := r.store.saleItems[:0]
	for _, item := range r.store.saleItems {
		if !owned[item.SaleID] {
			remainingItems = append(remainingItems, item)
		}
	}
	r.store.saleItems = remainingItems

	return nil
}

type userRepo struct {
	store *Store
}

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.store.users[user.ID] = &clone
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, exists := r.store.users[id]
	if !exists {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.users[user.ID]; !exists {
		return errors.New("user not found")
	}
	user.UpdatedAt = time.Now()
	clone := *user
	r.store.users[user.ID] = &clone
	return nil
}

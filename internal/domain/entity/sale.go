package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrfandu1/Inventory-Stocks/internal/domain/enum"
)

// Sale represents a recorded sale transaction
type Sale struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerName   *string         `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerEmail  *string         `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerPhone  *string         `gorm:"size:50" json:"customer_phone,omitempty"`
	TotalAmount    int64           `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxAmount      int64           `gorm:"default:0" json:"-"`          // Stored in cents, excluded from JSON
	DiscountAmount int64           `gorm:"default:0" json:"-"`          // Stored in cents, excluded from JSON
	PaymentMethod  string          `gorm:"size:50" json:"payment_method"`
	Status         enum.SaleStatus `gorm:"default:0" json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	User  User       `gorm:"foreignKey:UserID" json:"-"`
	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		TotalAmount    float64 `json:"total_amount"`
		TaxAmount      float64 `json:"tax_amount"`
		DiscountAmount float64 `json:"discount_amount"`
	}{
		Alias:          Alias(s),
		TotalAmount:    float64(s.TotalAmount) / 100,
		TaxAmount:      float64(s.TaxAmount) / 100,
		DiscountAmount: float64(s.DiscountAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// GetTotalAmountDecimal returns the total as a decimal
func (s *Sale) GetTotalAmountDecimal() float64 {
	return float64(s.TotalAmount) / 100
}

// SaleItem represents a line item within a sale, referencing one inventory
// item and, for multi-category items, which subtype was sold.
type SaleItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID          uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	InventoryItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"inventory_item_id"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	UnitPrice       int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	TotalPrice      int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Subtype         *string   `gorm:"size:255" json:"subtype,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	// Relationships
	Sale          Sale          `gorm:"foreignKey:SaleID" json:"-"`
	InventoryItem InventoryItem `gorm:"foreignKey:InventoryItemID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice  float64 `json:"unit_price"`
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(si),
		UnitPrice:  float64(si.UnitPrice) / 100,
		TotalPrice: float64(si.TotalPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// LineTotal computes a line's total price in cents. Derived once at creation
// time and never recomputed afterwards.
func LineTotal(quantity int, unitPriceCents int64) int64 {
	return int64(quantity) * unitPriceCents
}

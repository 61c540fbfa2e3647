package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList is an ordered list of labels stored as a JSONB column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			b = []byte(s)
		} else {
			return errors.New("unsupported type for StringList")
		}
	}
	return json.Unmarshal(b, l)
}

// GormDataType tells GORM to use a JSONB column
func (StringList) GormDataType() string {
	return "jsonb"
}

// QuantityMap maps a subtype label to its stock count, stored as JSONB.
type QuantityMap map[string]int

func (m QuantityMap) Value() (driver.Value, error) {
	if m == nil {
		m = QuantityMap{}
	}
	return json.Marshal(m)
}

func (m *QuantityMap) Scan(value interface{}) error {
	if value == nil {
		*m = QuantityMap{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			b = []byte(s)
		} else {
			return errors.New("unsupported type for QuantityMap")
		}
	}
	return json.Unmarshal(b, m)
}

// GormDataType tells GORM to use a JSONB column
func (QuantityMap) GormDataType() string {
	return "jsonb"
}

// Total returns the summed quantity across all subtypes
func (m QuantityMap) Total() int {
	total := 0
	for _, qty := range m {
		total += qty
	}
	return total
}

// PriceMap maps a subtype label to its unit price in cents, stored as JSONB.
type PriceMap map[string]int64

func (m PriceMap) Value() (driver.Value, error) {
	if m == nil {
		m = PriceMap{}
	}
	return json.Marshal(m)
}

func (m *PriceMap) Scan(value interface{}) error {
	if value == nil {
		*m = PriceMap{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			b = []byte(s)
		} else {
			return errors.New("unsupported type for PriceMap")
		}
	}
	return json.Unmarshal(b, m)
}

// GormDataType tells GORM to use a JSONB column
func (PriceMap) GormDataType() string {
	return "jsonb"
}

// InventoryItem represents a stocked item. Multi-category items track stock
// and price per subtype label; quantity then holds the summed total.
type InventoryItem struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name              string         `gorm:"size:255;not null" json:"name"`
	Description       *string        `gorm:"type:text" json:"description,omitempty"`
	SKU               *string        `gorm:"size:100" json:"sku,omitempty"`
	Quantity          int            `gorm:"default:0" json:"quantity"`
	UnitPrice         *int64         `json:"unit_price,omitempty"` // Stored in cents
	ReorderLevel      int            `gorm:"default:0" json:"reorder_level"`
	IsMultiCategory   bool           `gorm:"default:false" json:"is_multi_category"`
	Subtypes          StringList     `gorm:"type:jsonb" json:"subtypes"`
	SubtypeQuantities QuantityMap    `gorm:"type:jsonb" json:"subtype_quantities"`
	SubtypePrices     PriceMap       `gorm:"type:jsonb" json:"subtype_prices"`
	ImageURL          *string        `gorm:"size:255" json:"image_url,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new inventory item
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// DefaultReorderLevel applies to items created without an explicit reorder
// level.
const DefaultReorderLevel = 10

// IsLowStock reports whether the item's stock has fallen below its reorder
// level. Items without an explicit level use DefaultReorderLevel.
func (i *InventoryItem) IsLowStock() bool {
	level := i.ReorderLevel
	if level <= 0 {
		level = DefaultReorderLevel
	}
	return i.Quantity < level
}

// HasSubtypes reports whether the item sells through per-subtype stock
func (i *InventoryItem) HasSubtypes() bool {
	return i.IsMultiCategory && len(i.Subtypes) > 0
}

// AvailableStock returns the sellable stock for the given subtype, or the
// flat item quantity when the item is not tracked per subtype.
func (i *InventoryItem) AvailableStock(subtype string) int {
	if i.HasSubtypes() && subtype != "" {
		return i.SubtypeQuantities[subtype]
	}
	return i.Quantity
}

// HasSubtype reports whether label is one of the item's declared subtypes
func (i *InventoryItem) HasSubtype(label string) bool {
	for _, s := range i.Subtypes {
		if s == label {
			return true
		}
	}
	return false
}

// GetUnitPriceDecimal returns the unit price as a decimal (for display)
func (i *InventoryItem) GetUnitPriceDecimal() *float64 {
	if i.UnitPrice == nil {
		return nil
	}
	price := float64(*i.UnitPrice) / 100
	return &price
}

// SetUnitPriceFromDecimal sets the unit price from a decimal value
func (i *InventoryItem) SetUnitPriceFromDecimal(price float64) {
	cents := int64(price * 100)
	i.UnitPrice = &cents
}

// InventoryItemJSON is a helper struct for JSON marshaling with decimal prices
type InventoryItemJSON struct {
	ID                uuid.UUID          `json:"id"`
	UserID            uuid.UUID          `json:"user_id"`
	Name              string             `json:"name"`
	Description       *string            `json:"description,omitempty"`
	SKU               *string            `json:"sku,omitempty"`
	Quantity          int                `json:"quantity"`
	UnitPrice         *float64           `json:"unit_price,omitempty"` // Decimal value for JSON
	ReorderLevel      int                `json:"reorder_level"`
	IsMultiCategory   bool               `json:"is_multi_category"`
	Subtypes          []string           `json:"subtypes"`
	SubtypeQuantities map[string]int     `json:"subtype_quantities"`
	SubtypePrices     map[string]float64 `json:"subtype_prices"`
	ImageURL          *string            `json:"image_url,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// MarshalJSON converts InventoryItem to JSON with decimal prices
func (i InventoryItem) MarshalJSON() ([]byte, error) {
	subtypePrices := make(map[string]float64, len(i.SubtypePrices))
	for label, cents := range i.SubtypePrices {
		subtypePrices[label] = float64(cents) / 100
	}
	subtypes := i.Subtypes
	if subtypes == nil {
		subtypes = StringList{}
	}
	quantities := i.SubtypeQuantities
	if quantities == nil {
		quantities = QuantityMap{}
	}
	return json.Marshal(InventoryItemJSON{
		ID:                i.ID,
		UserID:            i.UserID,
		Name:              i.Name,
		Description:       i.Description,
		SKU:               i.SKU,
		Quantity:          i.Quantity,
		UnitPrice:         i.GetUnitPriceDecimal(),
		ReorderLevel:      i.ReorderLevel,
		IsMultiCategory:   i.IsMultiCategory,
		Subtypes:          subtypes,
		SubtypeQuantities: quantities,
		SubtypePrices:     subtypePrices,
		ImageURL:          i.ImageURL,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	})
}

package request

// SaveItemRequest represents a create or update request for an inventory
// item. Subtype fields only apply when is_multi_category is true.
type SaveItemRequest struct {
	Name              string             `json:"name" binding:"required"`
	Description       *string            `json:"description"`
	SKU               *string            `json:"sku"`
	Quantity          int                `json:"quantity" binding:"omitempty,min=0"`
	UnitPrice         *float64           `json:"unit_price"`
	ReorderLevel      int                `json:"reorder_level" binding:"omitempty,min=0"`
	IsMultiCategory   bool               `json:"is_multi_category"`
	Subtypes          []string           `json:"subtypes"`
	SubtypeQuantities map[string]int     `json:"subtype_quantities"`
	SubtypePrices     map[string]float64 `json:"subtype_prices"`
	ImageURL          *string            `json:"image_url"`
}

// InventoryFilterRequest represents inventory list query parameters
type InventoryFilterRequest struct {
	Page      int    `form:"page,default=1"`
	PerPage   int    `form:"per_page,default=15"`
	Search    string `form:"search"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

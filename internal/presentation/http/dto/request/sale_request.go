package request

// RecordSaleRequest represents a sale recording request
type RecordSaleRequest struct {
	ItemID        string  `json:"item_id" binding:"required,uuid"`
	Quantity      int     `json:"quantity" binding:"required"`
	UnitPrice     float64 `json:"unit_price"`
	Subtype       string  `json:"subtype"`
	CustomerName  *string `json:"customer_name"`
	CustomerEmail *string `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone *string `json:"customer_phone"`
}

// SaleFilterRequest represents sale history query parameters
type SaleFilterRequest struct {
	Page      int    `form:"page,default=1"`
	PerPage   int    `form:"per_page,default=15"`
	Search    string `form:"search"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrfandu1/Inventory-Stocks/internal/application/service"
	"github.com/mrfandu1/Inventory-Stocks/internal/domain/enum"
	"github.com/mrfandu1/Inventory-Stocks/internal/domain/repository"
	"github.com/mrfandu1/Inventory-Stocks/internal/presentation/http/dto/request"
	"github.com/mrfandu1/Inventory-Stocks/internal/presentation/http/dto/response"
	"github.com/mrfandu1/Inventory-Stocks/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Record handles recording a sale
func (h *SaleHandler) Record(c *gin.Context) {
	sess := GetSession(c)
	if sess == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	sale, err := h.saleService.RecordSale(c.Request.Context(), *sess, &service.RecordSaleInput{
		ItemID:        itemID,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		Subtype:       req.Subtype,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", sale)
}

// List handles listing sale history
func (h *SaleHandler) List(c *gin.Context) {
	sess := GetSession(c)
	if sess == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search: filter.Search,
	}

	if filter.Status != "" {
		status, ok := enum.ParseSaleStatus(filter.Status)
		if !ok {
			response.BadRequest(c, "Invalid status. Must be one of: completed, pending, cancelled")
			return
		}
		params.Status = &status
	}

	if filter.StartDate != "" {
		if start, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			params.StartDate = &start
		}
	}

	if filter.EndDate != "" {
		if end, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			// Include the whole end day
			end = end.Add(24*time.Hour - time.Nanosecond)
			params.EndDate = &end
		}
	}

	result, err := h.saleService.ListSales(c.Request.Context(), *sess, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a single sale with its line items
func (h *SaleHandler) Get(c *gin.Context) {
	sess := GetSession(c)
	if sess == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), *sess, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// ClearData handles erasing all inventory and sale data for the user
func (h *SaleHandler) ClearData(c *gin.Context) {
	sess := GetSession(c)
	if sess == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.saleService.ClearAllData(c.Request.Context(), *sess); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "All data cleared successfully", nil)
}

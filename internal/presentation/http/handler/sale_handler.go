package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/application/service"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	"github.com/jsalazar/tiendita-api/internal/domain/repository"
	"github.com/jsalazar/tiendita-api/internal/presentation/http/dto/response"
	"github.com/jsalazar/tiendita-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles creating a sale
func (h *SaleHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Total            float64 `json:"total" binding:"required"`
		PaymentMethod    int     `json:"payment_method"`
		SaleDate         string  `json:"sale_date"`
		InstallmentCount int     `json:"installment_count"`
		DownPayment      float64 `json:"down_payment"`
		InterestRate     float64 `json:"interest_rate"`
		InterestAmount   float64 `json:"interest_amount"`
		Note             string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateSaleInput{
		UserID:           *userID,
		Total:            req.Total,
		PaymentMethod:    enum.PaymentMethod(req.PaymentMethod),
		InstallmentCount: req.InstallmentCount,
		DownPayment:      req.DownPayment,
		InterestRate:     req.InterestRate,
		InterestAmount:   req.InterestAmount,
		Note:             req.Note,
	}
	if req.SaleDate != "" {
		saleDate, err := time.Parse("2006-01-02", req.SaleDate)
		if err != nil {
			response.BadRequest(c, "Invalid sale date, expected YYYY-MM-DD")
			return
		}
		input.SaleDate = &saleDate
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// Get handles getting a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// List handles listing sales with filtering
func (h *SaleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		StartDate: parseDateQuery(c, "start_date"),
		EndDate:   parseDateQuery(c, "end_date"),
	}

	if methodStr := c.Query("payment_method"); methodStr != "" {
		if methodInt, err := strconv.Atoi(methodStr); err == nil {
			method := enum.PaymentMethod(methodInt)
			params.PaymentMethod = &method
		}
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.SaleStatus(statusInt)
			params.Status = &status
		}
	}

	if creditStatusStr := c.Query("credit_status"); creditStatusStr != "" {
		if creditStatusInt, err := strconv.Atoi(creditStatusStr); err == nil {
			creditStatus := enum.CreditStatus(creditStatusInt)
			params.CreditStatus = &creditStatus
		}
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Void handles voiding a sale
func (h *SaleHandler) Void(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.VoidSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale voided successfully", sale)
}

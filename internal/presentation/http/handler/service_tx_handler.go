package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/application/service"
	"github.com/jsalazar/tiendita-api/internal/domain/repository"
	"github.com/jsalazar/tiendita-api/internal/presentation/http/dto/response"
	"github.com/jsalazar/tiendita-api/pkg/pagination"
)

// ServiceTxHandler handles service transaction HTTP requests
type ServiceTxHandler struct {
	serviceTxService *service.ServiceTxService
}

// NewServiceTxHandler creates a new service transaction handler
func NewServiceTxHandler(serviceTxService *service.ServiceTxService) *ServiceTxHandler {
	return &ServiceTxHandler{serviceTxService: serviceTxService}
}

// Create handles creating a service transaction
func (h *ServiceTxHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Amount      float64 `json:"amount" binding:"required"`
		TxDate      string  `json:"tx_date"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateServiceTxInput{
		UserID:      *userID,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.TxDate != "" {
		txDate, err := time.Parse("2006-01-02", req.TxDate)
		if err != nil {
			response.BadRequest(c, "Invalid transaction date, expected YYYY-MM-DD")
			return
		}
		input.TxDate = &txDate
	}

	tx, err := h.serviceTxService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service transaction created successfully", tx)
}

// Delete handles deleting a service transaction
func (h *ServiceTxHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.serviceTxService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service transaction deleted successfully", nil)
}

// List handles listing service transactions with filtering
func (h *ServiceTxHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ServiceTxFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		StartDate: parseDateQuery(c, "start_date"),
		EndDate:   parseDateQuery(c, "end_date"),
	}

	result, err := h.serviceTxService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Service transactions retrieved successfully", result)
}

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

// RegisterHandler handles cash register HTTP requests
type RegisterHandler struct {
	registerService *service.RegisterService
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(registerService *service.RegisterService) *RegisterHandler {
	return &RegisterHandler{registerService: registerService}
}

// Open handles opening today's register session
func (h *RegisterHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		OpeningFloat float64 `json:"opening_float"`
		Note         string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	register, err := h.registerService.Open(c.Request.Context(), &service.OpenRegisterInput{
		OpeningFloat: req.OpeningFloat,
		OperatorID:   *userID,
		Note:         req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Register opened successfully", register)
}

// Close handles closing an open register session
func (h *RegisterHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid register ID")
		return
	}

	var req struct {
		CountedCash *float64 `json:"counted_cash" binding:"required"`
		Note        string   `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	register, err := h.registerService.Close(c.Request.Context(), id, &service.CloseRegisterInput{
		CountedCash: *req.CountedCash,
		Note:        req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Register closed successfully", register)
}

// Edit handles correcting a register session
func (h *RegisterHandler) Edit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid register ID")
		return
	}

	var req struct {
		OpeningFloat *float64 `json:"opening_float"`
		CountedCash  *float64 `json:"counted_cash"`
		OpenedAt     *string  `json:"opened_at"`
		ClosedAt     *string  `json:"closed_at"`
		Note         *string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	patch := &service.EditRegisterInput{
		OpeningFloat: req.OpeningFloat,
		CountedCash:  req.CountedCash,
		Note:         req.Note,
	}
	if req.OpenedAt != nil {
		openedAt, err := time.Parse(time.RFC3339, *req.OpenedAt)
		if err != nil {
			response.BadRequest(c, "Invalid opened_at, expected RFC 3339 timestamp")
			return
		}
		patch.OpenedAt = &openedAt
	}
	if req.ClosedAt != nil {
		closedAt, err := time.Parse(time.RFC3339, *req.ClosedAt)
		if err != nil {
			response.BadRequest(c, "Invalid closed_at, expected RFC 3339 timestamp")
			return
		}
		patch.ClosedAt = &closedAt
	}

	register, err := h.registerService.Edit(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Register updated successfully", register)
}

// Current handles getting today's register status with live totals
func (h *RegisterHandler) Current(c *gin.Context) {
	status, err := h.registerService.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Register status retrieved successfully", status)
}

// Get handles getting a single register session
func (h *RegisterHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid register ID")
		return
	}

	register, err := h.registerService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Register retrieved successfully", register)
}

// List handles listing register sessions with filtering
func (h *RegisterHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.RegisterFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		StartDate: parseDateQuery(c, "start_date"),
		EndDate:   parseDateQuery(c, "end_date"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.RegisterStatus(statusInt)
			params.Status = &status
		}
	}

	result, err := h.registerService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Registers retrieved successfully", result)
}

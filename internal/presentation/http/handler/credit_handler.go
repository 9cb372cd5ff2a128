package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/application/service"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	"github.com/jsalazar/tiendita-api/internal/presentation/http/dto/response"
)

// CreditHandler handles installment payment HTTP requests
type CreditHandler struct {
	creditService *service.CreditService
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(creditService *service.CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

// RecordPayment handles recording an installment payment against a credit sale
func (h *CreditHandler) RecordPayment(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req struct {
		InstallmentNumber int     `json:"installment_number" binding:"required"`
		Amount            float64 `json:"amount" binding:"required"`
		PaymentDate       string  `json:"payment_date"`
		PaymentMethod     int     `json:"payment_method"`
		Note              string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		paymentDate, err = time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			response.BadRequest(c, "Invalid payment date, expected YYYY-MM-DD")
			return
		}
	}

	payment, err := h.creditService.RecordInstallmentPayment(c.Request.Context(), &service.RecordPaymentInput{
		SaleID:            saleID,
		InstallmentNumber: req.InstallmentNumber,
		Amount:            req.Amount,
		PaymentDate:       paymentDate,
		PaymentMethod:     enum.PaymentMethod(req.PaymentMethod),
		Note:              req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// ListPayments handles listing the payments of a credit sale
func (h *CreditHandler) ListPayments(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	payments, err := h.creditService.ListPayments(c.Request.Context(), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// GetPayment handles getting a single payment
func (h *CreditHandler) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.creditService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}

// UpdatePayment handles correcting an existing payment
func (h *CreditHandler) UpdatePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	var req struct {
		Amount        *float64 `json:"amount"`
		PaymentDate   *string  `json:"payment_date"`
		PaymentMethod *int     `json:"payment_method"`
		Note          *string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	patch := &service.UpdatePaymentInput{
		Amount: req.Amount,
		Note:   req.Note,
	}
	if req.PaymentDate != nil {
		paymentDate, err := time.Parse("2006-01-02", *req.PaymentDate)
		if err != nil {
			response.BadRequest(c, "Invalid payment date, expected YYYY-MM-DD")
			return
		}
		patch.PaymentDate = &paymentDate
	}
	if req.PaymentMethod != nil {
		method := enum.PaymentMethod(*req.PaymentMethod)
		patch.PaymentMethod = &method
	}

	payment, err := h.creditService.UpdateInstallmentPayment(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment updated successfully", payment)
}

// DeletePayment handles removing a payment and rebuilding the sale's progress
func (h *CreditHandler) DeletePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := h.creditService.DeleteInstallmentPayment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment deleted successfully", nil)
}

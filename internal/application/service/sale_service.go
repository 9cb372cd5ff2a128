package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/entity"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	"github.com/jsalazar/tiendita-api/internal/domain/repository"
	"github.com/jsalazar/tiendita-api/pkg/apperror"
	"github.com/jsalazar/tiendita-api/pkg/pagination"
)

// SaleService handles sale lifecycle operations. Sales are the source rows
// behind both the credit ledger and the daily income aggregation.
type SaleService struct {
	saleRepo repository.SaleRepository
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// CreateSaleInput represents the create sale input. The credit fields apply
// only when the payment method is credit.
type CreateSaleInput struct {
	UserID           uuid.UUID
	Total            float64
	PaymentMethod    enum.PaymentMethod
	SaleDate         *time.Time
	InstallmentCount int
	DownPayment      float64
	InterestRate     float64
	InterestAmount   float64
	Note             string
}

// CreateSale validates and persists a new sale. A credit sale starts with
// its down payment already counted as paid and its status derived from it.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	total := toCents(input.Total)
	if total <= 0 {
		return nil, apperror.NewInvalidInputError("sale total must be greater than zero")
	}

	saleDate := dateOnly(time.Now())
	if input.SaleDate != nil {
		saleDate = dateOnly(*input.SaleDate)
		if saleDate.After(dateOnly(time.Now())) {
			return nil, apperror.NewInvalidInputError("sale date cannot be in the future")
		}
	}

	sale := &entity.Sale{
		UserID:        input.UserID,
		SaleDate:      saleDate,
		Total:         total,
		PaymentMethod: input.PaymentMethod,
		Status:        enum.SaleStatusCompleted,
		Note:          input.Note,
	}

	if input.PaymentMethod == enum.PaymentMethodCredit {
		if input.InstallmentCount < 1 {
			return nil, apperror.NewInvalidInputError("a credit sale needs at least one installment")
		}
		downPayment := toCents(input.DownPayment)
		if downPayment < 0 {
			return nil, apperror.NewInvalidInputError("down payment cannot be negative")
		}
		if downPayment > total {
			return nil, apperror.NewInvalidInputError("down payment cannot exceed the sale total")
		}
		if input.InterestRate < 0 || input.InterestAmount < 0 {
			return nil, apperror.NewInvalidInputError("interest cannot be negative")
		}

		sale.InstallmentCount = input.InstallmentCount
		sale.DownPayment = downPayment
		sale.InterestRate = input.InterestRate
		sale.InterestAmount = toCents(input.InterestAmount)
		sale.AmountPaid = downPayment
		sale.CreditStatus = deriveCreditStatus(downPayment, downPayment, sale.TotalWithInterest())
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, apperror.WrapStoreError(err)
	}

	return sale, nil
}

// VoidSale marks a sale as voided. A voided sale accepts no further payments
// and is excluded from every income aggregate.
func (s *SaleService) VoidSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleStatusVoided {
		return nil, apperror.NewInvalidStateError("sale is already voided")
	}

	if err := s.saleRepo.UpdateStatus(ctx, id, enum.SaleStatusVoided); err != nil {
		return nil, apperror.WrapStoreError(err)
	}

	sale.Status = enum.SaleStatusVoided
	return sale, nil
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/entity"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	"github.com/jsalazar/tiendita-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	// UpdateCreditProgress persists only the derived repayment fields, so
	// concurrent writers never clobber each other's unrelated columns.
	UpdateCreditProgress(ctx context.Context, id uuid.UUID, amountPaid int64, status enum.CreditStatus) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListCompletedByDate returns all completed sales whose sale date falls on
	// the given calendar day. Voided sales are excluded.
	ListCompletedByDate(ctx context.Context, day time.Time) ([]entity.Sale, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	PaymentMethod *enum.PaymentMethod
	Status        *enum.SaleStatus
	CreditStatus  *enum.CreditStatus
	StartDate     *time.Time
	EndDate       *time.Time
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/entity"
)

// CreditPaymentRepository defines the interface for installment payment data
// operations. The store enforces uniqueness of (sale_id, installment_number).
type CreditPaymentRepository interface {
	Create(ctx context.Context, payment *entity.CreditPayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CreditPayment, error)
	GetBySaleAndInstallment(ctx context.Context, saleID uuid.UUID, installmentNumber int) (*entity.CreditPayment, error)
	Update(ctx context.Context, payment *entity.CreditPayment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.CreditPayment, error)
	// ListByPaymentDate returns all payments collected on the given calendar
	// day, regardless of when the originating sale happened.
	ListByPaymentDate(ctx context.Context, day time.Time) ([]entity.CreditPayment, error)
}

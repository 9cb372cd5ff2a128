package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/entity"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	"github.com/jsalazar/tiendita-api/internal/domain/repository"
	"github.com/jsalazar/tiendita-api/pkg/apperror"
)

// CreditService owns the repayment lifecycle of credit sales: it validates
// and records installment payments, corrects or deletes them, and keeps the
// sale's derived fields consistent with the full payment history. Derived
// values are always recomputed from the stored rows, never adjusted in place.
type CreditService struct {
	saleRepo    repository.SaleRepository
	paymentRepo repository.CreditPaymentRepository
}

// NewCreditService creates a new credit ledger service
func NewCreditService(
	saleRepo repository.SaleRepository,
	paymentRepo repository.CreditPaymentRepository,
) *CreditService {
	return &CreditService{
		saleRepo:    saleRepo,
		paymentRepo: paymentRepo,
	}
}

// RecordPaymentInput represents a new installment payment
type RecordPaymentInput struct {
	SaleID            uuid.UUID
	InstallmentNumber int
	Amount            float64
	PaymentDate       time.Time
	PaymentMethod     enum.PaymentMethod
	Note              string
}

// UpdatePaymentInput represents a correction to an existing payment. The
// installment number and the sale are not reassignable.
type UpdatePaymentInput struct {
	Amount        *float64
	PaymentDate   *time.Time
	PaymentMethod *enum.PaymentMethod
	Note          *string
}

// RecordInstallmentPayment validates and persists one installment settlement,
// then recomputes the sale's paid amount and credit status from the complete
// payment history.
func (s *CreditService) RecordInstallmentPayment(ctx context.Context, input *RecordPaymentInput) (*entity.CreditPayment, error) {
	sale, err := s.saleRepo.GetByID(ctx, input.SaleID)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	if !sale.IsCredit() {
		return nil, apperror.NewInvalidStateError("sale was not settled on credit")
	}
	if sale.Status == enum.SaleStatusVoided {
		return nil, apperror.NewInvalidStateError("a voided sale accepts no payments")
	}

	if input.InstallmentNumber < 1 || input.InstallmentNumber > sale.InstallmentCount {
		return nil, apperror.NewInvalidInputError(
			fmt.Sprintf("installment number must be between 1 and %d", sale.InstallmentCount))
	}

	existing, err := s.paymentRepo.GetBySaleAndInstallment(ctx, sale.ID, input.InstallmentNumber)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError(
			fmt.Sprintf("installment %d is already paid for this sale", input.InstallmentNumber))
	}

	// Outstanding balance from the canonical fields and the stored rows; a
	// cached copy of either could be stale.
	totalWithInterest := sale.TotalWithInterest()
	payments, err := s.paymentRepo.ListBySale(ctx, sale.ID)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	paidSoFar := sale.DownPayment
	for _, p := range payments {
		paidSoFar += p.AmountPaid
	}
	outstanding := totalWithInterest - paidSoFar

	if outstanding <= SettledToleranceCents {
		return nil, apperror.NewInvalidStateError("sale is already fully paid")
	}

	amount := toCents(input.Amount)
	if amount > outstanding+PaymentToleranceCents {
		return nil, apperror.NewExceedsBalanceError(
			fmt.Sprintf("payment of %.2f exceeds the outstanding balance of %.2f",
				input.Amount, fromCents(outstanding)))
	}
	if amount > outstanding {
		// Within tolerance of the balance: settle it exactly rather than
		// leaving a negative remainder.
		amount = outstanding
	}

	if amount <= 0 {
		return nil, apperror.NewInvalidInputError("payment amount must be greater than zero")
	}
	paymentDate := dateOnly(input.PaymentDate)
	if paymentDate.After(dateOnly(time.Now())) {
		return nil, apperror.NewInvalidInputError("payment date cannot be in the future")
	}

	payment := &entity.CreditPayment{
		SaleID:            sale.ID,
		InstallmentNumber: input.InstallmentNumber,
		AmountPaid:        amount,
		PaymentDate:       paymentDate,
		PaymentMethod:     input.PaymentMethod,
		Note:              input.Note,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		// A concurrent writer may have recorded the same installment between
		// the lookup and the insert; the store's unique constraint decides.
		return nil, apperror.WrapStoreError(err)
	}

	if err := s.recomputeSale(ctx, sale); err != nil {
		return nil, err
	}

	return payment, nil
}

// UpdateInstallmentPayment corrects the amount, date, method or note of an
// existing payment. A changed amount is re-validated against the outstanding
// balance computed from the sale's other payments.
func (s *CreditService) UpdateInstallmentPayment(ctx context.Context, paymentID uuid.UUID, patch *UpdatePaymentInput) (*entity.CreditPayment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	sale, err := s.saleRepo.GetByID(ctx, payment.SaleID)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleStatusVoided {
		return nil, apperror.NewInvalidStateError("a voided sale accepts no payment corrections")
	}

	if patch.Amount != nil {
		amount := toCents(*patch.Amount)
		if amount <= 0 {
			return nil, apperror.NewInvalidInputError("payment amount must be greater than zero")
		}

		payments, err := s.paymentRepo.ListBySale(ctx, sale.ID)
		if err != nil {
			return nil, apperror.WrapStoreError(err)
		}
		paidByOthers := sale.DownPayment
		for _, p := range payments {
			if p.ID != payment.ID {
				paidByOthers += p.AmountPaid
			}
		}
		outstanding := sale.TotalWithInterest() - paidByOthers

		if amount > outstanding+PaymentToleranceCents {
			return nil, apperror.NewExceedsBalanceError(
				fmt.Sprintf("payment of %.2f exceeds the outstanding balance of %.2f",
					*patch.Amount, fromCents(outstanding)))
		}
		if amount > outstanding {
			amount = outstanding
		}
		payment.AmountPaid = amount
	}

	if patch.PaymentDate != nil {
		paymentDate := dateOnly(*patch.PaymentDate)
		if paymentDate.After(dateOnly(time.Now())) {
			return nil, apperror.NewInvalidInputError("payment date cannot be in the future")
		}
		payment.PaymentDate = paymentDate
	}

	if patch.PaymentMethod != nil {
		payment.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Note != nil {
		payment.Note = *patch.Note
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, apperror.WrapStoreError(err)
	}

	if err := s.recomputeSale(ctx, sale); err != nil {
		return nil, err
	}

	return payment, nil
}

// DeleteInstallmentPayment removes a payment row and recomputes the parent
// sale's paid amount and credit status over the remaining payments. The full
// recomputation corrects any drift left by earlier partial writes.
func (s *CreditService) DeleteInstallmentPayment(ctx context.Context, paymentID uuid.UUID) error {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return apperror.WrapStoreError(err)
	}
	if payment == nil {
		return apperror.NewNotFoundError("Payment")
	}

	sale, err := s.saleRepo.GetByID(ctx, payment.SaleID)
	if err != nil {
		return apperror.WrapStoreError(err)
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}

	if err := s.paymentRepo.Delete(ctx, payment.ID); err != nil {
		return apperror.WrapStoreError(err)
	}

	return s.recomputeSale(ctx, sale)
}

// GetPayment retrieves a payment by ID
func (s *CreditService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.CreditPayment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments returns all payments recorded against a sale, ordered by
// installment number.
func (s *CreditService) ListPayments(ctx context.Context, saleID uuid.UUID) ([]entity.CreditPayment, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	payments, err := s.paymentRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	return payments, nil
}

// recomputeSale rebuilds the sale's amount paid and credit status from the
// complete set of stored payments and persists both. Never a decrement or an
// increment of the previous value.
func (s *CreditService) recomputeSale(ctx context.Context, sale *entity.Sale) error {
	payments, err := s.paymentRepo.ListBySale(ctx, sale.ID)
	if err != nil {
		return apperror.WrapStoreError(err)
	}

	amountPaid := sale.DownPayment
	for _, p := range payments {
		amountPaid += p.AmountPaid
	}
	status := deriveCreditStatus(sale.DownPayment, amountPaid, sale.TotalWithInterest())

	if err := s.saleRepo.UpdateCreditProgress(ctx, sale.ID, amountPaid, status); err != nil {
		return apperror.WrapStoreError(err)
	}

	sale.AmountPaid = amountPaid
	sale.CreditStatus = status
	return nil
}

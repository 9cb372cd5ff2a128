package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/entity"
	"github.com/jsalazar/tiendita-api/internal/domain/repository"
	"github.com/jsalazar/tiendita-api/pkg/apperror"
	"github.com/jsalazar/tiendita-api/pkg/pagination"
)

// ServiceTxService handles signed service transactions. Negative amounts are
// expenses and reduce the day's expected income.
type ServiceTxService struct {
	serviceTxRepo repository.ServiceTransactionRepository
}

// NewServiceTxService creates a new service transaction service
func NewServiceTxService(serviceTxRepo repository.ServiceTransactionRepository) *ServiceTxService {
	return &ServiceTxService{serviceTxRepo: serviceTxRepo}
}

// CreateServiceTxInput represents the create input
type CreateServiceTxInput struct {
	UserID      uuid.UUID
	Amount      float64
	TxDate      *time.Time
	Description string
}

// Create validates and persists a service transaction.
func (s *ServiceTxService) Create(ctx context.Context, input *CreateServiceTxInput) (*entity.ServiceTransaction, error) {
	amount := toCents(input.Amount)
	if amount == 0 {
		return nil, apperror.NewInvalidInputError("transaction amount must be non-zero")
	}

	txDate := dateOnly(time.Now())
	if input.TxDate != nil {
		txDate = dateOnly(*input.TxDate)
		if txDate.After(dateOnly(time.Now())) {
			return nil, apperror.NewInvalidInputError("transaction date cannot be in the future")
		}
	}

	tx := &entity.ServiceTransaction{
		UserID:      input.UserID,
		TxDate:      txDate,
		Amount:      amount,
		Description: input.Description,
	}

	if err := s.serviceTxRepo.Create(ctx, tx); err != nil {
		return nil, apperror.WrapStoreError(err)
	}

	return tx, nil
}

// Delete removes a service transaction
func (s *ServiceTxService) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.serviceTxRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.WrapStoreError(err)
	}
	if tx == nil {
		return apperror.NewNotFoundError("Service transaction")
	}

	if err := s.serviceTxRepo.Delete(ctx, id); err != nil {
		return apperror.WrapStoreError(err)
	}
	return nil
}

// List lists service transactions with filtering
func (s *ServiceTxService) List(ctx context.Context, params *repository.ServiceTxFilterParams) (*pagination.PaginatedResult[entity.ServiceTransaction], error) {
	txs, total, err := s.serviceTxRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txs, pag), nil
}

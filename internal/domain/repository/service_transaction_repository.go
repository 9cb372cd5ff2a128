package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/entity"
	"github.com/jsalazar/tiendita-api/pkg/pagination"
)

// ServiceTransactionRepository defines the interface for service transaction
// data operations.
type ServiceTransactionRepository interface {
	Create(ctx context.Context, tx *entity.ServiceTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceTransaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDate(ctx context.Context, day time.Time) ([]entity.ServiceTransaction, error)
	List(ctx context.Context, params *ServiceTxFilterParams) ([]entity.ServiceTransaction, int64, error)
}

// ServiceTxFilterParams contains filtering parameters for service transaction queries
type ServiceTxFilterParams struct {
	Pagination *pagination.PaginationParams
	StartDate  *time.Time
	EndDate    *time.Time
}

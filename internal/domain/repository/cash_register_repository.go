package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/entity"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	"github.com/jsalazar/tiendita-api/pkg/pagination"
)

// CashRegisterRepository defines the interface for register session data
// operations. At most one session exists per calendar date.
type CashRegisterRepository interface {
	Create(ctx context.Context, register *entity.CashRegister) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashRegister, error)
	GetByDate(ctx context.Context, day time.Time) (*entity.CashRegister, error)
	// FindOpen returns the single open session, if any, system-wide.
	FindOpen(ctx context.Context) (*entity.CashRegister, error)
	Update(ctx context.Context, register *entity.CashRegister) error
	List(ctx context.Context, params *RegisterFilterParams) ([]entity.CashRegister, int64, error)
}

// RegisterFilterParams contains filtering parameters for register queries
type RegisterFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.RegisterStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

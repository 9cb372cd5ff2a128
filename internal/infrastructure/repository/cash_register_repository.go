package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/entity"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	domainRepo "github.com/jsalazar/tiendita-api/internal/domain/repository"
	"github.com/jsalazar/tiendita-api/pkg/apperror"
	"gorm.io/gorm"
)

type cashRegisterRepository struct {
	db *gorm.DB
}

// NewCashRegisterRepository creates a new cash register repository
func NewCashRegisterRepository(db *gorm.DB) domainRepo.CashRegisterRepository {
	return &cashRegisterRepository{db: db}
}

func (r *cashRegisterRepository) Create(ctx context.Context, register *entity.CashRegister) error {
	err := r.db.WithContext(ctx).Create(register).Error
	// One session per calendar date; the unique index on register_date
	// resolves a race between two operators opening at the same moment.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.NewConflictError("a register session already exists for this date")
	}
	return err
}

func (r *cashRegisterRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashRegister, error) {
	var register entity.CashRegister
	err := r.db.WithContext(ctx).First(&register, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &register, nil
}

func (r *cashRegisterRepository) GetByDate(ctx context.Context, day time.Time) (*entity.CashRegister, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var register entity.CashRegister
	err := r.db.WithContext(ctx).
		First(&register, "register_date >= ? AND register_date < ?", startOfDay, endOfDay).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &register, nil
}

func (r *cashRegisterRepository) FindOpen(ctx context.Context) (*entity.CashRegister, error) {
	var register entity.CashRegister
	err := r.db.WithContext(ctx).
		First(&register, "status = ?", enum.RegisterStatusOpen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &register, nil
}

func (r *cashRegisterRepository) Update(ctx context.Context, register *entity.CashRegister) error {
	return r.db.WithContext(ctx).Save(register).Error
}

func (r *cashRegisterRepository) List(ctx context.Context, params *domainRepo.RegisterFilterParams) ([]entity.CashRegister, int64, error) {
	var registers []entity.CashRegister
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CashRegister{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.StartDate != nil {
		query = query.Where("register_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("register_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("register_date DESC").
		Find(&registers).Error

	return registers, total, err
}

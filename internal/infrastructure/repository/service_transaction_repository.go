package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/entity"
	domainRepo "github.com/jsalazar/tiendita-api/internal/domain/repository"
	"gorm.io/gorm"
)

type serviceTransactionRepository struct {
	db *gorm.DB
}

// NewServiceTransactionRepository creates a new service transaction repository
func NewServiceTransactionRepository(db *gorm.DB) domainRepo.ServiceTransactionRepository {
	return &serviceTransactionRepository{db: db}
}

func (r *serviceTransactionRepository) Create(ctx context.Context, tx *entity.ServiceTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *serviceTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceTransaction, error) {
	var tx entity.ServiceTransaction
	err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *serviceTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ServiceTransaction{}, "id = ?", id).Error
}

func (r *serviceTransactionRepository) ListByDate(ctx context.Context, day time.Time) ([]entity.ServiceTransaction, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var txs []entity.ServiceTransaction
	err := r.db.WithContext(ctx).
		Where("tx_date >= ? AND tx_date < ?", startOfDay, endOfDay).
		Find(&txs).Error
	return txs, err
}

func (r *serviceTransactionRepository) List(ctx context.Context, params *domainRepo.ServiceTxFilterParams) ([]entity.ServiceTransaction, int64, error) {
	var txs []entity.ServiceTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ServiceTransaction{})

	if params.StartDate != nil {
		query = query.Where("tx_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("tx_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&txs).Error

	return txs, total, err
}

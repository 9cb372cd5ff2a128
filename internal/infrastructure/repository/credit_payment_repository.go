package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/entity"
	domainRepo "github.com/jsalazar/tiendita-api/internal/domain/repository"
	"github.com/jsalazar/tiendita-api/pkg/apperror"
	"gorm.io/gorm"
)

type creditPaymentRepository struct {
	db *gorm.DB
}

// NewCreditPaymentRepository creates a new credit payment repository
func NewCreditPaymentRepository(db *gorm.DB) domainRepo.CreditPaymentRepository {
	return &creditPaymentRepository{db: db}
}

func (r *creditPaymentRepository) Create(ctx context.Context, payment *entity.CreditPayment) error {
	err := r.db.WithContext(ctx).Create(payment).Error
	// The unique index on (sale_id, installment_number) is the arbiter when
	// two operators race on the same installment.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.NewConflictError("installment is already paid for this sale")
	}
	return err
}

func (r *creditPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CreditPayment, error) {
	var payment entity.CreditPayment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *creditPaymentRepository) GetBySaleAndInstallment(ctx context.Context, saleID uuid.UUID, installmentNumber int) (*entity.CreditPayment, error) {
	var payment entity.CreditPayment
	err := r.db.WithContext(ctx).
		First(&payment, "sale_id = ? AND installment_number = ?", saleID, installmentNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *creditPaymentRepository) Update(ctx context.Context, payment *entity.CreditPayment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *creditPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.CreditPayment{}, "id = ?", id).Error
}

func (r *creditPaymentRepository) ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.CreditPayment, error) {
	var payments []entity.CreditPayment
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("installment_number ASC").
		Find(&payments).Error
	return payments, err
}

func (r *creditPaymentRepository) ListByPaymentDate(ctx context.Context, day time.Time) ([]entity.CreditPayment, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var payments []entity.CreditPayment
	err := r.db.WithContext(ctx).
		Where("payment_date >= ? AND payment_date < ?", startOfDay, endOfDay).
		Find(&payments).Error
	return payments, err
}

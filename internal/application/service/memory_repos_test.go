package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/entity"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	"github.com/jsalazar/tiendita-api/internal/domain/repository"
	"github.com/jsalazar/tiendita-api/pkg/apperror"
)

// In-memory repository fakes backing the service tests. They mirror the
// constraints the real store enforces: unique (sale, installment) payments
// and one register session per date.

type memSaleRepo struct {
	sales map[uuid.UUID]*entity.Sale
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
}

func (r *memSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	r.sales[sale.ID] = sale
	return nil
}

func (r *memSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *memSaleRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, id := range ids {
		if sale, ok := r.sales[id]; ok {
			out = append(out, *sale)
		}
	}
	return out, nil
}

func (r *memSaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	r.sales[sale.ID] = sale
	return nil
}

func (r *memSaleRepo) UpdateCreditProgress(_ context.Context, id uuid.UUID, amountPaid int64, status enum.CreditStatus) error {
	sale, ok := r.sales[id]
	if !ok {
		return apperror.NewNotFoundError("Sale")
	}
	sale.AmountPaid = amountPaid
	sale.CreditStatus = status
	return nil
}

func (r *memSaleRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.SaleStatus) error {
	sale, ok := r.sales[id]
	if !ok {
		return apperror.NewNotFoundError("Sale")
	}
	sale.Status = status
	return nil
}

func (r *memSaleRepo) List(_ context.Context, _ *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, sale := range r.sales {
		out = append(out, *sale)
	}
	return out, int64(len(out)), nil
}

func (r *memSaleRepo) ListCompletedByDate(_ context.Context, day time.Time) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, sale := range r.sales {
		if sale.Status == enum.SaleStatusCompleted && sameDay(sale.SaleDate, day) {
			out = append(out, *sale)
		}
	}
	return out, nil
}

type memPaymentRepo struct {
	payments map[uuid.UUID]*entity.CreditPayment
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{payments: make(map[uuid.UUID]*entity.CreditPayment)}
}

func (r *memPaymentRepo) Create(_ context.Context, payment *entity.CreditPayment) error {
	for _, p := range r.payments {
		if p.SaleID == payment.SaleID && p.InstallmentNumber == payment.InstallmentNumber {
			return apperror.NewConflictError("installment is already paid for this sale")
		}
	}
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments[payment.ID] = payment
	return nil
}

func (r *memPaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.CreditPayment, error) {
	return r.payments[id], nil
}

func (r *memPaymentRepo) GetBySaleAndInstallment(_ context.Context, saleID uuid.UUID, installmentNumber int) (*entity.CreditPayment, error) {
	for _, p := range r.payments {
		if p.SaleID == saleID && p.InstallmentNumber == installmentNumber {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPaymentRepo) Update(_ context.Context, payment *entity.CreditPayment) error {
	r.payments[payment.ID] = payment
	return nil
}

func (r *memPaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.payments, id)
	return nil
}

func (r *memPaymentRepo) ListBySale(_ context.Context, saleID uuid.UUID) ([]entity.CreditPayment, error) {
	var out []entity.CreditPayment
	for _, p := range r.payments {
		if p.SaleID == saleID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].InstallmentNumber < out[j].InstallmentNumber
	})
	return out, nil
}

func (r *memPaymentRepo) ListByPaymentDate(_ context.Context, day time.Time) ([]entity.CreditPayment, error) {
	var out []entity.CreditPayment
	for _, p := range r.payments {
		if sameDay(p.PaymentDate, day) {
			out = append(out, *p)
		}
	}
	return out, nil
}

type memRegisterRepo struct {
	registers map[uuid.UUID]*entity.CashRegister
}

func newMemRegisterRepo() *memRegisterRepo {
	return &memRegisterRepo{registers: make(map[uuid.UUID]*entity.CashRegister)}
}

func (r *memRegisterRepo) Create(_ context.Context, register *entity.CashRegister) error {
	for _, existing := range r.registers {
		if sameDay(existing.RegisterDate, register.RegisterDate) {
			return apperror.NewConflictError("a register session already exists for this date")
		}
	}
	if register.ID == uuid.Nil {
		register.ID = uuid.New()
	}
	r.registers[register.ID] = register
	return nil
}

func (r *memRegisterRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.CashRegister, error) {
	return r.registers[id], nil
}

func (r *memRegisterRepo) GetByDate(_ context.Context, day time.Time) (*entity.CashRegister, error) {
	for _, register := range r.registers {
		if sameDay(register.RegisterDate, day) {
			return register, nil
		}
	}
	return nil, nil
}

func (r *memRegisterRepo) FindOpen(_ context.Context) (*entity.CashRegister, error) {
	for _, register := range r.registers {
		if register.Status == enum.RegisterStatusOpen {
			return register, nil
		}
	}
	return nil, nil
}

func (r *memRegisterRepo) Update(_ context.Context, register *entity.CashRegister) error {
	r.registers[register.ID] = register
	return nil
}

func (r *memRegisterRepo) List(_ context.Context, params *repository.RegisterFilterParams) ([]entity.CashRegister, int64, error) {
	var out []entity.CashRegister
	for _, register := range r.registers {
		if params.Status != nil && register.Status != *params.Status {
			continue
		}
		out = append(out, *register)
	}
	return out, int64(len(out)), nil
}

type memServiceTxRepo struct {
	txs map[uuid.UUID]*entity.ServiceTransaction
}

func newMemServiceTxRepo() *memServiceTxRepo {
	return &memServiceTxRepo{txs: make(map[uuid.UUID]*entity.ServiceTransaction)}
}

func (r *memServiceTxRepo) Create(_ context.Context, tx *entity.ServiceTransaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	r.txs[tx.ID] = tx
	return nil
}

func (r *memServiceTxRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ServiceTransaction, error) {
	return r.txs[id], nil
}

func (r *memServiceTxRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.txs, id)
	return nil
}

func (r *memServiceTxRepo) ListByDate(_ context.Context, day time.Time) ([]entity.ServiceTransaction, error) {
	var out []entity.ServiceTransaction
	for _, tx := range r.txs {
		if sameDay(tx.TxDate, day) {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *memServiceTxRepo) List(_ context.Context, _ *repository.ServiceTxFilterParams) ([]entity.ServiceTransaction, int64, error) {
	var out []entity.ServiceTransaction
	for _, tx := range r.txs {
		out = append(out, *tx)
	}
	return out, int64(len(out)), nil
}

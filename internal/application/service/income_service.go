package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	"github.com/jsalazar/tiendita-api/internal/domain/repository"
	"github.com/jsalazar/tiendita-api/pkg/apperror"
)

// IncomeService aggregates the cash actually received on a calendar day,
// broken down by channel. Every figure is recomputed from source rows on
// every call; nothing here caches a running total.
type IncomeService struct {
	saleRepo      repository.SaleRepository
	paymentRepo   repository.CreditPaymentRepository
	serviceTxRepo repository.ServiceTransactionRepository
}

// NewIncomeService creates a new income service
func NewIncomeService(
	saleRepo repository.SaleRepository,
	paymentRepo repository.CreditPaymentRepository,
	serviceTxRepo repository.ServiceTransactionRepository,
) *IncomeService {
	return &IncomeService{
		saleRepo:      saleRepo,
		paymentRepo:   paymentRepo,
		serviceTxRepo: serviceTxRepo,
	}
}

// MethodTotals holds completed-sale totals per payment method, in cents.
type MethodTotals struct {
	Cash     int64
	QR       int64
	Transfer int64
	Credit   int64
}

// SalesByMethod sums completed sales on the given day, grouped by payment
// method. Voided sales never contribute.
func (s *IncomeService) SalesByMethod(ctx context.Context, day time.Time) (MethodTotals, error) {
	var totals MethodTotals

	sales, err := s.saleRepo.ListCompletedByDate(ctx, dateOnly(day))
	if err != nil {
		return totals, apperror.WrapStoreError(err)
	}

	for _, sale := range sales {
		switch sale.PaymentMethod {
		case enum.PaymentMethodCash:
			totals.Cash += sale.Total
		case enum.PaymentMethodQR:
			totals.QR += sale.Total
		case enum.PaymentMethodTransfer:
			totals.Transfer += sale.Total
		case enum.PaymentMethodCredit:
			totals.Credit += sale.Total
		}
	}

	return totals, nil
}

// CreditCashInflows returns the credit money that physically arrived on the
// given day, in cents: down payments of credit sales completed that day plus
// installment payments collected that day, whatever day their sale happened.
func (s *IncomeService) CreditCashInflows(ctx context.Context, day time.Time) (int64, error) {
	day = dateOnly(day)

	sales, err := s.saleRepo.ListCompletedByDate(ctx, day)
	if err != nil {
		return 0, apperror.WrapStoreError(err)
	}

	var total int64
	for _, sale := range sales {
		if sale.IsCredit() {
			total += sale.DownPayment
		}
	}

	payments, err := s.paymentRepo.ListByPaymentDate(ctx, day)
	if err != nil {
		return 0, apperror.WrapStoreError(err)
	}
	if len(payments) == 0 {
		return total, nil
	}

	// Payments against a sale that was later voided no longer count as income.
	saleIDs := make([]uuid.UUID, 0, len(payments))
	seen := make(map[uuid.UUID]bool, len(payments))
	for _, p := range payments {
		if !seen[p.SaleID] {
			seen[p.SaleID] = true
			saleIDs = append(saleIDs, p.SaleID)
		}
	}

	parents, err := s.saleRepo.GetByIDs(ctx, saleIDs)
	if err != nil {
		return 0, apperror.WrapStoreError(err)
	}
	voided := make(map[uuid.UUID]bool, len(parents))
	for _, sale := range parents {
		if sale.Status == enum.SaleStatusVoided {
			voided[sale.ID] = true
		}
	}

	for _, p := range payments {
		if !voided[p.SaleID] {
			total += p.AmountPaid
		}
	}

	return total, nil
}

// ServicesNet returns the signed sum of service transactions on the given
// day, in cents. Expenses carry negative amounts and reduce the total.
func (s *IncomeService) ServicesNet(ctx context.Context, day time.Time) (int64, error) {
	txs, err := s.serviceTxRepo.ListByDate(ctx, dateOnly(day))
	if err != nil {
		return 0, apperror.WrapStoreError(err)
	}

	var total int64
	for _, tx := range txs {
		total += tx.Amount
	}
	return total, nil
}

// TotalIncome is the authoritative expected cash total for a day, in cents:
// direct sales settled in cash, QR and transfer, plus credit cash inflows,
// plus the net of service transactions. Credit sale totals themselves are
// excluded because that money has not been received.
func (s *IncomeService) TotalIncome(ctx context.Context, day time.Time) (int64, error) {
	totals, err := s.SalesByMethod(ctx, day)
	if err != nil {
		return 0, err
	}

	creditInflows, err := s.CreditCashInflows(ctx, day)
	if err != nil {
		return 0, err
	}

	servicesNet, err := s.ServicesNet(ctx, day)
	if err != nil {
		return 0, err
	}

	return totals.Cash + totals.QR + totals.Transfer + creditInflows + servicesNet, nil
}

// DailyIncomeSnapshot is the transient per-day income report. It is computed
// on demand and never persisted.
type DailyIncomeSnapshot struct {
	Date           string  `json:"date"`
	Cash           float64 `json:"cash"`
	QR             float64 `json:"qr"`
	Transfer       float64 `json:"transfer"`
	CreditSales    float64 `json:"credit_sales"`
	CreditReceipts float64 `json:"credit_receipts"`
	ServicesNet    float64 `json:"services_net"`
	Total          float64 `json:"total"`
}

// DailySnapshot assembles the day's income breakdown for reporting.
func (s *IncomeService) DailySnapshot(ctx context.Context, day time.Time) (*DailyIncomeSnapshot, error) {
	day = dateOnly(day)

	totals, err := s.SalesByMethod(ctx, day)
	if err != nil {
		return nil, err
	}
	creditInflows, err := s.CreditCashInflows(ctx, day)
	if err != nil {
		return nil, err
	}
	servicesNet, err := s.ServicesNet(ctx, day)
	if err != nil {
		return nil, err
	}

	return &DailyIncomeSnapshot{
		Date:           day.Format("2006-01-02"),
		Cash:           fromCents(totals.Cash),
		QR:             fromCents(totals.QR),
		Transfer:       fromCents(totals.Transfer),
		CreditSales:    fromCents(totals.Credit),
		CreditReceipts: fromCents(creditInflows),
		ServicesNet:    fromCents(servicesNet),
		Total:          fromCents(totals.Cash + totals.QR + totals.Transfer + creditInflows + servicesNet),
	}, nil
}

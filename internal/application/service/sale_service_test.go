package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	"github.com/jsalazar/tiendita-api/pkg/apperror"
)

func TestCreateSaleStoresCents(t *testing.T) {
	svc := NewSaleService(newMemSaleRepo())

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:        uuid.New(),
		Total:         123.45,
		PaymentMethod: enum.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}
	if sale.Total != 12345 {
		t.Fatalf("expected total 12345 cents, got %d", sale.Total)
	}
	if sale.Status != enum.SaleStatusCompleted {
		t.Fatalf("expected completed status, got %s", sale.Status)
	}
	if !sameDay(sale.SaleDate, time.Now()) {
		t.Fatalf("expected sale dated today by default")
	}
}

func TestCreateSaleRejectsNonPositiveTotal(t *testing.T) {
	svc := NewSaleService(newMemSaleRepo())

	for _, total := range []float64{0, -5.00} {
		_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
			UserID:        uuid.New(),
			Total:         total,
			PaymentMethod: enum.PaymentMethodCash,
		})
		if !apperror.IsKind(err, apperror.KindInvalidInput) {
			t.Fatalf("total %.2f: expected invalid_input error, got %v", total, err)
		}
	}
}

func TestCreateSaleRejectsFutureDate(t *testing.T) {
	svc := NewSaleService(newMemSaleRepo())

	future := time.Now().AddDate(0, 0, 2)
	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:        uuid.New(),
		Total:         10.00,
		PaymentMethod: enum.PaymentMethodCash,
		SaleDate:      &future,
	})
	if !apperror.IsKind(err, apperror.KindInvalidInput) {
		t.Fatalf("expected invalid_input error, got %v", err)
	}
}

func TestCreateCreditSaleDerivesInitialState(t *testing.T) {
	svc := NewSaleService(newMemSaleRepo())

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:           uuid.New(),
		Total:            100.00,
		PaymentMethod:    enum.PaymentMethodCredit,
		InstallmentCount: 2,
		DownPayment:      20.00,
		InterestAmount:   5.00,
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}
	if sale.AmountPaid != 2000 {
		t.Fatalf("expected amount paid 2000 cents, got %d", sale.AmountPaid)
	}
	if sale.CreditStatus != enum.CreditStatusPending {
		t.Fatalf("expected pending status, got %s", sale.CreditStatus)
	}
	if sale.TotalWithInterest() != 11000 {
		t.Fatalf("expected total with interest 11000 cents, got %d", sale.TotalWithInterest())
	}
}

func TestCreateCreditSaleValidatesPlan(t *testing.T) {
	svc := NewSaleService(newMemSaleRepo())

	cases := []struct {
		name  string
		input CreateSaleInput
	}{
		{"no installments", CreateSaleInput{Total: 100, PaymentMethod: enum.PaymentMethodCredit}},
		{"negative down payment", CreateSaleInput{Total: 100, PaymentMethod: enum.PaymentMethodCredit, InstallmentCount: 2, DownPayment: -1}},
		{"down payment over total", CreateSaleInput{Total: 100, PaymentMethod: enum.PaymentMethodCredit, InstallmentCount: 2, DownPayment: 150}},
		{"negative interest", CreateSaleInput{Total: 100, PaymentMethod: enum.PaymentMethodCredit, InstallmentCount: 2, InterestAmount: -5}},
	}

	for _, tc := range cases {
		tc.input.UserID = uuid.New()
		_, err := svc.CreateSale(context.Background(), &tc.input)
		if !apperror.IsKind(err, apperror.KindInvalidInput) {
			t.Fatalf("%s: expected invalid_input error, got %v", tc.name, err)
		}
	}
}

func TestVoidSale(t *testing.T) {
	repo := newMemSaleRepo()
	svc := NewSaleService(repo)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:        uuid.New(),
		Total:         10.00,
		PaymentMethod: enum.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	voided, err := svc.VoidSale(context.Background(), sale.ID)
	if err != nil {
		t.Fatalf("void sale: %v", err)
	}
	if voided.Status != enum.SaleStatusVoided {
		t.Fatalf("expected voided status, got %s", voided.Status)
	}

	_, err = svc.VoidSale(context.Background(), sale.ID)
	if !apperror.IsKind(err, apperror.KindInvalidState) {
		t.Fatalf("expected invalid_state error, got %v", err)
	}
}

func TestVoidUnknownSale(t *testing.T) {
	svc := NewSaleService(newMemSaleRepo())

	_, err := svc.VoidSale(context.Background(), uuid.New())
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not_found error, got %v", err)
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	"github.com/jsalazar/tiendita-api/internal/domain/repository"
	"github.com/jsalazar/tiendita-api/pkg/apperror"
	"github.com/jsalazar/tiendita-api/pkg/pagination"
)

type registerFixture struct {
	svc    *RegisterService
	income *incomeFixture
	now    time.Time
}

func newRegisterFixture() *registerFixture {
	income := newIncomeFixture()
	registerRepo := newMemRegisterRepo()

	f := &registerFixture{income: income, now: income.day.Add(8 * time.Hour)}
	f.svc = NewRegisterService(registerRepo, income.svc)
	f.svc.nowFn = func() time.Time { return f.now }

	return f
}

func TestOpenRegisterSnapshotsExpectedTotal(t *testing.T) {
	f := newRegisterFixture()
	f.income.addSale(f.income.day, 20000, enum.PaymentMethodCash, enum.SaleStatusCompleted)

	register, err := f.svc.Open(context.Background(), &OpenRegisterInput{
		OpeningFloat: 50.00,
		OperatorID:   uuid.New(),
	})
	if err != nil {
		t.Fatalf("open register: %v", err)
	}
	if register.Status != enum.RegisterStatusOpen {
		t.Fatalf("expected open status, got %s", register.Status)
	}
	if register.OpeningFloat != 5000 {
		t.Fatalf("expected opening float 5000 cents, got %d", register.OpeningFloat)
	}
	if register.ExpectedTotal != 20000 {
		t.Fatalf("expected snapshot 20000 cents, got %d", register.ExpectedTotal)
	}
	if !sameDay(register.RegisterDate, f.now) {
		t.Fatalf("expected register dated today")
	}
}

func TestOpenRegisterRejectsSecondOpenSession(t *testing.T) {
	f := newRegisterFixture()

	if _, err := f.svc.Open(context.Background(), &OpenRegisterInput{OperatorID: uuid.New()}); err != nil {
		t.Fatalf("open register: %v", err)
	}

	_, err := f.svc.Open(context.Background(), &OpenRegisterInput{OperatorID: uuid.New()})
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestOpenRegisterRejectsReopeningSameDate(t *testing.T) {
	f := newRegisterFixture()

	register, err := f.svc.Open(context.Background(), &OpenRegisterInput{OperatorID: uuid.New()})
	if err != nil {
		t.Fatalf("open register: %v", err)
	}
	if _, err := f.svc.Close(context.Background(), register.ID, &CloseRegisterInput{CountedCash: 0}); err != nil {
		t.Fatalf("close register: %v", err)
	}

	_, err = f.svc.Open(context.Background(), &OpenRegisterInput{OperatorID: uuid.New()})
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestOpenRegisterRejectsNegativeFloat(t *testing.T) {
	f := newRegisterFixture()

	_, err := f.svc.Open(context.Background(), &OpenRegisterInput{
		OpeningFloat: -10.00,
		OperatorID:   uuid.New(),
	})
	if !apperror.IsKind(err, apperror.KindInvalidInput) {
		t.Fatalf("expected invalid_input error, got %v", err)
	}
}

func TestCloseRegisterComputesVariance(t *testing.T) {
	f := newRegisterFixture()
	f.income.addSale(f.income.day, 20000, enum.PaymentMethodCash, enum.SaleStatusCompleted)

	register, err := f.svc.Open(context.Background(), &OpenRegisterInput{
		OpeningFloat: 50.00,
		OperatorID:   uuid.New(),
	})
	if err != nil {
		t.Fatalf("open register: %v", err)
	}

	// Another sale lands while the session is open; the close recomputes.
	f.income.addSale(f.income.day, 5000, enum.PaymentMethodCash, enum.SaleStatusCompleted)

	closed, err := f.svc.Close(context.Background(), register.ID, &CloseRegisterInput{
		CountedCash: 298.50,
	})
	if err != nil {
		t.Fatalf("close register: %v", err)
	}
	if closed.Status != enum.RegisterStatusClosed {
		t.Fatalf("expected closed status, got %s", closed.Status)
	}
	if closed.ExpectedTotal != 25000 {
		t.Fatalf("expected total 25000 cents, got %d", closed.ExpectedTotal)
	}
	// 298.50 counted against 50.00 float + 250.00 expected leaves -1.50.
	if closed.Variance != -150 {
		t.Fatalf("expected variance -150 cents, got %d", closed.Variance)
	}
	if closed.ClosedAt == nil {
		t.Fatalf("expected closed_at to be set")
	}
}

func TestCloseRegisterRejectsClosedSession(t *testing.T) {
	f := newRegisterFixture()

	register, err := f.svc.Open(context.Background(), &OpenRegisterInput{OperatorID: uuid.New()})
	if err != nil {
		t.Fatalf("open register: %v", err)
	}
	if _, err := f.svc.Close(context.Background(), register.ID, &CloseRegisterInput{CountedCash: 0}); err != nil {
		t.Fatalf("close register: %v", err)
	}

	_, err = f.svc.Close(context.Background(), register.ID, &CloseRegisterInput{CountedCash: 0})
	if !apperror.IsKind(err, apperror.KindInvalidState) {
		t.Fatalf("expected invalid_state error, got %v", err)
	}
}

func TestCloseRegisterRejectsNegativeCount(t *testing.T) {
	f := newRegisterFixture()

	register, err := f.svc.Open(context.Background(), &OpenRegisterInput{OperatorID: uuid.New()})
	if err != nil {
		t.Fatalf("open register: %v", err)
	}

	_, err = f.svc.Close(context.Background(), register.ID, &CloseRegisterInput{CountedCash: -1.00})
	if !apperror.IsKind(err, apperror.KindInvalidInput) {
		t.Fatalf("expected invalid_input error, got %v", err)
	}
}

func TestCurrentReportsLiveExpectedTotalWhileOpen(t *testing.T) {
	f := newRegisterFixture()

	if _, err := f.svc.Open(context.Background(), &OpenRegisterInput{OperatorID: uuid.New()}); err != nil {
		t.Fatalf("open register: %v", err)
	}

	// A sale after opening shows up immediately, not the stale snapshot.
	f.income.addSale(f.income.day, 20000, enum.PaymentMethodCash, enum.SaleStatusCompleted)

	status, err := f.svc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if status.ExpectedTotal != 200.00 {
		t.Fatalf("expected live total 200.00, got %.2f", status.ExpectedTotal)
	}
}

func TestCurrentReportsFrozenTotalAfterClose(t *testing.T) {
	f := newRegisterFixture()
	f.income.addSale(f.income.day, 20000, enum.PaymentMethodCash, enum.SaleStatusCompleted)

	register, err := f.svc.Open(context.Background(), &OpenRegisterInput{OperatorID: uuid.New()})
	if err != nil {
		t.Fatalf("open register: %v", err)
	}
	if _, err := f.svc.Close(context.Background(), register.ID, &CloseRegisterInput{CountedCash: 200.00}); err != nil {
		t.Fatalf("close register: %v", err)
	}

	// A late sale must not move the closed session's figures.
	f.income.addSale(f.income.day, 5000, enum.PaymentMethodCash, enum.SaleStatusCompleted)

	status, err := f.svc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if status.ExpectedTotal != 200.00 {
		t.Fatalf("expected frozen total 200.00, got %.2f", status.ExpectedTotal)
	}
	if status.Variance == nil || *status.Variance != 0 {
		t.Fatalf("expected variance 0, got %v", status.Variance)
	}
}

func TestCurrentWithoutSessionIsNotFound(t *testing.T) {
	f := newRegisterFixture()

	_, err := f.svc.Current(context.Background())
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not_found error, got %v", err)
	}
}

func TestEditClosedRegisterKeepsFrozenExpectedTotal(t *testing.T) {
	f := newRegisterFixture()
	f.income.addSale(f.income.day, 20000, enum.PaymentMethodCash, enum.SaleStatusCompleted)

	register, err := f.svc.Open(context.Background(), &OpenRegisterInput{
		OpeningFloat: 50.00,
		OperatorID:   uuid.New(),
	})
	if err != nil {
		t.Fatalf("open register: %v", err)
	}
	if _, err := f.svc.Close(context.Background(), register.ID, &CloseRegisterInput{CountedCash: 250.00}); err != nil {
		t.Fatalf("close register: %v", err)
	}

	// New income after close must not leak into the edited session.
	f.income.addSale(f.income.day, 9900, enum.PaymentMethodCash, enum.SaleStatusCompleted)

	counted := 240.00
	edited, err := f.svc.Edit(context.Background(), register.ID, &EditRegisterInput{
		CountedCash: &counted,
	})
	if err != nil {
		t.Fatalf("edit register: %v", err)
	}
	if edited.ExpectedTotal != 20000 {
		t.Fatalf("expected frozen total 20000 cents, got %d", edited.ExpectedTotal)
	}
	// 240.00 counted against 50.00 float + 200.00 expected leaves -10.00.
	if edited.Variance != -1000 {
		t.Fatalf("expected variance -1000 cents, got %d", edited.Variance)
	}
}

func TestEditNoteOnlyLeavesVarianceAlone(t *testing.T) {
	f := newRegisterFixture()

	register, err := f.svc.Open(context.Background(), &OpenRegisterInput{OperatorID: uuid.New()})
	if err != nil {
		t.Fatalf("open register: %v", err)
	}

	counted := 100.00
	edited, err := f.svc.Edit(context.Background(), register.ID, &EditRegisterInput{
		CountedCash: &counted,
	})
	if err != nil {
		t.Fatalf("edit register: %v", err)
	}
	if edited.Variance != 10000 {
		t.Fatalf("expected variance 10000 cents, got %d", edited.Variance)
	}

	// New income moves the live expected total, but a note-only correction
	// must not rebuild the variance from it.
	f.income.addSale(f.income.day, 5000, enum.PaymentMethodCash, enum.SaleStatusCompleted)

	note := "drawer recount pending"
	edited, err = f.svc.Edit(context.Background(), register.ID, &EditRegisterInput{
		Note: &note,
	})
	if err != nil {
		t.Fatalf("edit register: %v", err)
	}
	if edited.ExpectedTotal != 5000 {
		t.Fatalf("expected live total 5000 cents, got %d", edited.ExpectedTotal)
	}
	if edited.Variance != 10000 {
		t.Fatalf("expected variance unchanged at 10000 cents, got %d", edited.Variance)
	}
}

func TestListRegistersFiltersByStatus(t *testing.T) {
	f := newRegisterFixture()

	first, err := f.svc.Open(context.Background(), &OpenRegisterInput{OperatorID: uuid.New()})
	if err != nil {
		t.Fatalf("open register: %v", err)
	}
	if _, err := f.svc.Close(context.Background(), first.ID, &CloseRegisterInput{CountedCash: 0}); err != nil {
		t.Fatalf("close register: %v", err)
	}

	// Next business day gets its own session.
	f.now = f.now.AddDate(0, 0, 1)
	second, err := f.svc.Open(context.Background(), &OpenRegisterInput{OperatorID: uuid.New()})
	if err != nil {
		t.Fatalf("open register: %v", err)
	}

	open := enum.RegisterStatusOpen
	result, err := f.svc.List(context.Background(), &repository.RegisterFilterParams{
		Pagination: pagination.DefaultPagination(),
		Status:     &open,
	})
	if err != nil {
		t.Fatalf("list registers: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 open register, got %d", len(result.Items))
	}
	if result.Items[0].ID != second.ID {
		t.Fatalf("expected the open session in the result")
	}

	closed := enum.RegisterStatusClosed
	result, err = f.svc.List(context.Background(), &repository.RegisterFilterParams{
		Pagination: pagination.DefaultPagination(),
		Status:     &closed,
	})
	if err != nil {
		t.Fatalf("list registers: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ID != first.ID {
		t.Fatalf("expected only the closed session in the result")
	}
}

func TestEditOpenRegisterRecomputesExpectedTotal(t *testing.T) {
	f := newRegisterFixture()

	register, err := f.svc.Open(context.Background(), &OpenRegisterInput{OperatorID: uuid.New()})
	if err != nil {
		t.Fatalf("open register: %v", err)
	}

	f.income.addSale(f.income.day, 20000, enum.PaymentMethodCash, enum.SaleStatusCompleted)

	newFloat := 30.00
	edited, err := f.svc.Edit(context.Background(), register.ID, &EditRegisterInput{
		OpeningFloat: &newFloat,
	})
	if err != nil {
		t.Fatalf("edit register: %v", err)
	}
	if edited.ExpectedTotal != 20000 {
		t.Fatalf("expected live total 20000 cents, got %d", edited.ExpectedTotal)
	}
	if edited.OpeningFloat != 3000 {
		t.Fatalf("expected opening float 3000 cents, got %d", edited.OpeningFloat)
	}
	// No count recorded yet, so no variance to report.
	if edited.Variance != 0 {
		t.Fatalf("expected variance 0, got %d", edited.Variance)
	}
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/entity"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	"github.com/jsalazar/tiendita-api/internal/domain/repository"
	"github.com/jsalazar/tiendita-api/pkg/apperror"
	"github.com/jsalazar/tiendita-api/pkg/pagination"
)

// RegisterService owns the open/close/edit lifecycle of the daily cash
// register session. The expected total always comes from a live income
// recompute while the session is open and dated today; once closed it is
// frozen at the value captured at close time.
type RegisterService struct {
	registerRepo repository.CashRegisterRepository
	income       *IncomeService
	nowFn        func() time.Time
}

// NewRegisterService creates a new register service
func NewRegisterService(registerRepo repository.CashRegisterRepository, income *IncomeService) *RegisterService {
	return &RegisterService{
		registerRepo: registerRepo,
		income:       income,
		nowFn:        time.Now,
	}
}

// OpenRegisterInput represents the open-register input
type OpenRegisterInput struct {
	OpeningFloat float64
	OperatorID   uuid.UUID
	Note         string
}

// CloseRegisterInput represents the close-register input
type CloseRegisterInput struct {
	CountedCash float64
	Note        string
}

// EditRegisterInput represents a correction to an existing register session
type EditRegisterInput struct {
	OpeningFloat *float64
	CountedCash  *float64
	OpenedAt     *time.Time
	ClosedAt     *time.Time
	Note         *string
}

// Open starts today's register session. At most one session may exist per
// date and at most one open session system-wide.
func (s *RegisterService) Open(ctx context.Context, input *OpenRegisterInput) (*entity.CashRegister, error) {
	openingFloat := toCents(input.OpeningFloat)
	if openingFloat < 0 {
		return nil, apperror.NewInvalidInputError("opening float cannot be negative")
	}

	now := s.nowFn()
	today := dateOnly(now)

	open, err := s.registerRepo.FindOpen(ctx)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	if open != nil {
		return nil, apperror.NewConflictError("a register session is already open")
	}

	existing, err := s.registerRepo.GetByDate(ctx, today)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError("a register session already exists for today")
	}

	// Informational snapshot only; the expected total is recomputed live for
	// as long as the session stays open.
	expected, err := s.income.TotalIncome(ctx, today)
	if err != nil {
		return nil, err
	}

	register := &entity.CashRegister{
		RegisterDate:  today,
		OperatorID:    input.OperatorID,
		OpenedAt:      now,
		OpeningFloat:  openingFloat,
		ExpectedTotal: expected,
		Status:        enum.RegisterStatusOpen,
		Note:          input.Note,
	}

	if err := s.registerRepo.Create(ctx, register); err != nil {
		return nil, apperror.WrapStoreError(err)
	}

	return register, nil
}

// Close counts the drawer against a final recompute of the day's income and
// freezes the session.
func (s *RegisterService) Close(ctx context.Context, id uuid.UUID, input *CloseRegisterInput) (*entity.CashRegister, error) {
	register, err := s.registerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	if register == nil {
		return nil, apperror.NewNotFoundError("Register")
	}
	if !register.IsOpen() {
		return nil, apperror.NewInvalidStateError("register session is already closed")
	}

	counted := toCents(input.CountedCash)
	if counted < 0 {
		return nil, apperror.NewInvalidInputError("counted cash cannot be negative")
	}

	expected, err := s.income.TotalIncome(ctx, register.RegisterDate)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	register.ExpectedTotal = expected
	register.CountedCash = &counted
	register.Variance = counted - (register.OpeningFloat + expected)
	register.Status = enum.RegisterStatusClosed
	register.ClosedAt = &now
	if input.Note != "" {
		register.Note = input.Note
	}

	if err := s.registerRepo.Update(ctx, register); err != nil {
		return nil, apperror.WrapStoreError(err)
	}

	return register, nil
}

// Edit corrects fields on any register session, open or closed. The expected
// total is recomputed live only for a session that is open and dated today;
// a closed or past session keeps its frozen figure. The variance is rebuilt
// from whichever expected total applies when the counted cash or the opening
// float changes.
func (s *RegisterService) Edit(ctx context.Context, id uuid.UUID, patch *EditRegisterInput) (*entity.CashRegister, error) {
	register, err := s.registerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	if register == nil {
		return nil, apperror.NewNotFoundError("Register")
	}

	if register.IsOpen() && sameDay(register.RegisterDate, s.nowFn()) {
		expected, err := s.income.TotalIncome(ctx, register.RegisterDate)
		if err != nil {
			return nil, err
		}
		register.ExpectedTotal = expected
	}

	if patch.OpeningFloat != nil {
		openingFloat := toCents(*patch.OpeningFloat)
		if openingFloat < 0 {
			return nil, apperror.NewInvalidInputError("opening float cannot be negative")
		}
		register.OpeningFloat = openingFloat
	}

	if patch.CountedCash != nil {
		counted := toCents(*patch.CountedCash)
		if counted < 0 {
			return nil, apperror.NewInvalidInputError("counted cash cannot be negative")
		}
		register.CountedCash = &counted
	}

	if patch.OpenedAt != nil {
		register.OpenedAt = *patch.OpenedAt
	}
	if patch.ClosedAt != nil {
		register.ClosedAt = patch.ClosedAt
	}
	if patch.Note != nil {
		register.Note = *patch.Note
	}

	// The variance is only rebuilt when one of its direct inputs was edited;
	// a note or timestamp correction leaves the recorded figure alone.
	if patch.CountedCash != nil || patch.OpeningFloat != nil {
		if register.CountedCash != nil {
			register.Variance = *register.CountedCash - (register.OpeningFloat + register.ExpectedTotal)
		} else {
			register.Variance = 0
		}
	}

	if err := s.registerRepo.Update(ctx, register); err != nil {
		return nil, apperror.WrapStoreError(err)
	}

	return register, nil
}

// CurrentStatus pairs today's register session with a live expected total.
type CurrentStatus struct {
	Register      *entity.CashRegister `json:"register"`
	ExpectedTotal float64              `json:"expected_total"`
	Variance      *float64             `json:"variance,omitempty"`
}

// Current returns today's session and its up-to-the-moment expected total.
// While the session is open the figure comes straight from the income
// aggregator, never from the stored snapshot.
func (s *RegisterService) Current(ctx context.Context) (*CurrentStatus, error) {
	today := dateOnly(s.nowFn())

	register, err := s.registerRepo.GetByDate(ctx, today)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	if register == nil {
		return nil, apperror.NewNotFoundError("Register")
	}

	expected := register.ExpectedTotal
	if register.IsOpen() {
		expected, err = s.income.TotalIncome(ctx, today)
		if err != nil {
			return nil, err
		}
	}

	status := &CurrentStatus{
		Register:      register,
		ExpectedTotal: fromCents(expected),
	}
	if register.CountedCash != nil {
		variance := fromCents(*register.CountedCash - (register.OpeningFloat + expected))
		status.Variance = &variance
	}
	return status, nil
}

// Get retrieves a register session by ID
func (s *RegisterService) Get(ctx context.Context, id uuid.UUID) (*entity.CashRegister, error) {
	register, err := s.registerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}
	if register == nil {
		return nil, apperror.NewNotFoundError("Register")
	}
	return register, nil
}

// List returns register history with filtering
func (s *RegisterService) List(ctx context.Context, params *repository.RegisterFilterParams) (*pagination.PaginatedResult[entity.CashRegister], error) {
	registers, total, err := s.registerRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.WrapStoreError(err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(registers, pag), nil
}

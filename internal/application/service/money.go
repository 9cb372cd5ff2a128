package service

import (
	"math"
	"time"

	"github.com/jsalazar/tiendita-api/internal/domain/enum"
)

// Rounding tolerances, in cents. Amounts enter the API as decimals and live as
// int64 cents everywhere else; these two thresholds absorb the residue of that
// conversion without letting a balance go negative.
const (
	// PaymentToleranceCents is the overshoot allowed on a single payment
	// before it is rejected as exceeding the outstanding balance (0.02).
	PaymentToleranceCents int64 = 2
	// SettledToleranceCents is the residual under which a credit sale
	// counts as fully paid (0.05).
	SettledToleranceCents int64 = 5
)

// toCents converts a decimal amount to integer cents.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// fromCents converts integer cents back to a decimal amount.
func fromCents(cents int64) float64 {
	return float64(cents) / 100
}

// dateOnly truncates a timestamp to its calendar day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameDay reports whether two timestamps fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// deriveCreditStatus is the single source of truth for a credit sale's
// repayment state. It is a pure function of the three canonical amounts, so
// recomputing it from the same payment set always yields the same result.
// Overdue is never derived here; it is a due-date comparison left to callers.
func deriveCreditStatus(downPayment, amountPaid, totalWithInterest int64) enum.CreditStatus {
	if totalWithInterest-amountPaid <= SettledToleranceCents {
		return enum.CreditStatusPaid
	}
	if amountPaid > downPayment {
		return enum.CreditStatusPartial
	}
	return enum.CreditStatusPending
}

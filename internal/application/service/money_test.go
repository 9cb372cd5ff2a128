package service

import (
	"testing"

	"github.com/jsalazar/tiendita-api/internal/domain/enum"
)

func TestToCentsRoundsToNearestCent(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{0.01, 1},
		{45.01, 4501},
		{19.99, 1999},
		{123.45, 12345},
	}
	for _, tc := range cases {
		if got := toCents(tc.in); got != tc.want {
			t.Fatalf("toCents(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestDeriveCreditStatusBoundaries(t *testing.T) {
	cases := []struct {
		name              string
		downPayment       int64
		amountPaid        int64
		totalWithInterest int64
		want              enum.CreditStatus
	}{
		{"nothing beyond down payment", 2000, 2000, 11000, enum.CreditStatusPending},
		{"some repayment", 2000, 6500, 11000, enum.CreditStatusPartial},
		{"exactly settled", 2000, 11000, 11000, enum.CreditStatusPaid},
		{"residual within tolerance", 2000, 10995, 11000, enum.CreditStatusPaid},
		{"residual past tolerance", 2000, 10994, 11000, enum.CreditStatusPartial},
		{"no down payment no repayment", 0, 0, 11000, enum.CreditStatusPending},
	}
	for _, tc := range cases {
		if got := deriveCreditStatus(tc.downPayment, tc.amountPaid, tc.totalWithInterest); got != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

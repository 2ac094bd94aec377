package services_test

import (
	"errors"
	"testing"

	"github.com/api-sage/core-banking-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

func mustMoney(t *testing.T, raw string) domain.Money {
	t.Helper()
	m, err := domain.MoneyFromString(raw)
	if err != nil {
		t.Fatalf("parse money %q: %v", raw, err)
	}
	return m
}

func mustAmount(t *testing.T, raw string) domain.Money {
	t.Helper()
	m, err := domain.AmountFromString(raw)
	if err != nil {
		t.Fatalf("parse amount %q: %v", raw, err)
	}
	return m
}

func TestMoneyArithmeticRoundsHalfUpToTwoDigits(t *testing.T) {
	a := domain.NewMoney(decimal.RequireFromString("10.005"))
	if got := a.String(); got != "10.01" {
		t.Fatalf("expected construction to round half-up to 10.01, got %s", got)
	}

	sum := mustMoney(t, "0.10").Add(mustMoney(t, "0.25"))
	if got := sum.String(); got != "0.35" {
		t.Fatalf("expected 0.35, got %s", got)
	}

	diff := mustMoney(t, "100.00").Subtract(mustMoney(t, "99.99"))
	if got := diff.String(); got != "0.01" {
		t.Fatalf("expected 0.01, got %s", got)
	}
}

func TestMoneyCompare(t *testing.T) {
	small := mustMoney(t, "1.00")
	big := mustMoney(t, "2.00")

	if small.Compare(big) >= 0 {
		t.Fatal("expected 1.00 < 2.00")
	}
	if big.Compare(small) <= 0 {
		t.Fatal("expected 2.00 > 1.00")
	}
	if small.Compare(mustMoney(t, "1.00")) != 0 {
		t.Fatal("expected 1.00 == 1.00")
	}
}

func TestNewAmountRejectsNonPositiveValues(t *testing.T) {
	for _, raw := range []string{"0", "0.00", "-1", "-0.01"} {
		if _, err := domain.AmountFromString(raw); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for %q, got %v", raw, err)
		}
	}

	if _, err := domain.AmountFromString("0.01"); err != nil {
		t.Fatalf("expected 0.01 to be a valid amount, got %v", err)
	}
}

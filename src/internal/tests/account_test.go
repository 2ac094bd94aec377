package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/api-sage/core-banking-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

func TestSavingsAccountMaintainsMinimumBalance(t *testing.T) {
	account := domain.NewSavingsAccount("ravi", "SBI", "100000000001")

	if err := account.Deposit(mustAmount(t, "2000")); err != nil {
		t.Fatalf("deposit 2000: %v", err)
	}
	if got := account.Balance().String(); got != "2000.00" {
		t.Fatalf("expected balance 2000.00, got %s", got)
	}

	// Would leave 500, below the 1000 floor.
	if err := account.Withdraw(mustAmount(t, "1500")); !errors.Is(err, domain.ErrBelowMinimumBalance) {
		t.Fatalf("expected ErrBelowMinimumBalance, got %v", err)
	}
	if got := account.Balance().String(); got != "2000.00" {
		t.Fatalf("expected balance unchanged at 2000.00, got %s", got)
	}

	if err := account.Withdraw(mustAmount(t, "900")); err != nil {
		t.Fatalf("withdraw 900: %v", err)
	}
	if got := account.Balance().String(); got != "1100.00" {
		t.Fatalf("expected balance 1100.00, got %s", got)
	}
}

func TestCurrentAccountRejectsOverdraft(t *testing.T) {
	account := domain.NewCurrentAccount("ravi", "SBI", "100000000002")

	if err := account.Deposit(mustAmount(t, "500")); err != nil {
		t.Fatalf("deposit 500: %v", err)
	}

	if err := account.Withdraw(mustAmount(t, "600")); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := account.Balance().String(); got != "500.00" {
		t.Fatalf("expected balance unchanged at 500.00, got %s", got)
	}

	if err := account.Deposit(mustAmount(t, "200")); err != nil {
		t.Fatalf("deposit 200: %v", err)
	}
	if err := account.Withdraw(mustAmount(t, "600")); err != nil {
		t.Fatalf("withdraw 600: %v", err)
	}
	if got := account.Balance().String(); got != "100.00" {
		t.Fatalf("expected balance 100.00, got %s", got)
	}
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	account := domain.NewCurrentAccount("ravi", "SBI", "100000000003")

	if err := account.Deposit(domain.ZeroMoney()); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero deposit, got %v", err)
	}
	if err := account.Deposit(domain.NewMoney(decimal.RequireFromString("-5"))); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative deposit, got %v", err)
	}
	if !account.Balance().IsZero() {
		t.Fatalf("expected balance untouched, got %s", account.Balance())
	}
}

func TestSavingsAccountMonthlyInterestHalfUpRounding(t *testing.T) {
	account := domain.NewSavingsAccount("ravi", "SBI", "100000000004")
	if err := account.Deposit(mustAmount(t, "1000.00")); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	// 6% annual -> 0.5% monthly -> 5.00 on 1000.00.
	interest := account.ApplyMonthlyInterest(decimal.RequireFromString("6"))
	if got := interest.String(); got != "5.00" {
		t.Fatalf("expected interest 5.00, got %s", got)
	}
	if got := account.Balance().String(); got != "1005.00" {
		t.Fatalf("expected balance 1005.00, got %s", got)
	}
}

func TestSavingsAccountZeroRateInterestIsNoOp(t *testing.T) {
	account := domain.NewSavingsAccount("ravi", "SBI", "100000000005")
	if err := account.Deposit(mustAmount(t, "5000")); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	interest := account.ApplyMonthlyInterest(decimal.Zero)
	if !interest.IsZero() {
		t.Fatalf("expected zero interest, got %s", interest)
	}
	if got := account.Balance().String(); got != "5000.00" {
		t.Fatalf("expected balance unchanged, got %s", got)
	}
}

func TestAccountSummaries(t *testing.T) {
	savings := domain.NewSavingsAccount("ravi", "SBI", "100000000006")
	if !strings.Contains(savings.Summary(), "SavingsAccount(owner=ravi, no=100000000006") {
		t.Fatalf("unexpected savings summary %q", savings.Summary())
	}

	current := domain.NewCurrentAccount("ravi", "SBI", "100000000007")
	if !strings.Contains(current.Summary(), "CurrentAccount(owner=ravi, no=100000000007") {
		t.Fatalf("unexpected current summary %q", current.Summary())
	}
}

package service_interfaces

import (
	"context"

	"github.com/api-sage/core-banking-ledger/src/internal/domain"
)

// LedgerService is the only entry point allowed to mutate account balances.
// Every successful mutation is paired with exactly one recorded transaction.
type LedgerService interface {
	Deposit(ctx context.Context, accountNumber string, amount domain.Money, description string) (domain.TransactionResult, error)
	Withdraw(ctx context.Context, accountNumber string, amount domain.Money, description string) (domain.TransactionResult, error)
	Transfer(ctx context.Context, fromAccountNumber, toAccountNumber string, amount domain.Money, description string) (domain.TransactionResult, error)
	History(ctx context.Context, accountNumber string) ([]domain.Transaction, error)
	LoadState(ctx context.Context, transactions []domain.Transaction) error
	ExportState(ctx context.Context) ([]domain.Transaction, error)
}

package repo_interfaces

import (
	"context"

	"github.com/api-sage/core-banking-ledger/src/internal/domain"
)

// AccountRepository is the registry of live accounts keyed by account number.
// Lookups return the live account, not a copy: the ledger mutates balances in
// place under its per-account locks.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) error
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	ListByOwner(ctx context.Context, ownerUsername string) ([]domain.Account, error)
	ListSavings(ctx context.Context) ([]*domain.SavingsAccount, error)
	All(ctx context.Context) ([]domain.Account, error)
	ReplaceAll(ctx context.Context, accounts []domain.Account) error
}

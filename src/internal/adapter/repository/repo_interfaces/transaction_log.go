package repo_interfaces

import (
	"context"

	"github.com/api-sage/core-banking-ledger/src/internal/domain"
)

// TransactionLog is the append-only ledger sequence. Insertion order is the
// audit trail and must survive every query and round-trip.
type TransactionLog interface {
	Append(ctx context.Context, transaction domain.Transaction) error
	ByAccount(ctx context.Context, accountNumber string) ([]domain.Transaction, error)
	All(ctx context.Context) ([]domain.Transaction, error)
	Replace(ctx context.Context, transactions []domain.Transaction) error
}

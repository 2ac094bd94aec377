package repo_interfaces

import (
	"context"

	"github.com/api-sage/core-banking-ledger/src/internal/domain"
)

// SnapshotStore checkpoints the three in-memory collections to durable
// storage. The collections are independent; a checkpoint is consistent when
// all three reflect the same moment. Loading from an absent backing resource
// returns empty collections; an unreadable or failing backend surfaces an
// error wrapping domain.ErrPersistenceUnavailable so callers can degrade
// instead of crashing.
type SnapshotStore interface {
	SaveUsers(ctx context.Context, users []domain.UserDetails) error
	LoadUsers(ctx context.Context) ([]domain.UserDetails, error)
	SaveAccounts(ctx context.Context, accounts []domain.Account) error
	LoadAccounts(ctx context.Context) ([]domain.Account, error)
	SaveTransactions(ctx context.Context, transactions []domain.Transaction) error
	LoadTransactions(ctx context.Context) ([]domain.Transaction, error)
}

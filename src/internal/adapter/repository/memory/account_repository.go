package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/api-sage/core-banking-ledger/src/internal/domain"
)

// AccountRepository keeps the live account registry in a map keyed by account
// number. The RWMutex protects the map itself; balance mutation on the stored
// accounts is serialized by the ledger's per-account locks.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]domain.Account)}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.AccountNumber()] = account
	return nil
}

func (r *AccountRepository) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[accountNumber]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (r *AccountRepository) ListByOwner(_ context.Context, ownerUsername string) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Account
	for _, account := range r.accounts {
		if account.OwnerUsername() == ownerUsername {
			out = append(out, account)
		}
	}
	sortAccounts(out)
	return out, nil
}

func (r *AccountRepository) ListSavings(_ context.Context) ([]*domain.SavingsAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.SavingsAccount
	for _, account := range r.accounts {
		if savings, ok := account.(*domain.SavingsAccount); ok {
			out = append(out, savings)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber() < out[j].AccountNumber() })
	return out, nil
}

func (r *AccountRepository) All(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		out = append(out, account)
	}
	sortAccounts(out)
	return out, nil
}

func (r *AccountRepository) ReplaceAll(_ context.Context, accounts []domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = make(map[string]domain.Account, len(accounts))
	for _, account := range accounts {
		r.accounts[account.AccountNumber()] = account
	}
	return nil
}

// Stable ordering keeps listings and checkpoints deterministic.
func sortAccounts(accounts []domain.Account) {
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].AccountNumber() < accounts[j].AccountNumber()
	})
}

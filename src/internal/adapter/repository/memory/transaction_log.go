package memory

import (
	"context"
	"sync"

	"github.com/api-sage/core-banking-ledger/src/internal/domain"
)

// TransactionLog is the append-only in-memory ledger sequence. Appends under
// the lock preserve recording order, which is the audit trail.
type TransactionLog struct {
	mu           sync.RWMutex
	transactions []domain.Transaction
}

func NewTransactionLog() *TransactionLog {
	return &TransactionLog{}
}

func (l *TransactionLog) Append(_ context.Context, transaction domain.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = append(l.transactions, transaction)
	return nil
}

func (l *TransactionLog) ByAccount(_ context.Context, accountNumber string) ([]domain.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.Transaction
	for _, transaction := range l.transactions {
		if references(transaction, accountNumber) {
			out = append(out, transaction)
		}
	}
	return out, nil
}

func (l *TransactionLog) All(_ context.Context) ([]domain.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out, nil
}

func (l *TransactionLog) Replace(_ context.Context, transactions []domain.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = make([]domain.Transaction, len(transactions))
	copy(l.transactions, transactions)
	return nil
}

func references(transaction domain.Transaction, accountNumber string) bool {
	if transaction.FromAccount != nil && *transaction.FromAccount == accountNumber {
		return true
	}
	if transaction.ToAccount != nil && *transaction.ToAccount == accountNumber {
		return true
	}
	return false
}

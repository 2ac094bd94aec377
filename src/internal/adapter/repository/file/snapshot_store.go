// Package file persists snapshots as one JSON file per collection. Writes go
// through a temp file renamed over the target, so a crash mid-write leaves the
// previous checkpoint intact.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/api-sage/core-banking-ledger/src/internal/adapter/repository/records"
	"github.com/api-sage/core-banking-ledger/src/internal/domain"
)

const (
	usersFile        = "users.json"
	accountsFile     = "accounts.json"
	transactionsFile = "transactions.json"
)

type SnapshotStore struct {
	dir string
}

func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot directory %q: %w", dir, err)
	}
	return &SnapshotStore{dir: dir}, nil
}

func (s *SnapshotStore) SaveUsers(_ context.Context, users []domain.UserDetails) error {
	out := make([]records.UserRecord, 0, len(users))
	for _, user := range users {
		out = append(out, records.UserToRecord(user))
	}
	return s.write(usersFile, out)
}

func (s *SnapshotStore) LoadUsers(_ context.Context) ([]domain.UserDetails, error) {
	var loaded []records.UserRecord
	if err := s.read(usersFile, &loaded); err != nil {
		return nil, err
	}
	out := make([]domain.UserDetails, 0, len(loaded))
	for _, record := range loaded {
		out = append(out, records.UserFromRecord(record))
	}
	return out, nil
}

func (s *SnapshotStore) SaveAccounts(_ context.Context, accounts []domain.Account) error {
	out := make([]records.AccountRecord, 0, len(accounts))
	for _, account := range accounts {
		record, err := records.AccountToRecord(account)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
		}
		out = append(out, record)
	}
	return s.write(accountsFile, out)
}

func (s *SnapshotStore) LoadAccounts(_ context.Context) ([]domain.Account, error) {
	var loaded []records.AccountRecord
	if err := s.read(accountsFile, &loaded); err != nil {
		return nil, err
	}
	out := make([]domain.Account, 0, len(loaded))
	for _, record := range loaded {
		account, err := records.AccountFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
		}
		out = append(out, account)
	}
	return out, nil
}

func (s *SnapshotStore) SaveTransactions(_ context.Context, transactions []domain.Transaction) error {
	out := make([]records.TransactionRecord, 0, len(transactions))
	for _, transaction := range transactions {
		out = append(out, records.TransactionToRecord(transaction))
	}
	return s.write(transactionsFile, out)
}

func (s *SnapshotStore) LoadTransactions(_ context.Context) ([]domain.Transaction, error) {
	var loaded []records.TransactionRecord
	if err := s.read(transactionsFile, &loaded); err != nil {
		return nil, err
	}
	out := make([]domain.Transaction, 0, len(loaded))
	for _, record := range loaded {
		transaction, err := records.TransactionFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
		}
		out = append(out, transaction)
	}
	return out, nil
}

func (s *SnapshotStore) write(name string, payload any) error {
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: create %q: %w", domain.ErrPersistenceUnavailable, tmp, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return fmt.Errorf("%w: encode %q: %w", domain.ErrPersistenceUnavailable, name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %q: %w", domain.ErrPersistenceUnavailable, tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: replace %q: %w", domain.ErrPersistenceUnavailable, name, err)
	}
	return nil
}

// read decodes name into target. A missing file is a first run, not an error:
// target is left empty.
func (s *SnapshotStore) read(name string, target any) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: open %q: %w", domain.ErrPersistenceUnavailable, name, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(target); err != nil {
		return fmt.Errorf("%w: decode %q: %w", domain.ErrPersistenceUnavailable, name, err)
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/core-banking-ledger/src/internal/adapter/repository/records"
	"github.com/api-sage/core-banking-ledger/src/internal/domain"
)

// SnapshotStore checkpoints each collection into its own table. A save
// replaces the table's contents inside one transaction, so a checkpoint is
// either fully applied or not at all. Transactions keep their recording order
// through the seq column.
type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

func (s *SnapshotStore) SaveUsers(ctx context.Context, users []domain.UserDetails) error {
	return s.replace(ctx, "snapshot_users", func(ctx context.Context, tx *sql.Tx) error {
		const query = `
INSERT INTO snapshot_users (username, name, city, email, phone, password_hash)
VALUES ($1, $2, $3, $4, $5, $6)`
		for _, user := range users {
			record := records.UserToRecord(user)
			if _, err := tx.ExecContext(ctx, query,
				record.Username, record.Name, record.City, record.Email, record.Phone, record.PasswordHash,
			); err != nil {
				return fmt.Errorf("insert user %q: %w", record.Username, err)
			}
		}
		return nil
	})
}

func (s *SnapshotStore) LoadUsers(ctx context.Context) ([]domain.UserDetails, error) {
	const query = `SELECT username, name, city, email, phone, password_hash FROM snapshot_users ORDER BY username`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: load users: %w", domain.ErrPersistenceUnavailable, err)
	}
	defer rows.Close()

	var out []domain.UserDetails
	for rows.Next() {
		var record records.UserRecord
		if err := rows.Scan(&record.Username, &record.Name, &record.City, &record.Email, &record.Phone, &record.PasswordHash); err != nil {
			return nil, fmt.Errorf("%w: scan user: %w", domain.ErrPersistenceUnavailable, err)
		}
		out = append(out, records.UserFromRecord(record))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load users: %w", domain.ErrPersistenceUnavailable, err)
	}
	return out, nil
}

func (s *SnapshotStore) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	return s.replace(ctx, "snapshot_accounts", func(ctx context.Context, tx *sql.Tx) error {
		const query = `
INSERT INTO snapshot_accounts (account_number, owner_username, bank_name, account_type, balance, min_balance)
VALUES ($1, $2, $3, $4, $5, $6)`
		for _, account := range accounts {
			record, err := records.AccountToRecord(account)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query,
				record.AccountNumber, record.OwnerUsername, record.BankName, record.AccountType, record.Balance, record.MinBalance,
			); err != nil {
				return fmt.Errorf("insert account %q: %w", record.AccountNumber, err)
			}
		}
		return nil
	})
}

func (s *SnapshotStore) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	const query = `
SELECT account_number, owner_username, bank_name, account_type, balance, min_balance
FROM snapshot_accounts ORDER BY account_number`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: load accounts: %w", domain.ErrPersistenceUnavailable, err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		var record records.AccountRecord
		if err := rows.Scan(&record.AccountNumber, &record.OwnerUsername, &record.BankName, &record.AccountType, &record.Balance, &record.MinBalance); err != nil {
			return nil, fmt.Errorf("%w: scan account: %w", domain.ErrPersistenceUnavailable, err)
		}
		account, err := records.AccountFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
		}
		out = append(out, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load accounts: %w", domain.ErrPersistenceUnavailable, err)
	}
	return out, nil
}

func (s *SnapshotStore) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	return s.replace(ctx, "snapshot_transactions", func(ctx context.Context, tx *sql.Tx) error {
		const query = `
INSERT INTO snapshot_transactions (seq, id, from_account, to_account, amount, type, status, recorded_at, description, balance_after)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		for seq, transaction := range transactions {
			record := records.TransactionToRecord(transaction)
			if _, err := tx.ExecContext(ctx, query,
				seq, record.ID, record.FromAccount, record.ToAccount, record.Amount,
				record.Type, record.Status, record.Timestamp, record.Description, record.BalanceAfter,
			); err != nil {
				return fmt.Errorf("insert transaction %q: %w", record.ID, err)
			}
		}
		return nil
	})
}

func (s *SnapshotStore) LoadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	const query = `
SELECT id, from_account, to_account, amount, type, status, recorded_at, description, balance_after
FROM snapshot_transactions ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: load transactions: %w", domain.ErrPersistenceUnavailable, err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var record records.TransactionRecord
		if err := rows.Scan(&record.ID, &record.FromAccount, &record.ToAccount, &record.Amount, &record.Type, &record.Status, &record.Timestamp, &record.Description, &record.BalanceAfter); err != nil {
			return nil, fmt.Errorf("%w: scan transaction: %w", domain.ErrPersistenceUnavailable, err)
		}
		transaction, err := records.TransactionFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
		}
		out = append(out, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load transactions: %w", domain.ErrPersistenceUnavailable, err)
	}
	return out, nil
}

func (s *SnapshotStore) replace(ctx context.Context, table string, insert func(context.Context, *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin checkpoint for %s: %w", domain.ErrPersistenceUnavailable, table, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: clear %s: %w", domain.ErrPersistenceUnavailable, table, err)
	}

	if err := insert(ctx, tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit checkpoint for %s: %w", domain.ErrPersistenceUnavailable, table, err)
	}
	return nil
}

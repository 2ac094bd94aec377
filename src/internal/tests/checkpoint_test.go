package services_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/api-sage/core-banking-ledger/src/internal/accountno"
	"github.com/api-sage/core-banking-ledger/src/internal/adapter/repository/file"
	"github.com/api-sage/core-banking-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/core-banking-ledger/src/internal/domain"
	"github.com/api-sage/core-banking-ledger/src/internal/usecase/services"
)

func TestFileSnapshotStoreRoundTrip(t *testing.T) {
	store, err := file.NewSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("snapshot store: %v", err)
	}
	ctx := context.Background()

	users := []domain.UserDetails{{
		Username:     "ravi",
		Name:         "Ravi Kumar",
		City:         "Chennai",
		Email:        "ravi@example.com",
		Phone:        "9876543210",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}}

	savings := domain.NewSavingsAccount("ravi", "SBI", "300000000001")
	if err := savings.Deposit(mustAmount(t, "2500")); err != nil {
		t.Fatalf("seed savings: %v", err)
	}
	current := domain.NewCurrentAccount("ravi", "SBI", "300000000002")
	accounts := []domain.Account{savings, current}

	to := "300000000001"
	balanceAfter := mustMoney(t, "2500")
	transactions := []domain.Transaction{{
		ID:           "tx-1",
		ToAccount:    &to,
		Amount:       mustAmount(t, "2500"),
		Type:         domain.TransactionTypeDeposit,
		Status:       domain.TransactionStatusCompleted,
		Timestamp:    time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
		BalanceAfter: &balanceAfter,
	}}

	if err := store.SaveUsers(ctx, users); err != nil {
		t.Fatalf("save users: %v", err)
	}
	if err := store.SaveAccounts(ctx, accounts); err != nil {
		t.Fatalf("save accounts: %v", err)
	}
	if err := store.SaveTransactions(ctx, transactions); err != nil {
		t.Fatalf("save transactions: %v", err)
	}

	loadedUsers, err := store.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	if len(loadedUsers) != 1 || loadedUsers[0] != users[0] {
		t.Fatalf("user round trip mismatch: %+v", loadedUsers)
	}

	loadedAccounts, err := store.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("load accounts: %v", err)
	}
	if len(loadedAccounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(loadedAccounts))
	}
	restoredSavings, ok := loadedAccounts[0].(*domain.SavingsAccount)
	if !ok {
		t.Fatalf("expected first account restored as savings, got %T", loadedAccounts[0])
	}
	if restoredSavings.Balance().String() != "2500.00" {
		t.Fatalf("expected restored balance 2500.00, got %s", restoredSavings.Balance())
	}
	if restoredSavings.MinimumBalance().String() != "1000.00" {
		t.Fatalf("expected restored minimum balance 1000.00, got %s", restoredSavings.MinimumBalance())
	}
	if _, ok := loadedAccounts[1].(*domain.CurrentAccount); !ok {
		t.Fatalf("expected second account restored as current, got %T", loadedAccounts[1])
	}

	loadedTransactions, err := store.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("load transactions: %v", err)
	}
	if len(loadedTransactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(loadedTransactions))
	}
	reloaded := loadedTransactions[0]
	if reloaded.ID != "tx-1" || reloaded.ToAccount == nil || *reloaded.ToAccount != to {
		t.Fatalf("transaction round trip mismatch: %+v", reloaded)
	}
	if reloaded.BalanceAfter == nil || reloaded.BalanceAfter.String() != "2500.00" {
		t.Fatalf("expected balance_after 2500.00, got %v", reloaded.BalanceAfter)
	}
	if !reloaded.Timestamp.Equal(transactions[0].Timestamp) {
		t.Fatalf("timestamp mismatch: %s", reloaded.Timestamp)
	}
}

func TestFileSnapshotStoreMissingFilesLoadEmpty(t *testing.T) {
	store, err := file.NewSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("snapshot store: %v", err)
	}
	ctx := context.Background()

	users, err := store.LoadUsers(ctx)
	if err != nil || len(users) != 0 {
		t.Fatalf("expected empty users on first run, got %v %v", users, err)
	}
	accounts, err := store.LoadAccounts(ctx)
	if err != nil || len(accounts) != 0 {
		t.Fatalf("expected empty accounts on first run, got %v %v", accounts, err)
	}
	transactions, err := store.LoadTransactions(ctx)
	if err != nil || len(transactions) != 0 {
		t.Fatalf("expected empty transactions on first run, got %v %v", transactions, err)
	}
}

func TestFileSnapshotStoreCorruptFileReportsUnavailable(t *testing.T) {
	dir := t.TempDir()
	store, err := file.NewSnapshotStore(dir)
	if err != nil {
		t.Fatalf("snapshot store: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "accounts.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	_, err = store.LoadAccounts(context.Background())
	if !errors.Is(err, domain.ErrPersistenceUnavailable) {
		t.Fatalf("expected ErrPersistenceUnavailable, got %v", err)
	}
}

func TestCheckpointRestoreRebuildsStateAndReservesNumbers(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := file.NewSnapshotStore(dir)
	if err != nil {
		t.Fatalf("snapshot store: %v", err)
	}

	userRepo := memory.NewUserRepository()
	accountRepo := memory.NewAccountRepository()
	txLog := memory.NewTransactionLog()
	numbers := accountno.NewGenerator(12)

	if _, err := userRepo.Create(ctx, domain.UserDetails{Username: "ravi", Name: "Ravi Kumar"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	savings := domain.NewSavingsAccount("ravi", "SBI", "300000000010")
	if err := savings.Deposit(mustAmount(t, "1200")); err != nil {
		t.Fatalf("seed balance: %v", err)
	}
	if err := accountRepo.Create(ctx, savings); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	ledger := services.NewLedgerService(accountRepo, txLog)
	if _, err := ledger.Deposit(ctx, "300000000010", mustAmount(t, "300"), "pay"); err != nil {
		t.Fatalf("ledger deposit: %v", err)
	}

	checkpoints := services.NewCheckpointService(userRepo, accountRepo, txLog, store, ledger, numbers)
	if err := checkpoints.Checkpoint(ctx); err != nil {
		t.Fatalf("checkpoint: %v", err)
	}

	// A fresh process restores from the same directory.
	freshUsers := memory.NewUserRepository()
	freshAccounts := memory.NewAccountRepository()
	freshLog := memory.NewTransactionLog()
	freshNumbers := accountno.NewGenerator(12)
	freshLedger := services.NewLedgerService(freshAccounts, freshLog)

	restored := services.NewCheckpointService(freshUsers, freshAccounts, freshLog, store, freshLedger, freshNumbers)
	if err := restored.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}

	if _, err := freshUsers.GetByUsername(ctx, "ravi"); err != nil {
		t.Fatalf("expected restored user: %v", err)
	}
	account, err := freshAccounts.GetByAccountNumber(ctx, "300000000010")
	if err != nil {
		t.Fatalf("expected restored account: %v", err)
	}
	if account.Balance().String() != "1500.00" {
		t.Fatalf("expected restored balance 1500.00, got %s", account.Balance())
	}
	transactions, err := freshLog.All(ctx)
	if err != nil {
		t.Fatalf("read restored log: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 restored transaction, got %d", len(transactions))
	}
	if freshNumbers.Issued() != 1 {
		t.Fatalf("expected restored account number reserved, got %d issued", freshNumbers.Issued())
	}
}

func TestCheckpointDuringConcurrentDepositsStaysConsistent(t *testing.T) {
	ctx := context.Background()

	store, err := file.NewSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("snapshot store: %v", err)
	}

	userRepo := memory.NewUserRepository()
	accountRepo := memory.NewAccountRepository()
	txLog := memory.NewTransactionLog()
	numbers := accountno.NewGenerator(12)

	account := domain.NewCurrentAccount("ravi", "SBI", "300000000020")
	if err := accountRepo.Create(ctx, account); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	ledger := services.NewLedgerService(accountRepo, txLog)
	checkpoints := services.NewCheckpointService(userRepo, accountRepo, txLog, store, ledger, numbers)

	// Deposits and checkpoints race; each captured balance must be a value
	// the account actually held, never a torn read.
	one := mustAmount(t, "1.00")
	var wg sync.WaitGroup
	for worker := 0; worker < 4; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				if _, err := ledger.Deposit(ctx, "300000000020", one, ""); err != nil {
					t.Errorf("deposit: %v", err)
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			if err := checkpoints.Checkpoint(ctx); err != nil {
				t.Errorf("checkpoint: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	if err := checkpoints.Checkpoint(ctx); err != nil {
		t.Fatalf("final checkpoint: %v", err)
	}

	freshAccounts := memory.NewAccountRepository()
	freshLog := memory.NewTransactionLog()
	freshLedger := services.NewLedgerService(freshAccounts, freshLog)
	restored := services.NewCheckpointService(memory.NewUserRepository(), freshAccounts, freshLog, store, freshLedger, accountno.NewGenerator(12))
	if err := restored.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}

	reloaded, err := freshAccounts.GetByAccountNumber(ctx, "300000000020")
	if err != nil {
		t.Fatalf("restored account: %v", err)
	}
	if got := reloaded.Balance().String(); got != "100.00" {
		t.Fatalf("expected restored balance 100.00 after 100 deposits of 1.00, got %s", got)
	}
	transactions, err := freshLog.All(ctx)
	if err != nil {
		t.Fatalf("restored log: %v", err)
	}
	if len(transactions) != 100 {
		t.Fatalf("expected 100 restored transactions, got %d", len(transactions))
	}
}

func TestRestoreDegradesCorruptCollectionToEmpty(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := file.NewSnapshotStore(dir)
	if err != nil {
		t.Fatalf("snapshot store: %v", err)
	}

	if err := store.SaveUsers(ctx, []domain.UserDetails{{Username: "ravi", Name: "Ravi Kumar"}}); err != nil {
		t.Fatalf("save users: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "transactions.json"), []byte("][invalid"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	userRepo := memory.NewUserRepository()
	accountRepo := memory.NewAccountRepository()
	txLog := memory.NewTransactionLog()
	numbers := accountno.NewGenerator(12)
	ledger := services.NewLedgerService(accountRepo, txLog)

	checkpoints := services.NewCheckpointService(userRepo, accountRepo, txLog, store, ledger, numbers)
	if err := checkpoints.Restore(ctx); err != nil {
		t.Fatalf("restore should degrade, not fail: %v", err)
	}

	if _, err := userRepo.GetByUsername(ctx, "ravi"); err != nil {
		t.Fatalf("expected intact collection restored: %v", err)
	}
	transactions, err := txLog.All(ctx)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(transactions) != 0 {
		t.Fatalf("expected corrupt collection degraded to empty, got %d entries", len(transactions))
	}
}

package services

import (
	"context"
	"errors"

	"github.com/api-sage/core-banking-ledger/src/internal/accountno"
	"github.com/api-sage/core-banking-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking-ledger/src/internal/domain"
	"github.com/api-sage/core-banking-ledger/src/internal/logger"
	"github.com/api-sage/core-banking-ledger/src/internal/usecase/service_interfaces"
	"golang.org/x/sync/errgroup"
)

var _ service_interfaces.CheckpointService = (*CheckpointService)(nil)

// CheckpointService pushes the user map, account map and transaction sequence
// through the snapshot store, and rebuilds them at startup. Callers trigger
// Checkpoint between operations, so the captured collections reflect a
// consistent moment.
type CheckpointService struct {
	userRepo    repo_interfaces.UserRepository
	accountRepo repo_interfaces.AccountRepository
	txLog       repo_interfaces.TransactionLog
	store       repo_interfaces.SnapshotStore
	ledger      *LedgerService
	numbers     *accountno.Generator
}

func NewCheckpointService(
	userRepo repo_interfaces.UserRepository,
	accountRepo repo_interfaces.AccountRepository,
	txLog repo_interfaces.TransactionLog,
	store repo_interfaces.SnapshotStore,
	ledger *LedgerService,
	numbers *accountno.Generator,
) *CheckpointService {
	return &CheckpointService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		txLog:       txLog,
		store:       store,
		ledger:      ledger,
		numbers:     numbers,
	}
}

// Checkpoint saves the three collections concurrently. The first failure wins
// and is reported wrapped in domain.ErrPersistenceUnavailable by the store.
// Each account is snapshotted under its ledger lock, so the captured balances
// are never mid-mutation even with operations running on other goroutines.
func (s *CheckpointService) Checkpoint(ctx context.Context) error {
	users, err := s.userRepo.All(ctx)
	if err != nil {
		return err
	}
	accounts, err := s.accountRepo.All(ctx)
	if err != nil {
		return err
	}

	snapshots := make([]domain.Account, 0, len(accounts))
	for _, account := range accounts {
		s.ledger.withAccountLock(account.AccountNumber(), func() {
			snapshots = append(snapshots, account.Snapshot())
		})
	}

	transactions, err := s.txLog.All(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.store.SaveUsers(gctx, users) })
	g.Go(func() error { return s.store.SaveAccounts(gctx, snapshots) })
	g.Go(func() error { return s.store.SaveTransactions(gctx, transactions) })

	if err := g.Wait(); err != nil {
		logger.Error("checkpoint save failed", err, nil)
		return err
	}

	logger.Info("checkpoint saved", logger.Fields{
		"users":        len(users),
		"accounts":     len(accounts),
		"transactions": len(transactions),
	})
	return nil
}

// Restore loads the three collections into the repositories. An unavailable
// backend degrades the affected collection to empty with a logged error:
// starting empty beats refusing to run. Restored account numbers are reserved
// so the generator cannot reissue them.
func (s *CheckpointService) Restore(ctx context.Context) error {
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrPersistenceUnavailable) {
			return err
		}
		logger.Error("restore users degraded to empty", err, nil)
		users = nil
	}

	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrPersistenceUnavailable) {
			return err
		}
		logger.Error("restore accounts degraded to empty", err, nil)
		accounts = nil
	}

	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrPersistenceUnavailable) {
			return err
		}
		logger.Error("restore transactions degraded to empty", err, nil)
		transactions = nil
	}

	if err := s.userRepo.ReplaceAll(ctx, users); err != nil {
		return err
	}
	if err := s.accountRepo.ReplaceAll(ctx, accounts); err != nil {
		return err
	}
	if err := s.txLog.Replace(ctx, transactions); err != nil {
		return err
	}

	for _, account := range accounts {
		s.numbers.Reserve(account.AccountNumber())
	}

	logger.Info("state restored", logger.Fields{
		"users":        len(users),
		"accounts":     len(accounts),
		"transactions": len(transactions),
	})
	return nil
}

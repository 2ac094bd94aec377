package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/core-banking-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking-ledger/src/internal/domain"
	"github.com/api-sage/core-banking-ledger/src/internal/logger"
	"github.com/api-sage/core-banking-ledger/src/internal/usecase/service_interfaces"
	"github.com/google/uuid"
)

var _ service_interfaces.LedgerService = (*LedgerService)(nil)

// LedgerService orchestrates deposits, withdrawals and transfers against
// accounts and records every completed movement in the transaction log. It is
// the only caller-facing path that mutates balances; per-account locks keep
// concurrent mutations serialized per account.
type LedgerService struct {
	accountRepo repo_interfaces.AccountRepository
	txLog       repo_interfaces.TransactionLog
	locks       *accountLocks
}

func NewLedgerService(accountRepo repo_interfaces.AccountRepository, txLog repo_interfaces.TransactionLog) *LedgerService {
	return &LedgerService{
		accountRepo: accountRepo,
		txLog:       txLog,
		locks:       newAccountLocks(),
	}
}

func (s *LedgerService) Deposit(ctx context.Context, accountNumber string, amount domain.Money, description string) (domain.TransactionResult, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	logger.Info("ledger deposit request", logger.Fields{
		"accountNumber": accountNumber,
		"amount":        amount.String(),
	})

	if !amount.IsPositive() {
		return failureResult(domain.ErrInvalidAmount), domain.ErrInvalidAmount
	}

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("ledger deposit account lookup failed", err, logger.Fields{"accountNumber": accountNumber})
		return failureResult(err), err
	}

	unlock := s.locks.lock(accountNumber)
	opErr := account.Deposit(amount)
	balanceAfter := account.Balance()
	unlock()

	transaction := newTransaction(nil, &accountNumber, amount, domain.TransactionTypeDeposit, opErr, balanceAfter, description)
	if appendErr := s.txLog.Append(ctx, transaction); appendErr != nil {
		return failureResult(appendErr), appendErr
	}

	if opErr != nil {
		logger.Error("ledger deposit failed", opErr, logger.Fields{"accountNumber": accountNumber})
		return domain.TransactionResult{Success: false, Message: opErr.Error(), Transaction: &transaction}, opErr
	}

	return domain.TransactionResult{
		Success:     true,
		Message:     fmt.Sprintf("Deposited %s", amount),
		Transaction: &transaction,
	}, nil
}

func (s *LedgerService) Withdraw(ctx context.Context, accountNumber string, amount domain.Money, description string) (domain.TransactionResult, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	logger.Info("ledger withdraw request", logger.Fields{
		"accountNumber": accountNumber,
		"amount":        amount.String(),
	})

	if !amount.IsPositive() {
		return failureResult(domain.ErrInvalidAmount), domain.ErrInvalidAmount
	}

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("ledger withdraw account lookup failed", err, logger.Fields{"accountNumber": accountNumber})
		return failureResult(err), err
	}

	unlock := s.locks.lock(accountNumber)
	opErr := account.Withdraw(amount)
	balanceAfter := account.Balance()
	unlock()

	transaction := newTransaction(&accountNumber, nil, amount, domain.TransactionTypeWithdraw, opErr, balanceAfter, description)
	if appendErr := s.txLog.Append(ctx, transaction); appendErr != nil {
		return failureResult(appendErr), appendErr
	}

	if opErr != nil {
		logger.Error("ledger withdraw failed", opErr, logger.Fields{"accountNumber": accountNumber})
		return domain.TransactionResult{Success: false, Message: opErr.Error(), Transaction: &transaction}, opErr
	}

	return domain.TransactionResult{
		Success:     true,
		Message:     fmt.Sprintf("Withdrew %s", amount),
		Transaction: &transaction,
	}, nil
}

// Transfer runs the two-phase withdraw-then-deposit protocol. A failed
// withdrawal phase leaves no trace in the log; once the withdrawal has
// succeeded, a failed deposit phase is compensated by re-depositing into the
// source before the failure is reported. Only a fully-completed transfer is
// recorded, as exactly one TRANSFER transaction.
func (s *LedgerService) Transfer(ctx context.Context, fromAccountNumber, toAccountNumber string, amount domain.Money, description string) (domain.TransactionResult, error) {
	fromAccountNumber = strings.TrimSpace(fromAccountNumber)
	toAccountNumber = strings.TrimSpace(toAccountNumber)
	logger.Info("ledger transfer request", logger.Fields{
		"fromAccountNumber": fromAccountNumber,
		"toAccountNumber":   toAccountNumber,
		"amount":            amount.String(),
	})

	if !amount.IsPositive() {
		return failureResult(domain.ErrInvalidAmount), domain.ErrInvalidAmount
	}
	if fromAccountNumber == toAccountNumber {
		return failureResult(domain.ErrSameAccount), domain.ErrSameAccount
	}

	from, err := s.accountRepo.GetByAccountNumber(ctx, fromAccountNumber)
	if err != nil {
		logger.Error("ledger transfer debit account lookup failed", err, logger.Fields{"accountNumber": fromAccountNumber})
		return failureResult(err), err
	}
	to, err := s.accountRepo.GetByAccountNumber(ctx, toAccountNumber)
	if err != nil {
		logger.Error("ledger transfer credit account lookup failed", err, logger.Fields{"accountNumber": toAccountNumber})
		return failureResult(err), err
	}

	unlock := s.locks.lockPair(fromAccountNumber, toAccountNumber)
	defer unlock()

	if withdrawErr := from.Withdraw(amount); withdrawErr != nil {
		logger.Error("ledger transfer withdrawal phase failed", withdrawErr, logger.Fields{
			"fromAccountNumber": fromAccountNumber,
		})
		return failureResult(withdrawErr), withdrawErr
	}

	if depositErr := to.Deposit(amount); depositErr != nil {
		if compErr := from.Deposit(amount); compErr != nil {
			logger.Error("ledger transfer compensation failed", compErr, logger.Fields{
				"fromAccountNumber": fromAccountNumber,
				"toAccountNumber":   toAccountNumber,
			})
			return failureResult(domain.ErrCompensationFailed), domain.ErrCompensationFailed
		}
		logger.Error("ledger transfer deposit phase failed", depositErr, logger.Fields{
			"toAccountNumber": toAccountNumber,
		})
		return failureResult(depositErr), depositErr
	}

	transaction := newTransaction(&fromAccountNumber, &toAccountNumber, amount, domain.TransactionTypeTransfer, nil, from.Balance(), description)
	if appendErr := s.txLog.Append(ctx, transaction); appendErr != nil {
		return failureResult(appendErr), appendErr
	}

	return domain.TransactionResult{
		Success:     true,
		Message:     fmt.Sprintf("Transferred %s from %s to %s", amount, fromAccountNumber, toAccountNumber),
		Transaction: &transaction,
	}, nil
}

// History returns every recorded transaction referencing the account as
// source or destination, in recording order.
func (s *LedgerService) History(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	return s.txLog.ByAccount(ctx, strings.TrimSpace(accountNumber))
}

// LoadState bulk-replaces the ledger sequence. Snapshot restore only.
func (s *LedgerService) LoadState(ctx context.Context, transactions []domain.Transaction) error {
	return s.txLog.Replace(ctx, transactions)
}

// ExportState reads the entire ledger sequence. Snapshot checkpoint only.
func (s *LedgerService) ExportState(ctx context.Context) ([]domain.Transaction, error) {
	return s.txLog.All(ctx)
}

// withAccountLock runs fn while holding the account's mutex. Interest accrual
// uses it so batch credits cannot interleave with ledger mutations.
func (s *LedgerService) withAccountLock(accountNumber string, fn func()) {
	unlock := s.locks.lock(accountNumber)
	defer unlock()
	fn()
}

func newTransaction(
	from, to *string,
	amount domain.Money,
	txType domain.TransactionType,
	opErr error,
	balanceAfter domain.Money,
	description string,
) domain.Transaction {
	transaction := domain.Transaction{
		ID:          uuid.NewString(),
		FromAccount: from,
		ToAccount:   to,
		Amount:      amount,
		Type:        txType,
		Status:      domain.TransactionStatusCompleted,
		Timestamp:   time.Now().UTC(),
	}
	if trimmed := strings.TrimSpace(description); trimmed != "" {
		transaction.Description = &trimmed
	}
	if opErr != nil {
		transaction.Status = domain.TransactionStatusFailed
		return transaction
	}
	transaction.BalanceAfter = &balanceAfter
	return transaction
}

func failureResult(err error) domain.TransactionResult {
	message := "Operation failed"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrBelowMinimumBalance),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrCompensationFailed):
		message = err.Error()
	default:
		message = "Unable to process transaction right now"
	}
	return domain.TransactionResult{Success: false, Message: message}
}

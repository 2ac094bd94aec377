package domain

import "time"

type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is an immutable record of one completed ledger event. Status is
// assigned at creation and never transitions. FromAccount is nil for deposits,
// ToAccount is nil for withdrawals; BalanceAfter is nil when the operation
// failed.
type Transaction struct {
	ID           string
	FromAccount  *string
	ToAccount    *string
	Amount       Money
	Type         TransactionType
	Status       TransactionStatus
	Timestamp    time.Time
	Description  *string
	BalanceAfter *Money
}

// TransactionResult is the structured outcome of a ledger operation. Failures
// are reported here rather than raised; Transaction is nil when no record was
// produced for the attempt.
type TransactionResult struct {
	Success     bool
	Message     string
	Transaction *Transaction
}

// Package records holds the serialized snapshot shapes shared by the file and
// postgres snapshot stores, with mapping to and from the domain types.
package records

import (
	"fmt"
	"time"

	"github.com/api-sage/core-banking-ledger/src/internal/domain"
)

type UserRecord struct {
	Username     string `json:"username"`
	Name         string `json:"name"`
	City         string `json:"city"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"password_hash"`
}

type AccountRecord struct {
	AccountNumber string  `json:"account_number"`
	OwnerUsername string  `json:"owner_username"`
	BankName      string  `json:"bank_name"`
	AccountType   string  `json:"account_type"`
	Balance       string  `json:"balance"`
	MinBalance    *string `json:"min_balance,omitempty"`
}

type TransactionRecord struct {
	ID           string    `json:"id"`
	FromAccount  *string   `json:"from_account,omitempty"`
	ToAccount    *string   `json:"to_account,omitempty"`
	Amount       string    `json:"amount"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Description  *string   `json:"description,omitempty"`
	BalanceAfter *string   `json:"balance_after,omitempty"`
}

func UserToRecord(user domain.UserDetails) UserRecord {
	return UserRecord{
		Username:     user.Username,
		Name:         user.Name,
		City:         user.City,
		Email:        user.Email,
		Phone:        user.Phone,
		PasswordHash: user.PasswordHash,
	}
}

func UserFromRecord(record UserRecord) domain.UserDetails {
	return domain.UserDetails{
		Username:     record.Username,
		Name:         record.Name,
		City:         record.City,
		Email:        record.Email,
		Phone:        record.Phone,
		PasswordHash: record.PasswordHash,
	}
}

func AccountToRecord(account domain.Account) (AccountRecord, error) {
	record := AccountRecord{
		AccountNumber: account.AccountNumber(),
		OwnerUsername: account.OwnerUsername(),
		BankName:      account.BankName(),
		AccountType:   string(account.Type()),
		Balance:       account.Balance().String(),
	}

	switch typed := account.(type) {
	case *domain.SavingsAccount:
		minBalance := typed.MinimumBalance().String()
		record.MinBalance = &minBalance
	case *domain.CurrentAccount:
	default:
		return AccountRecord{}, fmt.Errorf("unknown account variant %T", account)
	}

	return record, nil
}

func AccountFromRecord(record AccountRecord) (domain.Account, error) {
	balance, err := domain.MoneyFromString(record.Balance)
	if err != nil {
		return nil, fmt.Errorf("parse balance for account %s: %w", record.AccountNumber, err)
	}

	switch domain.AccountType(record.AccountType) {
	case domain.AccountTypeSavings:
		minBalance := domain.DefaultMinimumBalance
		if record.MinBalance != nil {
			minBalance, err = domain.MoneyFromString(*record.MinBalance)
			if err != nil {
				return nil, fmt.Errorf("parse min balance for account %s: %w", record.AccountNumber, err)
			}
		}
		return domain.RestoreSavingsAccount(record.OwnerUsername, record.BankName, record.AccountNumber, balance, minBalance), nil
	case domain.AccountTypeCurrent:
		return domain.RestoreCurrentAccount(record.OwnerUsername, record.BankName, record.AccountNumber, balance), nil
	default:
		return nil, fmt.Errorf("unknown account type %q for account %s", record.AccountType, record.AccountNumber)
	}
}

func TransactionToRecord(transaction domain.Transaction) TransactionRecord {
	record := TransactionRecord{
		ID:          transaction.ID,
		FromAccount: transaction.FromAccount,
		ToAccount:   transaction.ToAccount,
		Amount:      transaction.Amount.String(),
		Type:        string(transaction.Type),
		Status:      string(transaction.Status),
		Timestamp:   transaction.Timestamp,
		Description: transaction.Description,
	}
	if transaction.BalanceAfter != nil {
		balanceAfter := transaction.BalanceAfter.String()
		record.BalanceAfter = &balanceAfter
	}
	return record
}

func TransactionFromRecord(record TransactionRecord) (domain.Transaction, error) {
	amount, err := domain.MoneyFromString(record.Amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse amount for transaction %s: %w", record.ID, err)
	}

	transaction := domain.Transaction{
		ID:          record.ID,
		FromAccount: record.FromAccount,
		ToAccount:   record.ToAccount,
		Amount:      amount,
		Type:        domain.TransactionType(record.Type),
		Status:      domain.TransactionStatus(record.Status),
		Timestamp:   record.Timestamp,
		Description: record.Description,
	}
	if record.BalanceAfter != nil {
		balanceAfter, err := domain.MoneyFromString(*record.BalanceAfter)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("parse balance after for transaction %s: %w", record.ID, err)
		}
		transaction.BalanceAfter = &balanceAfter
	}
	return transaction, nil
}

package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSavings AccountType = "SAVINGS"
	AccountTypeCurrent AccountType = "CURRENT"
)

// DefaultMinimumBalance is the floor a savings account must keep after any
// withdrawal.
var DefaultMinimumBalance = NewMoney(decimal.NewFromInt(1000))

// Account is the shared capability set of the two account variants. Balances
// are mutated only through Deposit and Withdraw; callers go through the ledger
// so every mutation is paired with a transaction record.
type Account interface {
	AccountNumber() string
	OwnerUsername() string
	BankName() string
	Type() AccountType
	Balance() Money
	Deposit(amount Money) error
	Withdraw(amount Money) error
	// Snapshot returns a detached copy whose balance no later mutation can
	// touch. Checkpointing captures snapshots, never live accounts.
	Snapshot() Account
	Summary() string
}

type baseAccount struct {
	accountNumber string
	ownerUsername string
	bankName      string
	accountType   AccountType
	balance       Money
}

func (a *baseAccount) AccountNumber() string { return a.accountNumber }
func (a *baseAccount) OwnerUsername() string { return a.ownerUsername }
func (a *baseAccount) BankName() string      { return a.bankName }
func (a *baseAccount) Type() AccountType     { return a.accountType }
func (a *baseAccount) Balance() Money        { return a.balance }

// Deposit credits the account. Both variants share the same rule: the amount
// must be strictly positive, there is no upper constraint.
func (a *baseAccount) Deposit(amount Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	return nil
}

// credit bypasses the deposit guard. Used only by interest accrual.
func (a *baseAccount) credit(amount Money) {
	a.balance = a.balance.Add(amount)
}

type SavingsAccount struct {
	baseAccount
	minBalance Money
}

func NewSavingsAccount(ownerUsername, bankName, accountNumber string) *SavingsAccount {
	return &SavingsAccount{
		baseAccount: baseAccount{
			accountNumber: accountNumber,
			ownerUsername: ownerUsername,
			bankName:      bankName,
			accountType:   AccountTypeSavings,
			balance:       ZeroMoney(),
		},
		minBalance: DefaultMinimumBalance,
	}
}

// RestoreSavingsAccount rebuilds a savings account from a snapshot record.
func RestoreSavingsAccount(ownerUsername, bankName, accountNumber string, balance, minBalance Money) *SavingsAccount {
	account := NewSavingsAccount(ownerUsername, bankName, accountNumber)
	account.balance = balance
	account.minBalance = minBalance
	return account
}

func (a *SavingsAccount) MinimumBalance() Money { return a.minBalance }

func (a *SavingsAccount) Withdraw(amount Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if a.balance.Subtract(amount).Compare(a.minBalance) < 0 {
		return ErrBelowMinimumBalance
	}
	a.balance = a.balance.Subtract(amount)
	return nil
}

// ApplyMonthlyInterest credits one month of interest at the given annual rate
// and returns the amount credited. The monthly rate is annual/12/100 rounded to
// 8 digits half-up, the interest to 2 digits half-up; nothing is credited
// unless the rounded interest is strictly positive. A zero rate is a no-op, so
// this deliberately does not go through the deposit guard.
func (a *SavingsAccount) ApplyMonthlyInterest(annualRatePercent decimal.Decimal) Money {
	monthlyRate := annualRatePercent.Div(decimal.NewFromInt(1200)).Round(8)
	interest := NewMoney(a.balance.Decimal().Mul(monthlyRate))
	if !interest.IsPositive() {
		return ZeroMoney()
	}
	a.credit(interest)
	return interest
}

func (a *SavingsAccount) Snapshot() Account {
	return RestoreSavingsAccount(a.ownerUsername, a.bankName, a.accountNumber, a.balance, a.minBalance)
}

func (a *SavingsAccount) Summary() string {
	return fmt.Sprintf("SavingsAccount(owner=%s, no=%s, balance=%s)", a.ownerUsername, a.accountNumber, a.balance)
}

type CurrentAccount struct {
	baseAccount
}

func NewCurrentAccount(ownerUsername, bankName, accountNumber string) *CurrentAccount {
	return &CurrentAccount{
		baseAccount: baseAccount{
			accountNumber: accountNumber,
			ownerUsername: ownerUsername,
			bankName:      bankName,
			accountType:   AccountTypeCurrent,
			balance:       ZeroMoney(),
		},
	}
}

// RestoreCurrentAccount rebuilds a current account from a snapshot record.
func RestoreCurrentAccount(ownerUsername, bankName, accountNumber string, balance Money) *CurrentAccount {
	account := NewCurrentAccount(ownerUsername, bankName, accountNumber)
	account.balance = balance
	return account
}

func (a *CurrentAccount) Withdraw(amount Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.Compare(a.balance) > 0 {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Subtract(amount)
	return nil
}

func (a *CurrentAccount) Snapshot() Account {
	return RestoreCurrentAccount(a.ownerUsername, a.bankName, a.accountNumber, a.balance)
}

func (a *CurrentAccount) Summary() string {
	return fmt.Sprintf("CurrentAccount(owner=%s, no=%s, balance=%s)", a.ownerUsername, a.accountNumber, a.balance)
}

var _ Account = (*SavingsAccount)(nil)
var _ Account = (*CurrentAccount)(nil)

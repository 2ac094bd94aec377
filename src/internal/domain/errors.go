package domain

import "errors"

var ErrInvalidAmount = errors.New("Amount must be greater than zero")
var ErrBelowMinimumBalance = errors.New("Minimum balance must be maintained")
var ErrInsufficientFunds = errors.New("Insufficient funds")
var ErrAccountNotFound = errors.New("Account not found")
var ErrUserNotFound = errors.New("User not found")
var ErrUsernameTaken = errors.New("Username already taken")
var ErrSameAccount = errors.New("Debit and credit accounts cannot be the same")
var ErrCompensationFailed = errors.New("Transfer compensation failed")
var ErrPersistenceUnavailable = errors.New("Persistence unavailable")

// Package domain defines the bank account entity and its category.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidAmount indicates that the deposited or withdrawn amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Account holds the balance of a bank account together with its creation date and category.
//
// The zero value is a valid, not yet persisted account. Balance changes go through Deposit and
// Withdraw only. The entity has no locking of its own: callers sharing an account must serialize
// access, see accountrepo.RepoPGS.Update.
type Account struct {
	ID           int64           `json:"id"`
	Balance      decimal.Decimal `json:"balance"`
	CreationDate time.Time       `json:"creation_date"`
	Category     Category        `json:"category"`
}

// NewAccount returns an account with the given opening balance and category created today.
//
// The opening balance is taken as is, negative values included.
func NewAccount(balance decimal.Decimal, category Category) Account {
	return Account{
		Balance:      balance,
		CreationDate: Today(),
		Category:     category,
	}
}

// Today returns the current UTC date with the time part cut off.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// BeforeCreate defaults the creation date to today when it is not set yet.
//
// Repositories call it right before the first insert.
func (a *Account) BeforeCreate() {
	if a.CreationDate.IsZero() {
		a.CreationDate = Today()
	}
}

// IsPersisted reports whether the account has been assigned an identity.
func (a Account) IsPersisted() bool {
	return a.ID != 0
}

// Deposit adds a positive amount to the balance.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	a.Balance = a.Balance.Add(amount)

	return nil
}

// Withdraw takes a positive amount not exceeding the balance off the account.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientBalance
	}

	a.Balance = a.Balance.Sub(amount)

	return nil
}

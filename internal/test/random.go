// Package test provides shared test helpers.
package test

import (
	"github.com/go-petr/bank-accounts/internal/domain"
	"github.com/go-petr/bank-accounts/pkg/randompkg"
)

// RandomCategory returns one of the supported account categories.
func RandomCategory() domain.Category {
	return randompkg.OneOf(domain.SupportedCategories)
}

// RandomAccount returns a random persisted-looking account created today.
func RandomAccount() domain.Account {
	a := domain.NewAccount(randompkg.MoneyAmountBetween(1000, 10_000), RandomCategory())
	a.ID = randompkg.IDBetween(1, 100)

	return a
}

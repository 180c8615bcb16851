package test

import (
	"context"
	"testing"

	"github.com/go-petr/bank-accounts/internal/accountrepo"
	"github.com/go-petr/bank-accounts/internal/domain"
	"github.com/go-petr/bank-accounts/pkg/dbpkg"
	"github.com/shopspring/decimal"
)

// SeedAccount creates an account with the given balance and category inside a test transaction.
func SeedAccount(t *testing.T, tx dbpkg.SQLInterface, balance decimal.Decimal, category domain.Category) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewTxRepoPGS(tx)

	a := domain.NewAccount(balance, category)

	account, err := accountRepo.Save(context.Background(), a)
	if err != nil {
		t.Fatalf("accountRepo.Save(context.Background(), %+v) returned error: %v", a, err)
	}

	return account
}

// SeedAccountWith1000Balance creates an account with 1000 on balance inside a test transaction.
func SeedAccountWith1000Balance(t *testing.T, tx dbpkg.SQLInterface, category domain.Category) domain.Account {
	t.Helper()

	return SeedAccount(t, tx, decimal.NewFromInt(1000), category)
}

// SeedAccounts creates count accounts with random balance and category.
func SeedAccounts(t *testing.T, tx dbpkg.SQLInterface, count int) []domain.Account {
	t.Helper()

	accounts := make([]domain.Account, count)

	for i := range accounts {
		a := RandomAccount()
		accounts[i] = SeedAccount(t, tx, a.Balance, a.Category)
	}

	return accounts
}

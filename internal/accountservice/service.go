// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-accounts/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Save(ctx context.Context, a domain.Account) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context, category domain.Category, limit, offset int32) ([]domain.Account, error)
	Delete(ctx context.Context, id int64) error
	Update(ctx context.Context, id int64, fn func(a *domain.Account) error) (domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create opens an account of the given category with the given opening balance.
func (s *Service) Create(ctx context.Context, balance decimal.Decimal, category domain.Category) (domain.Account, error) {
	if !category.Valid() {
		return domain.Account{}, domain.ErrInvalidCategory
	}

	return s.repo.Save(ctx, domain.NewAccount(balance, category))
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of accounts. An empty category lists all of them.
func (s *Service) List(ctx context.Context, category domain.Category, pageSize, pageID int32) ([]domain.Account, error) {
	if category != "" && !category.Valid() {
		return nil, domain.ErrInvalidCategory
	}

	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, category, limit, offset)
}

// Delete removes the account with the given ID.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Deposit adds amount to the balance of the account with the given ID.
func (s *Service) Deposit(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error) {
	return s.mutate(ctx, id, func(a *domain.Account) error {
		return a.Deposit(amount)
	})
}

// Withdraw takes amount off the balance of the account with the given ID.
func (s *Service) Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error) {
	return s.mutate(ctx, id, func(a *domain.Account) error {
		return a.Withdraw(amount)
	})
}

func (s *Service) mutate(ctx context.Context, id int64, fn func(a *domain.Account) error) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.repo.Update(ctx, id, fn)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) || errors.Is(err, domain.ErrInsufficientBalance) {
			l.Info().Err(err).Int64("account_id", id).Send()
		}

		return domain.Account{}, err
	}

	return account, nil
}

// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-petr/bank-accounts/internal/domain"
	"github.com/go-petr/bank-accounts/pkg/dbpkg"
	"github.com/go-petr/bank-accounts/pkg/errorspkg"
)

const dateLayout = "2006-01-02"

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns account RepoPGS bound to an already started transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns account RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Balance,
		&a.CreationDate,
		&a.Category,
	)
	if err != nil {
		return domain.Account{}, err
	}

	// lib/pq returns dates in a fixed zero offset zone rather than time.UTC.
	a.CreationDate = a.CreationDate.UTC()

	return a, nil
}

func mapWriteErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrAccountNotFound
	}

	if errors.Is(err, domain.ErrInvalidCategory) {
		return domain.ErrInvalidCategory
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint == "accounts_category_check" {
		return domain.ErrInvalidCategory
	}

	return errorspkg.ErrInternal
}

const createQuery = `
INSERT INTO
    accounts (balance, creation_date, category)
VALUES
    ($1, $2, $3)
RETURNING id, balance, creation_date, category
`

const updateQuery = `
UPDATE accounts
SET balance = $1
WHERE id = $2
RETURNING id, balance, creation_date, category
`

// ErrAccountPersisted indicates that Save was called with an account that already has an id.
var ErrAccountPersisted = errors.New("account is already persisted, change it with Update")

// Save inserts a new account and returns it as stored.
//
// The creation date is defaulted first and the generated id is assigned. Accounts that already
// have an id are rejected with ErrAccountPersisted, their balance is only written back by Update
// after a Deposit or Withdraw.
func (r *RepoPGS) Save(ctx context.Context, a domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if a.IsPersisted() {
		l.Info().Int64("account_id", a.ID).Msg("rejected save of persisted account")
		return domain.Account{}, ErrAccountPersisted
	}

	if !a.Category.Valid() {
		l.Info().Str("category", string(a.Category)).Msg("rejected account with unknown category")
		return domain.Account{}, domain.ErrInvalidCategory
	}

	a.BeforeCreate()

	saved, err := scanAccount(r.db.QueryRowContext(ctx, createQuery, a.Balance, a.CreationDate.Format(dateLayout), a.Category))
	if err != nil {
		l.Error().Err(err).Msgf("Save(ctx context.Context, %+v)", a)
		return domain.Account{}, mapWriteErr(err)
	}

	return saved, nil
}

// saveBalance writes the balance of a persisted account. Creation date and category are never
// written after the insert.
func (r *RepoPGS) saveBalance(ctx context.Context, a domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	saved, err := scanAccount(r.db.QueryRowContext(ctx, updateQuery, a.Balance, a.ID))
	if err != nil {
		l.Error().Err(err).Int64("account_id", a.ID).Send()
		return domain.Account{}, mapWriteErr(err)
	}

	return saved, nil
}

const getQuery = `
SELECT
	id, balance, creation_date, category
FROM accounts
WHERE id = $1
`

const getForUpdateQuery = getQuery + `FOR UPDATE
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	return r.get(ctx, getQuery, id)
}

func (r *RepoPGS) get(ctx context.Context, query string, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Err(err).Int64("account_id", id).Send()
			return domain.Account{}, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Int64("account_id", id).Send()

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT
	id, balance, creation_date, category
FROM accounts
WHERE $1::text = '' OR category = $1::text
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns the specified number of accounts, optionally restricted to one category.
//
// An empty category lists accounts of every category.
func (r *RepoPGS) List(ctx context.Context, category domain.Category, limit, offset int32) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, string(category), limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE id = $1
`

// Delete removes the account with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Int64("account_id", id).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Int64("account_id", id).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// Update loads the account with the given id, applies fn to it and saves the result.
//
// The row stays locked from the read to the write so concurrent updates of one account are
// applied one after another. Nothing is written when fn returns an error, the error is
// returned as is.
func (r *RepoPGS) Update(ctx context.Context, id int64, fn func(a *domain.Account) error) (domain.Account, error) {
	if r.conn == nil {
		return r.update(ctx, id, fn)
	}

	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	a, err := NewTxRepoPGS(tx).update(ctx, id, fn)
	if err != nil {
		return domain.Account{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

func (r *RepoPGS) update(ctx context.Context, id int64, fn func(a *domain.Account) error) (domain.Account, error) {
	a, err := r.get(ctx, getForUpdateQuery, id)
	if err != nil {
		return domain.Account{}, err
	}

	if err := fn(&a); err != nil {
		return domain.Account{}, err
	}

	return r.saveBalance(ctx, a)
}

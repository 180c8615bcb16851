package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	testCases := []struct {
		name     string
		balance  decimal.Decimal
		category Category
	}{
		{name: "Current", balance: decimal.NewFromInt(100), category: Current},
		{name: "Savings", balance: decimal.NewFromFloat(2500.75), category: Savings},
		{name: "ZeroBalance", balance: decimal.Zero, category: Current},
		{name: "NegativeBalance", balance: decimal.NewFromInt(-40), category: Savings},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			a := NewAccount(tc.balance, tc.category)

			require.Zero(t, a.ID)
			require.False(t, a.IsPersisted())
			require.True(t, tc.balance.Equal(a.Balance))
			require.Equal(t, tc.category, a.Category)
			require.Equal(t, Today(), a.CreationDate)
		})
	}
}

func TestDeposit(t *testing.T) {
	testCases := []struct {
		name        string
		amount      decimal.Decimal
		wantErr     error
		wantBalance decimal.Decimal
	}{
		{
			name:        "OK",
			amount:      decimal.NewFromInt(50),
			wantBalance: decimal.NewFromInt(150),
		},
		{
			name:        "Fraction",
			amount:      decimal.RequireFromString("0.0001"),
			wantBalance: decimal.RequireFromString("100.0001"),
		},
		{
			name:        "Zero",
			amount:      decimal.Zero,
			wantErr:     ErrInvalidAmount,
			wantBalance: decimal.NewFromInt(100),
		},
		{
			name:        "Negative",
			amount:      decimal.NewFromInt(-5),
			wantErr:     ErrInvalidAmount,
			wantBalance: decimal.NewFromInt(100),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			a := NewAccount(decimal.NewFromInt(100), Current)

			err := a.Deposit(tc.amount)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}

			require.Truef(t, tc.wantBalance.Equal(a.Balance), "balance %v, want %v", a.Balance, tc.wantBalance)
		})
	}
}

func TestWithdraw(t *testing.T) {
	testCases := []struct {
		name        string
		amount      decimal.Decimal
		wantErr     error
		wantBalance decimal.Decimal
	}{
		{
			name:        "OK",
			amount:      decimal.NewFromInt(30),
			wantBalance: decimal.NewFromInt(70),
		},
		{
			name:        "WholeBalance",
			amount:      decimal.NewFromInt(100),
			wantBalance: decimal.Zero,
		},
		{
			name:        "InsufficientBalance",
			amount:      decimal.NewFromInt(150),
			wantErr:     ErrInsufficientBalance,
			wantBalance: decimal.NewFromInt(100),
		},
		{
			name:        "JustOverBalance",
			amount:      decimal.RequireFromString("100.0001"),
			wantErr:     ErrInsufficientBalance,
			wantBalance: decimal.NewFromInt(100),
		},
		{
			name:        "Negative",
			amount:      decimal.NewFromInt(-5),
			wantErr:     ErrInvalidAmount,
			wantBalance: decimal.NewFromInt(100),
		},
		{
			name:        "Zero",
			amount:      decimal.Zero,
			wantErr:     ErrInvalidAmount,
			wantBalance: decimal.NewFromInt(100),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			a := NewAccount(decimal.NewFromInt(100), Current)

			err := a.Withdraw(tc.amount)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}

			require.Truef(t, tc.wantBalance.Equal(a.Balance), "balance %v, want %v", a.Balance, tc.wantBalance)
		})
	}
}

func TestWithdrawNonPositiveBeforeInsufficient(t *testing.T) {
	a := NewAccount(decimal.NewFromInt(-10), Savings)

	err := a.Withdraw(decimal.NewFromInt(-20))
	require.ErrorIs(t, err, ErrInvalidAmount)
	require.True(t, decimal.NewFromInt(-10).Equal(a.Balance))

	err = a.Withdraw(decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestDepositThenWithdrawRestoresBalance(t *testing.T) {
	start := decimal.RequireFromString("1234.5678")
	a := NewAccount(start, Savings)

	for _, s := range []string{"0.01", "1", "99.99", "1000000"} {
		amount := decimal.RequireFromString(s)

		require.NoError(t, a.Deposit(amount))
		require.True(t, start.Add(amount).Equal(a.Balance))

		require.NoError(t, a.Withdraw(amount))
		require.True(t, start.Equal(a.Balance))
	}
}

func TestBeforeCreate(t *testing.T) {
	var a Account
	require.True(t, a.CreationDate.IsZero())

	a.BeforeCreate()
	require.Equal(t, Today(), a.CreationDate)

	first := a.CreationDate
	a.BeforeCreate()
	require.Equal(t, first, a.CreationDate)
}

func TestBeforeCreateKeepsExistingDate(t *testing.T) {
	created := time.Date(2020, time.March, 14, 0, 0, 0, 0, time.UTC)
	a := Account{CreationDate: created, Category: Current}

	a.BeforeCreate()
	require.Equal(t, created, a.CreationDate)
}

func TestToday(t *testing.T) {
	today := Today()

	require.Equal(t, time.UTC, today.Location())
	require.Zero(t, today.Hour())
	require.Zero(t, today.Minute())
	require.Zero(t, today.Second())
	require.Zero(t, today.Nanosecond())
	require.WithinDuration(t, time.Now(), today, 24*time.Hour)
}

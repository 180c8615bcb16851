//go:build integration

package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-accounts/internal/accountdelivery"
	"github.com/go-petr/bank-accounts/internal/domain"
	"github.com/go-petr/bank-accounts/internal/integrationtest"
	"github.com/go-petr/bank-accounts/internal/test"
	"github.com/go-petr/bank-accounts/pkg/web"
)

var equateDecimal = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

type accountData struct {
	Account accountdelivery.Account `json:"account"`
}

func do(t *testing.T, method, url string, body any) (int, web.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	res := web.Response{Data: &accountData{}}
	if recorder.Code != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
	}

	return recorder.Code, res
}

func TestAccountLifecycleAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	code, res := do(t, http.MethodPost, "/accounts", map[string]any{
		"balance":  "100",
		"category": "CURRENT",
	})
	require.Equal(t, http.StatusOK, code, res.Error)

	created := res.Data.(*accountData).Account

	want := accountdelivery.Account{
		Balance:       decimal.NewFromInt(100),
		CreationDate:  domain.Today().Format("2006-01-02"),
		Category:      domain.Current,
		CategoryLabel: "Courant",
	}

	ignoreID := cmpopts.IgnoreFields(accountdelivery.Account{}, "ID")
	if diff := cmp.Diff(want, created, ignoreID, equateDecimal); diff != "" {
		t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
	}

	url := fmt.Sprintf("/accounts/%d", created.ID)

	code, res = do(t, http.MethodPost, url+"/deposit", map[string]any{"amount": "50"})
	require.Equal(t, http.StatusOK, code, res.Error)
	require.True(t, decimal.NewFromInt(150).Equal(res.Data.(*accountData).Account.Balance))

	code, res = do(t, http.MethodPost, url+"/withdraw", map[string]any{"amount": "500"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, domain.ErrInsufficientBalance.Error(), res.Error)

	code, res = do(t, http.MethodPost, url+"/withdraw", map[string]any{"amount": "-5"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, domain.ErrInvalidAmount.Error(), res.Error)

	code, res = do(t, http.MethodPost, url+"/deposit", map[string]any{"amount": 0})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, domain.ErrInvalidAmount.Error(), res.Error)

	code, res = do(t, http.MethodPost, url+"/withdraw", map[string]any{"amount": "150"})
	require.Equal(t, http.StatusOK, code, res.Error)
	require.True(t, res.Data.(*accountData).Account.Balance.IsZero())

	code, res = do(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, code, res.Error)
	require.Equal(t, created.CreationDate, res.Data.(*accountData).Account.CreationDate)

	code, _ = do(t, http.MethodDelete, url, nil)
	require.Equal(t, http.StatusNoContent, code)

	code, res = do(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, domain.ErrAccountNotFound.Error(), res.Error)
}

func TestListAccountsAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	test.SeedAccountWith1000Balance(t, server.DB, domain.Current)
	test.SeedAccountWith1000Balance(t, server.DB, domain.Savings)
	test.SeedAccountWith1000Balance(t, server.DB, domain.Savings)

	req, err := http.NewRequest(http.MethodGet, "/accounts?page_id=1&page_size=10&category=SAVINGS", nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Accounts []accountdelivery.Account `json:"accounts"`
	}

	res := web.Response{Data: &got}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

	require.Len(t, got.Accounts, 2)

	for _, a := range got.Accounts {
		require.Equal(t, domain.Savings, a.Category)
		require.Equal(t, "Epargne", a.CategoryLabel)
	}
}

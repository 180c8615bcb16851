// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-accounts/internal/domain"
	"github.com/go-petr/bank-accounts/pkg/errorspkg"
	"github.com/go-petr/bank-accounts/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, balance decimal.Decimal, category domain.Category) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context, category domain.Category, pageSize, pageID int32) ([]domain.Account, error)
	Delete(ctx context.Context, id int64) error
	Deposit(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error)
	Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

// Account is the JSON representation of an account.
type Account struct {
	ID            int64           `json:"id"`
	Balance       decimal.Decimal `json:"balance"`
	CreationDate  string          `json:"creation_date"`
	Category      domain.Category `json:"category"`
	CategoryLabel string          `json:"category_label"`
}

const dateLayout = "2006-01-02"

// NewAccount converts the domain account into its JSON representation.
func NewAccount(a domain.Account) Account {
	return Account{
		ID:            a.ID,
		Balance:       a.Balance,
		CreationDate:  a.CreationDate.Format(dateLayout),
		Category:      a.Category,
		CategoryLabel: a.Category.DisplayLabel(),
	}
}

type data struct {
	Account Account `json:"account"`
}

type dataAccounts struct {
	Accounts []Account `json:"accounts"`
}

func bindingErrorMsg(err error) string {
	var ve validator.ValidationErrors

	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}

func (h *Handler) abortWithBindingError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())

	l.Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})
}

func (h *Handler) abortWithServiceError(gctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(domain.ErrAccountNotFound))
	case errors.Is(err, domain.ErrInvalidAmount):
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))
	case errors.Is(err, domain.ErrInsufficientBalance):
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInsufficientBalance))
	case errors.Is(err, domain.ErrInvalidCategory):
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidCategory))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type createRequest struct {
	Balance  *decimal.Decimal `json:"balance" binding:"required"`
	Category string           `json:"category" binding:"required,category"`
}

// Create handles http request to create account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		h.abortWithBindingError(gctx, err)
		return
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		h.abortWithServiceError(gctx, err)
		return
	}

	createdAccount, err := h.service.Create(ctx, *req.Balance, category)
	if err != nil {
		h.abortWithServiceError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{NewAccount(createdAccount)}})
}

type uriRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		h.abortWithBindingError(gctx, err)
		return
	}

	acc, err := h.service.Get(ctx, req.ID)
	if err != nil {
		h.abortWithServiceError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{NewAccount(acc)}})
}

type listRequest struct {
	PageID   int32  `form:"page_id" binding:"required,min=1"`
	PageSize int32  `form:"page_size" binding:"required,min=1,max=100"`
	Category string `form:"category" binding:"omitempty,category"`
}

// List handles http request to list accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		h.abortWithBindingError(gctx, err)
		return
	}

	var category domain.Category

	if req.Category != "" {
		var err error

		category, err = domain.ParseCategory(req.Category)
		if err != nil {
			h.abortWithServiceError(gctx, err)
			return
		}
	}

	accounts, err := h.service.List(ctx, category, req.PageSize, req.PageID)
	if err != nil {
		h.abortWithServiceError(gctx, err)
		return
	}

	items := make([]Account, len(accounts))
	for i, a := range accounts {
		items[i] = NewAccount(a)
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataAccounts{items}})
}

// Delete handles http request to delete account.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		h.abortWithBindingError(gctx, err)
		return
	}

	if err := h.service.Delete(ctx, req.ID); err != nil {
		h.abortWithServiceError(gctx, err)
		return
	}

	gctx.Status(http.StatusNoContent)
}

type amountRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

type balanceOperation func(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error)

func (h *Handler) changeBalance(gctx *gin.Context, op balanceOperation) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		h.abortWithBindingError(gctx, err)
		return
	}

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		h.abortWithBindingError(gctx, err)
		return
	}

	acc, err := op(ctx, uri.ID, *req.Amount)
	if err != nil {
		h.abortWithServiceError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{NewAccount(acc)}})
}

// Deposit handles http request to deposit money to account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.changeBalance(gctx, h.service.Deposit)
}

// Withdraw handles http request to withdraw money from account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.changeBalance(gctx, h.service.Withdraw)
}

package accountdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/go-petr/bank-accounts/internal/domain"
)

// ValidCategory validates whether the account category is supported.
var ValidCategory validator.Func = func(fl validator.FieldLevel) bool {
	if c, ok := fl.Field().Interface().(string); ok {
		_, err := domain.ParseCategory(c)
		return err == nil
	}
	return false
}

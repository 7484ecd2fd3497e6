package dto

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var currencyCodeRe = regexp.MustCompile(`^[a-z0-9_\-]{1,10}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	}
}

// validateCurrencyCode accepts short lowercase-able codes such as "btc" or "usdt-erc20".
func validateCurrencyCode(fl validator.FieldLevel) bool {
	return IsCurrencyCode(fl.Field().String())
}

// IsCurrencyCode reports whether s looks like a currency code, ignoring case.
func IsCurrencyCode(s string) bool {
	return currencyCodeRe.MatchString(strings.ToLower(s))
}

package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var customValidators = map[string]validator.Func{
	"strong_password": strongPassword,
	"username":        username,
}

func strongPassword(fl validator.FieldLevel) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, ch := range fl.Field().String() {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		case unicode.IsPunct(ch) || unicode.IsSymbol(ch):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

func username(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

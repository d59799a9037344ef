package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsEmailValid checks the address shape only; no DNS lookups.
func IsEmailValid(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	return validate.Var(email, "required,email,max=100") == nil
}

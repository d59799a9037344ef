package account

import (
	"strings"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleReception Role = "recepcao"
)

const MinPasswordLength = 6

// ParseRole defaults to recepcao when raw is empty.
func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case "":
		return RoleReception, nil
	case RoleAdmin, RoleReception:
		return r, nil
	}
	return "", httperr.ErrBusiness("invalid_role")
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

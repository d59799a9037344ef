package account

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// CreateWithRole inserts the user and its role row in one transaction.
	CreateWithRole(ctx context.Context, u *models.User, role Role) error

	// PrimaryRole prefers admin when the user holds more than one role.
	PrimaryRole(ctx context.Context, userID uuid.UUID) (Role, error)
}

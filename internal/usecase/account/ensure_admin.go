package account

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/account"
)

// EnsureAdmin provisions the bootstrap administrator at startup. Running it
// again with the same email is a no-op.
func EnsureAdmin(
	ctx context.Context,
	provision *ProvisionUser,
	email string,
	password string,
	name string,
	logger *zap.Logger,
) error {

	res, err := provision.Execute(ctx, nil, ProvisionInput{
		Email:       email,
		Password:    password,
		DisplayName: name,
		Role:        string(domain.RoleAdmin),
	})
	if err != nil {
		return err
	}

	if res.Created {
		logger.Info("bootstrap admin created", zap.String("email", res.User.Email))
	} else {
		logger.Debug("bootstrap admin already exists", zap.String("email", res.User.Email))
	}
	return nil
}

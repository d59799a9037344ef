package account

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/account"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/validators"
)

type ProvisionInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
}

type ProvisionResult struct {
	User    *models.User
	Created bool
}

type ProvisionUser struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewProvisionUser(
	repo domain.Repository,
	audit audit.Recorder,
) *ProvisionUser {
	return &ProvisionUser{
		repo:  repo,
		audit: audit,
	}
}

// Execute creates the account unless the email is taken, in which case the
// existing user is returned with Created false.
func (uc *ProvisionUser) Execute(
	ctx context.Context,
	actorID *uuid.UUID,
	in ProvisionInput,
) (*ProvisionResult, error) {

	email := domain.NormalizeEmail(in.Email)
	if !validators.IsEmailValid(email) {
		return nil, httperr.ErrBusiness("invalid_email")
	}
	if len(in.Password) < domain.MinPasswordLength {
		return nil, httperr.ErrBusiness("weak_password")
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByEmail(ctx, email)
	if err == nil {
		return &ProvisionResult{User: existing}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
		DisplayName:  strings.TrimSpace(in.DisplayName),
	}

	if err := uc.repo.CreateWithRole(ctx, u, role); err != nil {
		// lost a race with a concurrent provision of the same email
		if httperr.IsUniqueViolation(err) {
			if existing, findErr := uc.repo.FindByEmail(ctx, email); findErr == nil {
				return &ProvisionResult{User: existing}, nil
			}
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "user_provisioned",
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]any{"role": role},
	})

	return &ProvisionResult{User: u, Created: true}, nil
}

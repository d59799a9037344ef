package account

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/account"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/metrics"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/session"
)

type Sessions interface {
	Create(ctx context.Context, sess session.Session) error
	Delete(ctx context.Context, id string) error
}

type LoginResult struct {
	Token *IssuedToken
	User  *models.User
	Role  domain.Role
}

type Login struct {
	repo     domain.Repository
	tokens   *TokenIssuer
	sessions Sessions
	audit    audit.Recorder
}

func NewLogin(
	repo domain.Repository,
	tokens *TokenIssuer,
	sessions Sessions,
	audit audit.Recorder,
) *Login {
	return &Login{
		repo:     repo,
		tokens:   tokens,
		sessions: sessions,
		audit:    audit,
	}
}

func (uc *Login) Execute(
	ctx context.Context,
	email string,
	password string,
) (*LoginResult, error) {

	u, err := uc.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		metrics.RecordLogin("rejected")
		return nil, httperr.ErrBusiness("invalid_credentials")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		metrics.RecordLogin("rejected")
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	role, err := uc.repo.PrimaryRole(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	tok, err := uc.tokens.Issue(u.ID, role)
	if err != nil {
		return nil, err
	}

	if err := uc.sessions.Create(ctx, session.Session{
		ID:        tok.SessionID,
		UserID:    u.ID,
		Email:     u.Email,
		Role:      string(role),
		CreatedAt: uc.tokens.now().UTC(),
		ExpiresAt: tok.ExpiresAt,
	}); err != nil {
		return nil, err
	}

	metrics.RecordLogin("accepted")
	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "user_logged_in",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return &LoginResult{Token: tok, User: u, Role: role}, nil
}

type Logout struct {
	sessions Sessions
}

func NewLogout(sessions Sessions) *Logout {
	return &Logout{sessions: sessions}
}

// Execute drops the session; the token is rejected from then on.
func (uc *Logout) Execute(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

package account

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/account"
)

const DefaultTokenTTL = 24 * time.Hour

type IssuedToken struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs an HS256 token whose jti names the server-side session.
func (t *TokenIssuer) Issue(userID uuid.UUID, role domain.Role) (*IssuedToken, error) {
	now := t.now()
	jti := uuid.NewString()
	exp := now.Add(t.ttl)

	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": string(role),
		"jti":  jti,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return nil, err
	}

	return &IssuedToken{
		Token:     signed,
		SessionID: jti,
		ExpiresAt: exp,
	}, nil
}

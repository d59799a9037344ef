package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextSessionID = "sessionID"
)

type SessionChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// AuthMiddleware accepts a Bearer header, or ?token= for the websocket
// handshake, and requires the session behind the token to still exist.
func AuthMiddleware(secret string, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			httperr.Unauthorized(c, "missing_authorization_header", "Faça login para continuar.")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Sessão inválida. Faça login novamente.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Sessão inválida. Faça login novamente.")
			return
		}

		sub, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		jti, _ := claims["jti"].(string)

		userID, err := uuid.Parse(sub)
		if err != nil || jti == "" {
			httperr.Unauthorized(c, "invalid_token_payload", "Sessão inválida. Faça login novamente.")
			return
		}

		alive, err := sessions.Exists(c.Request.Context(), jti)
		if err != nil {
			c.Error(err)
			httperr.Abort(c, http.StatusInternalServerError, "internal_error", "Erro interno. Tente novamente.")
			return
		}
		if !alive {
			httperr.Unauthorized(c, "session_expired", "Sessão encerrada. Faça login novamente.")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Set(ContextSessionID, jti)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if q := c.Query("token"); q != "" {
			return q, true
		}
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextUserID).(uuid.UUID)
}

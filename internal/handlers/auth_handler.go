package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/dto"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/middleware"
	ucAccount "github.com/BruksfildServices01/clinic-crm/internal/usecase/account"
)

type AuthHandler struct {
	login  *ucAccount.Login
	logout *ucAccount.Logout
}

func NewAuthHandler(login *ucAccount.Login, logout *ucAccount.Logout) *AuthHandler {
	return &AuthHandler{login: login, logout: logout}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"token":      res.Token.Token,
		"expires_at": res.Token.ExpiresAt,
		"user": gin.H{
			"id":           res.User.ID,
			"email":        res.User.Email,
			"display_name": res.User.DisplayName,
			"role":         res.Role,
		},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextSessionID)

	if err := h.logout.Execute(c.Request.Context(), sessionID); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

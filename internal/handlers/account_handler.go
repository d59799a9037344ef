package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/account"
	"github.com/BruksfildServices01/clinic-crm/internal/dto"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/middleware"
	ucAccount "github.com/BruksfildServices01/clinic-crm/internal/usecase/account"
)

type AccountHandler struct {
	provision *ucAccount.ProvisionUser
	accounts  domain.Repository
}

func NewAccountHandler(provision *ucAccount.ProvisionUser, accounts domain.Repository) *AccountHandler {
	return &AccountHandler{provision: provision, accounts: accounts}
}

// CreateUser is admin only. An email that already exists is not an error.
func (h *AccountHandler) CreateUser(c *gin.Context) {
	actorID := middleware.UserID(c)

	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.provision.Execute(c.Request.Context(), &actorID, ucAccount.ProvisionInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        req.Role,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if !res.Created {
		c.JSON(http.StatusOK, httpresp.MessageResponse{Message: "User already exists"})
		return
	}

	httpresp.Created(c, gin.H{
		"message": "User created",
		"user":    res.User.ID,
	})
}

func (h *AccountHandler) Me(c *gin.Context) {
	userID := middleware.UserID(c)

	u, err := h.accounts.GetByID(c.Request.Context(), userID)
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, "user_not_found", httperr.MessageFor("user_not_found"))
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":           u.ID,
			"email":        u.Email,
			"display_name": u.DisplayName,
			"role":         c.GetString(middleware.ContextUserRole),
			"created_at":   u.CreatedAt,
		},
	})
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

// leadIDParam reads :id. A malformed id answers 404, same as someone else's lead.
func leadIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "lead_not_found", httperr.MessageFor("lead_not_found"))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", httperr.MessageFor("invalid_request"))
		return false
	}
	return true
}

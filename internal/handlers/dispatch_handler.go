package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/dto"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/middleware"
	ucMessaging "github.com/BruksfildServices01/clinic-crm/internal/usecase/messaging"
)

type DispatchHandler struct {
	bulk   *ucMessaging.BulkDispatch
	status *ucMessaging.GetDispatch
	cancel *ucMessaging.CancelDispatch
}

func NewDispatchHandler(
	bulk *ucMessaging.BulkDispatch,
	status *ucMessaging.GetDispatch,
	cancel *ucMessaging.CancelDispatch,
) *DispatchHandler {
	return &DispatchHandler{
		bulk:   bulk,
		status: status,
		cancel: cancel,
	}
}

func (h *DispatchHandler) Create(c *gin.Context) {
	ownerID := middleware.UserID(c)

	var req dto.DispatchRequest
	if !bindJSON(c, &req) {
		return
	}

	// malformed ids are treated like ids of someone else's leads
	ids := make([]uuid.UUID, 0, len(req.LeadIDs))
	for _, raw := range req.LeadIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}

	res, err := h.bulk.Execute(c.Request.Context(), ownerID, ids, req.Kind, req.Template)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Accepted(c, res)
}

func (h *DispatchHandler) Get(c *gin.Context) {
	ownerID := middleware.UserID(c)

	p, err := h.status.Execute(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, p)
}

func (h *DispatchHandler) Cancel(c *gin.Context) {
	ownerID := middleware.UserID(c)

	if err := h.cancel.Execute(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/dto"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/middleware"
	ucLead "github.com/BruksfildServices01/clinic-crm/internal/usecase/lead"
)

type RescheduleHandler struct {
	reschedule *ucLead.RescheduleLead
	history    *ucLead.ListReschedules
}

func NewRescheduleHandler(
	reschedule *ucLead.RescheduleLead,
	history *ucLead.ListReschedules,
) *RescheduleHandler {
	return &RescheduleHandler{
		reschedule: reschedule,
		history:    history,
	}
}

func (h *RescheduleHandler) Reschedule(c *gin.Context) {
	ownerID := middleware.UserID(c)
	leadID, ok := leadIDParam(c)
	if !ok {
		return
	}

	var req dto.RescheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	l, ev, err := h.reschedule.Execute(
		c.Request.Context(),
		ownerID,
		leadID,
		req.Date,
		req.Time,
		req.Reason,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"lead":  dto.NewLeadDTO(l),
		"event": dto.NewRescheduleEventDTO(ev),
	})
}

func (h *RescheduleHandler) History(c *gin.Context) {
	ownerID := middleware.UserID(c)
	leadID, ok := leadIDParam(c)
	if !ok {
		return
	}

	evs, err := h.history.Execute(c.Request.Context(), ownerID, leadID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewRescheduleEventDTOs(evs))
}

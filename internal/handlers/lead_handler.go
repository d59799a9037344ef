package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/dto"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/middleware"
	ucLead "github.com/BruksfildServices01/clinic-crm/internal/usecase/lead"
)

// ======================================================
// HANDLER
// ======================================================

type LeadHandler struct {
	create       *ucLead.CreateLead
	update       *ucLead.UpdateLead
	remove       *ucLead.DeleteLead
	get          *ucLead.GetLead
	list         *ucLead.ListLeads
	changeStatus *ucLead.ChangeStatus
	attendance   *ucLead.ResolveAttendance
	upcoming     *ucLead.ListUpcoming
}

func NewLeadHandler(
	create *ucLead.CreateLead,
	update *ucLead.UpdateLead,
	remove *ucLead.DeleteLead,
	get *ucLead.GetLead,
	list *ucLead.ListLeads,
	changeStatus *ucLead.ChangeStatus,
	attendance *ucLead.ResolveAttendance,
	upcoming *ucLead.ListUpcoming,
) *LeadHandler {
	return &LeadHandler{
		create:       create,
		update:       update,
		remove:       remove,
		get:          get,
		list:         list,
		changeStatus: changeStatus,
		attendance:   attendance,
		upcoming:     upcoming,
	}
}

func toLeadInput(req dto.LeadRequest) ucLead.LeadInput {
	return ucLead.LeadInput{
		Name:            req.Name,
		Phone:           req.Phone,
		ContactDate:     req.ContactDate,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Status:          req.Status,
		Value:           req.Value,
		Channel:         req.Channel,
		Procedure:       req.Procedure,
		Notes:           req.Notes,
		AppointmentKind: req.AppointmentKind,
		ReminderEnabled: req.ReminderEnabled,
	}
}

// ======================================================
// CRUD
// ======================================================

func (h *LeadHandler) Create(c *gin.Context) {
	ownerID := middleware.UserID(c)

	var req dto.LeadRequest
	if !bindJSON(c, &req) {
		return
	}

	l, err := h.create.Execute(c.Request.Context(), ownerID, toLeadInput(req))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewLeadDTO(l))
}

func (h *LeadHandler) List(c *gin.Context) {
	ownerID := middleware.UserID(c)

	leads, err := h.list.Execute(
		c.Request.Context(),
		ownerID,
		c.Query("status"),
		c.Query("name"),
		c.Query("section"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewLeadDTOs(leads))
}

func (h *LeadHandler) Get(c *gin.Context) {
	ownerID := middleware.UserID(c)
	leadID, ok := leadIDParam(c)
	if !ok {
		return
	}

	l, err := h.get.Execute(c.Request.Context(), ownerID, leadID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewLeadDTO(l))
}

func (h *LeadHandler) Update(c *gin.Context) {
	ownerID := middleware.UserID(c)
	leadID, ok := leadIDParam(c)
	if !ok {
		return
	}

	var req dto.LeadRequest
	if !bindJSON(c, &req) {
		return
	}

	l, err := h.update.Execute(c.Request.Context(), ownerID, leadID, toLeadInput(req))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewLeadDTO(l))
}

func (h *LeadHandler) Delete(c *gin.Context) {
	ownerID := middleware.UserID(c)
	leadID, ok := leadIDParam(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), ownerID, leadID); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// FUNNEL
// ======================================================

func (h *LeadHandler) ChangeStatus(c *gin.Context) {
	ownerID := middleware.UserID(c)
	leadID, ok := leadIDParam(c)
	if !ok {
		return
	}

	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	l, err := h.changeStatus.Execute(c.Request.Context(), ownerID, leadID, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewLeadDTO(l))
}

func (h *LeadHandler) ResolveAttendance(c *gin.Context) {
	ownerID := middleware.UserID(c)
	leadID, ok := leadIDParam(c)
	if !ok {
		return
	}

	var req dto.AttendanceRequest
	if !bindJSON(c, &req) {
		return
	}

	l, err := h.attendance.Execute(c.Request.Context(), ownerID, leadID, *req.Closed)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewLeadDTO(l))
}

// Upcoming feeds the "próximos agendamentos" panel: today and tomorrow.
func (h *LeadHandler) Upcoming(c *gin.Context) {
	ownerID := middleware.UserID(c)

	leads, err := h.upcoming.Execute(c.Request.Context(), ownerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewLeadDTOs(leads))
}

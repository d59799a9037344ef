package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/dto"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/middleware"
	ucLead "github.com/BruksfildServices01/clinic-crm/internal/usecase/lead"
)

type PaymentHandler struct {
	summary  *ucLead.GetPaymentSummary
	register *ucLead.RegisterPayment
	link     *ucLead.CreatePaymentLink
}

func NewPaymentHandler(
	summary *ucLead.GetPaymentSummary,
	register *ucLead.RegisterPayment,
	link *ucLead.CreatePaymentLink,
) *PaymentHandler {
	return &PaymentHandler{
		summary:  summary,
		register: register,
		link:     link,
	}
}

func (h *PaymentHandler) Summary(c *gin.Context) {
	ownerID := middleware.UserID(c)
	leadID, ok := leadIDParam(c)
	if !ok {
		return
	}

	s, err := h.summary.Execute(c.Request.Context(), ownerID, leadID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewPaymentSummaryDTO(s))
}

func (h *PaymentHandler) Register(c *gin.Context) {
	ownerID := middleware.UserID(c)
	leadID, ok := leadIDParam(c)
	if !ok {
		return
	}

	var req dto.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.register.Execute(c.Request.Context(), ownerID, leadID, req.Amount, req.Notes)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewPaymentSummaryDTO(s))
}

// Link creates a Mercado Pago checkout for the outstanding balance.
func (h *PaymentHandler) Link(c *gin.Context) {
	ownerID := middleware.UserID(c)
	leadID, ok := leadIDParam(c)
	if !ok {
		return
	}

	link, err := h.link.Execute(c.Request.Context(), ownerID, leadID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, link)
}

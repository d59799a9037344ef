package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/dto"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/middleware"
	ucLead "github.com/BruksfildServices01/clinic-crm/internal/usecase/lead"
)

type DashboardHandler struct {
	dashboard *ucLead.GetDashboard
}

func NewDashboardHandler(dashboard *ucLead.GetDashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get answers ?month=M&year=Y; a missing value means the current one.
func (h *DashboardHandler) Get(c *gin.Context) {
	ownerID := middleware.UserID(c)

	month, ok := intQuery(c, "month", "invalid_month")
	if !ok {
		return
	}
	year, ok := intQuery(c, "year", "invalid_year")
	if !ok {
		return
	}

	stats, err := h.dashboard.Execute(c.Request.Context(), ownerID, month, year)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewDashboardDTO(stats))
}

func intQuery(c *gin.Context, name, code string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n == 0 {
		httperr.BadRequest(c, code, httperr.MessageFor(code))
		return 0, false
	}
	return n, true
}

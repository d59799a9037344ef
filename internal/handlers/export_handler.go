package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/export"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/middleware"
	ucLead "github.com/BruksfildServices01/clinic-crm/internal/usecase/lead"
)

type ExportHandler struct {
	export *ucLead.ExportLeads
}

func NewExportHandler(export *ucLead.ExportLeads) *ExportHandler {
	return &ExportHandler{export: export}
}

func (h *ExportHandler) CSV(c *gin.Context) {
	h.download(c, export.FormatCSV)
}

func (h *ExportHandler) XLSX(c *gin.Context) {
	h.download(c, export.FormatXLSX)
}

func (h *ExportHandler) download(c *gin.Context, format export.Format) {
	ownerID := middleware.UserID(c)

	file, err := h.export.Execute(c.Request.Context(), ownerID, string(format))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if file.ArchiveKey != "" {
		c.Header("X-Export-Archive", file.ArchiveKey)
	}
	httpresp.Attachment(c, file.Name, file.ContentType, file.Body)
}

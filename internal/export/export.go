package export

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var Headers = []string{
	"Nome",
	"Telefone",
	"Data Contato",
	"Data Agendamento",
	"Horário",
	"Status",
	"Valor",
	"Mídia",
	"Procedimento",
	"Tipo Atendimento",
	"Observações",
}

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", httperr.ErrBusiness("invalid_export_format")
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return ContentTypeXLSX
	}
	return ContentTypeCSV
}

// FileName is pacientes_YYYY-MM-DD.<ext>, dated in UTC.
func FileName(f Format, now time.Time) string {
	return "pacientes_" + now.UTC().Format(timezone.DateLayout) + "." + string(f)
}

// File is a rendered export ready to be downloaded.
type File struct {
	Name        string
	ContentType string
	Body        []byte
	ArchiveKey  string
}

// Build renders leads in the requested format.
func Build(f Format, leads []models.Lead, now time.Time) (*File, error) {
	var (
		body []byte
		err  error
	)
	switch f {
	case FormatCSV:
		body = CSV(leads)
	case FormatXLSX:
		body, err = XLSX(leads)
	default:
		return nil, httperr.ErrBusiness("invalid_export_format")
	}
	if err != nil {
		return nil, err
	}

	return &File{
		Name:        FileName(f, now),
		ContentType: f.ContentType(),
		Body:        body,
	}, nil
}

func row(l models.Lead) []string {
	return []string{
		l.Name,
		l.Phone,
		timezone.FormatDate(l.ContactDate),
		timezone.FormatDate(l.AppointmentDate),
		l.AppointmentTime,
		l.Status,
		l.Value.String(),
		l.Channel,
		l.Procedure,
		l.AppointmentKind,
		l.Notes,
	}
}

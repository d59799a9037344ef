package messaging

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
)

type Kind string

const (
	KindReminder Kind = "lembrete"
	KindCustom   Kind = "custom"
)

func ParseKind(raw string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case "", KindReminder:
		return KindReminder, nil
	case KindCustom:
		return KindCustom, nil
	}
	return "", httperr.ErrBusiness("invalid_message_kind")
}

const reminderTemplate = "Olá {nome}!👋\n\n" +
	"Este é um lembrete de sua consulta marcada:\n\n" +
	"📅 Data: {data}\n" +
	"⏰ Horário: {horario}\n" +
	"🦷 Procedimento: {procedimento}\n" +
	"📍 Endereço: {endereco}\n\n" +
	"{bloco_observacoes}" +
	"Confirme sua presença! 😊"

// LeadValues resolves the public tokens for one lead.
func LeadValues(l *models.Lead) map[string]string {
	return map[string]string{
		TokenName:      l.Name,
		TokenPhone:     l.Phone,
		TokenDate:      timezone.FormatDate(l.AppointmentDate),
		TokenTime:      l.AppointmentTime,
		TokenProcedure: l.Procedure,
		TokenValue:     FormatBRL(l.Value),
		TokenNotes:     l.Notes,
	}
}

// FormatBRL renders "R$ 200,00"; zero or negative values render empty.
func FormatBRL(v decimal.Decimal) string {
	if !v.IsPositive() {
		return ""
	}
	return "R$ " + strings.Replace(v.StringFixed(2), ".", ",", 1)
}

// Composer builds the outgoing text for a lead.
type Composer struct {
	ClinicAddress string
}

func (c Composer) Compose(kind Kind, custom string, l *models.Lead) (string, error) {
	values := LeadValues(l)

	switch kind {
	case KindCustom:
		if strings.TrimSpace(custom) == "" {
			return "", httperr.ErrBusiness("empty_template")
		}
		return Render(custom, values), nil

	case KindReminder:
		values["endereco"] = c.ClinicAddress
		if strings.TrimSpace(l.Notes) != "" {
			values["bloco_observacoes"] = "Observações: " + l.Notes + "\n\n"
		}
		return Render(reminderTemplate, values), nil
	}

	return "", httperr.ErrBusiness("invalid_message_kind")
}

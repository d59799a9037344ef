package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
)

// LeadRequest is the body of create and full edit. Dates are YYYY-MM-DD.
type LeadRequest struct {
	Name            string          `json:"nome"`
	Phone           string          `json:"telefone"`
	ContactDate     string          `json:"data_contato"`
	AppointmentDate string          `json:"data_agendamento"`
	AppointmentTime string          `json:"horario_agendamento"`
	Status          string          `json:"status"`
	Value           decimal.Decimal `json:"valor"`
	Channel         string          `json:"midia"`
	Procedure       string          `json:"procedimentos"`
	Notes           string          `json:"observacoes"`
	AppointmentKind string          `json:"tipo_atendimento"`
	ReminderEnabled bool            `json:"lembrete_ativo"`
}

type LeadDTO struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"nome"`
	Phone           string          `json:"telefone"`
	ContactDate     string          `json:"data_contato"`
	AppointmentDate string          `json:"data_agendamento"`
	AppointmentTime string          `json:"horario_agendamento"`
	Status          string          `json:"status"`
	Value           decimal.Decimal `json:"valor"`
	Channel         string          `json:"midia"`
	Procedure       string          `json:"procedimentos"`
	Notes           string          `json:"observacoes"`
	AppointmentKind string          `json:"tipo_atendimento"`
	ReminderEnabled bool            `json:"lembrete_ativo"`
	NextStatuses    []string        `json:"proximos_status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func NewLeadDTO(l *models.Lead) LeadDTO {
	return LeadDTO{
		ID:              l.ID,
		Name:            l.Name,
		Phone:           l.Phone,
		ContactDate:     timezone.FormatDate(l.ContactDate),
		AppointmentDate: timezone.FormatDate(l.AppointmentDate),
		AppointmentTime: l.AppointmentTime,
		Status:          l.Status,
		Value:           l.Value,
		Channel:         l.Channel,
		Procedure:       l.Procedure,
		Notes:           l.Notes,
		AppointmentKind: l.AppointmentKind,
		ReminderEnabled: l.ReminderEnabled,
		NextStatuses:    nextStatuses(lead.Status(l.Status)),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// nextStatuses is the usual funnel step after s, never nil so it encodes as [].
func nextStatuses(s lead.Status) []string {
	next := lead.CanonicalNext(s)
	out := make([]string, 0, len(next))
	for _, st := range next {
		out = append(out, string(st))
	}
	return out
}

func NewLeadDTOs(leads []models.Lead) []LeadDTO {
	out := make([]LeadDTO, 0, len(leads))
	for i := range leads {
		out = append(out, NewLeadDTO(&leads[i]))
	}
	return out
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AttendanceRequest struct {
	Closed *bool `json:"closed" binding:"required"`
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
)

type RescheduleRequest struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

type RescheduleEventDTO struct {
	ID             uuid.UUID `json:"id"`
	LeadID         uuid.UUID `json:"paciente_id"`
	PreviousDate   string    `json:"data_anterior"`
	PreviousTime   string    `json:"horario_anterior"`
	PreviousStatus string    `json:"status_anterior"`
	NewDate        string    `json:"data_nova"`
	NewTime        string    `json:"horario_novo"`
	Reason         string    `json:"motivo"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewRescheduleEventDTO(ev *models.RescheduleEvent) RescheduleEventDTO {
	return RescheduleEventDTO{
		ID:             ev.ID,
		LeadID:         ev.LeadID,
		PreviousDate:   timezone.FormatDate(ev.PreviousDate),
		PreviousTime:   ev.PreviousTime,
		PreviousStatus: ev.PreviousStatus,
		NewDate:        timezone.FormatDate(&ev.NewDate),
		NewTime:        ev.NewTime,
		Reason:         ev.Reason,
		CreatedAt:      ev.CreatedAt,
	}
}

func NewRescheduleEventDTOs(evs []models.RescheduleEvent) []RescheduleEventDTO {
	out := make([]RescheduleEventDTO, 0, len(evs))
	for i := range evs {
		out = append(out, NewRescheduleEventDTO(&evs[i]))
	}
	return out
}

package lead

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

const DefaultAppointmentKind = "Avaliação"

// ===============================
// Validations
// ===============================

// ValidateContact runs on create and on every full edit.
func ValidateContact(name, phone string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(phone) == "" {
		return httperr.ErrBusiness("missing_name_or_phone")
	}
	return nil
}

func ValidateValue(v decimal.Decimal) error {
	if v.IsNegative() {
		return httperr.ErrBusiness("invalid_value")
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

// ChangeStatus applies any status. The funnel is advisory.
func ChangeStatus(l *models.Lead, to Status) error {
	if !to.Valid() {
		return httperr.ErrBusiness("invalid_status")
	}
	l.Status = string(to)
	return nil
}

// ResolveAttendance settles an attended lead as won or lost.
func ResolveAttendance(l *models.Lead, closed bool) error {
	if Status(l.Status) != StatusAttended {
		return httperr.ErrBusiness("invalid_state")
	}
	if closed {
		l.Status = string(StatusClosed)
	} else {
		l.Status = string(StatusNotInterested)
	}
	return nil
}

// Reschedule moves the appointment and returns the history record holding the
// values it replaced. The caller must persist both in one unit, record first.
func Reschedule(
	l *models.Lead,
	actorID uuid.UUID,
	newDate time.Time,
	newTime string,
	reason string,
) models.RescheduleEvent {

	ev := models.RescheduleEvent{
		LeadID:         l.ID,
		UserID:         actorID,
		PreviousTime:   l.AppointmentTime,
		PreviousStatus: l.Status,
		NewDate:        newDate,
		NewTime:        newTime,
		Reason:         strings.TrimSpace(reason),
	}
	if l.AppointmentDate != nil {
		prev := *l.AppointmentDate
		ev.PreviousDate = &prev
	}

	d := newDate
	l.AppointmentDate = &d
	l.AppointmentTime = newTime
	l.Status = string(StatusRescheduled)

	return ev
}

package lead

import (
	"strings"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

// ===============================
// Lead Status
// ===============================

type Status string

const (
	StatusScheduled     Status = "Agendado"
	StatusAttended      Status = "Compareceu"
	StatusNoShow        Status = "Faltou"
	StatusRescheduled   Status = "Remarcado"
	StatusCompleted     Status = "Finalizado"
	StatusNotInterested Status = "Sem Interesse"
	StatusClosed        Status = "Fechado"
)

var allStatuses = []Status{
	StatusScheduled,
	StatusAttended,
	StatusNoShow,
	StatusRescheduled,
	StatusCompleted,
	StatusNotInterested,
	StatusClosed,
}

func (s Status) Valid() bool {
	for _, st := range allStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// ParseStatus accepts the stored label in any letter case.
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	for _, st := range allStatuses {
		if strings.EqualFold(raw, string(st)) {
			return st, nil
		}
	}
	return "", httperr.ErrBusiness("invalid_status")
}

func InitialStatus() Status {
	return StatusScheduled
}

// IsOpenAppointment is true while the lead still has a visit ahead.
func (s Status) IsOpenAppointment() bool {
	return s == StatusScheduled || s == StatusRescheduled
}

// OpenAppointmentStatuses lists every status with a visit still ahead.
func OpenAppointmentStatuses() []Status {
	var out []Status
	for _, st := range allStatuses {
		if st.IsOpenAppointment() {
			out = append(out, st)
		}
	}
	return out
}

// ===============================
// Funnel
// ===============================

// canonical is the usual path: Scheduled/Rescheduled -> Attended -> Closed | NotInterested.
// It drives presentation only; ChangeStatus accepts any target.
var canonical = map[Status][]Status{
	StatusScheduled:   {StatusAttended, StatusNoShow, StatusRescheduled},
	StatusRescheduled: {StatusAttended, StatusNoShow, StatusRescheduled},
	StatusNoShow:      {StatusRescheduled},
	StatusAttended:    {StatusClosed, StatusNotInterested},
	StatusClosed:      {StatusCompleted},
}

func IsCanonicalTransition(from, to Status) bool {
	for _, next := range canonical[from] {
		if next == to {
			return true
		}
	}
	return false
}

func CanonicalNext(from Status) []Status {
	return append([]Status(nil), canonical[from]...)
}

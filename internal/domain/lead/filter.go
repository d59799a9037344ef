package lead

import (
	"strings"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

// Section groups leads the way the clinic screens do.
type Section string

const (
	SectionAll           Section = ""
	SectionScheduled     Section = "agendados"
	SectionNotInterested Section = "sem-interesse"
	SectionClosed        Section = "fechados"
	SectionFinancial     Section = "financeiro"
)

func ParseSection(raw string) (Section, error) {
	s := Section(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case SectionAll, SectionScheduled, SectionNotInterested, SectionClosed, SectionFinancial:
		return s, nil
	}
	return "", httperr.ErrBusiness("invalid_section")
}

// Statuses restricts the listing by status; nil means no restriction.
func (s Section) Statuses() []Status {
	switch s {
	case SectionScheduled:
		return OpenAppointmentStatuses()
	case SectionNotInterested:
		return []Status{StatusNotInterested}
	case SectionClosed:
		return []Status{StatusClosed}
	}
	return nil
}

// OnlyPositiveValue is set for the financial section (valor > 0).
func (s Section) OnlyPositiveValue() bool {
	return s == SectionFinancial
}

type Filter struct {
	Status  *Status
	Name    string
	Section Section
}

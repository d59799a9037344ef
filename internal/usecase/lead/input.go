package lead

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
)

// LeadInput is the editable part of a lead. Dates are YYYY-MM-DD, time HH:MM;
// empty strings clear the field.
type LeadInput struct {
	Name            string
	Phone           string
	ContactDate     string
	AppointmentDate string
	AppointmentTime string
	Status          string
	Value           decimal.Decimal
	Channel         string
	Procedure       string
	Notes           string
	AppointmentKind string
	ReminderEnabled bool
}

// apply validates everything before touching l.
func (in LeadInput) apply(l *models.Lead) error {
	if err := domain.ValidateContact(in.Name, in.Phone); err != nil {
		return err
	}
	if err := domain.ValidateValue(in.Value); err != nil {
		return err
	}

	// an edit without status keeps the current one
	status := domain.Status(l.Status)
	if status == "" {
		status = domain.InitialStatus()
	}
	if strings.TrimSpace(in.Status) != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return err
		}
		status = st
	}

	contact, err := optionalDate(in.ContactDate)
	if err != nil {
		return err
	}
	appointment, err := optionalDate(in.AppointmentDate)
	if err != nil {
		return err
	}

	clock := ""
	if raw := strings.TrimSpace(in.AppointmentTime); raw != "" {
		clock, err = timezone.ParseClock(raw)
		if err != nil {
			return httperr.ErrBusiness("invalid_time")
		}
	}

	kind := strings.TrimSpace(in.AppointmentKind)
	if kind == "" {
		kind = domain.DefaultAppointmentKind
	}

	l.Name = strings.TrimSpace(in.Name)
	l.Phone = strings.TrimSpace(in.Phone)
	l.ContactDate = contact
	l.AppointmentDate = appointment
	l.AppointmentTime = clock
	l.Status = string(status)
	l.Value = in.Value.Round(2)
	l.Channel = strings.TrimSpace(in.Channel)
	l.Procedure = strings.TrimSpace(in.Procedure)
	l.Notes = strings.TrimSpace(in.Notes)
	l.AppointmentKind = kind
	l.ReminderEnabled = in.ReminderEnabled
	return nil
}

func optionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := timezone.ParseDate(raw)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	return &d, nil
}

func loadLead(ctx context.Context, repo domain.Repository, ownerID, leadID uuid.UUID) (*models.Lead, error) {
	l, err := repo.GetForOwner(ctx, ownerID, leadID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness("lead_not_found")
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

package lead

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
)

type RescheduleLead struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewRescheduleLead(
	repo domain.Repository,
	audit audit.Recorder,
) *RescheduleLead {
	return &RescheduleLead{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RescheduleLead) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	leadID uuid.UUID,
	rawDate string,
	rawTime string,
	reason string,
) (*models.Lead, *models.RescheduleEvent, error) {

	if strings.TrimSpace(rawDate) == "" || strings.TrimSpace(rawTime) == "" {
		return nil, nil, httperr.ErrBusiness("missing_date_or_time")
	}
	newDate, err := timezone.ParseDate(strings.TrimSpace(rawDate))
	if err != nil {
		return nil, nil, httperr.ErrBusiness("invalid_date")
	}
	newTime, err := timezone.ParseClock(strings.TrimSpace(rawTime))
	if err != nil {
		return nil, nil, httperr.ErrBusiness("invalid_time")
	}

	l, err := loadLead(ctx, uc.repo, ownerID, leadID)
	if err != nil {
		return nil, nil, err
	}

	ev := domain.Reschedule(l, ownerID, newDate, newTime, reason)

	if err := uc.repo.SaveReschedule(ctx, &ev, l); err != nil {
		return nil, nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "lead_rescheduled",
		Entity:   "lead",
		EntityID: &l.ID,
		Metadata: map[string]any{
			"previous_status": ev.PreviousStatus,
			"new_date":        timezone.FormatDate(&ev.NewDate),
			"new_time":        ev.NewTime,
		},
	})

	return l, &ev, nil
}

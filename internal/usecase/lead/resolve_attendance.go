package lead

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type ResolveAttendance struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewResolveAttendance(
	repo domain.Repository,
	audit audit.Recorder,
) *ResolveAttendance {
	return &ResolveAttendance{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ResolveAttendance) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	leadID uuid.UUID,
	closed bool,
) (*models.Lead, error) {

	l, err := loadLead(ctx, uc.repo, ownerID, leadID)
	if err != nil {
		return nil, err
	}

	if err := domain.ResolveAttendance(l, closed); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "lead_attendance_resolved",
		Entity:   "lead",
		EntityID: &l.ID,
		Metadata: map[string]any{"status": l.Status},
	})

	return l, nil
}

package lead

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/metrics"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type CreateLead struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewCreateLead(
	repo domain.Repository,
	audit audit.Recorder,
) *CreateLead {
	return &CreateLead{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateLead) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	in LeadInput,
) (*models.Lead, error) {

	l := &models.Lead{UserID: ownerID}
	if err := in.apply(l); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	metrics.RecordLeadCreated()
	uc.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "lead_created",
		Entity:   "lead",
		EntityID: &l.ID,
		Metadata: map[string]any{"status": l.Status},
	})

	return l, nil
}

package lead

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type UpdateLead struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewUpdateLead(
	repo domain.Repository,
	audit audit.Recorder,
) *UpdateLead {
	return &UpdateLead{
		repo:  repo,
		audit: audit,
	}
}

// Execute is a full edit; last write wins.
func (uc *UpdateLead) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	leadID uuid.UUID,
	in LeadInput,
) (*models.Lead, error) {

	l, err := loadLead(ctx, uc.repo, ownerID, leadID)
	if err != nil {
		return nil, err
	}

	edited := *l
	if err := in.apply(&edited); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, &edited); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "lead_updated",
		Entity:   "lead",
		EntityID: &edited.ID,
	})

	return &edited, nil
}

package lead

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

type DeleteLead struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewDeleteLead(
	repo domain.Repository,
	audit audit.Recorder,
) *DeleteLead {
	return &DeleteLead{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteLead) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	leadID uuid.UUID,
) error {

	if err := uc.repo.Delete(ctx, ownerID, leadID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("lead_not_found")
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "lead_deleted",
		Entity:   "lead",
		EntityID: &leadID,
	})

	return nil
}

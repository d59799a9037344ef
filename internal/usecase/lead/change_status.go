package lead

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type ChangeStatus struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewChangeStatus(
	repo domain.Repository,
	audit audit.Recorder,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	leadID uuid.UUID,
	rawStatus string,
) (*models.Lead, error) {

	to, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	l, err := loadLead(ctx, uc.repo, ownerID, leadID)
	if err != nil {
		return nil, err
	}

	from := domain.Status(l.Status)
	if err := domain.ChangeStatus(l, to); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "lead_status_changed",
		Entity:   "lead",
		EntityID: &l.ID,
		Metadata: map[string]any{
			"from":      from,
			"to":        to,
			"canonical": domain.IsCanonicalTransition(from, to),
		},
	})

	return l, nil
}

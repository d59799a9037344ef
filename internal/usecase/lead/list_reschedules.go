package lead

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type ListReschedules struct {
	repo domain.Repository
}

func NewListReschedules(repo domain.Repository) *ListReschedules {
	return &ListReschedules{repo: repo}
}

func (uc *ListReschedules) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	leadID uuid.UUID,
) ([]models.RescheduleEvent, error) {

	if _, err := loadLead(ctx, uc.repo, ownerID, leadID); err != nil {
		return nil, err
	}
	return uc.repo.ListReschedules(ctx, ownerID, leadID)
}

package lead

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type GetLead struct {
	repo domain.Repository
}

func NewGetLead(repo domain.Repository) *GetLead {
	return &GetLead{repo: repo}
}

func (uc *GetLead) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	leadID uuid.UUID,
) (*models.Lead, error) {
	return loadLead(ctx, uc.repo, ownerID, leadID)
}

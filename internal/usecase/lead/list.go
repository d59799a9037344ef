package lead

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type ListLeads struct {
	repo domain.Repository
}

func NewListLeads(repo domain.Repository) *ListLeads {
	return &ListLeads{repo: repo}
}

// Execute parses the raw query filters; an empty value means no filter.
func (uc *ListLeads) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	status string,
	name string,
	section string,
) ([]models.Lead, error) {

	f := domain.Filter{Name: strings.TrimSpace(name)}

	if strings.TrimSpace(status) != "" {
		st, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		f.Status = &st
	}

	sec, err := domain.ParseSection(section)
	if err != nil {
		return nil, err
	}
	f.Section = sec

	return uc.repo.List(ctx, ownerID, f)
}

package lead

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
)

type ListUpcoming struct {
	repo domain.Repository
	tz   string
	now  func() time.Time
}

func NewListUpcoming(repo domain.Repository, tz string) *ListUpcoming {
	return &ListUpcoming{
		repo: repo,
		tz:   tz,
		now:  time.Now,
	}
}

// Execute returns today's and tomorrow's open appointments, earliest first.
func (uc *ListUpcoming) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]models.Lead, error) {

	today := timezone.DateOnly(uc.now().In(timezone.Location(uc.tz)))

	return uc.repo.ListAppointmentsBetween(
		ctx,
		ownerID,
		today,
		today.AddDate(0, 0, 2),
		domain.OpenAppointmentStatuses(),
	)
}

package lead

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/domain/dashboard"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
)

type GetDashboard struct {
	repo domain.Repository
	tz   string
	now  func() time.Time
}

func NewGetDashboard(repo domain.Repository, tz string) *GetDashboard {
	return &GetDashboard{
		repo: repo,
		tz:   tz,
		now:  time.Now,
	}
}

// Execute aggregates month/year; zero picks the current one in the clinic timezone.
func (uc *GetDashboard) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	month int,
	year int,
) (dashboard.MonthlyStats, error) {

	now := uc.now().In(timezone.Location(uc.tz))
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	if month < 1 || month > 12 {
		return dashboard.MonthlyStats{}, httperr.ErrBusiness("invalid_month")
	}
	if year < 2000 || year > 2100 {
		return dashboard.MonthlyStats{}, httperr.ErrBusiness("invalid_year")
	}

	from, to := timezone.MonthWindow(year, time.Month(month))
	leads, err := uc.repo.ListAppointmentsBetween(ctx, ownerID, from, to, nil)
	if err != nil {
		return dashboard.MonthlyStats{}, err
	}

	return dashboard.Compute(leads, month, year), nil
}

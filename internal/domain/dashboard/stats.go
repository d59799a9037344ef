package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type MonthlyStats struct {
	Month         int
	Year          int
	Total         int
	Scheduled     int
	NotInterested int
	Closed        int
	Revenue       decimal.Decimal
}

// Compute counts the leads whose appointment day falls in month/year.
// Leads without an appointment date are ignored; contact and creation dates
// play no part. Pure: same input, same output.
func Compute(leads []models.Lead, month, year int) MonthlyStats {
	out := MonthlyStats{
		Month:   month,
		Year:    year,
		Revenue: decimal.Zero,
	}

	for i := range leads {
		l := &leads[i]
		if l.AppointmentDate == nil {
			continue
		}
		d := *l.AppointmentDate
		if d.Year() != year || d.Month() != time.Month(month) {
			continue
		}

		out.Total++

		switch lead.Status(l.Status) {
		case lead.StatusScheduled:
			out.Scheduled++
		case lead.StatusNotInterested:
			out.NotInterested++
		case lead.StatusClosed:
			out.Closed++
			out.Revenue = out.Revenue.Add(l.Value)
		}
	}

	return out
}

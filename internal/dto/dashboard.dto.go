package dto

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-crm/internal/domain/dashboard"
)

type DashboardDTO struct {
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	Total         int             `json:"total"`
	Scheduled     int             `json:"agendados"`
	NotInterested int             `json:"sem_interesse"`
	Closed        int             `json:"fechados"`
	Revenue       decimal.Decimal `json:"faturamento"`
}

func NewDashboardDTO(s dashboard.MonthlyStats) DashboardDTO {
	return DashboardDTO{
		Month:         s.Month,
		Year:          s.Year,
		Total:         s.Total,
		Scheduled:     s.Scheduled,
		NotInterested: s.NotInterested,
		Closed:        s.Closed,
		Revenue:       s.Revenue,
	}
}

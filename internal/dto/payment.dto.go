package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-crm/internal/domain/payment"
)

type PaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
	Notes  string `json:"notes"`
}

type PaymentSummaryDTO struct {
	TotalOwed  decimal.Decimal `json:"valor_total"`
	AmountPaid decimal.Decimal `json:"valor_pago"`
	Remaining  decimal.Decimal `json:"valor_restante"`
	Status     string          `json:"status_pagamento"`
	LastPaidAt *time.Time      `json:"data_pagamento"`
	Notes      string          `json:"observacoes"`
	HasEntry   bool            `json:"registrado"`
}

func NewPaymentSummaryDTO(s payment.Summary) PaymentSummaryDTO {
	return PaymentSummaryDTO{
		TotalOwed:  s.TotalOwed,
		AmountPaid: s.AmountPaid,
		Remaining:  s.Remaining,
		Status:     string(s.Status),
		LastPaidAt: s.LastPaidAt,
		Notes:      s.Notes,
		HasEntry:   s.HasEntry,
	}
}

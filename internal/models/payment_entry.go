package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentEntry acumula os pagamentos de um lead. No máximo uma por lead.
type PaymentEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LeadID uuid.UUID `gorm:"column:paciente_id;type:uuid;uniqueIndex;not null" json:"paciente_id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	TotalOwed  decimal.Decimal `gorm:"column:valor_total;type:numeric(12,2);not null;default:0" json:"valor_total"`
	AmountPaid decimal.Decimal `gorm:"column:valor_pago;type:numeric(12,2);not null;default:0" json:"valor_pago"`
	Status     string          `gorm:"column:status_pagamento;size:20;not null;default:'Pendente'" json:"status_pagamento"`
	LastPaidAt *time.Time      `gorm:"column:data_pagamento" json:"data_pagamento"`
	Notes      string          `gorm:"column:observacoes;type:text" json:"observacoes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PaymentEntry) TableName() string { return "pagamentos" }

func (p *PaymentEntry) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

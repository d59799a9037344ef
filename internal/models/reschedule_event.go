package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RescheduleEvent é append-only: nunca é alterado nem removido pela API.
type RescheduleEvent struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LeadID uuid.UUID `gorm:"column:paciente_id;type:uuid;index;not null" json:"paciente_id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	PreviousDate   *time.Time `gorm:"column:data_anterior;type:date" json:"data_anterior"`
	PreviousTime   string     `gorm:"column:horario_anterior;size:5" json:"horario_anterior"`
	PreviousStatus string     `gorm:"column:status_anterior;size:20" json:"status_anterior"`

	NewDate time.Time `gorm:"column:data_nova;type:date;not null" json:"data_nova"`
	NewTime string    `gorm:"column:horario_novo;size:5;not null" json:"horario_novo"`
	Reason  string    `gorm:"column:motivo;type:text" json:"motivo"`

	CreatedAt time.Time `json:"created_at"`
}

func (RescheduleEvent) TableName() string { return "historico_reagendamentos" }

func (r *RescheduleEvent) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

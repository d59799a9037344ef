package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Lead é um paciente acompanhado pelo funil, do contato ao fechamento.
type Lead struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	Name  string `gorm:"column:nome;size:150;not null" json:"nome"`
	Phone string `gorm:"column:telefone;size:30;not null" json:"telefone"`

	ContactDate     *time.Time `gorm:"column:data_contato;type:date" json:"data_contato"`
	AppointmentDate *time.Time `gorm:"column:data_agendamento;type:date;index" json:"data_agendamento"`
	AppointmentTime string     `gorm:"column:horario_agendamento;size:5" json:"horario_agendamento"`

	Status string          `gorm:"size:20;not null;default:'Agendado';index" json:"status"`
	Value  decimal.Decimal `gorm:"column:valor;type:numeric(12,2);not null;default:0" json:"valor"`

	Channel         string `gorm:"column:midia;size:50" json:"midia"`
	Procedure       string `gorm:"column:procedimentos;size:150" json:"procedimentos"`
	Notes           string `gorm:"column:observacoes;type:text" json:"observacoes"`
	AppointmentKind string `gorm:"column:tipo_atendimento;size:50;default:'Avaliação'" json:"tipo_atendimento"`
	ReminderEnabled bool   `gorm:"column:lembrete_ativo;not null;default:false" json:"lembrete_ativo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Lead) TableName() string { return "pacientes" }

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type LeadGormRepository struct {
	db *gorm.DB
}

func NewLeadGormRepository(db *gorm.DB) *LeadGormRepository {
	return &LeadGormRepository{db: db}
}

// --------------------------------------------------
// Lead
// --------------------------------------------------

func (r *LeadGormRepository) Create(
	ctx context.Context,
	l *models.Lead,
) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LeadGormRepository) Update(
	ctx context.Context,
	l *models.Lead,
) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LeadGormRepository) Delete(
	ctx context.Context,
	ownerID uuid.UUID,
	id uuid.UUID,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Lead{}).
			Where("id = ? AND user_id = ?", id, ownerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrNotFound
		}

		if err := tx.Where("paciente_id = ?", id).
			Delete(&models.PaymentEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("paciente_id = ?", id).
			Delete(&models.RescheduleEvent{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, ownerID).
			Delete(&models.Lead{}).Error
	})
}

func (r *LeadGormRepository) GetForOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	id uuid.UUID,
) (*models.Lead, error) {

	var l models.Lead
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LeadGormRepository) List(
	ctx context.Context,
	ownerID uuid.UUID,
	f domain.Filter,
) ([]models.Lead, error) {

	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)

	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		q = q.Where("LOWER(nome) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if statuses := f.Section.Statuses(); len(statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(statuses))
	}
	if f.Section.OnlyPositiveValue() {
		q = q.Where("valor > 0")
	}

	var leads []models.Lead
	if err := q.Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *LeadGormRepository) ListByIDs(
	ctx context.Context,
	ownerID uuid.UUID,
	ids []uuid.UUID,
) ([]models.Lead, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	var leads []models.Lead
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", ownerID, ids).
		Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// --------------------------------------------------
// Agenda
// --------------------------------------------------

func (r *LeadGormRepository) ListAppointmentsBetween(
	ctx context.Context,
	ownerID uuid.UUID,
	from time.Time,
	to time.Time,
	statuses []domain.Status,
) ([]models.Lead, error) {

	q := r.db.WithContext(ctx).
		Where(
			"user_id = ? AND data_agendamento >= ? AND data_agendamento < ?",
			ownerID, from, to,
		)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(statuses))
	}

	var leads []models.Lead
	if err := q.
		Order("data_agendamento ASC").
		Order("horario_agendamento ASC").
		Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *LeadGormRepository) ListRemindersDue(
	ctx context.Context,
	day time.Time,
) ([]models.Lead, error) {

	var leads []models.Lead
	if err := r.db.WithContext(ctx).
		Where(
			"lembrete_ativo = ? AND data_agendamento = ? AND status IN ?",
			true,
			day,
			statusStrings(domain.OpenAppointmentStatuses()),
		).
		Order("user_id ASC").
		Order("horario_agendamento ASC").
		Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *LeadGormRepository) GetPaymentEntry(
	ctx context.Context,
	leadID uuid.UUID,
) (*models.PaymentEntry, error) {

	var e models.PaymentEntry
	err := r.db.WithContext(ctx).
		Where("paciente_id = ?", leadID).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ApplyPayment runs apply against the locked ledger row and stores the
// result in the same transaction. A concurrent first insert that loses the
// unique index race is retried once so it lands on the update path.
func (r *LeadGormRepository) ApplyPayment(
	ctx context.Context,
	leadID uuid.UUID,
	apply domain.PaymentFunc,
) (*models.PaymentEntry, error) {

	var next *models.PaymentEntry
	var err error

	for attempt := 0; attempt < 2; attempt++ {
		next, err = r.applyPayment(ctx, leadID, apply)
		if err == nil || !isDuplicate(err) {
			break
		}
	}
	return next, err
}

func (r *LeadGormRepository) applyPayment(
	ctx context.Context,
	leadID uuid.UUID,
	apply domain.PaymentFunc,
) (*models.PaymentEntry, error) {

	var next *models.PaymentEntry

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current *models.PaymentEntry

		var e models.PaymentEntry
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("paciente_id = ?", leadID).
			First(&e).Error
		switch {
		case err == nil:
			current = &e
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		next, err = apply(current)
		if err != nil {
			return err
		}

		if current == nil {
			return tx.Create(next).Error
		}
		return tx.Save(next).Error
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

func isDuplicate(err error) bool {
	return httperr.IsUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey)
}

// --------------------------------------------------
// Reschedule
// --------------------------------------------------

func (r *LeadGormRepository) SaveReschedule(
	ctx context.Context,
	ev *models.RescheduleEvent,
	l *models.Lead,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ev).Error; err != nil {
			return err
		}
		return tx.Save(l).Error
	})
}

func (r *LeadGormRepository) ListReschedules(
	ctx context.Context,
	ownerID uuid.UUID,
	leadID uuid.UUID,
) ([]models.RescheduleEvent, error) {

	var events []models.RescheduleEvent
	if err := r.db.WithContext(ctx).
		Where("paciente_id = ? AND user_id = ?", leadID, ownerID).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*LeadGormRepository)(nil)

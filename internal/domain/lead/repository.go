package lead

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

var ErrNotFound = errors.New("lead not found")

// PaymentFunc computes the next ledger entry from the current one.
type PaymentFunc func(current *models.PaymentEntry) (*models.PaymentEntry, error)

type Repository interface {
	// -------- Lead --------
	Create(ctx context.Context, l *models.Lead) error
	Update(ctx context.Context, l *models.Lead) error

	// Delete removes the lead with its payment entry and reschedule history.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*models.Lead, error)
	List(ctx context.Context, ownerID uuid.UUID, f Filter) ([]models.Lead, error)
	ListByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]models.Lead, error)

	// ListAppointmentsBetween returns leads whose appointment day is in [from, to).
	ListAppointmentsBetween(
		ctx context.Context,
		ownerID uuid.UUID,
		from time.Time,
		to time.Time,
		statuses []Status,
	) ([]models.Lead, error)

	// ListRemindersDue spans every account.
	ListRemindersDue(ctx context.Context, day time.Time) ([]models.Lead, error)

	// -------- Payment --------
	// GetPaymentEntry returns nil, nil when no payment was registered yet.
	GetPaymentEntry(ctx context.Context, leadID uuid.UUID) (*models.PaymentEntry, error)

	// ApplyPayment locks the ledger row of leadID, hands it to fn (nil when
	// none exists) and stores what fn returns, all in one transaction.
	ApplyPayment(ctx context.Context, leadID uuid.UUID, fn PaymentFunc) (*models.PaymentEntry, error)

	// -------- Reschedule --------
	// SaveReschedule appends ev and then updates l in one transaction.
	SaveReschedule(ctx context.Context, ev *models.RescheduleEvent, l *models.Lead) error
	ListReschedules(ctx context.Context, ownerID, leadID uuid.UUID) ([]models.RescheduleEvent, error)
}

package lead

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/domain/payment"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/metrics"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type RegisterPayment struct {
	repo  domain.Repository
	audit audit.Recorder
	now   func() time.Time
}

func NewRegisterPayment(
	repo domain.Repository,
	audit audit.Recorder,
) *RegisterPayment {
	return &RegisterPayment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute adds rawAmount to the lead ledger. The lead row is never changed.
func (uc *RegisterPayment) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	leadID uuid.UUID,
	rawAmount string,
	notes string,
) (payment.Summary, error) {

	amount, err := payment.ParseAmount(rawAmount)
	if err != nil {
		return payment.Summary{}, err
	}
	if !amount.IsPositive() {
		return payment.Summary{}, httperr.ErrBusiness("invalid_payment_amount")
	}

	l, err := loadLead(ctx, uc.repo, ownerID, leadID)
	if err != nil {
		return payment.Summary{}, err
	}

	paidAt := uc.now().UTC()
	next, err := uc.repo.ApplyPayment(ctx, l.ID, func(current *models.PaymentEntry) (*models.PaymentEntry, error) {
		return payment.Apply(l, current, amount, paidAt, notes)
	})
	if err != nil {
		return payment.Summary{}, err
	}

	metrics.RecordPayment(next.Status)
	uc.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "payment_registered",
		Entity:   "lead",
		EntityID: &l.ID,
		Metadata: map[string]any{
			"amount": amount.StringFixed(2),
			"status": next.Status,
		},
	})

	return payment.Reconcile(l, next), nil
}

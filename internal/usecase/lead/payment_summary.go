package lead

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/domain/payment"
)

type GetPaymentSummary struct {
	repo domain.Repository
}

func NewGetPaymentSummary(repo domain.Repository) *GetPaymentSummary {
	return &GetPaymentSummary{repo: repo}
}

func (uc *GetPaymentSummary) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	leadID uuid.UUID,
) (payment.Summary, error) {

	l, err := loadLead(ctx, uc.repo, ownerID, leadID)
	if err != nil {
		return payment.Summary{}, err
	}

	e, err := uc.repo.GetPaymentEntry(ctx, l.ID)
	if err != nil {
		return payment.Summary{}, err
	}

	return payment.Reconcile(l, e), nil
}

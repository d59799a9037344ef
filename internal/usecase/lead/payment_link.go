package lead

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/domain/payment"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/metrics"
)

type LinkCreator interface {
	CreateLink(ctx context.Context, reference, title string, amount decimal.Decimal) (string, error)
}

type PaymentLink struct {
	URL    string          `json:"url"`
	Amount decimal.Decimal `json:"amount"`
}

type CreatePaymentLink struct {
	repo  domain.Repository
	links LinkCreator
	audit audit.Recorder
}

// NewCreatePaymentLink accepts a nil creator when no gateway is configured.
func NewCreatePaymentLink(
	repo domain.Repository,
	links LinkCreator,
	audit audit.Recorder,
) *CreatePaymentLink {
	return &CreatePaymentLink{
		repo:  repo,
		links: links,
		audit: audit,
	}
}

func (uc *CreatePaymentLink) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	leadID uuid.UUID,
) (*PaymentLink, error) {

	if uc.links == nil {
		return nil, httperr.ErrBusiness("payment_link_disabled")
	}

	l, err := loadLead(ctx, uc.repo, ownerID, leadID)
	if err != nil {
		return nil, err
	}

	e, err := uc.repo.GetPaymentEntry(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	summary := payment.Reconcile(l, e)
	if !summary.Remaining.IsPositive() {
		return nil, httperr.ErrBusiness("nothing_to_pay")
	}

	title := "Tratamento odontológico - " + l.Name
	url, err := uc.links.CreateLink(ctx, l.ID.String(), title, summary.Remaining)
	if err != nil {
		metrics.RecordIntegrationError("mercadopago")
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "payment_link_created",
		Entity:   "lead",
		EntityID: &l.ID,
		Metadata: map[string]any{"amount": summary.Remaining.StringFixed(2)},
	})

	return &PaymentLink{URL: url, Amount: summary.Remaining}, nil
}

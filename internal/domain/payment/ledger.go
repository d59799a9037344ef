package payment

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type Status string

const (
	StatusPending Status = "Pendente"
	StatusPartial Status = "Parcial"
	StatusPaid    Status = "Pago"
)

// Derive: nothing paid is Pending, paid >= total is Paid, anything between is Partial.
func Derive(total, paid decimal.Decimal) Status {
	switch {
	case !paid.IsPositive():
		return StatusPending
	case paid.GreaterThanOrEqual(total):
		return StatusPaid
	default:
		return StatusPartial
	}
}

type Summary struct {
	TotalOwed  decimal.Decimal
	AmountPaid decimal.Decimal
	Remaining  decimal.Decimal
	Status     Status
	LastPaidAt *time.Time
	Notes      string
	HasEntry   bool
}

// Reconcile merges the lead value with its optional ledger entry.
func Reconcile(l *models.Lead, e *models.PaymentEntry) Summary {
	if e == nil {
		total := decimal.Zero
		if l != nil {
			total = l.Value
		}
		return Summary{
			TotalOwed:  total,
			AmountPaid: decimal.Zero,
			Remaining:  total,
			Status:     StatusPending,
		}
	}

	return Summary{
		TotalOwed:  e.TotalOwed,
		AmountPaid: e.AmountPaid,
		Remaining:  e.TotalOwed.Sub(e.AmountPaid),
		Status:     Derive(e.TotalOwed, e.AmountPaid),
		LastPaidAt: e.LastPaidAt,
		Notes:      e.Notes,
		HasEntry:   true,
	}
}

// Apply registers amount against the ledger. A missing entry is created with
// the lead value as total; an existing one accumulates. It never touches the
// lead itself.
func Apply(
	l *models.Lead,
	e *models.PaymentEntry,
	amount decimal.Decimal,
	now time.Time,
	notes string,
) (*models.PaymentEntry, error) {

	if !amount.IsPositive() {
		return nil, httperr.ErrBusiness("invalid_payment_amount")
	}

	notes = strings.TrimSpace(notes)
	paidAt := now

	if e == nil {
		entry := &models.PaymentEntry{
			LeadID:     l.ID,
			UserID:     l.UserID,
			TotalOwed:  l.Value,
			AmountPaid: amount,
			LastPaidAt: &paidAt,
			Notes:      notes,
		}
		entry.Status = string(Derive(entry.TotalOwed, entry.AmountPaid))
		return entry, nil
	}

	updated := *e
	updated.AmountPaid = e.AmountPaid.Add(amount)
	updated.Status = string(Derive(updated.TotalOwed, updated.AmountPaid))
	updated.LastPaidAt = &paidAt
	if notes != "" {
		updated.Notes = notes
	}
	return &updated, nil
}

// ParseAmount reads "80", "80.50" or the pt-BR "80,50" / "1.234,56".
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, httperr.ErrBusiness("invalid_payment_amount")
	}
	return d.Round(2), nil
}

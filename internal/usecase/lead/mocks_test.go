package lead

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, l *models.Lead) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockRepo) Update(ctx context.Context, l *models.Lead) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *mockRepo) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*models.Lead, error) {
	args := m.Called(ctx, ownerID, id)
	l, _ := args.Get(0).(*models.Lead)
	return l, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, ownerID uuid.UUID, f domain.Filter) ([]models.Lead, error) {
	args := m.Called(ctx, ownerID, f)
	leads, _ := args.Get(0).([]models.Lead)
	return leads, args.Error(1)
}

func (m *mockRepo) ListByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]models.Lead, error) {
	args := m.Called(ctx, ownerID, ids)
	leads, _ := args.Get(0).([]models.Lead)
	return leads, args.Error(1)
}

func (m *mockRepo) ListAppointmentsBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time, statuses []domain.Status) ([]models.Lead, error) {
	args := m.Called(ctx, ownerID, from, to, statuses)
	leads, _ := args.Get(0).([]models.Lead)
	return leads, args.Error(1)
}

func (m *mockRepo) ListRemindersDue(ctx context.Context, day time.Time) ([]models.Lead, error) {
	args := m.Called(ctx, day)
	leads, _ := args.Get(0).([]models.Lead)
	return leads, args.Error(1)
}

func (m *mockRepo) GetPaymentEntry(ctx context.Context, leadID uuid.UUID) (*models.PaymentEntry, error) {
	args := m.Called(ctx, leadID)
	e, _ := args.Get(0).(*models.PaymentEntry)
	return e, args.Error(1)
}

// ApplyPayment returns (current entry, store error) from the expectation and
// runs fn against that entry.
func (m *mockRepo) ApplyPayment(ctx context.Context, leadID uuid.UUID, fn domain.PaymentFunc) (*models.PaymentEntry, error) {
	args := m.Called(ctx, leadID)
	current, _ := args.Get(0).(*models.PaymentEntry)
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return next, nil
}

func (m *mockRepo) SaveReschedule(ctx context.Context, ev *models.RescheduleEvent, l *models.Lead) error {
	return m.Called(ctx, ev, l).Error(0)
}

func (m *mockRepo) ListReschedules(ctx context.Context, ownerID, leadID uuid.UUID) ([]models.RescheduleEvent, error) {
	args := m.Called(ctx, ownerID, leadID)
	evs, _ := args.Get(0).([]models.RescheduleEvent)
	return evs, args.Error(1)
}

type recordedAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordedAudit) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordedAudit) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

func newLead(owner uuid.UUID, status domain.Status, value string) *models.Lead {
	return &models.Lead{
		ID:     uuid.New(),
		UserID: owner,
		Name:   "Maria",
		Phone:  "85999990000",
		Status: string(status),
		Value:  decimal.RequireFromString(value),
	}
}

package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	"github.com/BruksfildServices01/clinic-crm/internal/domain/payment"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func seedLead(t *testing.T, repo *LeadGormRepository, owner uuid.UUID, name string, mutate func(*models.Lead)) *models.Lead {
	t.Helper()
	l := &models.Lead{
		UserID: owner,
		Name:   name,
		Phone:  "85999990000",
		Status: string(domain.StatusScheduled),
		Value:  decimal.Zero,
	}
	if mutate != nil {
		mutate(l)
	}
	require.NoError(t, repo.Create(context.Background(), l))
	return l
}

func TestLeadRepositoryOwnership(t *testing.T) {
	repo := NewLeadGormRepository(newTestDB(t))
	ctx := context.Background()
	owner, other := uuid.New(), uuid.New()

	l := seedLead(t, repo, owner, "Maria", nil)

	got, err := repo.GetForOwner(ctx, owner, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", got.Name)

	_, err = repo.GetForOwner(ctx, other, l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.Delete(ctx, other, l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLeadRepositoryListFilters(t *testing.T) {
	repo := NewLeadGormRepository(newTestDB(t))
	ctx := context.Background()
	owner := uuid.New()

	seedLead(t, repo, owner, "Ana Souza", nil)
	seedLead(t, repo, owner, "Bruno", func(l *models.Lead) {
		l.Status = string(domain.StatusRescheduled)
	})
	seedLead(t, repo, owner, "Carla Souza", func(l *models.Lead) {
		l.Status = string(domain.StatusClosed)
		l.Value = decimal.NewFromInt(1500)
	})
	seedLead(t, repo, owner, "Davi", func(l *models.Lead) {
		l.Status = string(domain.StatusNotInterested)
	})
	seedLead(t, repo, uuid.New(), "Outro Souza", nil)

	names := func(leads []models.Lead) []string {
		out := make([]string, 0, len(leads))
		for _, l := range leads {
			out = append(out, l.Name)
		}
		return out
	}

	all, err := repo.List(ctx, owner, domain.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	bySouza, err := repo.List(ctx, owner, domain.Filter{Name: "souza"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Ana Souza", "Carla Souza"}, names(bySouza))

	scheduled, err := repo.List(ctx, owner, domain.Filter{Section: domain.SectionScheduled})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Ana Souza", "Bruno"}, names(scheduled))

	financial, err := repo.List(ctx, owner, domain.Filter{Section: domain.SectionFinancial})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carla Souza"}, names(financial))

	lost := domain.StatusNotInterested
	byStatus, err := repo.List(ctx, owner, domain.Filter{Status: &lost})
	require.NoError(t, err)
	assert.Equal(t, []string{"Davi"}, names(byStatus))
}

func TestLeadRepositoryListByIDsIgnoresForeignRows(t *testing.T) {
	repo := NewLeadGormRepository(newTestDB(t))
	owner := uuid.New()

	mine := seedLead(t, repo, owner, "Mine", nil)
	theirs := seedLead(t, repo, uuid.New(), "Theirs", nil)

	leads, err := repo.ListByIDs(context.Background(), owner, []uuid.UUID{mine.ID, theirs.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, mine.ID, leads[0].ID)
}

func TestLeadRepositoryAgendaQueries(t *testing.T) {
	repo := NewLeadGormRepository(newTestDB(t))
	ctx := context.Background()
	owner := uuid.New()

	seedLead(t, repo, owner, "Hoje", func(l *models.Lead) {
		l.AppointmentDate = day(2026, 3, 10)
		l.AppointmentTime = "09:00"
		l.ReminderEnabled = true
	})
	seedLead(t, repo, owner, "Amanha", func(l *models.Lead) {
		l.AppointmentDate = day(2026, 3, 11)
		l.AppointmentTime = "14:00"
		l.ReminderEnabled = true
		l.Status = string(domain.StatusRescheduled)
	})
	seedLead(t, repo, owner, "Amanha sem lembrete", func(l *models.Lead) {
		l.AppointmentDate = day(2026, 3, 11)
	})
	seedLead(t, repo, owner, "Amanha fechado", func(l *models.Lead) {
		l.AppointmentDate = day(2026, 3, 11)
		l.ReminderEnabled = true
		l.Status = string(domain.StatusClosed)
	})

	upcoming, err := repo.ListAppointmentsBetween(ctx, owner, *day(2026, 3, 10), *day(2026, 3, 12),
		[]domain.Status{domain.StatusScheduled, domain.StatusRescheduled})
	require.NoError(t, err)
	require.Len(t, upcoming, 3)
	assert.Equal(t, "Hoje", upcoming[0].Name)

	due, err := repo.ListRemindersDue(ctx, *day(2026, 3, 11))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Amanha", due[0].Name)
}

func pay(l *models.Lead, amount int64) domain.PaymentFunc {
	return func(current *models.PaymentEntry) (*models.PaymentEntry, error) {
		return payment.Apply(l, current, decimal.NewFromInt(amount), time.Now().UTC(), "")
	}
}

func TestLeadRepositoryPaymentEntry(t *testing.T) {
	repo := NewLeadGormRepository(newTestDB(t))
	ctx := context.Background()
	owner := uuid.New()
	l := seedLead(t, repo, owner, "Paga", func(l *models.Lead) {
		l.Value = decimal.NewFromInt(200)
	})

	e, err := repo.GetPaymentEntry(ctx, l.ID)
	require.NoError(t, err)
	assert.Nil(t, e)

	first, err := repo.ApplyPayment(ctx, l.ID, pay(l, 80))
	require.NoError(t, err)
	assert.Equal(t, "Parcial", first.Status)

	second, err := repo.ApplyPayment(ctx, l.ID, pay(l, 120))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.GetPaymentEntry(ctx, l.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.True(t, got.AmountPaid.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "Pago", got.Status)
}

func TestLeadRepositoryApplyPaymentFailureKeepsRow(t *testing.T) {
	repo := NewLeadGormRepository(newTestDB(t))
	ctx := context.Background()
	l := seedLead(t, repo, uuid.New(), "Falha", func(l *models.Lead) {
		l.Value = decimal.NewFromInt(200)
	})
	_, err := repo.ApplyPayment(ctx, l.ID, pay(l, 50))
	require.NoError(t, err)

	boom := errors.New("rejected")
	_, err = repo.ApplyPayment(ctx, l.ID, func(*models.PaymentEntry) (*models.PaymentEntry, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetPaymentEntry(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, got.AmountPaid.Equal(decimal.NewFromInt(50)))
}

func TestLeadRepositoryConcurrentPaymentsAccumulate(t *testing.T) {
	repo := NewLeadGormRepository(newTestDB(t))
	ctx := context.Background()
	l := seedLead(t, repo, uuid.New(), "Dupla", func(l *models.Lead) {
		l.Value = decimal.NewFromInt(200)
	})

	_, err := repo.ApplyPayment(ctx, l.ID, pay(l, 80))
	require.NoError(t, err)

	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := repo.ApplyPayment(ctx, l.ID, pay(l, 60))
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.GetPaymentEntry(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, got.AmountPaid.Equal(decimal.NewFromInt(200)), got.AmountPaid.String())
	assert.Equal(t, "Pago", got.Status)
}

func TestLeadRepositoryConcurrentFirstPayments(t *testing.T) {
	repo := NewLeadGormRepository(newTestDB(t))
	ctx := context.Background()
	l := seedLead(t, repo, uuid.New(), "Primeira", func(l *models.Lead) {
		l.Value = decimal.NewFromInt(100)
	})

	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := repo.ApplyPayment(ctx, l.ID, pay(l, 50))
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.GetPaymentEntry(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, got.AmountPaid.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "Pago", got.Status)
}

func TestLeadRepositoryRescheduleHistory(t *testing.T) {
	repo := NewLeadGormRepository(newTestDB(t))
	ctx := context.Background()
	owner := uuid.New()
	l := seedLead(t, repo, owner, "Remarca", func(l *models.Lead) {
		l.AppointmentDate = day(2026, 3, 10)
		l.AppointmentTime = "09:00"
	})

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, d := range []int{12, 15} {
		ev := domain.Reschedule(l, owner, *day(2026, 3, d), "10:00", "")
		ev.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.SaveReschedule(ctx, &ev, l))
	}

	history, err := repo.ListReschedules(ctx, owner, l.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2026-03-15", history[0].NewDate.Format("2006-01-02"))
	assert.Equal(t, "2026-03-10", history[1].PreviousDate.Format("2006-01-02"))

	got, err := repo.GetForOwner(ctx, owner, l.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRescheduled), got.Status)
	assert.Equal(t, "2026-03-15", got.AppointmentDate.Format("2006-01-02"))
}

func TestLeadRepositoryRescheduleRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewLeadGormRepository(db)
	ctx := context.Background()
	owner := uuid.New()
	l := seedLead(t, repo, owner, "Falha", nil)

	require.NoError(t, db.Migrator().DropTable(&models.RescheduleEvent{}))

	ev := domain.Reschedule(l, owner, *day(2026, 4, 1), "08:00", "")
	err := repo.SaveReschedule(ctx, &ev, l)
	require.Error(t, err)

	got, err := repo.GetForOwner(ctx, owner, l.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusScheduled), got.Status)
	assert.Nil(t, got.AppointmentDate)
}

func TestLeadRepositoryDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewLeadGormRepository(db)
	ctx := context.Background()
	owner := uuid.New()
	l := seedLead(t, repo, owner, "Apagar", nil)

	_, err := repo.ApplyPayment(ctx, l.ID, pay(l, 10))
	require.NoError(t, err)
	ev := domain.Reschedule(l, owner, *day(2026, 5, 5), "11:00", "")
	require.NoError(t, repo.SaveReschedule(ctx, &ev, l))

	require.NoError(t, repo.Delete(ctx, owner, l.ID))

	_, err = repo.GetForOwner(ctx, owner, l.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	var payments, events int64
	db.Model(&models.PaymentEntry{}).Where("paciente_id = ?", l.ID).Count(&payments)
	db.Model(&models.RescheduleEvent{}).Where("paciente_id = ?", l.ID).Count(&events)
	assert.Zero(t, payments)
	assert.Zero(t, events)
}

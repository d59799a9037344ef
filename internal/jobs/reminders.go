package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	messaging "github.com/BruksfildServices01/clinic-crm/internal/domain/messaging"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
	usecase "github.com/BruksfildServices01/clinic-crm/internal/usecase/messaging"
)

type ReminderSource interface {
	ListRemindersDue(ctx context.Context, day time.Time) ([]models.Lead, error)
}

type ReminderDispatcher interface {
	DispatchLeads(ctx context.Context, ownerID uuid.UUID, leads []models.Lead, kind messaging.Kind, template string) (*usecase.DispatchResult, error)
}

// Reminders schedules the reminder message for every appointment of the
// next clinic day that has lembrete_ativo set.
type Reminders struct {
	source     ReminderSource
	dispatcher ReminderDispatcher
	loc        *time.Location
	logger     *zap.Logger
	now        func() time.Time
}

func NewReminders(
	source ReminderSource,
	dispatcher ReminderDispatcher,
	loc *time.Location,
	logger *zap.Logger,
) *Reminders {
	return &Reminders{
		source:     source,
		dispatcher: dispatcher,
		loc:        loc,
		logger:     logger,
		now:        time.Now,
	}
}

func (r *Reminders) Run(ctx context.Context) error {
	tomorrow := timezone.DateOnly(r.now().In(r.loc)).AddDate(0, 0, 1)

	leads, err := r.source.ListRemindersDue(ctx, tomorrow)
	if err != nil {
		return err
	}
	if len(leads) == 0 {
		return nil
	}

	var owners []uuid.UUID
	byOwner := map[uuid.UUID][]models.Lead{}
	for _, l := range leads {
		if _, ok := byOwner[l.UserID]; !ok {
			owners = append(owners, l.UserID)
		}
		byOwner[l.UserID] = append(byOwner[l.UserID], l)
	}

	var errs []error
	for _, owner := range owners {
		res, err := r.dispatcher.DispatchLeads(ctx, owner, byOwner[owner], messaging.KindReminder, "")
		if httperr.IsBusiness(err, "no_leads_selected") {
			r.logger.Warn("no reminder could be sent",
				zap.String("owner_id", owner.String()),
				zap.Int("leads", len(byOwner[owner])),
			)
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}

		r.logger.Info("reminders scheduled",
			zap.String("owner_id", owner.String()),
			zap.String("job_id", res.JobID),
			zap.Int("scheduled", res.Scheduled),
			zap.Int("skipped", len(res.Skipped)),
		)
	}

	return errors.Join(errs...)
}

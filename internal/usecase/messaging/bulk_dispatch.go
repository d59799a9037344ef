package messaging

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	"github.com/BruksfildServices01/clinic-crm/internal/dispatch"
	leaddomain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/messaging"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type JobQueue interface {
	Schedule(ctx context.Context, ownerID uuid.UUID, items []dispatch.Item, onDone func(dispatch.Result)) (*dispatch.Job, error)
	Job(id string) (*dispatch.Job, bool)
	Interval() time.Duration
}

// Notifier is told when a job settles, e.g. the browser socket.
type Notifier interface {
	NotifyDone(ownerID uuid.UUID, res dispatch.Result)
}

type SkippedLead struct {
	LeadID uuid.UUID `json:"lead_id"`
	Name   string    `json:"name"`
	Reason string    `json:"reason"`
}

type DispatchResult struct {
	JobID      string        `json:"job_id"`
	Scheduled  int           `json:"scheduled"`
	IntervalMS int64         `json:"interval_ms"`
	Skipped    []SkippedLead `json:"skipped,omitempty"`
}

type BulkDispatch struct {
	repo     leaddomain.Repository
	queue    JobQueue
	composer domain.Composer
	phones   domain.PhoneNormalizer
	notifier Notifier
	audit    audit.Recorder
	logger   *zap.Logger
}

func NewBulkDispatch(
	repo leaddomain.Repository,
	queue JobQueue,
	composer domain.Composer,
	phones domain.PhoneNormalizer,
	notifier Notifier,
	audit audit.Recorder,
	logger *zap.Logger,
) *BulkDispatch {
	return &BulkDispatch{
		repo:     repo,
		queue:    queue,
		composer: composer,
		phones:   phones,
		notifier: notifier,
		audit:    audit,
		logger:   logger,
	}
}

// Execute validates the selection before reading anything from the store.
func (uc *BulkDispatch) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	leadIDs []uuid.UUID,
	rawKind string,
	template string,
) (*DispatchResult, error) {

	ids := dedupe(leadIDs)
	if len(ids) == 0 {
		return nil, httperr.ErrBusiness("no_leads_selected")
	}

	kind, err := domain.ParseKind(rawKind)
	if err != nil {
		return nil, err
	}
	if kind == domain.KindCustom && strings.TrimSpace(template) == "" {
		return nil, httperr.ErrBusiness("empty_template")
	}

	found, err := uc.repo.ListByIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}

	return uc.DispatchLeads(ctx, ownerID, inSelectionOrder(ids, found), kind, template)
}

// DispatchLeads renders and schedules already loaded leads. Leads whose
// phone cannot be turned into a WhatsApp number are reported as skipped.
func (uc *BulkDispatch) DispatchLeads(
	ctx context.Context,
	ownerID uuid.UUID,
	leads []models.Lead,
	kind domain.Kind,
	template string,
) (*DispatchResult, error) {

	items := make([]dispatch.Item, 0, len(leads))
	var skipped []SkippedLead

	for i := range leads {
		l := &leads[i]

		text, err := uc.composer.Compose(kind, template, l)
		if err != nil {
			return nil, err
		}

		digits, err := uc.phones.Normalize(l.Phone)
		if err != nil {
			skipped = append(skipped, SkippedLead{LeadID: l.ID, Name: l.Name, Reason: httperr.CodeOf(err)})
			continue
		}

		items = append(items, dispatch.Item{
			LeadID: l.ID,
			Name:   l.Name,
			Phone:  digits,
			Text:   text,
			Link:   domain.WhatsAppLink(digits, text),
		})
	}

	if len(items) == 0 {
		return nil, httperr.ErrBusiness("no_leads_selected")
	}

	// the job keeps running after the HTTP request returns
	job, err := uc.queue.Schedule(context.WithoutCancel(ctx), ownerID, items, func(res dispatch.Result) {
		uc.onDone(ownerID, res)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &ownerID,
		Action: "dispatch_scheduled",
		Entity: "dispatch",
		Metadata: map[string]any{
			"job_id":  job.ID,
			"kind":    kind,
			"items":   len(items),
			"skipped": len(skipped),
		},
	})

	return &DispatchResult{
		JobID:      job.ID,
		Scheduled:  len(items),
		IntervalMS: uc.queue.Interval().Milliseconds(),
		Skipped:    skipped,
	}, nil
}

func (uc *BulkDispatch) onDone(ownerID uuid.UUID, res dispatch.Result) {
	if uc.notifier != nil {
		uc.notifier.NotifyDone(ownerID, res)
	}

	action := "dispatch_completed"
	if res.Cancelled {
		action = "dispatch_cancelled"
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   action,
		Entity:   "dispatch",
		Metadata: res,
	})
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// inSelectionOrder drops ids the store did not return.
func inSelectionOrder(ids []uuid.UUID, leads []models.Lead) []models.Lead {
	byID := make(map[uuid.UUID]models.Lead, len(leads))
	for _, l := range leads {
		byID[l.ID] = l
	}
	out := make([]models.Lead, 0, len(leads))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

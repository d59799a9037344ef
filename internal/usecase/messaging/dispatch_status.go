package messaging

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	"github.com/BruksfildServices01/clinic-crm/internal/dispatch"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

type GetDispatch struct {
	queue    JobQueue
	progress dispatch.ProgressStore
}

func NewGetDispatch(queue JobQueue, progress dispatch.ProgressStore) *GetDispatch {
	return &GetDispatch{
		queue:    queue,
		progress: progress,
	}
}

// Execute prefers the live job and falls back to the stored progress of
// finished ones. Jobs of other accounts read as not found.
func (uc *GetDispatch) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	jobID string,
) (*dispatch.Progress, error) {

	if job, ok := uc.queue.Job(jobID); ok {
		if job.OwnerID != ownerID {
			return nil, httperr.ErrBusiness("dispatch_not_found")
		}
		p := job.Progress()
		return &p, nil
	}

	p, err := uc.progress.Get(ctx, jobID)
	if errors.Is(err, dispatch.ErrProgressNotFound) {
		return nil, httperr.ErrBusiness("dispatch_not_found")
	}
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, httperr.ErrBusiness("dispatch_not_found")
	}
	return p, nil
}

type CancelDispatch struct {
	queue JobQueue
	audit audit.Recorder
}

func NewCancelDispatch(queue JobQueue, audit audit.Recorder) *CancelDispatch {
	return &CancelDispatch{
		queue: queue,
		audit: audit,
	}
}

// Execute stops the pending items; already opened links stay opened.
func (uc *CancelDispatch) Execute(
	ctx context.Context,
	ownerID uuid.UUID,
	jobID string,
) error {

	job, ok := uc.queue.Job(jobID)
	if !ok || job.OwnerID != ownerID {
		return httperr.ErrBusiness("dispatch_not_found")
	}

	job.Cancel()

	uc.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "dispatch_cancel_requested",
		Entity:   "dispatch",
		Metadata: map[string]any{"job_id": jobID},
	})
	return nil
}

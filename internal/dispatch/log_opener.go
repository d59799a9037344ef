package dispatch

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Logged records the outcome of every open and passes Next's error through,
// so an item nobody received is counted as failed.
type Logged struct {
	Next   Opener
	Logger *zap.Logger
}

func (o Logged) Open(ctx context.Context, ownerID uuid.UUID, jobID string, item Item) error {
	fields := []zap.Field{
		zap.String("job_id", jobID),
		zap.String("owner_id", ownerID.String()),
		zap.String("lead_id", item.LeadID.String()),
		zap.String("phone", item.Phone),
	}

	if err := o.Next.Open(ctx, ownerID, jobID, item); err != nil {
		o.Logger.Warn("dispatch link not delivered", append(fields, zap.Error(err))...)
		return err
	}

	o.Logger.Info("dispatch link opened", fields...)
	return nil
}

package dispatch

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Fanout opens through every opener and succeeds when at least one did.
type Fanout []Opener

func (f Fanout) Open(ctx context.Context, ownerID uuid.UUID, jobID string, item Item) error {
	if len(f) == 0 {
		return errors.New("dispatch: no opener configured")
	}

	var errs []error
	for _, o := range f {
		if err := o.Open(ctx, ownerID, jobID, item); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == len(f) {
		return errors.Join(errs...)
	}
	return nil
}

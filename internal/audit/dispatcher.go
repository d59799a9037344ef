package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Event struct {
	UserID   *uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any
}

// Recorder is what use cases depend on.
type Recorder interface {
	Dispatch(ev Event)
}

type Sink interface {
	Write(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sink   Sink
	logger *zap.Logger
	queue  chan Event

	closeOnce sync.Once
	stopped   chan struct{}
}

func NewDispatcher(sink Sink, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dispatcher{
		sink:    sink,
		logger:  logger,
		queue:   make(chan Event, 100),
		stopped: make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.stopped)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Write(ctx, ev); err != nil {
			d.logger.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Dispatch never blocks the request: a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains what is queued. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
		<-d.stopped
	})
}

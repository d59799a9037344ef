package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *memorySink) Write(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, nil)

	user := uuid.New()
	d.Dispatch(Event{UserID: &user, Action: "lead_created", Entity: "lead"})
	d.Dispatch(Event{UserID: &user, Action: "payment_registered", Entity: "payment"})
	d.Close()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if assert.Len(t, sink.events, 2) {
		assert.Equal(t, "lead_created", sink.events[0].Action)
		assert.Equal(t, "payment_registered", sink.events[1].Action)
	}
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	sink := &memorySink{err: errors.New("db down")}
	d := NewDispatcher(sink, nil)

	d.Dispatch(Event{Action: "lead_deleted"})
	d.Dispatch(Event{Action: "lead_updated"})
	d.Close()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Len(t, sink.events, 2)
}

func TestCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&memorySink{}, nil)
	d.Close()
	d.Close()
}

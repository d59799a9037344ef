package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type openerFunc func() error

func (f openerFunc) Open(context.Context, uuid.UUID, string, Item) error { return f() }

func TestFanout(t *testing.T) {
	ok := openerFunc(func() error { return nil })
	broken := openerFunc(func() error { return errors.New("down") })

	assert.NoError(t, Fanout{broken, ok}.Open(context.Background(), uuid.New(), "job", Item{}))
	assert.Error(t, Fanout{broken, broken}.Open(context.Background(), uuid.New(), "job", Item{}))
	assert.Error(t, Fanout{}.Open(context.Background(), uuid.New(), "job", Item{}))
}

func TestLoggedPassesOutcomeThrough(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	item := Item{LeadID: uuid.New(), Phone: "5585999990000"}

	ok := Logged{Next: openerFunc(func() error { return nil }), Logger: logger}
	assert.NoError(t, ok.Open(context.Background(), uuid.New(), "job-1", item))
	assert.Equal(t, 1, logs.FilterMessage("dispatch link opened").Len())

	noBrowser := errors.New("no browser")
	lost := Logged{Next: Fanout{openerFunc(func() error { return noBrowser })}, Logger: logger}
	assert.ErrorIs(t, lost.Open(context.Background(), uuid.New(), "job-1", item), noBrowser)
	assert.Equal(t, 1, logs.FilterMessage("dispatch link not delivered").Len())
	assert.Equal(t, 1, logs.FilterMessage("dispatch link opened").Len())
}

func TestUndeliveredItemsCountAsFailed(t *testing.T) {
	down := openerFunc(func() error { return errors.New("no browser") })
	q := NewQueue(Logged{Next: Fanout{down}, Logger: zap.NewNop()}, time.Millisecond, nil)

	results := make(chan Result, 1)
	_, err := q.Schedule(context.Background(), uuid.New(), items("a", "b"), func(r Result) {
		results <- r
	})
	require.NoError(t, err)

	r := waitResult(t, results)
	assert.Equal(t, 0, r.Dispatched)
	assert.Equal(t, 2, r.Failed)
}

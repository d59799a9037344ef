package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

// manualScheduler records deferred actions and fires them on demand.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) fire(i int) {
	s.mu.Lock()
	t := s.timers[i]
	s.mu.Unlock()
	t.fn()
}

func (s *manualScheduler) delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, 0, len(s.timers))
	for _, t := range s.timers {
		out = append(out, t.delay)
	}
	return out
}

type recordingOpener struct {
	mu     sync.Mutex
	opened []Item
	fail   map[uuid.UUID]bool
}

func (o *recordingOpener) Open(_ context.Context, _ uuid.UUID, _ string, item Item) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail[item.LeadID] {
		return errors.New("socket closed")
	}
	o.opened = append(o.opened, item)
	return nil
}

func (o *recordingOpener) texts() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.opened))
	for _, it := range o.opened {
		out = append(out, it.Text)
	}
	return out
}

func items(texts ...string) []Item {
	out := make([]Item, 0, len(texts))
	for _, t := range texts {
		out = append(out, Item{LeadID: uuid.New(), Text: t})
	}
	return out
}

func waitResult(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("onDone was not called")
		return Result{}
	}
}

func TestScheduleSpacesItemsAndCompletesOnce(t *testing.T) {
	sched := &manualScheduler{}
	opener := &recordingOpener{}
	q := NewQueue(opener, 1500*time.Millisecond, nil, WithScheduler(sched))

	results := make(chan Result, 2)
	job, err := q.Schedule(context.Background(), uuid.New(), items("Hi Ana", "Hi Bia", "Hi Caio"), func(r Result) {
		results <- r
	})
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{0, 1500 * time.Millisecond, 3 * time.Second}, sched.delays())

	_, running := q.Job(job.ID)
	assert.True(t, running)

	sched.fire(0)
	sched.fire(1)
	sched.fire(2)

	r := waitResult(t, results)
	assert.Equal(t, job.ID, r.JobID)
	assert.Equal(t, 3, r.Scheduled)
	assert.Equal(t, 3, r.Dispatched)
	assert.False(t, r.Cancelled)
	assert.Equal(t, []string{"Hi Ana", "Hi Bia", "Hi Caio"}, opener.texts())

	<-job.Done()
	_, running = q.Job(job.ID)
	assert.False(t, running)

	select {
	case <-results:
		t.Fatal("onDone fired twice")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestScheduleRejectsEmptySelection(t *testing.T) {
	q := NewQueue(&recordingOpener{}, 0, nil, WithScheduler(&manualScheduler{}))

	_, err := q.Schedule(context.Background(), uuid.New(), nil, nil)

	assert.True(t, httperr.IsBusiness(err, "no_leads_selected"))
	assert.Equal(t, DefaultInterval, q.Interval())
}

func TestCancelStopsPendingItems(t *testing.T) {
	sched := &manualScheduler{}
	opener := &recordingOpener{}
	q := NewQueue(opener, time.Second, nil, WithScheduler(sched))

	results := make(chan Result, 1)
	job, err := q.Schedule(context.Background(), uuid.New(), items("a", "b", "c"), func(r Result) {
		results <- r
	})
	require.NoError(t, err)

	sched.fire(0)
	job.Cancel()

	r := waitResult(t, results)
	assert.True(t, r.Cancelled)
	assert.Equal(t, 1, r.Dispatched)
	assert.Equal(t, 3, r.Scheduled)

	sched.mu.Lock()
	assert.True(t, sched.timers[1].stopped)
	assert.True(t, sched.timers[2].stopped)
	sched.mu.Unlock()

	// a timer that slipped through after cancellation does nothing
	sched.fire(2)
	assert.Equal(t, []string{"a"}, opener.texts())
}

// blockingOpener holds every Open until release is closed, ignoring ctx the
// way the browser push does.
type blockingOpener struct {
	entered chan struct{}
	release chan struct{}
}

func (o *blockingOpener) Open(context.Context, uuid.UUID, string, Item) error {
	o.entered <- struct{}{}
	<-o.release
	return nil
}

func TestCancelCountsOpenAlreadyRunning(t *testing.T) {
	sched := &manualScheduler{}
	opener := &blockingOpener{entered: make(chan struct{}, 1), release: make(chan struct{})}
	q := NewQueue(opener, time.Second, nil, WithScheduler(sched))

	results := make(chan Result, 1)
	job, err := q.Schedule(context.Background(), uuid.New(), items("a", "b"), func(r Result) {
		results <- r
	})
	require.NoError(t, err)

	go sched.fire(0)
	<-opener.entered

	job.Cancel()

	select {
	case <-results:
		t.Fatal("result reported before the running open returned")
	case <-time.After(50 * time.Millisecond):
	}

	close(opener.release)

	r := waitResult(t, results)
	assert.True(t, r.Cancelled)
	assert.Equal(t, 1, r.Dispatched)
	assert.Equal(t, 0, r.Failed)
}

func TestContextCancellationCancelsJob(t *testing.T) {
	sched := &manualScheduler{}
	q := NewQueue(&recordingOpener{}, time.Second, nil, WithScheduler(sched))

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan Result, 1)
	_, err := q.Schedule(ctx, uuid.New(), items("a", "b"), func(r Result) { results <- r })
	require.NoError(t, err)

	cancel()

	r := waitResult(t, results)
	assert.True(t, r.Cancelled)
	assert.Zero(t, r.Dispatched)
}

func TestFailedItemsStillSettleTheJob(t *testing.T) {
	sched := &manualScheduler{}
	batch := items("ok", "broken")
	opener := &recordingOpener{fail: map[uuid.UUID]bool{batch[1].LeadID: true}}
	q := NewQueue(opener, time.Second, nil, WithScheduler(sched))

	results := make(chan Result, 1)
	_, err := q.Schedule(context.Background(), uuid.New(), batch, func(r Result) { results <- r })
	require.NoError(t, err)

	sched.fire(0)
	sched.fire(1)

	r := waitResult(t, results)
	assert.Equal(t, 1, r.Dispatched)
	assert.Equal(t, 1, r.Failed)
	assert.False(t, r.Cancelled)
}

func TestCloseCancelsRunningJobs(t *testing.T) {
	q := NewQueue(&recordingOpener{}, time.Second, nil, WithScheduler(&manualScheduler{}))

	results := make(chan Result, 2)
	_, err := q.Schedule(context.Background(), uuid.New(), items("a"), func(r Result) { results <- r })
	require.NoError(t, err)
	_, err = q.Schedule(context.Background(), uuid.New(), items("b"), func(r Result) { results <- r })
	require.NoError(t, err)

	q.Close()

	assert.True(t, waitResult(t, results).Cancelled)
	assert.True(t, waitResult(t, results).Cancelled)
}

func TestScheduleWithRealTimers(t *testing.T) {
	opener := &recordingOpener{}
	q := NewQueue(opener, 5*time.Millisecond, nil)

	results := make(chan Result, 1)
	_, err := q.Schedule(context.Background(), uuid.New(), items("x", "y"), func(r Result) { results <- r })
	require.NoError(t, err)

	r := waitResult(t, results)
	assert.Equal(t, 2, r.Dispatched)
	assert.Equal(t, []string{"x", "y"}, opener.texts())
}

func TestJobProgressSnapshot(t *testing.T) {
	sched := &manualScheduler{}
	q := NewQueue(&recordingOpener{}, time.Second, nil, WithScheduler(sched))
	owner := uuid.New()

	job, err := q.Schedule(context.Background(), owner, items("a", "b"), nil)
	require.NoError(t, err)

	sched.fire(0)
	p := job.Progress()
	assert.Equal(t, StateRunning, p.State)
	assert.Equal(t, owner, p.OwnerID)
	assert.Equal(t, 2, p.Total)
	assert.Equal(t, 1, p.Dispatched)

	sched.fire(1)
	<-job.Done()
	assert.Equal(t, StateCompleted, job.Progress().State)
}

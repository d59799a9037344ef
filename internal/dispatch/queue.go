package dispatch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

const DefaultInterval = 1500 * time.Millisecond

// Item is one outbound message for one lead.
type Item struct {
	LeadID uuid.UUID `json:"lead_id"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone"`
	Text   string    `json:"text"`
	Link   string    `json:"link"`
}

// Opener delivers a prepared item, e.g. pushing the link to the browser.
type Opener interface {
	Open(ctx context.Context, ownerID uuid.UUID, jobID string, item Item) error
}

// Result only reports what was opened; delivery is never observed.
type Result struct {
	JobID      string `json:"job_id"`
	Scheduled  int    `json:"scheduled"`
	Dispatched int    `json:"dispatched"`
	Failed     int    `json:"failed"`
	Cancelled  bool   `json:"cancelled"`
}

type Queue struct {
	interval  time.Duration
	scheduler Scheduler
	opener    Opener
	progress  ProgressStore
	logger    *zap.Logger

	mu   sync.Mutex
	jobs map[string]*Job
}

type Option func(*Queue)

func WithScheduler(s Scheduler) Option {
	return func(q *Queue) { q.scheduler = s }
}

func WithProgressStore(p ProgressStore) Option {
	return func(q *Queue) { q.progress = p }
}

func NewQueue(opener Opener, interval time.Duration, logger *zap.Logger, opts ...Option) *Queue {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	q := &Queue{
		interval:  interval,
		scheduler: realScheduler{},
		opener:    opener,
		progress:  nopProgress{},
		logger:    logger,
		jobs:      make(map[string]*Job),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *Queue) Interval() time.Duration {
	return q.interval
}

// Schedule arms one deferred action per item, item i firing at i*interval.
// onDone runs exactly once: when the last action settles, or on cancellation.
// Cancelling ctx cancels the job, so callers tied to a request should detach it.
func (q *Queue) Schedule(
	ctx context.Context,
	ownerID uuid.UUID,
	items []Item,
	onDone func(Result),
) (*Job, error) {

	if len(items) == 0 {
		return nil, httperr.ErrBusiness("no_leads_selected")
	}

	jobCtx, cancel := context.WithCancel(ctx)
	job := &Job{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		total:   int64(len(items)),
		cancel:  cancel,
		done:    make(chan struct{}),
		onDone:  onDone,
		queue:   q,
	}

	q.mu.Lock()
	q.jobs[job.ID] = job
	q.mu.Unlock()

	q.saveProgress(job, StateRunning)

	job.timers = make([]Timer, 0, len(items))
	job.timersMu.Lock()
	for i, item := range items {
		item := item
		delay := time.Duration(i) * q.interval
		job.timers = append(job.timers, q.scheduler.AfterFunc(delay, func() {
			job.run(jobCtx, item)
		}))
	}
	job.timersMu.Unlock()

	go func() {
		select {
		case <-jobCtx.Done():
			job.finish(true)
		case <-job.done:
		}
	}()

	q.logger.Info("dispatch scheduled",
		zap.String("job_id", job.ID),
		zap.String("owner_id", ownerID.String()),
		zap.Int("items", len(items)),
		zap.Duration("interval", q.interval),
	)

	return job, nil
}

// Job returns a running job by id.
func (q *Queue) Job(id string) (*Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	j, ok := q.jobs[id]
	return j, ok
}

// Close cancels every running job.
func (q *Queue) Close() {
	q.mu.Lock()
	jobs := make([]*Job, 0, len(q.jobs))
	for _, j := range q.jobs {
		jobs = append(jobs, j)
	}
	q.mu.Unlock()

	for _, j := range jobs {
		j.Cancel()
	}
}

func (q *Queue) forget(id string) {
	q.mu.Lock()
	delete(q.jobs, id)
	q.mu.Unlock()
}

func (q *Queue) saveProgress(j *Job, state State) {
	p := j.snapshot(state)
	// progress outlives the job context
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := q.progress.Save(ctx, p); err != nil {
		q.logger.Warn("dispatch progress not saved", zap.String("job_id", j.ID), zap.Error(err))
	}
}

type Job struct {
	ID      string
	OwnerID uuid.UUID

	total      int64
	settled    atomic.Int64
	dispatched atomic.Int64
	failed     atomic.Int64

	timersMu sync.Mutex
	timers   []Timer

	// runMu orders the finished flag against inflight.Add.
	runMu    sync.Mutex
	inflight sync.WaitGroup

	cancel   context.CancelFunc
	finished atomic.Bool
	once     sync.Once
	done     chan struct{}
	onDone   func(Result)
	queue    *Queue
}

// Cancel stops the actions that did not fire yet.
func (j *Job) Cancel() {
	j.cancel()
}

// Done is closed once the job completed or was cancelled.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Progress reports the live counters of a job still held by the queue.
func (j *Job) Progress() Progress {
	if j.finished.Load() {
		return j.snapshot(StateCompleted)
	}
	return j.snapshot(StateRunning)
}

func (j *Job) snapshot(state State) Progress {
	return Progress{
		JobID:      j.ID,
		OwnerID:    j.OwnerID,
		Total:      int(j.total),
		Dispatched: int(j.dispatched.Load()),
		Failed:     int(j.failed.Load()),
		State:      state,
		UpdatedAt:  time.Now().UTC(),
	}
}

// begin admits one action unless the job already finished.
func (j *Job) begin(ctx context.Context) bool {
	j.runMu.Lock()
	defer j.runMu.Unlock()
	if ctx.Err() != nil || j.finished.Load() {
		return false
	}
	j.inflight.Add(1)
	return true
}

func (j *Job) run(ctx context.Context, item Item) {
	if !j.begin(ctx) {
		return
	}

	q := j.queue
	if err := q.opener.Open(ctx, j.OwnerID, j.ID, item); err != nil {
		j.failed.Add(1)
		if !errors.Is(err, context.Canceled) {
			q.logger.Warn("dispatch item failed",
				zap.String("job_id", j.ID),
				zap.String("lead_id", item.LeadID.String()),
				zap.Error(err),
			)
		}
	} else {
		j.dispatched.Add(1)
		dispatchesOpened.Inc()
	}
	settled := j.settled.Add(1)
	j.inflight.Done()

	if settled == j.total {
		j.finish(false)
		return
	}
	if !j.finished.Load() {
		q.saveProgress(j, StateRunning)
	}
}

func (j *Job) finish(cancelled bool) {
	j.once.Do(func() {
		j.runMu.Lock()
		j.finished.Store(true)
		j.runMu.Unlock()

		if cancelled {
			j.timersMu.Lock()
			for _, t := range j.timers {
				t.Stop()
			}
			j.timersMu.Unlock()
		}
		// an Open already running still counts
		j.inflight.Wait()

		res := Result{
			JobID:      j.ID,
			Scheduled:  int(j.total),
			Dispatched: int(j.dispatched.Load()),
			Failed:     int(j.failed.Load()),
			Cancelled:  cancelled,
		}

		state := StateCompleted
		if cancelled {
			state = StateCancelled
		}
		j.queue.saveProgress(j, state)
		j.queue.forget(j.ID)

		j.queue.logger.Info("dispatch finished",
			zap.String("job_id", j.ID),
			zap.Int("dispatched", res.Dispatched),
			zap.Int("failed", res.Failed),
			zap.Bool("cancelled", cancelled),
		)

		close(j.done)
		j.cancel()

		if j.onDone != nil {
			j.onDone(res)
		}
	})
}

package messaging

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	"github.com/BruksfildServices01/clinic-crm/internal/dispatch"
	leaddomain "github.com/BruksfildServices01/clinic-crm/internal/domain/lead"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/messaging"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type leadLister struct {
	leaddomain.Repository
	mock.Mock
}

func (m *leadLister) ListByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]models.Lead, error) {
	args := m.Called(ctx, ownerID, ids)
	leads, _ := args.Get(0).([]models.Lead)
	return leads, args.Error(1)
}

type captureOpener struct {
	mu    sync.Mutex
	items []dispatch.Item
}

func (o *captureOpener) Open(_ context.Context, _ uuid.UUID, _ string, item dispatch.Item) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items = append(o.items, item)
	return nil
}

type doneNotifier struct {
	results chan dispatch.Result
}

func (n doneNotifier) NotifyDone(_ uuid.UUID, res dispatch.Result) {
	n.results <- res
}

type nopAudit struct{}

func (nopAudit) Dispatch(audit.Event) {}

func newUseCase(repo leaddomain.Repository, opener dispatch.Opener, notifier Notifier) (*BulkDispatch, *dispatch.Queue) {
	q := dispatch.NewQueue(opener, time.Millisecond, zap.NewNop())
	uc := NewBulkDispatch(
		repo,
		q,
		domain.Composer{ClinicAddress: "Rua A, 1"},
		domain.PhoneNormalizer{Region: "BR", CountryCode: "55"},
		notifier,
		nopAudit{},
		zap.NewNop(),
	)
	return uc, q
}

func TestBulkDispatchValidatesBeforeLoading(t *testing.T) {
	tests := []struct {
		name     string
		ids      []uuid.UUID
		kind     string
		template string
		code     string
	}{
		{"no selection", nil, "lembrete", "", "no_leads_selected"},
		{"only nil ids", []uuid.UUID{uuid.Nil}, "lembrete", "", "no_leads_selected"},
		{"blank custom", []uuid.UUID{uuid.New()}, "custom", "   ", "empty_template"},
		{"unknown kind", []uuid.UUID{uuid.New()}, "sms", "", "invalid_message_kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &leadLister{}
			uc, _ := newUseCase(repo, &captureOpener{}, nil)

			_, err := uc.Execute(context.Background(), uuid.New(), tt.ids, tt.kind, tt.template)

			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
			repo.AssertNotCalled(t, "ListByIDs", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBulkDispatchRendersAndCompletes(t *testing.T) {
	owner := uuid.New()
	a := models.Lead{ID: uuid.New(), Name: "Ana", Phone: "(85) 99999-0000", Value: decimal.NewFromInt(200)}
	b := models.Lead{ID: uuid.New(), Name: "Bia", Phone: "---", Value: decimal.Zero}
	c := models.Lead{ID: uuid.New(), Name: "Caio", Phone: "85 98888-7777", Value: decimal.Zero}
	unknown := uuid.New()

	repo := &leadLister{}
	repo.On("ListByIDs", mock.Anything, owner, []uuid.UUID{c.ID, a.ID, b.ID, unknown}).
		Return([]models.Lead{a, b, c}, nil)

	opener := &captureOpener{}
	notifier := doneNotifier{results: make(chan dispatch.Result, 1)}
	uc, _ := newUseCase(repo, opener, notifier)

	// request context is cancelled right away; the job must not care
	ctx, cancel := context.WithCancel(context.Background())
	res, err := uc.Execute(ctx, owner, []uuid.UUID{c.ID, a.ID, b.ID, a.ID, unknown}, "custom", "Oi {nome}, valor {valor}")
	cancel()
	require.NoError(t, err)

	assert.Equal(t, 2, res.Scheduled)
	assert.Equal(t, int64(1), res.IntervalMS)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "invalid_phone", res.Skipped[0].Reason)

	select {
	case done := <-notifier.results:
		assert.False(t, done.Cancelled)
		assert.Equal(t, 2, done.Dispatched)
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch did not complete")
	}

	opener.mu.Lock()
	defer opener.mu.Unlock()
	require.Len(t, opener.items, 2)

	byName := map[string]dispatch.Item{}
	for _, it := range opener.items {
		byName[it.Name] = it
	}
	require.Contains(t, byName, "Caio")
	ana := byName["Ana"]
	assert.Equal(t, "Oi Ana, valor R$ 200,00", ana.Text)
	assert.True(t, strings.HasPrefix(ana.Link, "https://wa.me/5585999990000?text="))

	u, err := url.Parse(ana.Link)
	require.NoError(t, err)
	assert.Equal(t, "Oi Ana, valor R$ 200,00", u.Query().Get("text"))
}

func TestBulkDispatchAllSkipped(t *testing.T) {
	owner := uuid.New()
	l := models.Lead{ID: uuid.New(), Name: "Sem fone", Phone: "n/a"}

	repo := &leadLister{}
	repo.On("ListByIDs", mock.Anything, owner, []uuid.UUID{l.ID}).Return([]models.Lead{l}, nil)

	uc, _ := newUseCase(repo, &captureOpener{}, nil)
	_, err := uc.Execute(context.Background(), owner, []uuid.UUID{l.ID}, "lembrete", "")

	assert.True(t, httperr.IsBusiness(err, "no_leads_selected"))
}

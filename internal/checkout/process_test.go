package checkout_test

import (
	"context"
	"errors"
	"github.com/nikolayk812/storefront-demo/internal/checkout"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"sync"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSubmitEmptyCartFails(t *testing.T) {
	sched := &manualScheduler{}
	p := checkout.New(checkout.WithScheduler(sched))
	rec := record(p)

	accepted := p.Submit(t.Context(), nil)

	assert.True(t, accepted)
	assert.Equal(t, domain.CheckoutOutcome{Status: domain.CheckoutFailed, Message: "cart is empty"}, p.Outcome())
	assert.Equal(t, []domain.CheckoutStatus{domain.CheckoutFailed}, rec.statuses())
	assert.Zero(t, sched.pending(), "no simulated submission for an empty cart")
}

func TestSubmitSucceeds(t *testing.T) {
	sched := &manualScheduler{}
	p := checkout.New(checkout.WithScheduler(sched), checkout.WithDelay(2*time.Second))
	rec := record(p)

	entries := []domain.CartEntry{{Product: product("2", "19.99"), Quantity: 1}}

	require.True(t, p.Submit(t.Context(), entries))
	assert.Equal(t, domain.CheckoutProcessing, p.Outcome().Status)
	assert.Equal(t, []time.Duration{2 * time.Second}, sched.delays)

	sched.fire()

	out := p.Outcome()
	require.Equal(t, domain.CheckoutSucceeded, out.Status)
	require.NotNil(t, out.Order)
	assert.Equal(t, "2", out.Order.Entries[0].Product.ID)
	assert.True(t, decimal.RequireFromString("19.99").Equal(out.Order.Total.Amount))
	assert.False(t, out.Order.SubmittedAt.IsZero())
	assert.Empty(t, out.Message)

	assert.Equal(t, []domain.CheckoutStatus{domain.CheckoutProcessing, domain.CheckoutSucceeded}, rec.statuses())
}

func TestSubmitWhileProcessingIsIgnored(t *testing.T) {
	sched := &manualScheduler{}
	p := checkout.New(checkout.WithScheduler(sched))
	rec := record(p)

	first := []domain.CartEntry{{Product: product("1", "25.99"), Quantity: 2}}
	second := []domain.CartEntry{{Product: product("3", "32.50"), Quantity: 1}}

	require.True(t, p.Submit(t.Context(), first))
	assert.False(t, p.Submit(t.Context(), second))
	assert.False(t, p.Submit(t.Context(), nil))

	assert.Equal(t, 1, sched.pending())
	assert.Equal(t, domain.CheckoutProcessing, p.Outcome().Status)

	sched.fire()

	out := p.Outcome()
	require.Equal(t, domain.CheckoutSucceeded, out.Status)
	assert.Equal(t, "1", out.Order.Entries[0].Product.ID)
	assert.Equal(t, []domain.CheckoutStatus{domain.CheckoutProcessing, domain.CheckoutSucceeded}, rec.statuses())
}

func TestSubmitCapturesEntries(t *testing.T) {
	sched := &manualScheduler{}
	p := checkout.New(checkout.WithScheduler(sched))

	entries := []domain.CartEntry{{Product: product("1", "25.99"), Quantity: 1}}
	require.True(t, p.Submit(t.Context(), entries))

	entries[0].Quantity = 9
	sched.fire()

	out := p.Outcome()
	require.NotNil(t, out.Order)
	assert.Equal(t, 1, out.Order.Entries[0].Quantity)
}

func TestSubmitterErrorFails(t *testing.T) {
	submitter := checkout.SubmitterFunc(func(context.Context, domain.Order) error {
		return errors.New("gateway timeout")
	})
	p := checkout.New(checkout.WithScheduler(checkout.ImmediateScheduler{}), checkout.WithSubmitter(submitter))
	rec := record(p)

	require.True(t, p.Submit(t.Context(), []domain.CartEntry{{Product: product("1", "1"), Quantity: 1}}))

	assert.Equal(t, domain.CheckoutOutcome{Status: domain.CheckoutFailed, Message: "gateway timeout"}, p.Outcome())
	assert.Equal(t, []domain.CheckoutStatus{domain.CheckoutProcessing, domain.CheckoutFailed}, rec.statuses())
}

func TestSubmitAfterFailureRetries(t *testing.T) {
	p := checkout.New(checkout.WithScheduler(checkout.ImmediateScheduler{}))

	p.Submit(t.Context(), nil)
	require.Equal(t, domain.CheckoutFailed, p.Outcome().Status)

	require.True(t, p.Submit(t.Context(), []domain.CartEntry{{Product: product("4", "15"), Quantity: 3}}))

	out := p.Outcome()
	require.Equal(t, domain.CheckoutSucceeded, out.Status)
	assert.True(t, decimal.RequireFromString("45").Equal(out.Order.Total.Amount))
}

func TestSubmitIgnoresCallerCancellation(t *testing.T) {
	sched := &manualScheduler{}

	var gotErr error
	submitter := checkout.SubmitterFunc(func(ctx context.Context, _ domain.Order) error {
		gotErr = ctx.Err()
		return nil
	})
	p := checkout.New(checkout.WithScheduler(sched), checkout.WithSubmitter(submitter))

	ctx, cancel := context.WithCancel(t.Context())
	require.True(t, p.Submit(ctx, []domain.CartEntry{{Product: product("1", "1"), Quantity: 1}}))
	cancel()

	sched.fire()

	assert.NoError(t, gotErr)
	assert.Equal(t, domain.CheckoutSucceeded, p.Outcome().Status)
}

func TestReset(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, p *checkout.Process, sched *manualScheduler)
		wantReset bool
		want      domain.CheckoutStatus
	}{
		{
			name:      "idle: no-op",
			setup:     func(*testing.T, *checkout.Process, *manualScheduler) {},
			wantReset: false,
			want:      domain.CheckoutIdle,
		},
		{
			name: "failed: idle",
			setup: func(t *testing.T, p *checkout.Process, _ *manualScheduler) {
				p.Submit(t.Context(), nil)
			},
			wantReset: true,
			want:      domain.CheckoutIdle,
		},
		{
			name: "succeeded: idle",
			setup: func(t *testing.T, p *checkout.Process, sched *manualScheduler) {
				p.Submit(t.Context(), []domain.CartEntry{{Product: product("1", "1"), Quantity: 1}})
				sched.fire()
			},
			wantReset: true,
			want:      domain.CheckoutIdle,
		},
		{
			name: "processing: no-op",
			setup: func(t *testing.T, p *checkout.Process, _ *manualScheduler) {
				p.Submit(t.Context(), []domain.CartEntry{{Product: product("1", "1"), Quantity: 1}})
			},
			wantReset: false,
			want:      domain.CheckoutProcessing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := &manualScheduler{}
			p := checkout.New(checkout.WithScheduler(sched))
			tt.setup(t, p, sched)

			assert.Equal(t, tt.wantReset, p.Reset())
			assert.Equal(t, tt.want, p.Outcome().Status)
			assert.Nil(t, p.Outcome().Order)
		})
	}
}

func TestRealSchedulerCompletes(t *testing.T) {
	p := checkout.New(checkout.WithDelay(10 * time.Millisecond))

	done := make(chan domain.CheckoutOutcome, 1)
	unsubscribe := p.Subscribe(func(out domain.CheckoutOutcome) {
		if out.Status != domain.CheckoutProcessing {
			done <- out
		}
	})
	defer unsubscribe()

	require.True(t, p.Submit(t.Context(), []domain.CartEntry{{Product: product("5", "45"), Quantity: 1}}))

	select {
	case out := <-done:
		assert.Equal(t, domain.CheckoutSucceeded, out.Status)
	case <-time.After(5 * time.Second):
		t.Fatal("checkout did not complete")
	}
}

func TestMetricsAndClock(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(250 * time.Millisecond)
		return now
	}

	sched := &manualScheduler{}
	p := checkout.New(checkout.WithScheduler(sched), checkout.WithMetrics(m), checkout.WithClock(clock))

	p.Submit(t.Context(), nil)
	p.Submit(t.Context(), []domain.CartEntry{{Product: product("1", "1"), Quantity: 1}})
	sched.fire()

	assert.InDelta(t, 1, testutil.ToFloat64(m.CheckoutOutcomes.WithLabelValues("failed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CheckoutOutcomes.WithLabelValues("succeeded")), 0)
	assert.Equal(t, time.Date(2025, 1, 1, 12, 0, 0, 500_000_000, time.UTC), p.Outcome().Order.SubmittedAt)
}

func TestUnsubscribe(t *testing.T) {
	p := checkout.New(checkout.WithScheduler(checkout.ImmediateScheduler{}))
	rec := record(p)
	rec.unsubscribe()

	p.Submit(t.Context(), nil)

	assert.Empty(t, rec.statuses())
}

// manualScheduler queues callbacks until fire is called.
type manualScheduler struct {
	mu     sync.Mutex
	delays []time.Duration
	queue  []func()
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.delays = append(s.delays, d)
	s.queue = append(s.queue, f)
}

func (s *manualScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.queue)
}

func (s *manualScheduler) fire() {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, f := range queue {
		f()
	}
}

type recorder struct {
	mu          sync.Mutex
	outcomes    []domain.CheckoutOutcome
	unsubscribe func()
}

func record(p *checkout.Process) *recorder {
	r := &recorder{}
	r.unsubscribe = p.Subscribe(func(out domain.CheckoutOutcome) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.outcomes = append(r.outcomes, out)
	})
	return r
}

func (r *recorder) statuses() []domain.CheckoutStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.CheckoutStatus
	for _, o := range r.outcomes {
		out = append(out, o.Status)
	}
	return out
}

func product(id, price string) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, Price: decimal.RequireFromString(price)}
}

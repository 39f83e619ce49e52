package checkout

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/metrics"
	"go.uber.org/zap"
	"sync"
	"time"
)

const (
	DefaultDelay = 2 * time.Second

	MsgEmptyCart = "cart is empty"
)

type Option func(*Process)

func WithScheduler(s Scheduler) Option {
	return func(p *Process) {
		p.scheduler = s
	}
}

func WithDelay(d time.Duration) Option {
	return func(p *Process) {
		p.delay = d
	}
}

func WithSubmitter(s Submitter) Option {
	return func(p *Process) {
		p.submitter = s
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Process) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Process) {
		p.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Process) {
		p.now = now
	}
}

type listener struct {
	id int
	fn func(domain.CheckoutOutcome)
}

// Process is the checkout state machine:
//
//	Idle -> Processing -> Succeeded | Failed -> Idle
//
// Its only side effect is emitting outcomes to subscribers; clearing the
// cart or navigating is up to them.
type Process struct {
	scheduler Scheduler
	submitter Submitter
	delay     time.Duration
	logger    *zap.Logger
	metrics   *metrics.Metrics
	now       func() time.Time

	mu        sync.Mutex
	outcome   domain.CheckoutOutcome
	startedAt time.Time
	listeners []listener
	nextID    int
}

func New(opts ...Option) *Process {
	p := &Process{
		scheduler: RealScheduler{},
		submitter: SimulatedSubmitter{},
		delay:     DefaultDelay,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Submit starts a checkout of entries, which are copied here so later cart
// edits do not leak into this submission. It returns false, changing
// nothing, while another submission is in flight. There is no way to
// cancel a started submission; ctx only carries values.
func (p *Process) Submit(ctx context.Context, entries []domain.CartEntry) bool {
	p.mu.Lock()

	if p.outcome.Status == domain.CheckoutProcessing {
		p.mu.Unlock()
		p.logger.Debug("checkout in flight, submit ignored")
		return false
	}

	captured := domain.Cart{Entries: entries}.Clone()

	if captured.IsEmpty() {
		out := domain.CheckoutOutcome{Status: domain.CheckoutFailed, Message: MsgEmptyCart}
		p.outcome = out
		listeners := p.copyListeners()
		p.mu.Unlock()

		p.metrics.CheckoutOutcome(out.Status.String(), 0)
		p.logger.Info("checkout rejected", zap.String("reason", out.Message))
		emit(listeners, out)
		return true
	}

	processing := domain.CheckoutOutcome{Status: domain.CheckoutProcessing}
	p.outcome = processing
	p.startedAt = p.now()
	listeners := p.copyListeners()
	p.mu.Unlock()

	order := domain.Order{
		ID:      uuid.New(),
		Entries: captured.Entries,
		Total:   captured.Total(),
	}

	p.logger.Info("checkout started",
		zap.String("order_id", order.ID.String()),
		zap.Int("entries", len(order.Entries)),
		zap.Stringer("total", order.Total),
	)
	emit(listeners, processing)

	ctx = context.WithoutCancel(ctx)
	p.scheduler.AfterFunc(p.delay, func() {
		p.complete(ctx, order)
	})

	return true
}

func (p *Process) complete(ctx context.Context, order domain.Order) {
	order.SubmittedAt = p.now()

	var out domain.CheckoutOutcome
	if err := p.submitter.Submit(ctx, order); err != nil {
		out = domain.CheckoutOutcome{Status: domain.CheckoutFailed, Message: err.Error()}
		p.logger.Warn("checkout failed", zap.String("order_id", order.ID.String()), zap.Error(err))
	} else {
		out = domain.CheckoutOutcome{Status: domain.CheckoutSucceeded, Order: &order}
		p.logger.Info("checkout succeeded", zap.String("order_id", order.ID.String()))
	}

	p.mu.Lock()
	p.outcome = out
	elapsed := p.now().Sub(p.startedAt)
	listeners := p.copyListeners()
	p.mu.Unlock()

	p.metrics.CheckoutOutcome(out.Status.String(), float64(elapsed.Milliseconds()))
	emit(listeners, out)
}

// Reset returns a finished checkout to Idle. It reports whether anything changed.
func (p *Process) Reset() bool {
	p.mu.Lock()

	switch p.outcome.Status {
	case domain.CheckoutSucceeded, domain.CheckoutFailed:
	default:
		p.mu.Unlock()
		return false
	}

	out := domain.CheckoutOutcome{Status: domain.CheckoutIdle}
	p.outcome = out
	listeners := p.copyListeners()
	p.mu.Unlock()

	emit(listeners, out)
	return true
}

func (p *Process) Outcome() domain.CheckoutOutcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.outcome
}

// Subscribe registers fn to receive every transition.
func (p *Process) Subscribe(fn func(domain.CheckoutOutcome)) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.listeners = append(p.listeners, listener{id: id, fn: fn})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		for i, l := range p.listeners {
			if l.id == id {
				p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
				return
			}
		}
	}
}

// copyListeners must be called with p.mu held.
func (p *Process) copyListeners() []listener {
	out := make([]listener, len(p.listeners))
	copy(out, p.listeners)
	return out
}

func emit(listeners []listener, out domain.CheckoutOutcome) {
	for _, l := range listeners {
		l.fn(out)
	}
}

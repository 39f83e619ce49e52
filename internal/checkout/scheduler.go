package checkout

import (
	"context"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"time"
)

// Scheduler runs f once after d. It stands in for network latency.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ImmediateScheduler runs f inline, ignoring the delay.
type ImmediateScheduler struct{}

func (ImmediateScheduler) AfterFunc(_ time.Duration, f func()) {
	f()
}

// Submitter is the remote side of a checkout. Any returned error turns into
// a Failed outcome carrying err.Error().
type Submitter interface {
	Submit(ctx context.Context, order domain.Order) error
}

type SubmitterFunc func(ctx context.Context, order domain.Order) error

func (f SubmitterFunc) Submit(ctx context.Context, order domain.Order) error {
	return f(ctx, order)
}

// SimulatedSubmitter accepts every order.
type SimulatedSubmitter struct{}

func (SimulatedSubmitter) Submit(context.Context, domain.Order) error {
	return nil
}

package storefront

import (
	"context"
	"github.com/nikolayk812/storefront-demo/internal/cart"
	"github.com/nikolayk812/storefront-demo/internal/catalog"
	"github.com/nikolayk812/storefront-demo/internal/checkout"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"github.com/nikolayk812/storefront-demo/internal/view"
	"go.uber.org/zap"
	"sync"
	"time"
)

// RecordTimeout bounds saving and publishing one placed order.
const RecordTimeout = 10 * time.Second

type Option func(*Storefront)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Storefront) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOrderRepository records every successful order.
func WithOrderRepository(orders port.OrderRepository) Option {
	return func(s *Storefront) {
		s.orders = orders
	}
}

func WithRecordTimeout(d time.Duration) Option {
	return func(s *Storefront) {
		if d > 0 {
			s.recordTimeout = d
		}
	}
}

// WithPublisher announces every successful order.
func WithPublisher(publisher port.OrderPublisher) Option {
	return func(s *Storefront) {
		s.publisher = publisher
	}
}

// Storefront is the only surface presentation code talks to. It also plays
// the collaborator of the checkout: on success it empties the cart and goes
// home, and the order is recorded in the background.
type Storefront struct {
	catalog  *catalog.Catalog
	cart     *cart.Store
	checkout *checkout.Process
	views    *view.Controller

	orders        port.OrderRepository
	publisher     port.OrderPublisher
	recordTimeout time.Duration
	logger        *zap.Logger

	inflight sync.WaitGroup
}

func New(cat *catalog.Catalog, store *cart.Store, process *checkout.Process, opts ...Option) *Storefront {
	s := &Storefront{
		catalog:  cat,
		cart:     store,
		checkout: process,
		views:    view.New(store),
		logger:   zap.NewNop(),

		recordTimeout: RecordTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	process.Subscribe(s.onCheckoutOutcome)

	return s
}

func (s *Storefront) ListProducts() []domain.Product {
	return s.catalog.ListAll()
}

func (s *Storefront) FindProduct(id string) (domain.Product, bool) {
	return s.catalog.FindByID(id)
}

// AddItem adds the catalog product with the given id. Unknown ids are
// ignored and reported as false.
func (s *Storefront) AddItem(ctx context.Context, productID string) bool {
	p, ok := s.catalog.FindByID(productID)
	if !ok {
		s.logger.Debug("add of unknown product ignored", zap.String("product_id", productID))
		return false
	}

	s.cart.AddItem(ctx, p)
	return true
}

func (s *Storefront) AddProduct(ctx context.Context, product domain.Product) {
	s.cart.AddItem(ctx, product)
}

func (s *Storefront) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	s.cart.UpdateQuantity(ctx, productID, quantity)
}

func (s *Storefront) RemoveItem(ctx context.Context, productID string) {
	s.cart.RemoveItem(ctx, productID)
}

func (s *Storefront) Clear(ctx context.Context) {
	s.cart.Clear(ctx)
}

func (s *Storefront) Items() []domain.CartEntry {
	return s.cart.Items()
}

func (s *Storefront) Total() domain.Money {
	return s.cart.Total()
}

// SubmitCheckout submits the cart as it is right now.
func (s *Storefront) SubmitCheckout(ctx context.Context) bool {
	return s.checkout.Submit(ctx, s.cart.Items())
}

func (s *Storefront) ResetCheckout() bool {
	return s.checkout.Reset()
}

func (s *Storefront) CheckoutOutcome() domain.CheckoutOutcome {
	return s.checkout.Outcome()
}

func (s *Storefront) CurrentView() domain.View {
	return s.views.Current()
}

func (s *Storefront) Navigate(target domain.View) error {
	return s.views.Navigate(target)
}

// DismissConfirmation is the "continue shopping" action after an order.
func (s *Storefront) DismissConfirmation() {
	if s.checkout.Outcome().Status == domain.CheckoutSucceeded {
		s.checkout.Reset()
	}
	s.views.GoHome()
}

func (s *Storefront) SubscribeCart(fn func(domain.Cart)) (unsubscribe func()) {
	return s.cart.Subscribe(fn)
}

func (s *Storefront) SubscribeCheckout(fn func(domain.CheckoutOutcome)) (unsubscribe func()) {
	return s.checkout.Subscribe(fn)
}

func (s *Storefront) SubscribeView(fn func(domain.View)) (unsubscribe func()) {
	return s.views.Subscribe(fn)
}

func (s *Storefront) onCheckoutOutcome(out domain.CheckoutOutcome) {
	if out.Status != domain.CheckoutSucceeded || out.Order == nil {
		return
	}

	// runs on the scheduler's goroutine, detached from any caller
	ctx := context.Background()
	order := *out.Order

	s.cart.Clear(ctx)
	s.views.GoHome()

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.Int("entries", len(order.Entries)),
		zap.Stringer("total", order.Total),
	)

	if s.orders == nil && s.publisher == nil {
		return
	}

	s.inflight.Go(func() {
		s.record(order)
	})
}

// record stores and announces a placed order. Both steps are best-effort
// and bounded by RecordTimeout.
func (s *Storefront) record(order domain.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), s.recordTimeout)
	defer cancel()

	if s.orders != nil {
		if err := s.orders.SaveOrder(ctx, order); err != nil {
			s.logger.Warn("order not recorded", zap.String("order_id", order.ID.String()), zap.Error(err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
			s.logger.Warn("order not published", zap.String("order_id", order.ID.String()), zap.Error(err))
		}
	}
}

// Wait blocks until every placed order has been recorded and published.
func (s *Storefront) Wait() {
	s.inflight.Wait()
}

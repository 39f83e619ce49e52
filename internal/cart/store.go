package cart

import (
	"context"
	"errors"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/metrics"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"go.uber.org/zap"
	"sync"
)

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

type listener struct {
	id int
	fn func(domain.Cart)
}

// Store owns the cart. Every mutation is written through to the repository
// and then announced to subscribers. Mutations never fail: bad input is
// normalized and storage errors are only logged.
type Store struct {
	repo    port.CartRepository
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu        sync.Mutex
	cart      domain.Cart
	listeners []listener
	nextID    int
}

// NewStore loads the persisted cart once. A missing or corrupt slot yields an empty cart.
func NewStore(ctx context.Context, repo port.CartRepository, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cart = s.load(ctx)

	return s
}

func (s *Store) load(ctx context.Context) domain.Cart {
	cart, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		s.logger.Debug("cart loaded", zap.Int("entries", cart.Len()))
		return cart
	case errors.Is(err, port.ErrSlotNotFound):
		s.logger.Debug("no saved cart, starting empty")
	default:
		s.logger.Warn("discarding saved cart", zap.Error(err))
	}

	return domain.Cart{}
}

// AddItem inserts product with quantity 1, or bumps the quantity if present.
// The product is copied, later catalog edits do not reach the cart.
func (s *Store) AddItem(ctx context.Context, product domain.Product) {
	s.mutate(ctx, "add", func(c *domain.Cart) {
		if i := c.Find(product.ID); i >= 0 {
			c.Entries[i].Quantity++
			return
		}
		c.Entries = append(c.Entries, domain.CartEntry{Product: product, Quantity: 1})
	})
}

// UpdateQuantity sets the quantity of an existing entry. A non-positive
// quantity removes the entry, an unknown id is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, productID)
		return
	}

	s.mutate(ctx, "update", func(c *domain.Cart) {
		if i := c.Find(productID); i >= 0 {
			c.Entries[i].Quantity = quantity
		}
	})
}

func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mutate(ctx, "remove", func(c *domain.Cart) {
		if i := c.Find(productID); i >= 0 {
			c.Entries = append(c.Entries[:i:i], c.Entries[i+1:]...)
		}
	})
}

func (s *Store) Clear(ctx context.Context) {
	s.mutate(ctx, "clear", func(c *domain.Cart) {
		c.Entries = nil
	})
}

func (s *Store) Items() []domain.CartEntry {
	return s.Cart().Entries
}

func (s *Store) Total() domain.Money {
	return s.Cart().Total()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Len()
}

func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Clone()
}

// Subscribe registers fn to receive the cart after every mutation.
func (s *Store) Subscribe(fn func(domain.Cart)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// mutate applies fn to a private copy, swaps it in and writes it through.
// The lock is held across the write so slot contents follow mutation order.
func (s *Store) mutate(ctx context.Context, op string, fn func(c *domain.Cart)) {
	s.mu.Lock()

	next := s.cart.Clone()
	fn(&next)
	s.cart = next

	s.persist(ctx, op, next)

	snapshot := next.Clone()
	listeners := make([]listener, len(s.listeners))
	copy(listeners, s.listeners)

	s.mu.Unlock()

	s.metrics.CartMutation(op)

	for _, l := range listeners {
		l.fn(snapshot)
	}
}

func (s *Store) persist(ctx context.Context, op string, cart domain.Cart) {
	if err := s.repo.Save(ctx, cart); err != nil {
		s.metrics.PersistFailure()
		s.logger.Warn("cart write failed", zap.String("op", op), zap.Error(err))
	}
}

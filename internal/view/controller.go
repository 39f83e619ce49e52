package view

import (
	"errors"
	"fmt"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"sync"
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrUnknownView = errors.New("unknown view")
)

// CartSizer reports how many entries the cart holds.
type CartSizer interface {
	Len() int
}

// Controller tracks the active screen. All transitions are triggered from
// outside; nothing here moves on its own.
type Controller struct {
	cart CartSizer

	mu        sync.Mutex
	current   domain.View
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(domain.View)
}

func New(cart CartSizer) *Controller {
	return &Controller{
		cart:    cart,
		current: domain.ViewCatalog,
	}
}

func (c *Controller) GoHome() {
	c.set(domain.ViewCatalog)
}

func (c *Controller) GoToCart() {
	c.set(domain.ViewCart)
}

func (c *Controller) GoToCheckout() error {
	if c.cart.Len() == 0 {
		return ErrEmptyCart
	}

	c.set(domain.ViewCheckout)
	return nil
}

func (c *Controller) Navigate(target domain.View) error {
	switch target {
	case domain.ViewCatalog:
		c.GoHome()
	case domain.ViewCart:
		c.GoToCart()
	case domain.ViewCheckout:
		return c.GoToCheckout()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownView, target)
	}

	return nil
}

func (c *Controller) Current() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current
}

// Subscribe registers fn for every view change.
func (c *Controller) Subscribe(fn func(domain.View)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners = append(c.listeners, listener{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) set(v domain.View) {
	c.mu.Lock()
	if c.current == v {
		c.mu.Unlock()
		return
	}
	c.current = v
	listeners := append([]listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l.fn(v)
	}
}

package repository

import (
	"context"
	"fmt"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"sync"
)

// memoryCartRepository holds the encoded slot bytes, so it exercises the
// same codec as the durable implementations.
type memoryCartRepository struct {
	mu      sync.Mutex
	payload []byte
}

func NewInMemoryCart() port.CartRepository {
	return &memoryCartRepository{}
}

// NewInMemoryCartFrom seeds the slot with a raw payload, corrupt or not.
func NewInMemoryCartFrom(payload []byte) port.CartRepository {
	return &memoryCartRepository{payload: append([]byte(nil), payload...)}
}

func (r *memoryCartRepository) Load(_ context.Context) (domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.payload == nil {
		return domain.Cart{}, port.ErrSlotNotFound
	}

	cart, err := decodeCart(r.payload)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("decodeCart: %w", err)
	}

	return cart, nil
}

func (r *memoryCartRepository) Save(_ context.Context, cart domain.Cart) error {
	payload, err := encodeCart(cart)
	if err != nil {
		return fmt.Errorf("encodeCart: %w", err)
	}

	r.mu.Lock()
	r.payload = payload
	r.mu.Unlock()

	return nil
}
